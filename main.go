package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bacalhau-project/azops/cmd"
	"github.com/bacalhau-project/azops/pkg/azcli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// az has already printed its own error output.
		var exitErr *azcli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
