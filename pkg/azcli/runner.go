// Package azcli runs the Azure command-line tool.
package azcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/bacalhau-project/azops/pkg/logger"
	"github.com/google/shlex"
)

const DefaultCommand = "az"

// Command is one invocation of the Azure CLI, without the binary itself.
type Command struct {
	Args []string
	// Stream copies stdout and stderr to the operator's terminal while the
	// command runs. Output is captured either way.
	Stream bool
}

func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Result is what a finished command left behind. A non-zero ExitCode is not
// an error: callers decide what a failed az call means to them.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes Azure CLI commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExitError carries a failing az exit code up to main.
type ExitError struct {
	Args []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("az %s exited with status %d", strings.Join(e.Args, " "), e.Code)
}

// ExecRunner runs az as a subprocess.
type ExecRunner struct {
	prefix []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunner builds a runner from a command line such as "az" or
// "docker run --rm mcr.microsoft.com/azure-cli az". The streams are only
// attached to streamed commands; nil means the process's own.
func NewExecRunner(commandLine string, stdin io.Reader, stdout, stderr io.Writer) (*ExecRunner, error) {
	if strings.TrimSpace(commandLine) == "" {
		commandLine = DefaultCommand
	}
	prefix, err := shlex.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("failed to parse az command %q: %w", commandLine, err)
	}
	if len(prefix) == 0 {
		return nil, fmt.Errorf("az command %q is empty", commandLine)
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &ExecRunner{prefix: prefix, stdin: stdin, stdout: stdout, stderr: stderr}, nil
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	l := logger.FromContext(ctx)

	argv := append(append([]string{}, r.prefix[1:]...), cmd.Args...)
	c := exec.CommandContext(ctx, r.prefix[0], argv...) //nolint:gosec

	var stdout, stderr bytes.Buffer
	if cmd.Stream {
		c.Stdout = io.MultiWriter(r.stdout, &stdout)
		c.Stderr = io.MultiWriter(r.stderr, &stderr)
		c.Stdin = r.stdin
	} else {
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	l.Debugf("Running: %s %s", r.prefix[0], strings.Join(argv, " "))
	err := c.Run()

	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			l.Debugf("%s exited with status %d", r.prefix[0], res.ExitCode)
			return res, nil
		}
		return nil, err
	}
	return res, nil
}
