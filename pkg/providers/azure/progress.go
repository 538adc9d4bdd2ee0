package azure

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Progress tells the operator that a long-running Azure call is still going.
type Progress interface {
	Start(message string)
	Stop()
}

type spinnerProgress struct {
	*spinner.Spinner
}

// NewSpinnerProgress draws a spinner on f. Nothing is drawn when f is not a
// terminal.
func NewSpinnerProgress(f *os.File) Progress {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriterFile(f))
	return &spinnerProgress{Spinner: s}
}

func (p *spinnerProgress) Start(message string) {
	p.Suffix = " " + message
	p.Spinner.Start()
}

type nopProgress struct{}

func (nopProgress) Start(string) {}
func (nopProgress) Stop()        {}
