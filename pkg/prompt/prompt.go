// Package prompt reads operator answers from an interactive terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Asker poses a question and returns the operator's answer.
type Asker interface {
	Ask(question string) (string, error)
}

// LinePrompter writes the question to out and reads a single line from in.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(in), out: out}
}

// Ask strips only the line terminator; the answer is otherwise returned as
// typed, including an empty line. EOF before any input returns io.EOF.
func (p *LinePrompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", err
	}

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

var _ Asker = (*LinePrompter)(nil)
