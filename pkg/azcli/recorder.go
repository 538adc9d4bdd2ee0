package azcli

import (
	"context"
	"strings"
	"sync"
)

// Recorder is a Runner that never starts a process. It remembers every
// command and answers from Responses, keyed by the space-joined args.
type Recorder struct {
	mu        sync.Mutex
	Commands  []Command
	Responses map[string]Result
	// Default is returned for commands without an entry in Responses.
	Default Result
	// Err, if set, is returned from every Run.
	Err error
}

func NewRecorder() *Recorder {
	return &Recorder{Responses: map[string]Result{}}
}

// Respond registers the result for a command given as its args.
func (r *Recorder) Respond(res Result, args ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Responses[strings.Join(args, " ")] = res
}

func (r *Recorder) Run(_ context.Context, cmd Command) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Commands = append(r.Commands, Command{
		Args:   append([]string{}, cmd.Args...),
		Stream: cmd.Stream,
	})
	if r.Err != nil {
		return nil, r.Err
	}
	if res, ok := r.Responses[cmd.String()]; ok {
		return &res, nil
	}
	res := r.Default
	return &res, nil
}

// Calls returns every recorded command whose args start with prefix.
func (r *Recorder) Calls(prefix ...string) []Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Command
	for _, c := range r.Commands {
		if hasPrefix(c.Args, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func hasPrefix(args, prefix []string) bool {
	if len(prefix) > len(args) {
		return false
	}
	for i := range prefix {
		if args[i] != prefix[i] {
			return false
		}
	}
	return true
}
