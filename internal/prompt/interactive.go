package prompt

import (
	"strings"

	"github.com/chzyer/readline"

	"slashline/pkg/slashtypes"
)

// ReadlineResolver blocks the execution thread on a terminal read to resolve
// a missing argument. End-of-input and interrupt both abstain, which the
// dispatcher reports as Canceled.
type ReadlineResolver struct {
	rl *readline.Instance
}

// NewReadlineResolver wraps an existing readline instance. The shell loop
// owns the instance; the resolver only borrows it for one question at a
// time and restores nothing (the loop resets its own prompt each cycle).
func NewReadlineResolver(rl *readline.Instance) *ReadlineResolver {
	return &ReadlineResolver{rl: rl}
}

// Resolve implements slashtypes.PromptResolver by asking on the terminal.
// The argument's prompt hint is displayed, with the default shown in
// brackets when one exists; an empty reply returns the default.
func (r *ReadlineResolver) Resolve(spec slashtypes.ArgSpec, defaultText string) (string, bool) {
	promptText := spec.PromptHint()
	if defaultText != "" {
		promptText += " [" + defaultText + "]"
	}
	r.rl.SetPrompt(promptText + " ")

	line, err := r.rl.Readline()
	if err != nil {
		// io.EOF (Ctrl-D) or readline.ErrInterrupt (Ctrl-C)
		return "", false
	}

	line = strings.TrimSpace(line)
	if line == "" && defaultText != "" {
		return defaultText, true
	}
	return line, true
}
