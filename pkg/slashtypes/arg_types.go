// This file contains the declarative argument specification consumed by both
// the dispatcher and the completion engine. An ArgSpec is an immutable value;
// the same spec drives strict parsing and permissive suggestion so the two
// can never drift apart.
package slashtypes

// ArgSpec declares one command parameter.
type ArgSpec struct {
	// Name is unique within a command and doubles as the --flag name for
	// optional arguments.
	Name string

	// Type selects the conversion applied to every bound raw token.
	Type ValueType

	// Default is the raw (unconverted) default value. HasDefault
	// distinguishes an empty-string default from no default at all.
	Default    string
	HasDefault bool

	// Optional marks the spec as non-required even without a default.
	Optional bool

	// Completer overrides the default suggestion source for this argument.
	// When nil, History-flagged specs fall back to a history completer and
	// TypePath specs to a path completer; everything else suggests nothing.
	Completer Completer

	// History records every successfully bound value into the recency store.
	History bool

	// Prompt requests interactive resolution even when the spec is optional.
	Prompt bool

	// Repeat accumulates every matching token into an ordered sequence
	// instead of overwriting.
	Repeat bool

	// PromptText replaces the generated "Enter <name>" prompt hint.
	PromptText string
}

// Arg declares a required argument of the given type.
func Arg(name string, t ValueType) ArgSpec {
	return ArgSpec{Name: name, Type: t}
}

// Opt declares an optional argument with a raw default value.
func Opt(name string, t ValueType, def string) ArgSpec {
	return ArgSpec{Name: name, Type: t, Default: def, HasDefault: true, Optional: true}
}

// Required reports whether the spec must receive a value from parsing or
// prompting. A spec is required unless it is declared optional or carries a
// default.
func (s ArgSpec) Required() bool {
	return !s.Optional && !s.HasDefault
}

// FlagName returns the --name form used for out-of-position binding.
func (s ArgSpec) FlagName() string {
	return "--" + s.Name
}

// PromptHint returns the text shown when this argument is resolved through a
// prompt, and the key matched against a headless answer table.
func (s ArgSpec) PromptHint() string {
	if s.PromptText != "" {
		return s.PromptText
	}
	return "Enter " + s.Name
}

// WithCompleter returns a copy of the spec with the completer attached.
func (s ArgSpec) WithCompleter(c Completer) ArgSpec {
	s.Completer = c
	return s
}

// WithHistory returns a copy of the spec that records bound values.
func (s ArgSpec) WithHistory() ArgSpec {
	s.History = true
	return s
}

// WithPrompt returns a copy of the spec that is always prompt-eligible.
func (s ArgSpec) WithPrompt() ArgSpec {
	s.Prompt = true
	return s
}

// WithPromptText returns a copy of the spec with a custom prompt hint.
func (s ArgSpec) WithPromptText(text string) ArgSpec {
	s.PromptText = text
	return s
}

// Repeated returns a copy of the spec that accumulates repeated values.
func (s ArgSpec) Repeated() ArgSpec {
	s.Repeat = true
	return s
}
