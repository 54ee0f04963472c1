// This file contains the interfaces that decouple the runtime packages:
// handlers see only Context, completion sees only a history reader, and
// the dispatcher is agnostic to whether a prompt resolver is interactive
// or table-driven.
package slashtypes

// Handler is a registered command's entry point. It receives the shared
// application context and the fully bound, converted argument values. A
// returned error is caught at the dispatch boundary and reported as a
// HandlerError; it never terminates the runtime loop.
type Handler func(ctx Context, args map[string]Value) error

// Context is the application surface available to handlers and hooks. The
// state container is opaque to the runtime; the output queue behind the
// emit helpers is core-owned and drained exactly once per cycle.
type Context interface {
	// State returns the shared mutable application state.
	State() map[string]any

	// Emit enqueues a render-ready output descriptor.
	Emit(desc OutputDescriptor)

	// Info enqueues an informational styled message.
	Info(text string)
	// Success enqueues a success styled message.
	Success(text string)
	// Warning enqueues a warning styled message.
	Warning(text string)
	// Error enqueues an error styled message.
	Error(text string)

	// Text enqueues a plain text line.
	Text(text string)
	// Markdown enqueues a markdown block.
	Markdown(text string)
	// Table enqueues a table. A nil column list infers columns from the
	// first row at render time.
	Table(title string, rows []map[string]string, columns []string)
}

// HistoryReader is the read side of the recency store, used by completion.
type HistoryReader interface {
	// Get returns up to limit previously accepted values for the
	// (command, argument) pair, most recent first.
	Get(command, arg string, limit int) []string
}

// HistoryWriter is the append side of the recency store, used by dispatch.
type HistoryWriter interface {
	// Add records an accepted value. Re-adding an existing value moves it
	// to the front of the recency order without duplicating it.
	Add(command, arg, value string)
}

// CompletionContext is the ephemeral value passed to a completer. It is
// built fresh for every suggestion pass and never persisted.
type CompletionContext struct {
	// Prefix is the typed portion of the active token.
	Prefix string
	// Command is the active command name.
	Command string
	// ArgName is the active argument name.
	ArgName string
	// Tokens is the raw token sequence typed so far, command included.
	Tokens []string
	// State is the live application state.
	State map[string]any
	// History is the recency store, nil when none is attached.
	History HistoryReader
	// Bound maps argument names to the raw tokens already bound on the
	// line, for dependent completions. Repeated arguments carry every
	// bound token in order.
	Bound map[string][]string
}

// Completer produces ordered suggestions for the active argument. It must
// treat the context as read-only.
type Completer func(ctx CompletionContext) []string

// PromptResolver resolves a value for an argument left unbound after token
// consumption. The boolean distinguishes a resolved value (which may be the
// empty string) from abstention: ok == false aborts dispatch as Canceled.
// Interactive and headless implementations share this contract so the
// dispatcher never knows which mode supplied it.
type PromptResolver interface {
	Resolve(spec ArgSpec, defaultText string) (value string, ok bool)
}
