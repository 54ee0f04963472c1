// Package output provides the render boundary for slashline: a core-owned
// FIFO queue of output descriptors, a styled printer with injected styling,
// and a renderer that consumes and clears the queue each cycle.
package output

// StyleProvider supplies styled text rendering. The output package depends
// only on this interface, so styling can be swapped or disabled without
// touching callers.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	GetStyle(semantic SemanticType) TextStyle

	// IsAvailable returns true when the provider is ready; false makes the
	// printer fall back to plain text.
	IsAvailable() bool
}

// TextStyle renders text with styling applied. lipgloss styles are wrapped
// to satisfy this interface.
type TextStyle interface {
	Render(text string) string
}

// Mode defines the output modes the printer can operate in.
type Mode int

const (
	// ModeAuto picks styled or plain based on terminal capabilities.
	ModeAuto Mode = iota
	// ModeStyled forces styled output.
	ModeStyled
	// ModePlain forces plain text output.
	ModePlain
)

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	// SemanticPlain is text without semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo is informational text.
	SemanticInfo SemanticType = "info"
	// SemanticSuccess is success text.
	SemanticSuccess SemanticType = "success"
	// SemanticWarning is warning text.
	SemanticWarning SemanticType = "warning"
	// SemanticError is error text.
	SemanticError SemanticType = "error"
	// SemanticCommand is command or invocation text.
	SemanticCommand SemanticType = "command"
	// SemanticHeading is table title and heading text.
	SemanticHeading SemanticType = "heading"
)
