// This file contains the render-boundary descriptor types. The core emits
// an ordered queue of these; an external renderer consumes and clears the
// queue each cycle.
package slashtypes

// OutputKind tags the descriptor variants.
type OutputKind int

const (
	// OutputMessage is a styled one-line message with a level.
	OutputMessage OutputKind = iota
	// OutputMarkdown is a markdown block.
	OutputMarkdown
	// OutputText is a plain text line.
	OutputText
	// OutputTable is a titled table with rows and an optional column list.
	OutputTable
)

// MessageLevel is the semantic level of a styled message. The values double
// as the output kind tags recorded in transcripts.
type MessageLevel string

const (
	// LevelInfo is neutral informational output.
	LevelInfo MessageLevel = "info"
	// LevelOK marks a successful operation.
	LevelOK MessageLevel = "ok"
	// LevelWarn marks a warning.
	LevelWarn MessageLevel = "warn"
	// LevelErr marks an error.
	LevelErr MessageLevel = "err"
)

// OutputDescriptor is one render-ready output item. Kind selects which
// fields are meaningful.
type OutputDescriptor struct {
	Kind OutputKind

	// Level applies to OutputMessage descriptors.
	Level MessageLevel
	// Text carries the content for message, markdown and text descriptors.
	Text string

	// Table fields.
	Title   string
	Rows    []map[string]string
	Columns []string
}

// MessageDescriptor builds a styled message descriptor.
func MessageDescriptor(level MessageLevel, text string) OutputDescriptor {
	return OutputDescriptor{Kind: OutputMessage, Level: level, Text: text}
}

// MarkdownDescriptor builds a markdown block descriptor.
func MarkdownDescriptor(text string) OutputDescriptor {
	return OutputDescriptor{Kind: OutputMarkdown, Text: text}
}

// TextDescriptor builds a plain text descriptor.
func TextDescriptor(text string) OutputDescriptor {
	return OutputDescriptor{Kind: OutputText, Text: text}
}

// TableDescriptor builds a table descriptor.
func TableDescriptor(title string, rows []map[string]string, columns []string) OutputDescriptor {
	return OutputDescriptor{Kind: OutputTable, Title: title, Rows: rows, Columns: columns}
}
