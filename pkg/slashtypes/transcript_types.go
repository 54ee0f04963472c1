// This file contains the transcript data model for headless runs: a flat,
// chronological sequence of tagged entries plus session bookkeeping. The
// serialization formats live with the recorder; these types carry no
// format-specific behavior.
package slashtypes

import "time"

// EntryKind tags the transcript entry variants.
type EntryKind string

const (
	// EntryCommand records a script line handed to dispatch.
	EntryCommand EntryKind = "command"
	// EntryOutput records a styled message emitted during execution.
	EntryOutput EntryKind = "output"
	// EntryUI records a markdown, text or table descriptor.
	EntryUI EntryKind = "ui"
	// EntryPrompt records a resolved prompt exchange.
	EntryPrompt EntryKind = "prompt"
)

// UI element tags used by EntryUI entries.
const (
	UIElementMarkdown = "markdown"
	UIElementText     = "text"
	UIElementTable    = "table"
)

// TablePayload is the recorded form of a table descriptor.
type TablePayload struct {
	Title   string              `json:"title"`
	Rows    []map[string]string `json:"rows"`
	Columns []string            `json:"columns"`
}

// TranscriptEntry is one recorded event. Kind selects which fields are
// meaningful; Timestamp is set for every entry.
type TranscriptEntry struct {
	Kind      EntryKind
	Timestamp time.Time

	// Command entries.
	Command string

	// Output entries.
	OutputKind MessageLevel
	Content    string

	// UI entries: Element is one of the UIElement tags; markdown and text
	// elements carry their content in Content, tables in Table.
	Element string
	Table   *TablePayload

	// Prompt entries.
	Prompt   string
	Response string
}

// Session is the finalized account of one headless run.
type Session struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Commands  int
	Entries   []TranscriptEntry
}
