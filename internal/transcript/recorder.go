// Package transcript records headless-run sessions: every command, output,
// UI element and prompt exchange, in strict execution order, finalized into
// one of two serialization formats. The recorder itself is format-agnostic;
// the structured and narrative serializers are independent views over the
// same session value.
package transcript

import (
	"fmt"
	"os"
	"time"

	"slashline/pkg/slashtypes"
)

// Format selects the transcript serialization written at Finalize.
type Format string

const (
	// FormatStructured is the machine-readable JSON format.
	FormatStructured Format = "json"
	// FormatNarrative is the human-readable markdown format.
	FormatNarrative Format = "markdown"
)

// ParseFormat maps a format name to a Format, defaulting to narrative.
func ParseFormat(name string) Format {
	if name == string(FormatStructured) {
		return FormatStructured
	}
	return FormatNarrative
}

// Recorder accumulates transcript entries for one session. Entries are
// appended in chronological order from the single execution thread; nothing
// is written to disk until Finalize, which writes the transcript exactly
// once.
type Recorder struct {
	path      string
	format    Format
	now       func() time.Time
	start     time.Time
	entries   []slashtypes.TranscriptEntry
	commands  int
	finalized bool
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the timestamp source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder creates a recorder that will write to path in the given format
// at Finalize. An empty path keeps the session in memory only.
func NewRecorder(path string, format Format, opts ...Option) *Recorder {
	r := &Recorder{
		path:   path,
		format: format,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.start = r.now()
	return r
}

// RecordCommand records a script line about to be dispatched.
func (r *Recorder) RecordCommand(command string) {
	r.append(slashtypes.TranscriptEntry{
		Kind:    slashtypes.EntryCommand,
		Command: command,
	})
	r.commands++
}

// RecordOutput records a styled message emitted during execution.
func (r *Recorder) RecordOutput(level slashtypes.MessageLevel, content string) {
	r.append(slashtypes.TranscriptEntry{
		Kind:       slashtypes.EntryOutput,
		OutputKind: level,
		Content:    content,
	})
}

// RecordDescriptor records a render descriptor: styled messages become
// output entries, markdown, text and table descriptors become UI entries.
func (r *Recorder) RecordDescriptor(desc slashtypes.OutputDescriptor) {
	switch desc.Kind {
	case slashtypes.OutputMessage:
		r.RecordOutput(desc.Level, desc.Text)
	case slashtypes.OutputMarkdown:
		r.append(slashtypes.TranscriptEntry{
			Kind:    slashtypes.EntryUI,
			Element: slashtypes.UIElementMarkdown,
			Content: desc.Text,
		})
	case slashtypes.OutputText:
		r.append(slashtypes.TranscriptEntry{
			Kind:    slashtypes.EntryUI,
			Element: slashtypes.UIElementText,
			Content: desc.Text,
		})
	case slashtypes.OutputTable:
		r.append(slashtypes.TranscriptEntry{
			Kind:    slashtypes.EntryUI,
			Element: slashtypes.UIElementTable,
			Table: &slashtypes.TablePayload{
				Title:   desc.Title,
				Rows:    desc.Rows,
				Columns: desc.Columns,
			},
		})
	}
}

// RecordPromptExchange records a resolved prompt and its response.
func (r *Recorder) RecordPromptExchange(prompt, response string) {
	r.append(slashtypes.TranscriptEntry{
		Kind:     slashtypes.EntryPrompt,
		Prompt:   prompt,
		Response: response,
	})
}

func (r *Recorder) append(entry slashtypes.TranscriptEntry) {
	entry.Timestamp = r.now()
	r.entries = append(r.entries, entry)
}

// Session returns the session as recorded so far. The end time and duration
// reflect the current clock until Finalize fixes them.
func (r *Recorder) Session() slashtypes.Session {
	end := r.now()
	entries := make([]slashtypes.TranscriptEntry, len(r.entries))
	copy(entries, r.entries)
	return slashtypes.Session{
		StartTime: r.start,
		EndTime:   end,
		Duration:  end.Sub(r.start),
		Commands:  r.commands,
		Entries:   entries,
	}
}

// CommandCount returns the number of command entries recorded.
func (r *Recorder) CommandCount() int {
	return r.commands
}

// Render serializes the current session in the recorder's format without
// writing it anywhere.
func (r *Recorder) Render() (string, error) {
	session := r.Session()
	if r.format == FormatStructured {
		return renderStructured(session)
	}
	return renderNarrative(session), nil
}

// Finalize computes the session duration, serializes it in the selected
// format and writes the transcript file exactly once. A write failure is
// fatal to the run and propagates; repeated calls are no-ops.
func (r *Recorder) Finalize() error {
	if r.finalized {
		return nil
	}
	r.finalized = true

	if r.path == "" {
		return nil
	}
	content, err := r.Render()
	if err != nil {
		return fmt.Errorf("serialize transcript: %w", err)
	}
	if err := os.WriteFile(r.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write transcript %s: %w", r.path, err)
	}
	return nil
}
