package transcript

import (
	"encoding/json"
	"time"

	"slashline/pkg/slashtypes"
)

// The structured format is a stable machine-readable surface: a session
// object followed by the flat entry sequence, each entry tagged by kind.
// Field order is fixed by these types; do not reorder.

type structuredDocument struct {
	Session structuredSession `json:"session"`
	Entries []any             `json:"entries"`
}

type structuredSession struct {
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type commandEntry struct {
	Type      string `json:"type"`
	Command   string `json:"command"`
	Timestamp string `json:"timestamp"`
}

type outputEntry struct {
	Type      string `json:"type"`
	Kind      string `json:"kind"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type uiEntry struct {
	Type      string `json:"type"`
	Element   string `json:"element"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

type textPayload struct {
	Content string `json:"content"`
}

type promptEntry struct {
	Type      string `json:"type"`
	Prompt    string `json:"prompt"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

func renderStructured(session slashtypes.Session) (string, error) {
	doc := structuredDocument{
		Session: structuredSession{
			StartTime:       formatTimestamp(session.StartTime),
			EndTime:         formatTimestamp(session.EndTime),
			DurationSeconds: session.Duration.Seconds(),
		},
		Entries: make([]any, 0, len(session.Entries)),
	}

	for _, e := range session.Entries {
		ts := formatTimestamp(e.Timestamp)
		switch e.Kind {
		case slashtypes.EntryCommand:
			doc.Entries = append(doc.Entries, commandEntry{
				Type:      string(e.Kind),
				Command:   e.Command,
				Timestamp: ts,
			})
		case slashtypes.EntryOutput:
			doc.Entries = append(doc.Entries, outputEntry{
				Type:      string(e.Kind),
				Kind:      string(e.OutputKind),
				Content:   e.Content,
				Timestamp: ts,
			})
		case slashtypes.EntryUI:
			var payload any = textPayload{Content: e.Content}
			if e.Element == slashtypes.UIElementTable && e.Table != nil {
				payload = *e.Table
			}
			doc.Entries = append(doc.Entries, uiEntry{
				Type:      string(e.Kind),
				Element:   e.Element,
				Payload:   payload,
				Timestamp: ts,
			})
		case slashtypes.EntryPrompt:
			doc.Entries = append(doc.Entries, promptEntry{
				Type:      string(e.Kind),
				Prompt:    e.Prompt,
				Response:  e.Response,
				Timestamp: ts,
			})
		}
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
