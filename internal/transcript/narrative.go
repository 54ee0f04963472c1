package transcript

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"slashline/pkg/slashtypes"
)

// The narrative format is a compatibility surface: existing transcripts are
// diffed by tooling, so heading text, symbols and field order must be
// reproduced exactly as emitted by earlier releases.

const narrativeTimeLayout = "2006-01-02 15:04:05"

func renderNarrative(session slashtypes.Session) string {
	var b strings.Builder

	b.WriteString("# TUI Session Transcript\n")
	fmt.Fprintf(&b, "Started: %s\n\n", session.StartTime.Format(narrativeTimeLayout))

	for _, e := range session.Entries {
		writeNarrativeEntry(&b, e)
	}

	writeNarrativeFooter(&b, session.EndTime, session.Duration, session.Commands)
	return b.String()
}

func writeNarrativeEntry(b *strings.Builder, e slashtypes.TranscriptEntry) {
	switch e.Kind {
	case slashtypes.EntryCommand:
		fmt.Fprintf(b, "## Command: %s\n", e.Command)
		fmt.Fprintf(b, "> %s\n", e.Command)
	case slashtypes.EntryOutput:
		switch e.OutputKind {
		case slashtypes.LevelOK:
			fmt.Fprintf(b, "✓ %s\n", e.Content)
		case slashtypes.LevelErr:
			fmt.Fprintf(b, "❌ Error: %s\n", e.Content)
		case slashtypes.LevelWarn:
			fmt.Fprintf(b, "⚠️  %s\n", e.Content)
		case slashtypes.LevelInfo:
			fmt.Fprintf(b, "ℹ️  %s\n", e.Content)
		default:
			fmt.Fprintf(b, "%s\n", e.Content)
		}
	case slashtypes.EntryUI:
		switch e.Element {
		case slashtypes.UIElementMarkdown:
			fmt.Fprintf(b, "\n%s\n", e.Content)
		case slashtypes.UIElementText:
			fmt.Fprintf(b, "%s\n", e.Content)
		case slashtypes.UIElementTable:
			if e.Table != nil {
				writeNarrativeTable(b, *e.Table)
			}
		}
	case slashtypes.EntryPrompt:
		fmt.Fprintf(b, "🔤 %s: %s\n", e.Prompt, e.Response)
	}
}

func writeNarrativeTable(b *strings.Builder, table slashtypes.TablePayload) {
	if table.Title != "" {
		fmt.Fprintf(b, "\n### %s\n", table.Title)
	}
	if len(table.Rows) == 0 {
		b.WriteString("*(empty table)*\n")
		return
	}

	columns := table.Columns
	if len(columns) == 0 {
		columns = inferColumns(table.Rows)
	}

	b.WriteString("| " + strings.Join(columns, " | ") + " |\n")
	separators := make([]string, len(columns))
	for i, col := range columns {
		separators[i] = strings.Repeat("-", len(col)+2)
	}
	b.WriteString("|" + strings.Join(separators, "|") + "|\n")

	for _, row := range table.Rows {
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = row[col]
		}
		b.WriteString("| " + strings.Join(values, " | ") + " |\n")
	}
	b.WriteString("\n")
}

func writeNarrativeFooter(b *strings.Builder, end time.Time, duration time.Duration, commands int) {
	fmt.Fprintf(b, "\n---\nSession ended: %s\n", end.Format(narrativeTimeLayout))
	fmt.Fprintf(b, "Duration: %.2f seconds\n", duration.Seconds())
	fmt.Fprintf(b, "Commands executed: %d\n", commands)
}

// inferColumns derives a deterministic column list from the first row when
// the descriptor declared none. Insertion order is unknowable after the map
// round trip, so keys sort lexicographically.
func inferColumns(rows []map[string]string) []string {
	if len(rows) == 0 {
		return nil
	}
	columns := make([]string, 0, len(rows[0]))
	for col := range rows[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}
