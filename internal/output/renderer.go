package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"slashline/internal/logger"
	"slashline/pkg/slashtypes"
)

// Renderer consumes drained output descriptors and prints them. Markdown
// blocks go through glamour; everything else through the styled printer.
type Renderer struct {
	printer  *Printer
	markdown *glamour.TermRenderer
}

// NewRenderer creates a renderer over the given printer. Markdown rendering
// degrades to raw text when a terminal renderer cannot be constructed.
func NewRenderer(printer *Printer) *Renderer {
	r := &Renderer{printer: printer}

	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		logger.Debug("Markdown renderer unavailable, using raw text", "error", err)
	} else {
		r.markdown = md
	}
	return r
}

// Render prints the descriptors in FIFO order.
func (r *Renderer) Render(descs []slashtypes.OutputDescriptor) {
	for _, desc := range descs {
		switch desc.Kind {
		case slashtypes.OutputMessage:
			r.renderMessage(desc)
		case slashtypes.OutputMarkdown:
			r.renderMarkdown(desc.Text)
		case slashtypes.OutputText:
			r.printer.Println(desc.Text)
		case slashtypes.OutputTable:
			r.renderTable(desc)
		}
	}
}

func (r *Renderer) renderMessage(desc slashtypes.OutputDescriptor) {
	switch desc.Level {
	case slashtypes.LevelOK:
		r.printer.Success("✓ " + desc.Text)
	case slashtypes.LevelWarn:
		r.printer.Warning("⚠ " + desc.Text)
	case slashtypes.LevelErr:
		r.printer.Error("Error: " + desc.Text)
	default:
		r.printer.Info(desc.Text)
	}
}

func (r *Renderer) renderMarkdown(text string) {
	if r.markdown == nil {
		r.printer.Println(text)
		return
	}
	rendered, err := r.markdown.Render(text)
	if err != nil {
		r.printer.Println(text)
		return
	}
	r.printer.Print(rendered)
}

func (r *Renderer) renderTable(desc slashtypes.OutputDescriptor) {
	if desc.Title != "" {
		r.printer.Heading(desc.Title)
	}
	if len(desc.Rows) == 0 {
		r.printer.Info("(empty table)")
		return
	}

	columns := desc.Columns
	if len(columns) == 0 {
		columns = make([]string, 0, len(desc.Rows[0]))
		for col := range desc.Rows[0] {
			columns = append(columns, col)
		}
		sort.Strings(columns)
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range desc.Rows {
		for i, col := range columns {
			if l := len(row[col]); l > widths[i] {
				widths[i] = l
			}
		}
	}

	r.printer.Heading(formatRow(columns, widths))
	for _, row := range desc.Rows {
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = row[col]
		}
		r.printer.Println(formatRow(values, widths))
	}
}

func formatRow(values []string, widths []int) string {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = fmt.Sprintf("%-*s", widths[i], v)
	}
	return strings.TrimRight(strings.Join(cells, "  "), " ")
}
