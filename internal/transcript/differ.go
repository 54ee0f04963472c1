package transcript

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Differ compares two serialized transcripts. Timestamps are the only
// permitted difference between deterministic runs, so they are normalized
// away before comparison, along with any stray ANSI styling.
type Differ struct {
	patterns []normalizePattern
}

type normalizePattern struct {
	pattern     *regexp.Regexp
	replacement string
}

// NewDiffer creates a differ with the built-in normalization patterns.
func NewDiffer() *Differ {
	return &Differ{
		patterns: []normalizePattern{
			// ISO timestamps in structured transcripts
			{
				pattern:     regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?`),
				replacement: "<timestamp>",
			},
			// Wall-clock lines in narrative transcripts
			{
				pattern:     regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`),
				replacement: "<timestamp>",
			},
			{
				pattern:     regexp.MustCompile(`Duration: \d+(\.\d+)? seconds`),
				replacement: "Duration: <duration> seconds",
			},
			{
				pattern:     regexp.MustCompile(`"duration_seconds": \d+(\.\d+)?`),
				replacement: `"duration_seconds": <duration>`,
			},
		},
	}
}

// Compare normalizes both transcripts and reports whether they are
// equivalent, returning a printable diff when they are not.
func (d *Differ) Compare(expected, actual string) (string, bool) {
	normExpected := d.Normalize(expected)
	normActual := d.Normalize(actual)
	if normExpected == normActual {
		return "", true
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(normExpected, normActual, false)

	var b strings.Builder
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&b, "- %q\n", diff.Text)
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&b, "+ %q\n", diff.Text)
		case diffmatchpatch.DiffEqual:
			// Trim unchanged context for readability
			if len(diff.Text) > 50 {
				fmt.Fprintf(&b, "  %q...\n", diff.Text[:47])
			} else {
				fmt.Fprintf(&b, "  %q\n", diff.Text)
			}
		}
	}
	return b.String(), false
}

// Normalize strips ANSI escapes, masks timestamp and duration fields, and
// trims trailing whitespace per line.
func (d *Differ) Normalize(content string) string {
	content = ansi.Strip(content)
	for _, p := range d.patterns {
		content = p.pattern.ReplaceAllString(content, p.replacement)
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
