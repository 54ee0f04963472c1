package shell

import (
	"strings"

	"slashline/internal/completion"
)

// lineCompleter bridges the readline.AutoCompleter interface to the
// completion engine. Readline hands over the raw line and cursor position;
// the engine returns full replacement tokens, which are converted back into
// the suffix form readline expects.
type lineCompleter struct {
	engine *completion.Engine
}

// Do implements readline.AutoCompleter.
func (c *lineCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if pos > len(line) {
		pos = len(line)
	}
	text := string(line[:pos])

	suggestions := c.engine.Suggest(text)
	if len(suggestions) == 0 {
		return nil, 0
	}

	// The word under completion runs from the last whitespace to the cursor.
	wordStart := strings.LastIndexAny(text, " \t") + 1
	word := text[wordStart:]

	var out [][]rune
	for _, suggestion := range suggestions {
		if strings.HasPrefix(suggestion, word) {
			out = append(out, []rune(strings.TrimPrefix(suggestion, word)))
		}
	}
	return out, len([]rune(word))
}
