// Package script implements the headless runner: it loads a fixed sequence
// of command lines, feeds them through the same dispatcher the interactive
// shell uses, resolves prompts from an answer table, and records a full
// transcript of the run.
package script

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Source supplies the ordered command lines of a script. Lines beginning
// with '#' and blank lines are stripped by every source; a source that
// cannot produce its lines fails the run at Setup.
type Source interface {
	Lines() ([]string, error)
}

type linesSource struct {
	lines []string
}

// FromLines builds a source from an explicit command sequence.
func FromLines(lines []string) Source {
	return linesSource{lines: lines}
}

func (s linesSource) Lines() ([]string, error) {
	return cleanLines(s.lines), nil
}

type fileSource struct {
	path string
}

// FromFile builds a source that reads a UTF-8 script file at run time.
func FromFile(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Lines() ([]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", s.path, err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("script %s is not valid UTF-8", s.path)
	}
	return cleanLines(strings.Split(string(raw), "\n")), nil
}

type textSource struct {
	text string
}

// FromText builds a source from an inline multi-line block.
func FromText(text string) Source {
	return textSource{text: text}
}

func (s textSource) Lines() ([]string, error) {
	return cleanLines(strings.Split(s.text, "\n")), nil
}

func cleanLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
