// Package parser implements command line tokenization and dispatch for
// slashline. Dispatch validates, converts and binds tokens against a
// command's argument specifications, resolves missing values through a
// prompt resolver, and invokes the handler only when every argument bound.
package parser

import (
	"fmt"
	"strings"
)

// Tokenize splits a command line into tokens. Single and double quotes group
// words into one token and are stripped from the result, so
// `--desc "two words"` yields the token `--desc` followed by `two words`.
// An unterminated quote is an error.
func Tokenize(line string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inToken := false
	inQuotes := false
	quoteChar := byte(0)

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case !inQuotes && (c == '"' || c == '\''):
			inQuotes = true
			quoteChar = c
			inToken = true
		case inQuotes && c == quoteChar:
			inQuotes = false
			quoteChar = 0
		case !inQuotes && (c == ' ' || c == '\t'):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteByte(c)
			inToken = true
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
