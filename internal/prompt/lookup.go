// Package prompt implements the two prompt resolvers behind the shared
// PromptResolver contract: a readline-backed resolver that blocks on the
// terminal, and a table-backed resolver for headless runs. The dispatcher
// never knows which one it was handed.
package prompt

import (
	"regexp"
	"strings"

	"slashline/internal/logger"
	"slashline/internal/transcript"
	"slashline/pkg/slashtypes"
)

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// LookupResolver resolves prompts from a pre-supplied answer table. Matching
// strategies, in order: exact prompt string, normalized key, bare argument
// name extracted from "Enter <name>" prompts. The first strategy that finds
// an entry wins; no match falls back to the spec default, then abstains.
type LookupResolver struct {
	answers  map[string]string
	recorder *transcript.Recorder
}

// NewLookupResolver creates a resolver over the answer table. The recorder
// may be nil; when present, every resolved exchange and every unanswerable
// prompt is recorded.
func NewLookupResolver(answers map[string]string, recorder *transcript.Recorder) *LookupResolver {
	if answers == nil {
		answers = map[string]string{}
	}
	return &LookupResolver{answers: answers, recorder: recorder}
}

// Resolve implements slashtypes.PromptResolver by table lookup. A missing
// entry with no spec default is treated identically to user cancellation.
func (l *LookupResolver) Resolve(spec slashtypes.ArgSpec, defaultText string) (string, bool) {
	promptText := spec.PromptHint()

	response, found := l.answers[promptText]
	if !found {
		response, found = l.answers[NormalizeKey(promptText)]
	}
	if !found {
		if name, ok := extractArgName(promptText); ok {
			response, found = l.answers[name]
		}
	}

	if found {
		l.record(promptText, response)
		return response, true
	}

	if defaultText != "" {
		l.record(promptText, defaultText)
		return defaultText, true
	}

	logger.Debug("No scripted answer for prompt", "prompt", promptText, "arg", spec.Name)
	if l.recorder != nil {
		l.recorder.RecordOutput(slashtypes.LevelErr, "No response configured for prompt: "+promptText)
	}
	return "", false
}

func (l *LookupResolver) record(promptText, response string) {
	if l.recorder != nil {
		l.recorder.RecordPromptExchange(promptText, response)
	}
}

// NormalizeKey lowercases a prompt string and collapses every run of
// non-alphanumeric characters into a single underscore, so "Enter name:"
// matches the table key "enter_name".
func NormalizeKey(promptText string) string {
	key := nonAlnumRuns.ReplaceAllString(strings.ToLower(promptText), "_")
	return strings.Trim(key, "_")
}

// extractArgName pulls the bare argument name out of prompts shaped like
// "Enter <name>".
func extractArgName(promptText string) (string, bool) {
	words := strings.Fields(strings.ToLower(promptText))
	if len(words) < 2 {
		return "", false
	}
	for _, w := range words {
		if w == "enter" {
			return strings.TrimSuffix(words[len(words)-1], ":"), true
		}
	}
	return "", false
}
