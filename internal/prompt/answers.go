package prompt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadAnswers reads a headless answer table from a YAML file: a flat mapping
// from prompt-matching keys to response values. Scalar values of any type
// are accepted and stringified, so `limit: 30` works without quoting.
func LoadAnswers(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}

	parsed := make(map[string]any)
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse answers file %s: %w", path, err)
	}

	answers := make(map[string]string, len(parsed))
	for key, value := range parsed {
		answers[key] = fmt.Sprintf("%v", value)
	}
	return answers, nil
}
