// Package completion implements context-aware suggestion for partially typed
// command lines. The engine re-derives the active argument from the same
// specs the dispatcher binds against, so parsing and completion can never
// disagree about what a token means.
package completion

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"slashline/pkg/slashtypes"
)

// DefaultHistoryLimit bounds history-based suggestions when no explicit
// limit is given.
const DefaultHistoryLimit = 10

// Choices completes from a fixed candidate list, filtered by the typed
// prefix.
func Choices(items ...string) slashtypes.Completer {
	return func(ctx slashtypes.CompletionContext) []string {
		var out []string
		for _, item := range items {
			if strings.HasPrefix(item, ctx.Prefix) {
				out = append(out, item)
			}
		}
		return out
	}
}

// Numbers completes with the stringified numeric range [start, stop) stepped
// by step, filtered by prefix. A non-positive step yields nothing.
func Numbers(start, stop, step int) slashtypes.Completer {
	return func(ctx slashtypes.CompletionContext) []string {
		if step <= 0 {
			return nil
		}
		var out []string
		for n := start; n < stop; n += step {
			s := strconv.Itoa(n)
			if strings.HasPrefix(s, ctx.Prefix) {
				out = append(out, s)
			}
		}
		return out
	}
}

// Paths completes filesystem entries under the directory implied by the
// typed prefix, optionally filtered to the given file extensions.
// Directories are suggested with a trailing separator.
func Paths(extensions ...string) slashtypes.Completer {
	return func(ctx slashtypes.CompletionContext) []string {
		prefix := ctx.Prefix
		base := prefix
		if base == "" {
			base = "."
		}

		parent := base
		match := ""
		if info, err := os.Stat(base); err != nil || !info.IsDir() {
			parent = filepath.Dir(base)
			match = filepath.Base(base)
		}

		dirEntries, err := os.ReadDir(parent)
		if err != nil {
			return nil
		}

		var out []string
		for _, de := range dirEntries {
			name := de.Name()
			if !strings.HasPrefix(name, match) {
				continue
			}
			if len(extensions) > 0 && !de.IsDir() && !hasExtension(name, extensions) {
				continue
			}
			full := filepath.Join(parent, name)
			if de.IsDir() {
				full += string(os.PathSeparator)
			}
			out = append(out, full)
		}
		sort.Strings(out)
		return out
	}
}

func hasExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// History completes from the recency store for the active (command,
// argument) pair, most recent first, bounded to limit. A non-positive limit
// uses DefaultHistoryLimit.
func History(limit int) slashtypes.Completer {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return func(ctx slashtypes.CompletionContext) []string {
		if ctx.History == nil {
			return nil
		}
		var out []string
		for _, item := range ctx.History.Get(ctx.Command, ctx.ArgName, limit) {
			if strings.HasPrefix(item, ctx.Prefix) {
				out = append(out, item)
			}
		}
		return out
	}
}

// Dependent completes based on the already-bound value of another argument
// on the same line. When the parent argument has no bound value yet, there
// are no suggestions; otherwise fetch is invoked with the parent's raw value
// and the result is filtered by prefix. For repeated parents the most recent
// bound token wins.
func Dependent(parent string, fetch func(parentValue string, ctx slashtypes.CompletionContext) []string) slashtypes.Completer {
	return func(ctx slashtypes.CompletionContext) []string {
		raws := ctx.Bound[parent]
		if len(raws) == 0 {
			return nil
		}
		parentValue := raws[len(raws)-1]

		var out []string
		for _, item := range fetch(parentValue, ctx) {
			if strings.HasPrefix(item, ctx.Prefix) {
				out = append(out, item)
			}
		}
		return out
	}
}

// None suggests nothing. It is the default for specs without a completer,
// history flag or path type.
func None() slashtypes.Completer {
	return func(slashtypes.CompletionContext) []string { return nil }
}
