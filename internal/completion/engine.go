package completion

import (
	"strings"

	"slashline/internal/command"
	"slashline/internal/logger"
	"slashline/pkg/slashtypes"
)

// Engine produces ordered suggestions for a partially typed command line.
// It holds the registry, the recency store and a live-state provider; every
// suggestion pass is read-only, so identical input always yields identical
// output.
type Engine struct {
	registry      *command.Registry
	history       slashtypes.HistoryReader
	stateProvider func() map[string]any
}

// NewEngine creates a completion engine. history and stateProvider may be
// nil when no recency store or live state is available.
func NewEngine(registry *command.Registry, history slashtypes.HistoryReader, stateProvider func() map[string]any) *Engine {
	if stateProvider == nil {
		stateProvider = func() map[string]any { return nil }
	}
	return &Engine{registry: registry, history: history, stateProvider: stateProvider}
}

// planEntry tracks which specs the tokens typed so far have already bound.
// It mirrors the dispatcher's binding walk but tolerates incomplete and
// invalid trailing input.
type planEntry struct {
	spec     slashtypes.ArgSpec
	provided bool
}

// Suggest returns completions for the partial input. While the command name
// is still being typed it suggests registered names by registration order;
// afterwards it determines the active argument and invokes its completer.
// Suggest never panics: a failing custom completer yields no suggestions.
func (e *Engine) Suggest(partial string) []string {
	s := strings.TrimLeft(partial, " \t")
	if !strings.HasPrefix(s, "/") {
		return nil
	}
	trailing := strings.HasSuffix(s, " ") || strings.HasSuffix(s, "\t")

	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil
	}

	if len(tokens) == 1 && !trailing {
		var out []string
		for _, name := range e.registry.Names() {
			if strings.HasPrefix(name, tokens[0]) {
				out = append(out, name)
			}
		}
		return out
	}

	entry, ok := e.registry.Resolve(tokens[0])
	if !ok || len(entry.Specs) == 0 {
		return nil
	}

	argTokens := tokens[1:]
	if trailing {
		argTokens = append(argTokens, "")
	}
	activeToken := argTokens[len(argTokens)-1]

	prefix := activeToken
	if trailing {
		prefix = ""
	}
	if strings.HasPrefix(prefix, "--") {
		// A bare flag selects the argument but carries no value prefix yet;
		// with "=" the portion after it is the prefix.
		_, val, hasEq := strings.Cut(prefix, "=")
		prefix = ""
		if hasEq {
			prefix = val
		}
	}

	plan := make([]planEntry, len(entry.Specs))
	byFlag := make(map[string]*planEntry)
	for i, spec := range entry.Specs {
		plan[i] = planEntry{spec: spec}
		if !spec.Required() {
			byFlag[spec.FlagName()] = &plan[i]
		}
	}

	parseTokens := argTokens
	if trailing {
		parseTokens = parseTokens[:len(parseTokens)-1]
	}
	bound, lastBound := walkTokens(plan, byFlag, parseTokens)

	active := activeSpec(plan, byFlag, activeToken, trailing, lastBound)
	if active == nil {
		return nil
	}

	completer := completerFor(*active)
	if completer == nil {
		return nil
	}

	ctx := slashtypes.CompletionContext{
		Prefix:  prefix,
		Command: entry.Name,
		ArgName: active.Name,
		Tokens:  tokens,
		State:   e.stateProvider(),
		History: e.history,
		Bound:   bound,
	}
	suggestions := e.invoke(completer, ctx)

	var out []string
	for _, suggestion := range suggestions {
		if prefix != "" && !strings.HasPrefix(suggestion, prefix) {
			continue
		}
		out = append(out, suggestion)
	}
	return out
}

// walkTokens replays the dispatcher's binding rules over the completed
// tokens, recording raw bound values for dependent completions. Unknown
// flags and overflow tokens are skipped rather than rejected.
func walkTokens(plan []planEntry, byFlag map[string]*planEntry, parseTokens []string) (map[string][]string, *planEntry) {
	bound := make(map[string][]string)
	var lastBound *planEntry
	cursor := 0

	for i := 0; i < len(parseTokens); i++ {
		tok := parseTokens[i]
		if strings.HasPrefix(tok, "--") {
			key, val, hasEq := strings.Cut(tok, "=")
			pe, known := byFlag[key]
			if !known {
				continue
			}
			raw := val
			if !hasEq {
				if i+1 >= len(parseTokens) {
					break
				}
				raw = parseTokens[i+1]
				i++
			}
			bound[pe.spec.Name] = append(bound[pe.spec.Name], raw)
			pe.provided = true
			lastBound = pe
			continue
		}

		for cursor < len(plan) && plan[cursor].provided {
			cursor++
		}
		if cursor >= len(plan) {
			break
		}
		pe := &plan[cursor]
		bound[pe.spec.Name] = append(bound[pe.spec.Name], tok)
		pe.provided = true
		lastBound = pe
		if !pe.spec.Repeat {
			cursor++
		}
	}
	return bound, lastBound
}

// activeSpec picks the argument the active token is feeding: the next unbound
// spec after a separator, the flagged spec while a --flag is being typed, or
// the spec the in-progress token is binding to.
func activeSpec(plan []planEntry, byFlag map[string]*planEntry, activeToken string, trailing bool, lastBound *planEntry) *slashtypes.ArgSpec {
	nextUnprovided := func() *slashtypes.ArgSpec {
		for i := range plan {
			if !plan[i].provided {
				return &plan[i].spec
			}
		}
		return nil
	}

	switch {
	case trailing:
		return nextUnprovided()
	case strings.HasPrefix(activeToken, "--"):
		flagName, _, _ := strings.Cut(activeToken, "=")
		if pe, known := byFlag[flagName]; known {
			return &pe.spec
		}
		return nil
	case lastBound != nil:
		return &lastBound.spec
	default:
		return nextUnprovided()
	}
}

// completerFor returns the spec's completer, falling back to history-based
// completion for history-recording specs and path completion for path-typed
// specs. Everything else offers no suggestions.
func completerFor(spec slashtypes.ArgSpec) slashtypes.Completer {
	if spec.Completer != nil {
		return spec.Completer
	}
	if spec.History {
		return History(DefaultHistoryLimit)
	}
	if spec.Type == slashtypes.TypePath {
		return Paths()
	}
	return nil
}

// invoke runs a completer, converting panics into an empty suggestion list
// so completion never breaks the line editor.
func (e *Engine) invoke(completer slashtypes.Completer, ctx slashtypes.CompletionContext) (out []string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("Completer failed", "command", ctx.Command, "arg", ctx.ArgName, "error", r)
			out = nil
		}
	}()
	return completer(ctx)
}
