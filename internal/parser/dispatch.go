package parser

import (
	"fmt"
	"strings"

	"slashline/internal/command"
	"slashline/internal/logger"
	"slashline/pkg/slashtypes"
)

// Options configures one dispatch. History and Resolver may be nil; Prompting
// enables resolution of unbound prompt-eligible arguments through Resolver.
type Options struct {
	History   slashtypes.HistoryWriter
	Resolver  slashtypes.PromptResolver
	Prompting bool
}

// binding is the per-argument runtime state built fresh for every dispatch.
// The ArgSpec itself is never mutated.
type binding struct {
	spec     slashtypes.ArgSpec
	provided bool
	value    slashtypes.Value
}

// Dispatch tokenizes a command line, binds the tokens against the named
// command's argument specs, resolves any remaining prompt-eligible arguments,
// and invokes the handler. Either every argument binds and the handler runs,
// or the handler is never invoked; no partial binding is ever visible. The
// outcome is always expressed as a DispatchResult, never a panic.
func Dispatch(reg *command.Registry, line string, ctx slashtypes.Context, opts Options) slashtypes.DispatchResult {
	tokens, err := Tokenize(strings.TrimSpace(line))
	if err != nil {
		return slashtypes.DispatchResult{Status: slashtypes.StatusParseError, Detail: err.Error()}
	}
	if len(tokens) == 0 {
		return slashtypes.DispatchResult{Status: slashtypes.StatusOK}
	}

	name := tokens[0]
	entry, ok := reg.Resolve(name)
	if !ok && !strings.HasPrefix(name, "/") {
		entry, ok = reg.Resolve("/" + name)
	}
	if !ok {
		return slashtypes.DispatchResult{Status: slashtypes.StatusUnknownCommand, Command: name}
	}

	result := dispatchEntry(entry, tokens[1:], ctx, opts)
	result.Command = entry.Name
	logger.Dispatch(entry.Name, result.Status.String())
	return result
}

func dispatchEntry(entry *command.Entry, argv []string, ctx slashtypes.Context, opts Options) slashtypes.DispatchResult {
	bindings := make([]binding, len(entry.Specs))
	byFlag := make(map[string]*binding)
	for i, spec := range entry.Specs {
		bindings[i] = binding{spec: spec, value: defaultValue(spec)}
		if !spec.Required() {
			byFlag[spec.FlagName()] = &bindings[i]
		}
	}

	if res, ok := consumeTokens(bindings, byFlag, argv); !ok {
		return res
	}

	if opts.Prompting && opts.Resolver != nil {
		if res, ok := promptUnbound(bindings, opts.Resolver); !ok {
			return res
		}
	}

	for i := range bindings {
		if bindings[i].spec.Required() && !bindings[i].provided {
			return slashtypes.DispatchResult{
				Status:   slashtypes.StatusMissingArgument,
				Argument: bindings[i].spec.Name,
			}
		}
	}

	values := make(map[string]slashtypes.Value, len(bindings))
	for i := range bindings {
		values[bindings[i].spec.Name] = bindings[i].value
	}

	if opts.History != nil {
		recordHistory(entry.Name, bindings, opts.History)
	}

	if err := invokeHandler(entry, ctx, values); err != nil {
		return slashtypes.DispatchResult{Status: slashtypes.StatusHandlerError, Err: err}
	}
	return slashtypes.DispatchResult{Status: slashtypes.StatusOK}
}

// consumeTokens walks the raw tokens, binding --name/--name=value tokens to
// their optional specs and everything else positionally: required specs in
// declaration order first, leftover tokens fill optional specs in declaration
// order. Repeatable specs absorb every matching token.
func consumeTokens(bindings []binding, byFlag map[string]*binding, argv []string) (slashtypes.DispatchResult, bool) {
	cursor := 0
	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		if strings.HasPrefix(tok, "--") {
			key, val, hasEq := strings.Cut(tok, "=")
			b, known := byFlag[key]
			if !known {
				return slashtypes.DispatchResult{
					Status:   slashtypes.StatusUnknownOption,
					Argument: key,
				}, false
			}
			raw := val
			if !hasEq {
				if i+1 >= len(argv) {
					return slashtypes.DispatchResult{
						Status:   slashtypes.StatusMissingArgument,
						Argument: b.spec.Name,
					}, false
				}
				raw = argv[i+1]
				i++
			}
			if err := bindRaw(b, raw); err != nil {
				return slashtypes.DispatchResult{
					Status:   slashtypes.StatusInvalidValue,
					Argument: b.spec.Name,
					Raw:      raw,
				}, false
			}
			continue
		}

		for cursor < len(bindings) && bindings[cursor].provided {
			cursor++
		}
		if cursor >= len(bindings) {
			return slashtypes.DispatchResult{
				Status: slashtypes.StatusParseError,
				Detail: "too many arguments",
			}, false
		}
		b := &bindings[cursor]
		if err := bindRaw(b, tok); err != nil {
			return slashtypes.DispatchResult{
				Status:   slashtypes.StatusInvalidValue,
				Argument: b.spec.Name,
				Raw:      tok,
			}, false
		}
		if !b.spec.Repeat {
			cursor++
		}
	}
	return slashtypes.DispatchResult{}, true
}

// promptUnbound resolves every still-unbound required or prompt-flagged spec
// in declaration order. An abstaining resolver aborts the whole dispatch.
func promptUnbound(bindings []binding, resolver slashtypes.PromptResolver) (slashtypes.DispatchResult, bool) {
	for i := range bindings {
		b := &bindings[i]
		if b.provided || (!b.spec.Required() && !b.spec.Prompt) {
			continue
		}

		defaultText := ""
		if b.spec.HasDefault {
			defaultText = b.spec.Default
		}
		ans, ok := resolver.Resolve(b.spec, defaultText)
		if !ok {
			return slashtypes.DispatchResult{Status: slashtypes.StatusCanceled, Argument: b.spec.Name}, false
		}
		// An empty answer on a non-required spec keeps the declared default.
		if ans == "" && !b.spec.Required() {
			b.provided = true
			continue
		}

		if b.spec.Repeat {
			items := splitRepeat(ans)
			if len(items) == 0 && b.spec.Required() {
				return slashtypes.DispatchResult{
					Status:   slashtypes.StatusMissingArgument,
					Argument: b.spec.Name,
				}, false
			}
			b.value = slashtypes.ListValue(b.spec.Type, nil)
			for _, item := range items {
				v, err := slashtypes.Convert(b.spec.Type, item)
				if err != nil {
					return slashtypes.DispatchResult{
						Status:   slashtypes.StatusInvalidValue,
						Argument: b.spec.Name,
						Raw:      item,
					}, false
				}
				b.value.List = append(b.value.List, v)
			}
			b.provided = true
			continue
		}

		v, err := slashtypes.Convert(b.spec.Type, ans)
		if err != nil {
			return slashtypes.DispatchResult{
				Status:   slashtypes.StatusInvalidValue,
				Argument: b.spec.Name,
				Raw:      ans,
			}, false
		}
		b.value = v
		b.provided = true
	}
	return slashtypes.DispatchResult{}, true
}

// bindRaw converts one raw token and stores it on the binding. The first
// token bound to a repeatable spec replaces any default sequence; later
// tokens append.
func bindRaw(b *binding, raw string) error {
	v, err := slashtypes.Convert(b.spec.Type, raw)
	if err != nil {
		return err
	}
	if b.spec.Repeat {
		if !b.provided {
			b.value = slashtypes.ListValue(b.spec.Type, nil)
		}
		b.value.List = append(b.value.List, v)
	} else {
		b.value = v
	}
	b.provided = true
	return nil
}

// recordHistory appends every provided history-flagged value to the recency
// store. Repeated values are recorded element by element.
func recordHistory(commandName string, bindings []binding, store slashtypes.HistoryWriter) {
	for i := range bindings {
		b := &bindings[i]
		if !b.spec.History || !b.provided || b.value.IsZero() {
			continue
		}
		if b.spec.Repeat {
			for _, item := range b.value.List {
				store.Add(commandName, b.spec.Name, item.Text())
			}
			continue
		}
		store.Add(commandName, b.spec.Name, b.value.Text())
	}
}

// invokeHandler runs the handler, converting panics into errors so nothing
// escapes the dispatch boundary.
func invokeHandler(entry *command.Entry, ctx slashtypes.Context, values map[string]slashtypes.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", entry.Name, r)
		}
	}()
	return entry.Handler(ctx, values)
}

// defaultValue builds the initial value for a spec before any token binds:
// converted default for optionals, an empty sequence for repeatables, zero
// otherwise. Registration already validated default convertibility.
func defaultValue(spec slashtypes.ArgSpec) slashtypes.Value {
	if spec.Repeat {
		v := slashtypes.ListValue(spec.Type, nil)
		if spec.HasDefault && spec.Default != "" {
			if item, err := slashtypes.Convert(spec.Type, spec.Default); err == nil {
				v.List = append(v.List, item)
			}
		}
		return v
	}
	if spec.HasDefault {
		if v, err := slashtypes.Convert(spec.Type, spec.Default); err == nil {
			return v
		}
	}
	return slashtypes.Value{Kind: spec.Type}
}

// splitRepeat splits a single prompt answer into repeat elements on commas,
// trimming whitespace and dropping empties.
func splitRepeat(ans string) []string {
	var items []string
	for _, part := range strings.Split(ans, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}
