package completion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slashline/pkg/slashtypes"
)

func ctxWithPrefix(prefix string) slashtypes.CompletionContext {
	return slashtypes.CompletionContext{Prefix: prefix}
}

func TestChoices(t *testing.T) {
	completer := Choices("red", "green", "blue", "indigo")

	assert.Equal(t, []string{"red", "green", "blue", "indigo"}, completer(ctxWithPrefix("")))
	assert.Equal(t, []string{"green"}, completer(ctxWithPrefix("gr")))
	assert.Nil(t, completer(ctxWithPrefix("purple")))
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		name              string
		start, stop, step int
		prefix            string
		want              []string
	}{
		{name: "stop is exclusive", start: 10, stop: 40, step: 10, want: []string{"10", "20", "30"}},
		{name: "prefix filter", start: 0, stop: 50, step: 5, prefix: "1", want: []string{"10", "15"}},
		{name: "empty range", start: 5, stop: 5, step: 1, want: nil},
		{name: "zero step", start: 0, stop: 10, step: 0, want: nil},
		{name: "negative step", start: 0, stop: 10, step: -2, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := Numbers(tt.start, tt.stop, tt.step)
			assert.Equal(t, tt.want, completer(ctxWithPrefix(tt.prefix)))
		})
	}
}

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.json"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	t.Run("lists directory contents sorted", func(t *testing.T) {
		got := Paths()(ctxWithPrefix(dir + string(os.PathSeparator)))
		want := []string{
			filepath.Join(dir, "data.json"),
			filepath.Join(dir, "notes.md"),
			filepath.Join(dir, "sub") + string(os.PathSeparator),
		}
		assert.Equal(t, want, got)
	})

	t.Run("filters by partial name", func(t *testing.T) {
		got := Paths()(ctxWithPrefix(filepath.Join(dir, "no")))
		assert.Equal(t, []string{filepath.Join(dir, "notes.md")}, got)
	})

	t.Run("extension filter keeps directories", func(t *testing.T) {
		got := Paths(".md")(ctxWithPrefix(dir + string(os.PathSeparator)))
		want := []string{
			filepath.Join(dir, "notes.md"),
			filepath.Join(dir, "sub") + string(os.PathSeparator),
		}
		assert.Equal(t, want, got)
	})

	t.Run("unreadable parent yields nothing", func(t *testing.T) {
		got := Paths()(ctxWithPrefix(filepath.Join(dir, "missing", "x")))
		assert.Nil(t, got)
	})
}

type fixedHistory struct {
	values map[string][]string
}

func (h *fixedHistory) Get(command, arg string, limit int) []string {
	values := h.values[command+" "+arg]
	if len(values) > limit {
		values = values[:limit]
	}
	return values
}

func TestHistory(t *testing.T) {
	store := &fixedHistory{values: map[string][]string{
		"/search query": {"berries", "apples", "apricots"},
	}}
	ctx := slashtypes.CompletionContext{Command: "/search", ArgName: "query", History: store}

	completer := History(0)
	assert.Equal(t, []string{"berries", "apples", "apricots"}, completer(ctx))

	ctx.Prefix = "ap"
	assert.Equal(t, []string{"apples", "apricots"}, completer(ctx))

	ctx.History = nil
	assert.Nil(t, completer(ctx))
}

func TestHistory_Limit(t *testing.T) {
	store := &fixedHistory{values: map[string][]string{
		"/search query": {"a", "b", "c", "d"},
	}}
	ctx := slashtypes.CompletionContext{Command: "/search", ArgName: "query", History: store}
	assert.Equal(t, []string{"a", "b"}, History(2)(ctx))
}

func TestDependent(t *testing.T) {
	tags := map[string][]string{
		"alpha": {"core", "infra"},
		"beta":  {"etl"},
	}
	completer := Dependent("project", func(project string, _ slashtypes.CompletionContext) []string {
		return tags[project]
	})

	t.Run("parent unbound yields nothing", func(t *testing.T) {
		assert.Nil(t, completer(slashtypes.CompletionContext{Bound: map[string][]string{}}))
	})

	t.Run("parent value selects suggestions", func(t *testing.T) {
		ctx := slashtypes.CompletionContext{Bound: map[string][]string{"project": {"alpha"}}}
		assert.Equal(t, []string{"core", "infra"}, completer(ctx))
	})

	t.Run("most recent parent token wins", func(t *testing.T) {
		ctx := slashtypes.CompletionContext{Bound: map[string][]string{"project": {"alpha", "beta"}}}
		assert.Equal(t, []string{"etl"}, completer(ctx))
	})

	t.Run("prefix filters fetched values", func(t *testing.T) {
		ctx := slashtypes.CompletionContext{
			Prefix: "in",
			Bound:  map[string][]string{"project": {"alpha"}},
		}
		assert.Equal(t, []string{"infra"}, completer(ctx))
	})
}

func TestNone(t *testing.T) {
	assert.Nil(t, None()(ctxWithPrefix("anything")))
}
