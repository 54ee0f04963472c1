package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slashline/internal/command"
	"slashline/pkg/slashtypes"
)

// testContext is a minimal Context capturing emitted output for assertions.
type testContext struct {
	state    map[string]any
	messages []string
}

func newTestContext() *testContext {
	return &testContext{state: make(map[string]any)}
}

func (c *testContext) State() map[string]any                { return c.state }
func (c *testContext) Emit(_ slashtypes.OutputDescriptor)   {}
func (c *testContext) Info(text string)                     { c.messages = append(c.messages, "info: "+text) }
func (c *testContext) Success(text string)                  { c.messages = append(c.messages, "ok: "+text) }
func (c *testContext) Warning(text string)                  { c.messages = append(c.messages, "warn: "+text) }
func (c *testContext) Error(text string)                    { c.messages = append(c.messages, "err: "+text) }
func (c *testContext) Text(text string)                     { c.messages = append(c.messages, text) }
func (c *testContext) Markdown(text string)                 { c.messages = append(c.messages, text) }
func (c *testContext) Table(string, []map[string]string, []string) {}

// recordingHistory captures Add calls as "command arg value" strings.
type recordingHistory struct {
	added []string
}

func (h *recordingHistory) Add(command, arg, value string) {
	h.added = append(h.added, command+" "+arg+" "+value)
}

// stubResolver answers prompts from a fixed table; absent keys abstain.
type stubResolver struct {
	answers map[string]string
}

func (r *stubResolver) Resolve(spec slashtypes.ArgSpec, _ string) (string, bool) {
	ans, ok := r.answers[spec.Name]
	return ans, ok
}

// captureHandler records the bound values it was invoked with.
type captureHandler struct {
	calls int
	args  map[string]slashtypes.Value
}

func (h *captureHandler) handle(_ slashtypes.Context, args map[string]slashtypes.Value) error {
	h.calls++
	h.args = args
	return nil
}

func newSearchRegistry(t *testing.T, handler slashtypes.Handler) *command.Registry {
	t.Helper()
	reg := command.NewRegistry()
	require.NoError(t, reg.Register("/search", "search things", []slashtypes.ArgSpec{
		slashtypes.Arg("query", slashtypes.TypeString).WithHistory(),
		slashtypes.Opt("limit", slashtypes.TypeInt, "20"),
	}, handler))
	return reg
}

func TestDispatch_PositionalAndFlagBinding(t *testing.T) {
	h := &captureHandler{}
	reg := newSearchRegistry(t, h.handle)

	tests := []struct {
		name      string
		line      string
		wantQuery string
		wantLimit int
	}{
		{name: "positional only", line: "/search apples", wantQuery: "apples", wantLimit: 20},
		{name: "flag with equals", line: "/search apples --limit=50", wantQuery: "apples", wantLimit: 50},
		{name: "flag with space", line: "/search apples --limit 50", wantQuery: "apples", wantLimit: 50},
		{name: "flag before positional", line: "/search --limit 5 apples", wantQuery: "apples", wantLimit: 5},
		{name: "positional overflow into optional", line: "/search apples 7", wantQuery: "apples", wantLimit: 7},
		{name: "quoted positional", line: `/search "two words"`, wantQuery: "two words", wantLimit: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Dispatch(reg, tt.line, newTestContext(), Options{})
			require.Equal(t, slashtypes.StatusOK, result.Status)
			assert.Equal(t, tt.wantQuery, h.args["query"].Text())
			assert.Equal(t, tt.wantLimit, h.args["limit"].Int)
		})
	}
}

func TestDispatch_ErrorTaxonomy(t *testing.T) {
	h := &captureHandler{}
	reg := newSearchRegistry(t, h.handle)

	tests := []struct {
		name       string
		line       string
		wantStatus slashtypes.DispatchStatus
		wantArg    string
	}{
		{name: "unknown command", line: "/nope x", wantStatus: slashtypes.StatusUnknownCommand},
		{name: "unknown option", line: "/search apples --depth 3", wantStatus: slashtypes.StatusUnknownOption, wantArg: "--depth"},
		{name: "missing required", line: "/search", wantStatus: slashtypes.StatusMissingArgument, wantArg: "query"},
		{name: "flag without value", line: "/search apples --limit", wantStatus: slashtypes.StatusMissingArgument, wantArg: "limit"},
		{name: "invalid int", line: "/search apples --limit abc", wantStatus: slashtypes.StatusInvalidValue, wantArg: "limit"},
		{name: "too many positionals", line: "/search a 1 extra", wantStatus: slashtypes.StatusParseError},
		{name: "unterminated quote", line: `/search "oops`, wantStatus: slashtypes.StatusParseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.calls = 0
			result := Dispatch(reg, tt.line, newTestContext(), Options{})
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantArg, result.Argument)
			// The handler must never see a partial binding.
			assert.Zero(t, h.calls)
		})
	}
}

func TestDispatch_SlashlessFallback(t *testing.T) {
	h := &captureHandler{}
	reg := newSearchRegistry(t, h.handle)

	result := Dispatch(reg, "search apples", newTestContext(), Options{})
	assert.Equal(t, slashtypes.StatusOK, result.Status)
	assert.Equal(t, "/search", result.Command)
}

func TestDispatch_EmptyLine(t *testing.T) {
	reg := command.NewRegistry()
	result := Dispatch(reg, "   ", newTestContext(), Options{})
	assert.Equal(t, slashtypes.StatusOK, result.Status)
}

func TestDispatch_InvalidValueReportsRawToken(t *testing.T) {
	h := &captureHandler{}
	reg := command.NewRegistry()
	require.NoError(t, reg.Register("/calc", "", []slashtypes.ArgSpec{
		slashtypes.Arg("n", slashtypes.TypeInt),
	}, h.handle))

	result := Dispatch(reg, "/calc abc", newTestContext(), Options{})
	assert.Equal(t, slashtypes.StatusInvalidValue, result.Status)
	assert.Equal(t, "n", result.Argument)
	assert.Equal(t, "abc", result.Raw)

	result = Dispatch(reg, "/calc 42", newTestContext(), Options{})
	require.Equal(t, slashtypes.StatusOK, result.Status)
	assert.Equal(t, 42, h.args["n"].Int)
}

func TestDispatch_Prompting(t *testing.T) {
	h := &captureHandler{}
	reg := command.NewRegistry()
	require.NoError(t, reg.Register("/add", "", []slashtypes.ArgSpec{
		slashtypes.Arg("name", slashtypes.TypeString).WithPrompt(),
		slashtypes.Opt("description", slashtypes.TypeString, "No description").WithPrompt(),
	}, h.handle))

	t.Run("answers fill unbound args", func(t *testing.T) {
		resolver := &stubResolver{answers: map[string]string{"name": "widget", "description": "round"}}
		result := Dispatch(reg, "/add", newTestContext(), Options{Resolver: resolver, Prompting: true})
		require.Equal(t, slashtypes.StatusOK, result.Status)
		assert.Equal(t, "widget", h.args["name"].Text())
		assert.Equal(t, "round", h.args["description"].Text())
	})

	t.Run("empty answer keeps optional default", func(t *testing.T) {
		resolver := &stubResolver{answers: map[string]string{"name": "widget", "description": ""}}
		result := Dispatch(reg, "/add", newTestContext(), Options{Resolver: resolver, Prompting: true})
		require.Equal(t, slashtypes.StatusOK, result.Status)
		assert.Equal(t, "No description", h.args["description"].Text())
	})

	t.Run("abstention cancels without invoking handler", func(t *testing.T) {
		h.calls = 0
		resolver := &stubResolver{answers: map[string]string{}}
		result := Dispatch(reg, "/add", newTestContext(), Options{Resolver: resolver, Prompting: true})
		assert.Equal(t, slashtypes.StatusCanceled, result.Status)
		assert.Equal(t, "name", result.Argument)
		assert.Zero(t, h.calls)
	})

	t.Run("bound args are not prompted", func(t *testing.T) {
		resolver := &stubResolver{answers: map[string]string{}}
		result := Dispatch(reg, "/add widget", newTestContext(), Options{Resolver: resolver, Prompting: true})
		require.Equal(t, slashtypes.StatusOK, result.Status)
		assert.Equal(t, "widget", h.args["name"].Text())
	})

	t.Run("prompting disabled leaves missing required", func(t *testing.T) {
		resolver := &stubResolver{answers: map[string]string{"name": "widget"}}
		result := Dispatch(reg, "/add", newTestContext(), Options{Resolver: resolver, Prompting: false})
		assert.Equal(t, slashtypes.StatusMissingArgument, result.Status)
	})
}

func TestDispatch_RepeatedArgument(t *testing.T) {
	h := &captureHandler{}
	reg := command.NewRegistry()
	require.NoError(t, reg.Register("/tagit", "", []slashtypes.ArgSpec{
		slashtypes.Arg("tags", slashtypes.TypeString).Repeated().WithHistory(),
	}, h.handle))

	result := Dispatch(reg, "/tagit core infra ml", newTestContext(), Options{})
	require.Equal(t, slashtypes.StatusOK, result.Status)
	require.Len(t, h.args["tags"].List, 3)
	assert.Equal(t, "core, infra, ml", h.args["tags"].Text())
}

func TestDispatch_RepeatedPromptSplitsOnCommas(t *testing.T) {
	h := &captureHandler{}
	reg := command.NewRegistry()
	require.NoError(t, reg.Register("/tagit", "", []slashtypes.ArgSpec{
		slashtypes.Arg("tags", slashtypes.TypeString).Repeated().WithPrompt(),
	}, h.handle))

	resolver := &stubResolver{answers: map[string]string{"tags": "core, infra , ml"}}
	result := Dispatch(reg, "/tagit", newTestContext(), Options{Resolver: resolver, Prompting: true})
	require.Equal(t, slashtypes.StatusOK, result.Status)
	assert.Equal(t, "core, infra, ml", h.args["tags"].Text())
}

func TestDispatch_HandlerFailures(t *testing.T) {
	reg := command.NewRegistry()
	require.NoError(t, reg.Register("/fail", "", nil,
		func(_ slashtypes.Context, _ map[string]slashtypes.Value) error {
			return errors.New("boom")
		}))
	require.NoError(t, reg.Register("/panic", "", nil,
		func(_ slashtypes.Context, _ map[string]slashtypes.Value) error {
			panic("unexpected")
		}))

	result := Dispatch(reg, "/fail", newTestContext(), Options{})
	assert.Equal(t, slashtypes.StatusHandlerError, result.Status)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "boom")

	result = Dispatch(reg, "/panic", newTestContext(), Options{})
	assert.Equal(t, slashtypes.StatusHandlerError, result.Status)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "unexpected")
}

func TestDispatch_HistoryRecording(t *testing.T) {
	h := &captureHandler{}
	reg := newSearchRegistry(t, h.handle)

	t.Run("provided values recorded", func(t *testing.T) {
		store := &recordingHistory{}
		result := Dispatch(reg, "/search apples", newTestContext(), Options{History: store})
		require.Equal(t, slashtypes.StatusOK, result.Status)
		assert.Equal(t, []string{"/search query apples"}, store.added)
	})

	t.Run("defaulted values are not recorded", func(t *testing.T) {
		store := &recordingHistory{}
		reg2 := command.NewRegistry()
		require.NoError(t, reg2.Register("/s", "", []slashtypes.ArgSpec{
			slashtypes.Opt("query", slashtypes.TypeString, "all").WithHistory(),
		}, h.handle))
		result := Dispatch(reg2, "/s", newTestContext(), Options{History: store})
		require.Equal(t, slashtypes.StatusOK, result.Status)
		assert.Empty(t, store.added)
	})

	t.Run("repeated values recorded per element", func(t *testing.T) {
		store := &recordingHistory{}
		reg2 := command.NewRegistry()
		require.NoError(t, reg2.Register("/tagit", "", []slashtypes.ArgSpec{
			slashtypes.Arg("tags", slashtypes.TypeString).Repeated().WithHistory(),
		}, h.handle))
		result := Dispatch(reg2, "/tagit a b", newTestContext(), Options{History: store})
		require.Equal(t, slashtypes.StatusOK, result.Status)
		assert.Equal(t, []string{"/tagit tags a", "/tagit tags b"}, store.added)
	})

	t.Run("failed dispatch records nothing", func(t *testing.T) {
		store := &recordingHistory{}
		result := Dispatch(reg, "/search apples --limit abc", newTestContext(), Options{History: store})
		assert.Equal(t, slashtypes.StatusInvalidValue, result.Status)
		assert.Empty(t, store.added)
	})
}
