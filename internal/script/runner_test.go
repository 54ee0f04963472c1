package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slashline/internal/command"
	"slashline/internal/testutils"
	"slashline/internal/transcript"
	"slashline/pkg/slashtypes"
)

// scriptContext captures emitted messages for assertions.
type scriptContext struct {
	state    map[string]any
	messages []string
}

func newScriptContext() *scriptContext {
	return &scriptContext{state: make(map[string]any)}
}

func (c *scriptContext) State() map[string]any              { return c.state }
func (c *scriptContext) Emit(_ slashtypes.OutputDescriptor) {}
func (c *scriptContext) Info(text string)                   { c.messages = append(c.messages, "info: "+text) }
func (c *scriptContext) Success(text string)                { c.messages = append(c.messages, "ok: "+text) }
func (c *scriptContext) Warning(text string)                { c.messages = append(c.messages, "warn: "+text) }
func (c *scriptContext) Error(text string)                  { c.messages = append(c.messages, "err: "+text) }
func (c *scriptContext) Text(text string)                   { c.messages = append(c.messages, text) }
func (c *scriptContext) Markdown(text string)               { c.messages = append(c.messages, text) }
func (c *scriptContext) Table(string, []map[string]string, []string) {}

type tableResolver map[string]string

func (r tableResolver) Resolve(spec slashtypes.ArgSpec, _ string) (string, bool) {
	ans, ok := r[spec.Name]
	return ans, ok
}

// itemRegistry registers an /add command that rejects duplicates, mirroring
// the demo application.
func itemRegistry(t *testing.T) *command.Registry {
	t.Helper()
	reg := command.NewRegistry()
	require.NoError(t, reg.Register("/add", "", []slashtypes.ArgSpec{
		slashtypes.Arg("name", slashtypes.TypeString).WithPrompt(),
	}, func(ctx slashtypes.Context, args map[string]slashtypes.Value) error {
		name := args["name"].Text()
		names, _ := ctx.State()["names"].([]string)
		for _, existing := range names {
			if existing == name {
				return fmt.Errorf("item '%s' already exists", name)
			}
		}
		ctx.State()["names"] = append(names, name)
		ctx.Success(fmt.Sprintf("Added '%s'", name))
		return nil
	}))
	require.NoError(t, reg.Register("/list", "", nil,
		func(ctx slashtypes.Context, _ map[string]slashtypes.Value) error {
			names, _ := ctx.State()["names"].([]string)
			ctx.Text(strings.Join(names, ", "))
			return nil
		}))
	return reg
}

func fixedTestRecorder(path string) *transcript.Recorder {
	clock := testutils.FixedClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), time.Second)
	return transcript.NewRecorder(path, transcript.FormatNarrative, transcript.WithClock(clock))
}

func TestRunner_ExecutesLinesInOrder(t *testing.T) {
	ctx := newScriptContext()
	runner := &Runner{Registry: itemRegistry(t), Ctx: ctx}

	result, err := runner.Run(FromLines([]string{"/add apple", "/add pear", "/list"}))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Commands)
	assert.False(t, result.Halted)
	assert.Equal(t, slashtypes.StatusOK, result.LastStatus)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, []string{"ok: Added 'apple'", "ok: Added 'pear'", "apple, pear"}, ctx.messages)
}

func TestRunner_QuitWordStopsEarly(t *testing.T) {
	for _, word := range []string{"q", "quit", "exit", "QUIT"} {
		t.Run(word, func(t *testing.T) {
			ctx := newScriptContext()
			recorder := fixedTestRecorder("")
			runner := &Runner{Registry: itemRegistry(t), Ctx: ctx, Recorder: recorder}

			result, err := runner.Run(FromLines([]string{"/add apple", word, "/add pear"}))
			require.NoError(t, err)

			assert.Equal(t, 1, result.Commands)
			assert.False(t, result.Halted)
			// The quit word itself is not a command entry.
			assert.Equal(t, 1, recorder.CommandCount())
		})
	}
}

func TestRunner_FailOnErrorHalts(t *testing.T) {
	ctx := newScriptContext()
	recorder := fixedTestRecorder("")
	runner := &Runner{Registry: itemRegistry(t), Ctx: ctx, Recorder: recorder, FailOnError: true}

	result, err := runner.Run(FromLines([]string{"/add apple", "/add apple", "/list"}))
	require.NoError(t, err)

	assert.True(t, result.Halted)
	assert.Equal(t, 2, result.Commands)
	assert.Equal(t, slashtypes.StatusHandlerError, result.LastStatus)
	// Both attempted commands are in the transcript; /list never ran.
	assert.Equal(t, 2, recorder.CommandCount())
	require.NotEmpty(t, ctx.messages)
	assert.Contains(t, ctx.messages[len(ctx.messages)-1], "already exists")
}

func TestRunner_ErrorsContinueWithoutFailOnError(t *testing.T) {
	ctx := newScriptContext()
	runner := &Runner{Registry: itemRegistry(t), Ctx: ctx}

	result, err := runner.Run(FromLines([]string{"/add apple", "/add apple", "/list"}))
	require.NoError(t, err)

	assert.False(t, result.Halted)
	assert.Equal(t, 3, result.Commands)
	assert.Equal(t, slashtypes.StatusOK, result.LastStatus)
}

func TestRunner_PromptsResolveFromTable(t *testing.T) {
	ctx := newScriptContext()
	runner := &Runner{
		Registry: itemRegistry(t),
		Ctx:      ctx,
		Resolver: tableResolver{"name": "widget"},
	}

	result, err := runner.Run(FromLines([]string{"/add"}))
	require.NoError(t, err)

	assert.Equal(t, slashtypes.StatusOK, result.LastStatus)
	assert.Equal(t, []string{"ok: Added 'widget'"}, ctx.messages)
}

func TestRunner_UnansweredPromptCancels(t *testing.T) {
	ctx := newScriptContext()
	runner := &Runner{
		Registry: itemRegistry(t),
		Ctx:      ctx,
		Resolver: tableResolver{},
	}

	result, err := runner.Run(FromLines([]string{"/add"}))
	require.NoError(t, err)

	assert.Equal(t, slashtypes.StatusCanceled, result.LastStatus)
	require.NotEmpty(t, ctx.messages)
	assert.Contains(t, ctx.messages[0], "Canceled")
}

func TestRunner_NonCommandLineIsError(t *testing.T) {
	ctx := newScriptContext()
	runner := &Runner{Registry: itemRegistry(t), Ctx: ctx, FailOnError: true}

	result, err := runner.Run(FromLines([]string{"hello there", "/list"}))
	require.NoError(t, err)

	assert.True(t, result.Halted)
	require.NotEmpty(t, ctx.messages)
	assert.Contains(t, ctx.messages[0], "Commands must start with '/'")
}

func TestRunner_NonCommandLineConsumedByHooks(t *testing.T) {
	ctx := newScriptContext()
	var seen []string
	runner := &Runner{
		Registry:         itemRegistry(t),
		Ctx:              ctx,
		LinesAreConsumed: true,
		AfterLine: func(line string, handled bool) {
			seen = append(seen, fmt.Sprintf("%s handled=%t", line, handled))
		},
	}

	result, err := runner.Run(FromLines([]string{"hello there", "/list"}))
	require.NoError(t, err)

	assert.False(t, result.Halted)
	assert.Equal(t, []string{"hello there handled=false", "/list handled=true"}, seen)
}

func TestRunner_SetupFailureIsFatal(t *testing.T) {
	runner := &Runner{Registry: itemRegistry(t), Ctx: newScriptContext()}
	_, err := runner.Run(FromFile(filepath.Join(t.TempDir(), "missing.txt")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script setup")
}

func TestRunner_TranscriptWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.md")
	ctx := newScriptContext()
	recorder := fixedTestRecorder(path)
	runner := &Runner{Registry: itemRegistry(t), Ctx: ctx, Recorder: recorder}

	_, err := runner.Run(FromLines([]string{"/add apple"}))
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "# TUI Session Transcript")
	assert.Contains(t, content, "## Command: /add apple")
	assert.Contains(t, content, "Commands executed: 1")
}

func TestRunner_FinalizeFailurePropagates(t *testing.T) {
	recorder := fixedTestRecorder(filepath.Join(t.TempDir(), "missing", "session.md"))
	runner := &Runner{Registry: itemRegistry(t), Ctx: newScriptContext(), Recorder: recorder}

	_, err := runner.Run(FromLines([]string{"/add apple"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write transcript")
}
