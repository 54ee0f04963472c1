// Package shell provides the application container and the interactive
// prompt loop for slashline. An App owns the shared state, the command
// registry, the recency store, the output queue and the lifecycle hooks;
// the same container backs both the interactive shell and headless runs.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"slashline/internal/command"
	"slashline/internal/completion"
	"slashline/internal/history"
	"slashline/internal/logger"
	"slashline/internal/output"
	"slashline/internal/parser"
	"slashline/internal/prompt"
	"slashline/internal/script"
	"slashline/internal/transcript"
	"slashline/pkg/slashtypes"
)

// Hook runs around the prompt cycle. A returned error (or panic) is caught
// at the call site and reported; it never aborts the loop.
type Hook func(app *App) error

// AfterHook runs after each input line with the line text and whether it was
// handled as a command.
type AfterHook func(app *App, line string, handled bool) error

var quitWords = map[string]bool{"q": true, "quit": true, "exit": true}

// App is the runtime container. It implements slashtypes.Context, so
// handlers and hooks receive it directly.
type App struct {
	id    string
	title string

	state    map[string]any
	registry *command.Registry
	history  *history.Store
	queue    *output.Queue
	printer  *output.Printer
	renderer *output.Renderer
	recorder *transcript.Recorder

	interactivePrompts bool
	baseDir            string

	startHooks  []Hook
	beforeHooks []Hook
	afterHooks  []AfterHook
}

// Option configures an App.
type Option func(*App)

// WithTitle sets the markdown title shown when the interactive shell starts.
func WithTitle(title string) Option {
	return func(a *App) { a.title = title }
}

// WithInteractivePrompts enables prompting for missing argument values.
func WithInteractivePrompts() Option {
	return func(a *App) { a.interactivePrompts = true }
}

// WithBaseDir overrides the directory holding the application dot-directory
// (history and prompt-history files). Default is the user home directory.
func WithBaseDir(dir string) Option {
	return func(a *App) { a.baseDir = dir }
}

// WithPrinter replaces the default styled printer.
func WithPrinter(printer *output.Printer) Option {
	return func(a *App) { a.printer = printer }
}

// WithTranscript attaches a transcript recorder, written at the end of a
// headless run.
func WithTranscript(recorder *transcript.Recorder) Option {
	return func(a *App) { a.recorder = recorder }
}

// New creates an application container with the given identity.
func New(id string, opts ...Option) *App {
	a := &App{
		id:       id,
		state:    make(map[string]any),
		registry: command.NewRegistry(),
		queue:    output.NewQueue(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.printer == nil {
		a.printer = output.NewPrinter(output.WithStyles(output.NewDefaultStyleProvider()))
	}
	a.renderer = output.NewRenderer(a.printer)

	if a.baseDir != "" {
		a.history = history.NewStore(id, history.WithBaseDir(a.dotDir()))
	} else {
		a.history = history.NewStore(id)
	}
	return a
}

func (a *App) dotDir() string {
	base := a.baseDir
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = home
	}
	return filepath.Join(base, "."+a.id)
}

// Register adds a command to the application registry.
func (a *App) Register(name, help string, specs []slashtypes.ArgSpec, handler slashtypes.Handler) error {
	return a.registry.Register(name, help, specs, handler)
}

// Registry exposes the command registry for completion and dispatch.
func (a *App) Registry() *command.Registry {
	return a.registry
}

// History exposes the recency store.
func (a *App) History() *history.Store {
	return a.history
}

// Recorder exposes the attached transcript recorder, nil when none.
func (a *App) Recorder() *transcript.Recorder {
	return a.recorder
}

// OnStart registers a hook fired once before the first prompt or script line.
func (a *App) OnStart(h Hook) {
	a.startHooks = append(a.startHooks, h)
}

// BeforePrompt registers a hook fired before every prompt or script line.
func (a *App) BeforePrompt(h Hook) {
	a.beforeHooks = append(a.beforeHooks, h)
}

// AfterPrompt registers a hook fired after every input line.
func (a *App) AfterPrompt(h AfterHook) {
	a.afterHooks = append(a.afterHooks, h)
}

// State implements slashtypes.Context.
func (a *App) State() map[string]any {
	return a.state
}

// Emit implements slashtypes.Context: the descriptor joins the output queue
// and, when a transcript is attached, the session record.
func (a *App) Emit(desc slashtypes.OutputDescriptor) {
	a.queue.Enqueue(desc)
	if a.recorder != nil {
		a.recorder.RecordDescriptor(desc)
	}
}

// Info enqueues an informational message.
func (a *App) Info(text string) {
	a.Emit(slashtypes.MessageDescriptor(slashtypes.LevelInfo, text))
}

// Success enqueues a success message.
func (a *App) Success(text string) {
	a.Emit(slashtypes.MessageDescriptor(slashtypes.LevelOK, text))
}

// Warning enqueues a warning message.
func (a *App) Warning(text string) {
	a.Emit(slashtypes.MessageDescriptor(slashtypes.LevelWarn, text))
}

// Error enqueues an error message.
func (a *App) Error(text string) {
	a.Emit(slashtypes.MessageDescriptor(slashtypes.LevelErr, text))
}

// Text enqueues a plain text line.
func (a *App) Text(text string) {
	a.Emit(slashtypes.TextDescriptor(text))
}

// Markdown enqueues a markdown block.
func (a *App) Markdown(text string) {
	a.Emit(slashtypes.MarkdownDescriptor(text))
}

// Table enqueues a table descriptor.
func (a *App) Table(title string, rows []map[string]string, columns []string) {
	a.Emit(slashtypes.TableDescriptor(title, rows, columns))
}

// render drains the output queue and prints every descriptor, exactly once
// per cycle.
func (a *App) render() {
	if descs := a.queue.Drain(); len(descs) > 0 {
		a.renderer.Render(descs)
	}
}

func (a *App) fireHooks(hooks []Hook, label string) {
	for _, h := range hooks {
		if err := runHook(func() error { return h(a) }); err != nil {
			a.Error(fmt.Sprintf("%s error: %v", label, err))
		}
	}
}

func (a *App) fireAfterHooks(line string, handled bool) {
	for _, h := range a.afterHooks {
		if err := runHook(func() error { return h(a, line, handled) }); err != nil {
			a.Error(fmt.Sprintf("after_prompt error: %v", err))
		}
	}
}

// runHook catches hook panics so a misbehaving hook cannot abort the loop.
func runHook(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn()
}

// Run starts the interactive prompt loop and blocks until the user quits.
func (a *App) Run() error {
	historyFile := ""
	if dotDir := a.dotDir(); dotDir != "" {
		if err := os.MkdirAll(dotDir, 0755); err == nil {
			historyFile = filepath.Join(dotDir, "prompt_history.txt")
		}
	}

	engine := completion.NewEngine(a.registry, a.history, func() map[string]any { return a.state })
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "# ",
		HistoryFile:     historyFile,
		AutoComplete:    &lineCompleter{engine: engine},
		InterruptPrompt: "^C",
	})
	if err != nil {
		return fmt.Errorf("initialize line editor: %w", err)
	}
	defer func() { _ = rl.Close() }()

	resolver := prompt.NewReadlineResolver(rl)

	a.fireHooks(a.startHooks, "on_start")
	if a.title != "" {
		a.Markdown(a.title)
	}
	a.Text("Type '/' for commands, or 'q' to quit.")
	a.render()

	for {
		a.fireHooks(a.beforeHooks, "before_prompt")
		a.render()
		rl.SetPrompt("# ")

		line, err := rl.Readline()
		if err != nil {
			// Ctrl-C with pending input clears the line; otherwise quit.
			if err == readline.ErrInterrupt && len(line) > 0 {
				continue
			}
			a.Info("Goodbye!")
			a.fireAfterHooks("", false)
			a.render()
			return nil
		}

		line = strings.TrimSpace(line)
		if quitWords[strings.ToLower(line)] {
			a.fireAfterHooks(line, false)
			a.render()
			return nil
		}
		if line == "" {
			a.fireAfterHooks(line, false)
			a.render()
			continue
		}

		a.handleLine(line, resolver)
	}
}

// handleLine dispatches one interactive input line and drains the output.
func (a *App) handleLine(line string, resolver slashtypes.PromptResolver) {
	handled := strings.HasPrefix(line, "/")
	if handled {
		result := parser.Dispatch(a.registry, line, a, parser.Options{
			History:   a.history,
			Resolver:  resolver,
			Prompting: a.interactivePrompts,
		})
		if !result.OK() {
			a.Error(result.Message())
		}
	} else if len(a.afterHooks) == 0 {
		a.Error("Type '/' to run a command")
	}

	a.fireAfterHooks(line, handled)
	a.render()
}

// RunScript executes a script headlessly against this application. Prompts
// resolve from the answer table; when a transcript recorder is attached the
// run is recorded and finalized.
func (a *App) RunScript(src script.Source, answers map[string]string, failOnError bool) (script.Result, error) {
	var resolver slashtypes.PromptResolver
	if a.interactivePrompts || answers != nil {
		resolver = prompt.NewLookupResolver(answers, a.recorder)
	}

	runner := &script.Runner{
		Registry:         a.registry,
		Ctx:              a,
		History:          a.history,
		Resolver:         resolver,
		Recorder:         a.recorder,
		FailOnError:      failOnError,
		LinesAreConsumed: len(a.afterHooks) > 0,
		BeforeLine: func() {
			a.fireHooks(a.beforeHooks, "before_prompt")
			a.render()
		},
		AfterLine: func(line string, handled bool) {
			a.fireAfterHooks(line, handled)
			a.render()
		},
	}

	a.fireHooks(a.startHooks, "on_start")
	result, err := runner.Run(src)
	a.render()
	if err != nil {
		logger.Error("Headless run failed", "error", err)
	}
	return result, err
}
