package script

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"slashline/internal/command"
	"slashline/internal/logger"
	"slashline/internal/parser"
	"slashline/internal/transcript"
	"slashline/pkg/slashtypes"
)

// quit words stop a script early, mirroring the interactive loop.
var quitWords = map[string]bool{"q": true, "quit": true, "exit": true}

// Runner executes a script of command lines without a live terminal. Each
// line runs through the same dispatcher as interactive input, with prompts
// resolved by the configured resolver; every command, output and prompt
// exchange lands in the recorder in execution order.
type Runner struct {
	Registry *command.Registry
	Ctx      slashtypes.Context
	History  slashtypes.HistoryWriter
	Resolver slashtypes.PromptResolver
	Recorder *transcript.Recorder

	// FailOnError halts the run on the first non-success dispatch, after
	// finalizing the transcript with everything recorded so far.
	FailOnError bool

	// BeforeLine and AfterLine let the owning application fire its hooks
	// and drain the output queue around each script line.
	BeforeLine func()
	AfterLine  func(line string, handled bool)

	// LinesAreConsumed marks non-command lines as handled by an
	// application hook instead of being reported as errors.
	LinesAreConsumed bool
}

// Result is the aggregate outcome of one headless run.
type Result struct {
	RunID      string
	Commands   int
	Halted     bool
	LastStatus slashtypes.DispatchStatus
	Duration   time.Duration
}

// Run executes the script. Setup failures (unreadable or corrupt script) and
// transcript write failures at Finalize are fatal and return an error; every
// per-line failure is reported through the context and the result instead.
func (r *Runner) Run(src Source) (Result, error) {
	start := time.Now()
	result := Result{RunID: uuid.New().String()}

	lines, err := src.Lines()
	if err != nil {
		return result, fmt.Errorf("script setup: %w", err)
	}
	logger.Debug("Starting headless run", "run_id", result.RunID, "lines", len(lines))

	for _, line := range lines {
		if r.BeforeLine != nil {
			r.BeforeLine()
		}

		if quitWords[strings.ToLower(line)] {
			r.afterLine(line, false)
			break
		}

		if r.Recorder != nil {
			r.Recorder.RecordCommand(line)
		}
		result.Commands++

		errored, handled := r.runLine(line, &result)
		if errored && r.FailOnError {
			result.Halted = true
			break
		}
		r.afterLine(line, handled)
	}

	result.Duration = time.Since(start)

	if r.Recorder != nil {
		if err := r.Recorder.Finalize(); err != nil {
			return result, err
		}
	}

	logger.Info("Headless run complete",
		"run_id", result.RunID,
		"commands", result.Commands,
		"halted", result.Halted,
		"duration", result.Duration)
	return result, nil
}

// runLine dispatches one script line and reports whether it errored and
// whether it counted as handled command input.
func (r *Runner) runLine(line string, result *Result) (errored, handled bool) {
	if !strings.HasPrefix(line, "/") {
		if !r.LinesAreConsumed {
			r.Ctx.Error("Commands must start with '/'")
			return true, false
		}
		return false, false
	}

	dispatched := parser.Dispatch(r.Registry, line, r.Ctx, parser.Options{
		History:   r.History,
		Resolver:  r.Resolver,
		Prompting: r.Resolver != nil,
	})
	result.LastStatus = dispatched.Status
	if !dispatched.OK() {
		r.Ctx.Error(dispatched.Message())
		return true, true
	}
	return false, true
}

func (r *Runner) afterLine(line string, handled bool) {
	if r.AfterLine != nil {
		r.AfterLine(line, handled)
	}
}
