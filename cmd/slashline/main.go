// Package main provides the slashline CLI entry point. The default command
// starts the interactive demo shell; "run" executes a script headlessly with
// optional transcript recording, and "diff" compares two transcripts while
// ignoring timestamps.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"slashline/internal/config"
	"slashline/internal/logger"
	"slashline/internal/prompt"
	"slashline/internal/script"
	"slashline/internal/shell"
	"slashline/internal/transcript"
	"slashline/internal/version"
)

var (
	logLevel string
	logFile  string

	transcriptPath   string
	transcriptFormat string
	answersPath      string
	failOnError      bool

	settings *config.Settings
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "slashline",
	Short: "slashline - slash-command shell runtime",
	Long: `slashline is a runtime for slash-command driven terminal applications.
Typed argument specs drive parsing, tab completion and interactive prompting
from a single declaration.`,
	Run: runShell,
}

// shellCmd is the explicit version of the default behavior.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive demo shell",
	Run:   runShell,
}

// runCmd executes a script file headlessly.
var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Execute a script file headlessly",
	Long: `Execute a script file without entering interactive mode. Lines starting
with # and blank lines are skipped. Prompts resolve from the --answers YAML
table; unanswered prompts cancel the command.`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

// diffCmd compares two transcripts, ignoring timestamps and durations.
var diffCmd = &cobra.Command{
	Use:   "diff <expected> <actual>",
	Short: "Compare two transcript files",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.Get().String())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")

	runCmd.Flags().StringVar(&transcriptPath, "transcript", "", "Write a session transcript to this path")
	runCmd.Flags().StringVar(&transcriptFormat, "format", "", "Transcript format (markdown|json) [default: markdown]")
	runCmd.Flags().StringVar(&answersPath, "answers", "", "YAML file of prompt answers for headless runs")
	runCmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "Stop at the first failed command")

	if err := viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag(config.KeyLogFile, rootCmd.PersistentFlags().Lookup("log-file")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-file flag: %v\n", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag(config.KeyTranscriptFormat, runCmd.Flags().Lookup("format")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding format flag: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	settings = config.Load(viper.GetViper())
	if err := logger.Configure(settings.LogLevel, settings.LogFile, false); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func runShell(_ *cobra.Command, _ []string) {
	logger.Info("Starting slashline", "version", version.Short())

	app := newDemoApp(shell.WithInteractivePrompts())
	if err := app.Run(); err != nil {
		logger.Fatal("Shell exited with error", "error", err)
	}
}

func runScript(_ *cobra.Command, args []string) error {
	opts := []shell.Option{}
	var recorder *transcript.Recorder
	if transcriptPath != "" {
		format := transcript.ParseFormat(transcriptFormat)
		if transcriptFormat == "" {
			format = transcript.ParseFormat(settings.TranscriptFormat)
		}
		recorder = transcript.NewRecorder(transcriptPath, format)
		opts = append(opts, shell.WithTranscript(recorder))
	}

	app := newDemoApp(opts...)

	answers, err := loadAnswers(answersPath)
	if err != nil {
		return err
	}

	result, err := app.RunScript(script.FromFile(args[0]), answers, failOnError)
	if err != nil {
		return err
	}

	logger.Info("Script finished",
		"run_id", result.RunID,
		"commands", result.Commands,
		"halted", result.Halted,
		"duration", result.Duration)
	if result.Halted {
		return fmt.Errorf("script halted: %s", result.LastStatus)
	}
	return nil
}

func loadAnswers(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	answers, err := prompt.LoadAnswers(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	return answers, nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	expected, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read expected transcript: %w", err)
	}
	actual, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read actual transcript: %w", err)
	}

	diff, same := transcript.NewDiffer().Compare(string(expected), string(actual))
	if same {
		fmt.Println("Transcripts match (timestamps ignored)")
		return nil
	}
	fmt.Println(diff)
	cmd.SilenceUsage = true
	return fmt.Errorf("transcripts differ")
}
