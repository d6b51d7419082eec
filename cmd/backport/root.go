package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lbergmann/backport/internal/config"
	"github.com/lbergmann/backport/internal/git"
	"github.com/lbergmann/backport/internal/iterate"
	"github.com/lbergmann/backport/internal/log"
	"github.com/lbergmann/backport/internal/output"
	"github.com/lbergmann/backport/internal/ui/styles"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	colorMode string

	// Shared state injected into commands
	cfg     config.Config
	workDir string
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "backport",
	Short: "Review and exercise backported patch ranges",
	Long: `backport compares a range of backported commits against their upstream
counterparts and iterates build or shell commands over the range.

Commits are paired with upstream by their exact subject line. Pairs that
drifted apart can be opened in an external diff viewer.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip git check for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		// Validate mutually exclusive flags
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		// Flag overrides the configured color mode
		if colorMode == "" {
			colorMode = cfg.Color
		}
		if err := config.ValidateColor(colorMode); err != nil {
			return err
		}
		styles.Init(colorMode, os.Stdout)

		// Check git is available
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = loadedCfg

	// Get working directory
	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "backport: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create logger (stderr for diagnostics)
	logger := log.New(os.Stderr, verbose, quiet)
	ctx = log.WithLogger(ctx, logger)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	// Store context for commands to use
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		code := exitCode(err)
		if code == 1 {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "Run 'backport -h' for help")
		}
		os.Exit(code)
	}
}

// exitCode maps an error to the process exit status: 2 for an upstream
// ref that does not resolve and for user interruption, 1 otherwise.
func exitCode(err error) int {
	if errors.Is(err, git.ErrBadRef) ||
		errors.Is(err, iterate.ErrInterrupted) ||
		errors.Is(err, context.Canceled) {
		return 2
	}
	return 1
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "Colored output: auto, always, or never")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newForeachCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
}
