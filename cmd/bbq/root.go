package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bbq-sh/bbq/internal/config"
	"github.com/bbq-sh/bbq/internal/git"
	"github.com/bbq-sh/bbq/internal/log"
	"github.com/bbq-sh/bbq/internal/output"
	"github.com/bbq-sh/bbq/internal/ui"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg config.Config
)

// Command group IDs for organizing help output
const (
	GroupRepo     = "repo"
	GroupWorktree = "worktree"
	GroupConfig   = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bbq",
	Short: "Bare repos and worktrees, managed in one place",
	Long: `bbq keeps bare clones of your repositories under one root directory
and manages their worktrees: create, open in your editor or terminal,
and clean up when done.

Run without arguments on a terminal to start the interactive browser.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip git check for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		return git.CheckGit()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
			return cmd.Help()
		}

		deps, err := browserDeps(cmd.Context())
		if err != nil {
			return err
		}
		return ui.Run(cmd.Context(), deps)
	},
}

// browserDeps wires the interactive browser from the loaded config.
func browserDeps(ctx context.Context) (ui.Deps, error) {
	root, err := cfg.Root()
	if err != nil {
		return ui.Deps{}, err
	}
	store, err := config.DefaultStore()
	if err != nil {
		return ui.Deps{}, err
	}
	return ui.Deps{
		Cfg:      cfg,
		Store:    store,
		Registry: newRegistry(root),
		Root:     root,
		Launcher: newLauncher(),
		Version:  version,
	}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = loadedCfg

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
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'bbq -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRepo, Title: "Repository Commands:"},
		&cobra.Group{ID: GroupWorktree, Title: "Worktree Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	rootCmd.AddCommand(newRepoCmd())
	rootCmd.AddCommand(newWorktreeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newUpgradeCmd())
}
