package main

import (
	"context"

	"github.com/bbq-sh/bbq/internal/hooks"
	"github.com/bbq-sh/bbq/internal/launch"
	"github.com/bbq-sh/bbq/internal/output"
	"github.com/bbq-sh/bbq/internal/repo"
	"github.com/bbq-sh/bbq/internal/worktree"
)

// resolveRoot returns the root directory for repos and worktrees,
// honoring the environment override.
func resolveRoot() (string, error) {
	return cfg.Root()
}

func newRegistry(root string) *repo.Registry {
	return repo.NewRegistry(root)
}

// newManager builds the worktree manager with a hook runner that
// announces scripts on stdout, matching the interactive browser.
func newManager(ctx context.Context, root string) *worktree.Manager {
	printer := output.FromContext(ctx)
	runner := hooks.Runner{
		Notify: func(kind hooks.Kind, script string) {
			printer.Printf("Running %s script %s\n", kind, script)
		},
	}
	return worktree.NewManager(root, runner)
}

func newLauncher() *launch.Launcher {
	return launch.New(cfg.Editor, cfg.Terminal)
}
