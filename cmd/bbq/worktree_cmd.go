package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bbq-sh/bbq/internal/git"
	"github.com/bbq-sh/bbq/internal/launch"
	"github.com/bbq-sh/bbq/internal/log"
	"github.com/bbq-sh/bbq/internal/output"
	"github.com/bbq-sh/bbq/internal/worktree"
)

func newWorktreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "worktree",
		Aliases: []string{"wt"},
		Short:   "Manage worktrees of a registered repository",
		GroupID: GroupWorktree,
	}

	cmd.AddCommand(newWorktreeCreateCmd())
	cmd.AddCommand(newWorktreeListCmd())
	cmd.AddCommand(newWorktreeOpenCmd())
	cmd.AddCommand(newWorktreeRmCmd())

	return cmd
}

func newWorktreeCreateCmd() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "create <repo> [name]",
		Short: "Create a worktree",
		Long: `Create a worktree for a registered repository.

With --branch, the worktree checks out that branch (created if needed;
remote-qualified branches like origin/feature track the remote). With a
name but no branch, a branch is created off the default branch, prefixed
with your GitHub username unless github_user_prefix is disabled. With
neither, the name is generated when default_worktree_name = "cities" is
configured, otherwise the default branch is checked out directly.`,
		Example: `  bbq worktree create widgets                       # default branch, or generated name
  bbq worktree create widgets tokyo                 # branch <user>/tokyo off the default
  bbq worktree create widgets --branch feature/auth # named after the branch
  bbq worktree create widgets --branch origin/fix   # track the remote branch`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			name := ""
			if len(args) > 1 {
				name = args[1]
			}

			root, err := resolveRoot()
			if err != nil {
				return err
			}
			r, err := newRegistry(root).Resolve(args[0])
			if err != nil {
				return err
			}

			opts := worktree.CreateOptions{
				Name:         name,
				Branch:       branch,
				UseCityNames: name == "" && branch == "" && cfg.UseCityNames(),
			}
			if branch == "" && cfg.GithubPrefixEnabled() {
				opts.BranchPrefix = git.GhUsername(ctx)
			}
			l.Debug("creating worktree", "repo", r.Name, "name", name, "branch", branch)

			wt, err := newManager(ctx, root).Create(ctx, r, opts)
			if err != nil {
				return err
			}

			output.FromContext(ctx).Printf("created %s\n", wt.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to check out (created if missing)")

	return cmd
}

func newWorktreeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list <repo>",
		Aliases: []string{"ls"},
		Short:   "List a repository's worktrees",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			printer := output.FromContext(ctx)

			root, err := resolveRoot()
			if err != nil {
				return err
			}
			r, err := newRegistry(root).Resolve(args[0])
			if err != nil {
				return err
			}

			worktrees, err := newManager(ctx, root).List(ctx, r)
			if err != nil {
				return err
			}
			if len(worktrees) == 0 {
				printer.Println("no worktrees")
				return nil
			}
			for _, wt := range worktrees {
				printer.Printf("%s\t%s\n", wt.Name, wt.Path)
			}
			return nil
		},
	}
}

func newWorktreeOpenCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "open <repo> <name>",
		Short: "Open a worktree in your editor or terminal",
		Example: `  bbq worktree open widgets tokyo
  bbq worktree open widgets tokyo --target terminal
  bbq worktree open widgets tokyo --target vscode`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			root, err := resolveRoot()
			if err != nil {
				return err
			}
			r, err := newRegistry(root).Resolve(args[0])
			if err != nil {
				return err
			}
			wt, err := newManager(ctx, root).Find(ctx, r, args[1])
			if err != nil {
				return err
			}

			return openWorktree(ctx, wt, target)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Where to open: zed, cursor, vscode, or terminal")

	return cmd
}

// openWorktree dispatches to the terminal or editor launcher and
// reports what was opened.
func openWorktree(ctx context.Context, wt worktree.Worktree, target string) error {
	printer := output.FromContext(ctx)
	launcher := newLauncher()

	if launch.NormalizeTarget(target) == "terminal" {
		if err := launcher.OpenTerminal(ctx, wt.Path); err != nil {
			return err
		}
		printer.Printf("opened %s in terminal\n", wt.Name)
		return nil
	}

	if err := launcher.OpenEditor(ctx, wt.Path, target); err != nil {
		return err
	}
	printer.Printf("opened %s\n", wt.Name)
	return nil
}

func newWorktreeRmCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm <repo> <name>",
		Short: "Remove a worktree",
		Long: `Remove a worktree. Its pre-delete script runs first and a non-zero
exit keeps the worktree in place; --force skips uncommitted-change
checks in git but still honors the script.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			root, err := resolveRoot()
			if err != nil {
				return err
			}
			r, err := newRegistry(root).Resolve(args[0])
			if err != nil {
				return err
			}
			if err := newManager(ctx, root).Remove(ctx, r, args[1], force); err != nil {
				return err
			}

			output.FromContext(ctx).Printf("removed %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove even with uncommitted changes")

	return cmd
}
