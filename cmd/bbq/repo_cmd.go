package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bbq-sh/bbq/internal/log"
	"github.com/bbq-sh/bbq/internal/output"
)

func newRepoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repo",
		Short:   "Manage registered repositories",
		GroupID: GroupRepo,
	}

	cmd.AddCommand(newRepoCloneCmd())
	cmd.AddCommand(newRepoListCmd())
	cmd.AddCommand(newRepoRmCmd())

	return cmd
}

func newRepoCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <source> [name]",
		Short: "Clone a repository as a bare repo under the root",
		Long: `Clone a repository and register it as a bare repo under the root
directory. Sources can be https URLs, ssh specs, local paths, or
GitHub owner/repo shorthand (cloned through the gh CLI).`,
		Example: `  bbq repo clone https://github.com/org/widgets
  bbq repo clone git@github.com:org/widgets.git
  bbq repo clone org/widgets
  bbq repo clone org/widgets gadgets    # register under a different name`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			source := args[0]
			name := ""
			if len(args) > 1 {
				name = args[1]
			}

			root, err := resolveRoot()
			if err != nil {
				return err
			}
			l.Debug("cloning repo", "source", source, "root", root)

			repo, err := newRegistry(root).Clone(ctx, source, name)
			if err != nil {
				return fmt.Errorf("clone failed: %w", err)
			}

			output.FromContext(ctx).Printf("checked out %s\n", repo.Name)
			return nil
		},
	}
}

func newRepoListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered repositories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			printer := output.FromContext(ctx)

			root, err := resolveRoot()
			if err != nil {
				return err
			}

			repos, err := newRegistry(root).List()
			if err != nil {
				return err
			}
			if len(repos) == 0 {
				printer.Println("no repos")
				return nil
			}
			for _, repo := range repos {
				printer.Println(repo.Name)
			}
			return nil
		},
	}
}

func newRepoRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a registered repository",
		Long: `Remove a registered repository and its bare clone. Refused while the
repository still has worktrees.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			root, err := resolveRoot()
			if err != nil {
				return err
			}
			if err := newRegistry(root).Remove(ctx, name); err != nil {
				return err
			}

			output.FromContext(ctx).Printf("removed %s\n", name)
			return nil
		},
	}
}
