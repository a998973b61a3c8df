package main

import (
	"github.com/spf13/cobra"

	"github.com/bbq-sh/bbq/internal/config"
	"github.com/bbq-sh/bbq/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage the bbq configuration",
		GroupID: GroupConfig,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Init(force)
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Printf("wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := output.FromContext(cmd.Context())

			path, err := config.Path()
			if err != nil {
				return err
			}
			root, err := cfg.Root()
			if err != nil {
				return err
			}

			printer.Printf("config file: %s\n", path)
			printer.Printf("root_dir: %s\n", root)
			printer.Printf("theme: %s\n", orDefault(cfg.Theme))
			printer.Printf("editor: %s\n", orDefault(cfg.Editor))
			printer.Printf("terminal: %s\n", orDefault(cfg.Terminal))
			printer.Printf("github_user_prefix: %t\n", cfg.GithubPrefixEnabled())
			printer.Printf("default_worktree_name: %s\n", orDefault(cfg.DefaultWorktreeName))
			printer.Printf("check_updates: %t\n", cfg.UpdatesEnabled())
			return nil
		},
	}
}

func orDefault(value string) string {
	if value == "" {
		return "(default)"
	}
	return value
}
