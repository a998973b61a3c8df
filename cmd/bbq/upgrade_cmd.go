package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bbq-sh/bbq/internal/output"
	"github.com/bbq-sh/bbq/internal/update"
)

func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "upgrade",
		Short:   "Upgrade bbq through Homebrew",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !update.IsHomebrewInstall() {
				return fmt.Errorf("this bbq was not installed through Homebrew; upgrade it the way it was installed")
			}
			if err := update.Upgrade(cmd.Context()); err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Println("upgraded bbq")
			return nil
		},
	}
}
