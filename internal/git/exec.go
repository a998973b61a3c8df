package git

import (
	"context"

	"github.com/bbq-sh/bbq/internal/cmd"
)

// gitDirArgs prepends --git-dir <gitDir> to args if gitDir is non-empty.
// All managed repositories are bare, so commands address them by git dir
// rather than by working tree.
func gitDirArgs(gitDir string, args []string) []string {
	if gitDir == "" {
		return args
	}
	return append([]string{"--git-dir", gitDir}, args...)
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, gitDir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitDirArgs(gitDir, args)...)
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout.
func outputGit(ctx context.Context, gitDir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitDirArgs(gitDir, args)...)
}
