package git

import (
	"context"
	"os/exec"
	"strings"

	"github.com/bbq-sh/bbq/internal/cmd"
)

// CloneBare clones source into dest as a bare repository.
func CloneBare(ctx context.Context, source, dest string) error {
	return runGit(ctx, "", "clone", "--bare", strings.TrimSpace(source), dest)
}

// GhAvailable reports whether the GitHub CLI is usable. Shorthand
// owner/repo sources are cloned through gh so that its authentication
// applies.
func GhAvailable() bool {
	if _, err := exec.LookPath("gh"); err != nil {
		return false
	}
	return exec.Command("gh", "--version").Run() == nil
}

// CloneBareGh clones a GitHub owner/repo slug into dest as a bare
// repository using the gh CLI.
func CloneBareGh(ctx context.Context, slug, dest string) error {
	return runGh(ctx, "repo", "clone", slug, dest, "--", "--bare")
}

func runGh(ctx context.Context, args ...string) error {
	return cmd.RunContext(ctx, "", "gh", args...)
}

// GhUsername returns the authenticated GitHub login, or "" when gh is
// missing or not logged in.
func GhUsername(ctx context.Context) string {
	if !GhAvailable() {
		return ""
	}
	out, err := cmd.OutputContext(ctx, "", "gh", "api", "user", "-q", ".login")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
