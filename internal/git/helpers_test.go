package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bbq-sh/bbq/internal/cmd"
)

// cmdRunInDir runs git inside a working tree, where --git-dir addressing
// doesn't apply.
func cmdRunInDir(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", append([]string{"-C", dir}, args...)...)
}

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

func mustRunGit(t *testing.T, gitDir string, args ...string) {
	t.Helper()
	if err := runGit(context.Background(), gitDir, args...); err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
}

// setupSourceRepo creates a regular git repo with one commit on the
// given branch. Returns the repo path.
func setupSourceRepo(t *testing.T, branch string) string {
	t.Helper()
	ctx := context.Background()
	repoPath := filepath.Join(resolveTempDir(t), "source")

	if err := runGit(ctx, "", "init", "-b", branch, repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if err := cmdRunInDir(ctx, repoPath, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}

	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := cmdRunInDir(ctx, repoPath, "add", "README.md"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if err := cmdRunInDir(ctx, repoPath, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	return repoPath
}

// setupBareRepo creates a source repo on the given branch and bare-clones
// it. Returns the bare git dir.
func setupBareRepo(t *testing.T, branch string) string {
	t.Helper()
	source := setupSourceRepo(t, branch)
	bare := filepath.Join(resolveTempDir(t), "repo.git")
	if err := CloneBare(context.Background(), source, bare); err != nil {
		t.Fatalf("failed to bare clone: %v", err)
	}
	return bare
}
