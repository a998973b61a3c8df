//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/bbq-sh/bbq/internal/config"
	"github.com/bbq-sh/bbq/internal/log"
	"github.com/bbq-sh/bbq/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// setupSourceRepo creates a git repo with an initial commit on main in
// dir/name. Returns its absolute path with symlinks resolved.
func setupSourceRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)
	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}

	cmds := [][]string{
		{"git", "init", "-b", "main"},
		{"git", "config", "user.email", "test@test.com"},
		{"git", "config", "user.name", "Test User"},
		{"git", "config", "commit.gpgsign", "false"},
		{"git", "add", "README.md"},
		{"git", "commit", "-m", "Initial commit"},
	}
	for _, args := range cmds {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = repoPath
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("failed to run %v: %v\n%s", args, err, out)
		}
	}

	return repoPath
}

// setupRoot points BBQ_ROOT_DIR at a fresh directory and resets the
// global config so commands see a clean slate.
func setupRoot(t *testing.T) string {
	t.Helper()

	root := filepath.Join(resolvePath(t, t.TempDir()), "root")
	t.Setenv(config.EnvRootDir, root)

	prev := cfg
	// Disable the github branch prefix so results don't depend on a gh
	// login on the test machine.
	disabled := false
	cfg = config.Config{GithubUserPrefix: &disabled}
	t.Cleanup(func() { cfg = prev })

	return root
}

// testContext returns a command context with a quiet logger and a
// captured output printer.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()

	ctx := log.WithLogger(context.Background(), log.New(io.Discard, false, true))
	var out bytes.Buffer
	ctx = output.WithPrinter(ctx, &out)
	return ctx, &out
}

// cloneTestRepo clones source into the registry through the CLI.
func cloneTestRepo(t *testing.T, ctx context.Context, source string) {
	t.Helper()

	cmd := newRepoCloneCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{source})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("clone command failed: %v", err)
	}
}
