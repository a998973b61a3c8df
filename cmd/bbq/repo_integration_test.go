//go:build integration

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRepoClone_RegistersBareRepo tests the happy clone path.
//
// Scenario: User runs `bbq repo clone /path/to/source`
// Expected: A bare repo appears at <root>/repos/source.git
func TestRepoClone_RegistersBareRepo(t *testing.T) {
	root := setupRoot(t)
	source := setupSourceRepo(t, t.TempDir(), "widgets")
	ctx, out := testContext(t)

	cmd := newRepoCloneCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{source})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("clone command failed: %v", err)
	}

	headPath := filepath.Join(root, "repos", "widgets.git", "HEAD")
	if _, err := os.Stat(headPath); err != nil {
		t.Errorf("bare repo HEAD missing: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "checked out widgets") {
		t.Errorf("output = %q, want checked out widgets", got)
	}
}

// TestRepoClone_ExplicitName tests registering under a chosen name.
func TestRepoClone_ExplicitName(t *testing.T) {
	root := setupRoot(t)
	source := setupSourceRepo(t, t.TempDir(), "widgets")
	ctx, out := testContext(t)

	cmd := newRepoCloneCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{source, "gadgets"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("clone command failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "repos", "gadgets.git")); err != nil {
		t.Errorf("renamed bare repo missing: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "checked out gadgets") {
		t.Errorf("output = %q, want checked out gadgets", got)
	}
}

// TestRepoClone_DuplicateFails tests that a second clone of the same
// name is refused.
func TestRepoClone_DuplicateFails(t *testing.T) {
	setupRoot(t)
	source := setupSourceRepo(t, t.TempDir(), "widgets")
	ctx, _ := testContext(t)

	cloneTestRepo(t, ctx, source)

	cmd := newRepoCloneCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{source})
	if err := cmd.Execute(); err == nil {
		t.Error("second clone succeeded, want error")
	}
}

// TestRepoList tests listing, including the empty registry.
func TestRepoList(t *testing.T) {
	setupRoot(t)
	ctx, out := testContext(t)

	cmd := newRepoListCmd()
	cmd.SetContext(ctx)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("list command failed: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "no repos") {
		t.Errorf("output = %q, want no repos", got)
	}

	cloneTestRepo(t, ctx, setupSourceRepo(t, t.TempDir(), "widgets"))
	out.Reset()

	cmd = newRepoListCmd()
	cmd.SetContext(ctx)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("list command failed: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "widgets") {
		t.Errorf("output = %q, want widgets", got)
	}
}

// TestRepoRm tests removal of a repo without worktrees.
func TestRepoRm(t *testing.T) {
	root := setupRoot(t)
	ctx, out := testContext(t)
	cloneTestRepo(t, ctx, setupSourceRepo(t, t.TempDir(), "widgets"))

	cmd := newRepoRmCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"widgets"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("rm command failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "repos", "widgets.git")); !os.IsNotExist(err) {
		t.Error("bare repo still present after rm")
	}
	if got := out.String(); !strings.Contains(got, "removed widgets") {
		t.Errorf("output = %q, want removed widgets", got)
	}
}

// TestRepoRm_RefusedWithWorktrees tests that removal is refused while
// worktrees exist.
func TestRepoRm_RefusedWithWorktrees(t *testing.T) {
	root := setupRoot(t)
	ctx, _ := testContext(t)
	cloneTestRepo(t, ctx, setupSourceRepo(t, t.TempDir(), "widgets"))

	create := newWorktreeCreateCmd()
	create.SetContext(ctx)
	create.SetArgs([]string{"widgets", "tokyo"})
	if err := create.Execute(); err != nil {
		t.Fatalf("create command failed: %v", err)
	}

	cmd := newRepoRmCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"widgets"})
	if err := cmd.Execute(); err == nil {
		t.Error("rm succeeded with live worktrees, want error")
	}
	if _, err := os.Stat(filepath.Join(root, "repos", "widgets.git")); err != nil {
		t.Errorf("bare repo gone after refused rm: %v", err)
	}
}

// TestRepoRm_Unknown tests removing a repo that was never registered.
func TestRepoRm_Unknown(t *testing.T) {
	setupRoot(t)
	ctx, _ := testContext(t)

	cmd := newRepoRmCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"ghost"})
	if err := cmd.Execute(); err == nil {
		t.Error("rm of unknown repo succeeded, want error")
	}
}
