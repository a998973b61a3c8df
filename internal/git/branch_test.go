package git

import (
	"context"
	"strings"
	"testing"
)

func TestShortBranch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want string
	}{
		{"refs/heads/main", "main"},
		{"refs/remotes/origin/develop", "develop"},
		{"refs/remotes/upstream/main", "upstream/main"},
		{"feature-x", "feature-x"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()
			if got := shortBranch(tt.ref); got != tt.want {
				t.Errorf("shortBranch(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestDefaultBranch_OriginHeadWins(t *testing.T) {
	ctx := context.Background()
	bare := setupBareRepo(t, "main")

	// origin/HEAD pointing at develop must win over an existing
	// origin/main candidate.
	mustRunGit(t, bare, "update-ref", "refs/remotes/origin/main", "HEAD")
	mustRunGit(t, bare, "update-ref", "refs/remotes/origin/develop", "HEAD")
	mustRunGit(t, bare, "symbolic-ref", "refs/remotes/origin/HEAD", "refs/remotes/origin/develop")

	if got := DefaultBranch(ctx, bare); got != "develop" {
		t.Errorf("DefaultBranch() = %q, want develop", got)
	}
}

func TestDefaultBranch_BareHead(t *testing.T) {
	ctx := context.Background()
	bare := setupBareRepo(t, "trunk")

	// No origin/HEAD: the bare repo's own HEAD target is used.
	if got := DefaultBranch(ctx, bare); got != "trunk" {
		t.Errorf("DefaultBranch() = %q, want trunk", got)
	}
}

func TestDefaultBranch_RefCandidates(t *testing.T) {
	ctx := context.Background()
	bare := setupBareRepo(t, "trunk")

	// Detach HEAD so the symbolic lookups fail.
	sha, err := outputGit(ctx, bare, "rev-parse", "HEAD")
	if err != nil {
		t.Fatalf("rev-parse: %v", err)
	}
	mustRunGit(t, bare, "update-ref", "--no-deref", "HEAD", strings.TrimSpace(string(sha)))

	mustRunGit(t, bare, "update-ref", "refs/remotes/origin/master", "HEAD")
	if got := DefaultBranch(ctx, bare); got != "master" {
		t.Errorf("DefaultBranch() = %q, want master (origin/master candidate)", got)
	}

	mustRunGit(t, bare, "update-ref", "refs/remotes/origin/main", "HEAD")
	if got := DefaultBranch(ctx, bare); got != "main" {
		t.Errorf("DefaultBranch() = %q, want main (origin/main beats origin/master)", got)
	}
}

func TestDefaultBranch_Fallback(t *testing.T) {
	ctx := context.Background()
	bare := setupBareRepo(t, "trunk")

	// Detach HEAD and remove every candidate: the literal fallback
	// applies.
	sha, err := outputGit(ctx, bare, "rev-parse", "HEAD")
	if err != nil {
		t.Fatalf("rev-parse: %v", err)
	}
	mustRunGit(t, bare, "update-ref", "--no-deref", "HEAD", strings.TrimSpace(string(sha)))
	mustRunGit(t, bare, "branch", "-D", "trunk")

	if got := DefaultBranch(ctx, bare); got != FallbackBranch {
		t.Errorf("DefaultBranch() = %q, want %q", got, FallbackBranch)
	}
}

func TestRefExists(t *testing.T) {
	ctx := context.Background()
	bare := setupBareRepo(t, "main")

	if !RefExists(ctx, bare, "refs/heads/main") {
		t.Error("RefExists(refs/heads/main) = false, want true")
	}
	if RefExists(ctx, bare, "refs/heads/nope") {
		t.Error("RefExists(refs/heads/nope) = true, want false")
	}
	if !BranchExists(ctx, bare, "main") {
		t.Error("BranchExists(main) = false, want true")
	}
}

func TestHasRemote(t *testing.T) {
	ctx := context.Background()
	bare := setupBareRepo(t, "main")

	if !HasRemote(ctx, bare, "origin") {
		t.Error("HasRemote(origin) = false, want true after clone")
	}
	if HasRemote(ctx, bare, "upstream") {
		t.Error("HasRemote(upstream) = true, want false")
	}
}
