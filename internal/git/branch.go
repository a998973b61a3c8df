package git

import (
	"context"
	"strings"
)

// FallbackBranch is returned when no default branch can be resolved.
const FallbackBranch = "main"

// DefaultBranch determines the branch to use when none is explicitly
// requested. It never fails: candidates are tried in order and the first
// one that exists wins, falling back to FallbackBranch.
//
//  1. The resolved target of origin/HEAD.
//  2. The bare repository's own HEAD symbolic target.
//  3. origin/main, then origin/master.
//  4. Local main, then local master.
//
// Resolution is read-only and deterministic for a fixed repository state.
func DefaultBranch(ctx context.Context, gitDir string) string {
	if branch := symbolicRef(ctx, gitDir, "refs/remotes/origin/HEAD"); branch != "" {
		return branch
	}
	if branch := symbolicRef(ctx, gitDir, "HEAD"); branch != "" {
		return branch
	}

	candidates := []string{
		"refs/remotes/origin/main",
		"refs/remotes/origin/master",
		"refs/heads/main",
		"refs/heads/master",
	}
	for _, ref := range candidates {
		if RefExists(ctx, gitDir, ref) {
			return shortBranch(ref)
		}
	}

	return FallbackBranch
}

// symbolicRef resolves a symbolic reference to a short branch name.
// Returns "" if the reference is unset or unreadable.
func symbolicRef(ctx context.Context, gitDir, ref string) string {
	out, err := outputGit(ctx, gitDir, "symbolic-ref", ref)
	if err != nil {
		return ""
	}
	target, _, _ := strings.Cut(string(out), "\n")
	return shortBranch(strings.TrimSpace(target))
}

// shortBranch strips ref and remote prefixes, leaving a plain branch name.
func shortBranch(ref string) string {
	ref = strings.TrimPrefix(ref, "refs/remotes/origin/")
	ref = strings.TrimPrefix(ref, "refs/remotes/")
	ref = strings.TrimPrefix(ref, "refs/heads/")
	return ref
}

// RefExists reports whether a fully qualified reference exists in the
// repository.
func RefExists(ctx context.Context, gitDir, ref string) bool {
	return runGit(ctx, gitDir, "show-ref", "--verify", "--quiet", ref) == nil
}

// BranchExists reports whether a local branch exists.
func BranchExists(ctx context.Context, gitDir, branch string) bool {
	return RefExists(ctx, gitDir, "refs/heads/"+branch)
}

// Remotes returns the configured remote names.
func Remotes(ctx context.Context, gitDir string) ([]string, error) {
	out, err := outputGit(ctx, gitDir, "remote")
	if err != nil {
		return nil, err
	}

	var remotes []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			remotes = append(remotes, line)
		}
	}
	return remotes, nil
}

// HasRemote reports whether the repository has a remote with the given name.
func HasRemote(ctx context.Context, gitDir, name string) bool {
	remotes, err := Remotes(ctx, gitDir)
	if err != nil {
		return false
	}
	for _, remote := range remotes {
		if remote == name {
			return true
		}
	}
	return false
}

// Fetch fetches from a remote. An empty remote fetches the default.
func Fetch(ctx context.Context, gitDir, remote string) error {
	if remote == "" {
		return runGit(ctx, gitDir, "fetch")
	}
	return runGit(ctx, gitDir, "fetch", remote)
}

// FetchBranch fetches a single branch from a remote into its
// remote-tracking reference. Bare clones don't configure the usual
// fetch refspec, so the mapping is spelled out explicitly.
func FetchBranch(ctx context.Context, gitDir, remote, branch string) error {
	refspec := "refs/heads/" + branch + ":refs/remotes/" + remote + "/" + branch
	return runGit(ctx, gitDir, "fetch", remote, refspec)
}
