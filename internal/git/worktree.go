package git

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
)

// Worktree is a single entry from git's worktree metadata.
type Worktree struct {
	Path   string
	Branch string // empty when detached
	Head   string
}

// Name returns the directory name the worktree is addressed by.
func (w Worktree) Name() string {
	return filepath.Base(w.Path)
}

// DisplayBranch returns the checked-out branch, or a shortened commit
// hash when the worktree is detached.
func (w Worktree) DisplayBranch() string {
	if w.Branch != "" {
		return w.Branch
	}
	if len(w.Head) > 8 {
		return w.Head[:8]
	}
	return w.Head
}

// ListWorktrees returns the worktrees attached to a bare repository,
// derived from git's own metadata rather than any cache. The bare
// repository entry itself is excluded. Results are sorted by name.
func ListWorktrees(ctx context.Context, gitDir string) ([]Worktree, error) {
	out, err := outputGit(ctx, gitDir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseWorktrees(string(out), gitDir), nil
}

// parseWorktrees parses `git worktree list --porcelain` output. Entries
// are separated by blank lines; the bare entry (the repository itself)
// is skipped.
func parseWorktrees(out, gitDir string) []Worktree {
	var (
		worktrees []Worktree
		current   Worktree
		bare      bool
	)

	flush := func() {
		if current.Path != "" && !bare && current.Path != gitDir {
			worktrees = append(worktrees, current)
		}
		current = Worktree{}
		bare = false
	}

	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			current.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.TrimSpace(line) == "bare":
			bare = true
		}
	}
	flush()

	sort.Slice(worktrees, func(i, j int) bool {
		return worktrees[i].Name() < worktrees[j].Name()
	})
	return worktrees
}

// AddWorktree checks out an existing branch into a new worktree at path.
func AddWorktree(ctx context.Context, gitDir, path, branch string) error {
	return runGit(ctx, gitDir, "worktree", "add", path, branch)
}

// AddWorktreeNewBranch creates branch at startPoint and checks it out
// into a new worktree at path.
func AddWorktreeNewBranch(ctx context.Context, gitDir, path, branch, startPoint string) error {
	return runGit(ctx, gitDir, "worktree", "add", "-b", branch, path, startPoint)
}

// RemoveWorktree removes the worktree at path, deleting its checkout
// and git metadata.
func RemoveWorktree(ctx context.Context, gitDir, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	return runGit(ctx, gitDir, args...)
}
