// Package worktree owns worktree creation, listing, and removal for
// registered repositories, composing branch resolution and lifecycle
// hooks.
package worktree

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bbq-sh/bbq/internal/git"
	"github.com/bbq-sh/bbq/internal/hooks"
	"github.com/bbq-sh/bbq/internal/repo"
)

var (
	// ErrExists indicates a worktree with the same name already exists
	// under the repository.
	ErrExists = errors.New("worktree already exists")

	// ErrNotFound indicates no worktree matches the name.
	ErrNotFound = errors.New("worktree not found")
)

// Worktree is a single checkout of a registered repository.
type Worktree struct {
	Repo   string
	Name   string
	Path   string
	Branch string // empty when detached
}

// Manager creates, lists, and removes worktrees under the root
// directory. Listing always reflects git's on-disk metadata; there is
// no cache.
type Manager struct {
	root  string
	hooks hooks.Runner
}

// NewManager returns a Manager storing worktrees under
// <root>/worktrees/<repo>/<name>.
func NewManager(root string, runner hooks.Runner) *Manager {
	return &Manager{root: root, hooks: runner}
}

// Dir returns the directory holding a repository's worktrees.
func (m *Manager) Dir(repoName string) string {
	return filepath.Join(m.root, "worktrees", repoName)
}

// Path returns where a worktree of the given name would live.
func (m *Manager) Path(repoName, name string) string {
	return filepath.Join(m.Dir(repoName), name)
}

// CreateOptions control worktree creation. Zero values mean: derive a
// name, resolve the default branch.
type CreateOptions struct {
	// Name of the new worktree. When empty a name is derived: a city
	// name if UseCityNames is set, otherwise the branch's last path
	// segment.
	Name string

	// Branch to check out. Created at HEAD if it doesn't exist yet; a
	// remote-qualified name ("origin/feature") tracks the remote
	// branch. When empty the repository's default branch is resolved.
	Branch string

	// UseCityNames derives missing names from the city table instead
	// of the branch.
	UseCityNames bool

	// BranchPrefix namespaces branches created for named worktrees,
	// e.g. a prefix "alice" and name "tokyo" yield the branch
	// alice/tokyo. Ignored when Branch is set explicitly.
	BranchPrefix string
}

// Create materializes a new worktree and runs its post-create hook.
// On hook failure the create reports failure but the worktree stays in
// place, so the operator can inspect or remove it.
func (m *Manager) Create(ctx context.Context, r repo.Repo, opts CreateOptions) (Worktree, error) {
	branch := strings.TrimSpace(opts.Branch)
	name := strings.TrimSpace(opts.Name)

	// A named worktree without an explicit branch gets its own branch
	// off the default branch; otherwise the worktree checks out the
	// branch it was asked for (or the default).
	startPoint := ""
	if branch == "" {
		defaultBranch := git.DefaultBranch(ctx, r.Path)
		if name == "" && opts.UseCityNames {
			name = m.cityName(ctx, r)
		}
		if name != "" {
			branch = name
			if opts.BranchPrefix != "" {
				branch = opts.BranchPrefix + "/" + name
			}
			startPoint = defaultBranch
		} else {
			branch = defaultBranch
		}
	}
	if err := ValidateBranch(branch); err != nil {
		return Worktree{}, err
	}

	if name == "" {
		if idx := strings.LastIndex(branch, "/"); idx >= 0 {
			name = branch[idx+1:]
		} else {
			name = branch
		}
	}
	if err := ValidateName(name); err != nil {
		return Worktree{}, err
	}

	path := m.Path(r.Name, name)
	if _, err := os.Stat(path); err == nil {
		return Worktree{}, fmt.Errorf("%w: %s", ErrExists, name)
	}
	if err := os.MkdirAll(m.Dir(r.Name), 0755); err != nil {
		return Worktree{}, fmt.Errorf("create worktrees directory: %w", err)
	}

	checkedOut, err := m.materialize(ctx, r, path, branch, startPoint)
	if err != nil {
		return Worktree{}, err
	}

	wt := Worktree{Repo: r.Name, Name: name, Path: path, Branch: checkedOut}
	if _, err := m.hooks.Run(ctx, path, hooks.PostCreate); err != nil {
		return wt, err
	}
	return wt, nil
}

// cityName picks a city name not taken by an existing worktree.
func (m *Manager) cityName(ctx context.Context, r repo.Repo) string {
	existing := make(map[string]bool)
	if worktrees, err := m.List(ctx, r); err == nil {
		for _, wt := range worktrees {
			existing[wt.Name] = true
		}
	}
	return CityName(existing)
}

// materialize runs the git worktree add, deciding between checking out
// an existing branch and creating a new one. A remote-qualified branch
// is fetched first and used as the start point for a new local branch
// of the same short name. Returns the branch that ended up checked out.
func (m *Manager) materialize(ctx context.Context, r repo.Repo, path, branch, startPoint string) (string, error) {
	if remote, rest, ok := strings.Cut(branch, "/"); ok && git.HasRemote(ctx, r.Path, remote) {
		if err := git.Fetch(ctx, r.Path, remote); err != nil {
			return "", err
		}
		remoteRef := "refs/remotes/" + remote + "/" + rest
		if !git.RefExists(ctx, r.Path, remoteRef) {
			if err := git.FetchBranch(ctx, r.Path, remote, rest); err != nil {
				return "", err
			}
		}
		if git.BranchExists(ctx, r.Path, rest) {
			return rest, git.AddWorktree(ctx, r.Path, path, rest)
		}
		return rest, git.AddWorktreeNewBranch(ctx, r.Path, path, rest, remote+"/"+rest)
	}

	if git.BranchExists(ctx, r.Path, branch) {
		return branch, git.AddWorktree(ctx, r.Path, path, branch)
	}
	start := "HEAD"
	if startPoint != "" && git.BranchExists(ctx, r.Path, startPoint) {
		start = startPoint
	}
	return branch, git.AddWorktreeNewBranch(ctx, r.Path, path, branch, start)
}

// List enumerates the repository's worktrees from git's metadata.
func (m *Manager) List(ctx context.Context, r repo.Repo) ([]Worktree, error) {
	entries, err := git.ListWorktrees(ctx, r.Path)
	if err != nil {
		return nil, err
	}

	worktrees := make([]Worktree, 0, len(entries))
	for _, entry := range entries {
		worktrees = append(worktrees, Worktree{
			Repo:   r.Name,
			Name:   entry.Name(),
			Path:   entry.Path,
			Branch: entry.Branch,
		})
	}
	return worktrees, nil
}

// Find returns the worktree matching name, by directory name first and
// branch second.
func (m *Manager) Find(ctx context.Context, r repo.Repo, name string) (Worktree, error) {
	worktrees, err := m.List(ctx, r)
	if err != nil {
		return Worktree{}, err
	}
	for _, wt := range worktrees {
		if wt.Name == name {
			return wt, nil
		}
	}
	for _, wt := range worktrees {
		if wt.Branch != "" && wt.Branch == name {
			return wt, nil
		}
	}
	return Worktree{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Remove deletes a worktree. The pre-delete hook runs first and gates
// the removal: a failing hook leaves checkout and git metadata
// untouched.
func (m *Manager) Remove(ctx context.Context, r repo.Repo, name string, force bool) error {
	wt, err := m.Find(ctx, r, name)
	if err != nil {
		return err
	}

	if _, err := m.hooks.Run(ctx, wt.Path, hooks.PreDelete); err != nil {
		return err
	}

	return git.RemoveWorktree(ctx, r.Path, wt.Path, force)
}
