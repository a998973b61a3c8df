// Package repo owns the set of bare repositories registered under the
// root directory: clone, list, resolve, remove.
package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bbq-sh/bbq/internal/git"
)

var (
	// ErrExists indicates a repository with the same name is already
	// registered.
	ErrExists = errors.New("repository already exists")

	// ErrNotFound indicates no registered repository matches the name.
	ErrNotFound = errors.New("repository not found")

	// ErrHasWorktrees indicates a removal was refused because worktrees
	// still reference the repository.
	ErrHasWorktrees = errors.New("repository still has worktrees, remove them first")

	// ErrInvalidSource indicates a clone source no repository name could
	// be derived from.
	ErrInvalidSource = errors.New("invalid clone source")

	// ErrGhMissing indicates an owner/repo shorthand was given but the
	// GitHub CLI is not available to clone it.
	ErrGhMissing = errors.New("gh CLI required for owner/repo sources: install from https://cli.github.com")
)

// Repo is a bare git repository registered under the root directory.
type Repo struct {
	Name string
	Path string // bare git dir, <root>/repos/<name>.git
}

// Registry manages the repositories stored under a single root.
type Registry struct {
	root string
}

// NewRegistry returns a Registry for the given root directory.
func NewRegistry(root string) *Registry {
	return &Registry{root: root}
}

// Root returns the root directory all repositories live under.
func (r *Registry) Root() string {
	return r.root
}

// ReposDir returns the directory holding the bare repositories.
func (r *Registry) ReposDir() string {
	return filepath.Join(r.root, "repos")
}

func (r *Registry) repoPath(name string) string {
	return filepath.Join(r.ReposDir(), name+".git")
}

// Clone registers a repository by bare-cloning source. Plain owner/repo
// shorthand is cloned through the GitHub CLI so its authentication
// applies; anything URL- or path-shaped goes straight to git. An empty
// name derives the repository name from the source.
func (r *Registry) Clone(ctx context.Context, source, name string) (Repo, error) {
	var err error
	if name == "" {
		name, err = NameFromSource(source)
	} else {
		name, err = ValidName(name)
	}
	if err != nil {
		return Repo{}, err
	}

	dest := r.repoPath(name)
	if _, err := os.Stat(dest); err == nil {
		return Repo{}, fmt.Errorf("%w: %s", ErrExists, name)
	}
	if err := os.MkdirAll(r.ReposDir(), 0755); err != nil {
		return Repo{}, fmt.Errorf("create repos directory: %w", err)
	}

	if slug := GithubSlug(source); slug != "" {
		if !git.GhAvailable() {
			return Repo{}, ErrGhMissing
		}
		if err := git.CloneBareGh(ctx, slug, dest); err != nil {
			return Repo{}, err
		}
	} else if err := git.CloneBare(ctx, source, dest); err != nil {
		return Repo{}, err
	}

	return Repo{Name: name, Path: dest}, nil
}

// List returns the registered repositories, sorted by name. A missing
// repos directory is an empty registry, not an error.
func (r *Registry) List() ([]Repo, error) {
	entries, err := os.ReadDir(r.ReposDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var repos []Repo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(r.ReposDir(), entry.Name())

		// A bare repo has a HEAD file; skip stray directories.
		if info, err := os.Stat(filepath.Join(path, "HEAD")); err != nil || info.IsDir() {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".git")
		repos = append(repos, Repo{Name: name, Path: path})
	}

	sort.Slice(repos, func(i, j int) bool { return repos[i].Name < repos[j].Name })
	return repos, nil
}

// Resolve returns the registered repository with the given name.
func (r *Registry) Resolve(name string) (Repo, error) {
	name = sanitizeName(name)
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		return Repo{}, ErrInvalidSource
	}

	path := r.repoPath(name)
	if _, err := os.Stat(path); err != nil {
		return Repo{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return Repo{Name: name, Path: path}, nil
}

// Remove deletes a registered repository. Removal is refused while any
// worktree still references it.
func (r *Registry) Remove(ctx context.Context, name string) error {
	repo, err := r.Resolve(name)
	if err != nil {
		return err
	}

	worktrees, err := git.ListWorktrees(ctx, repo.Path)
	if err != nil {
		return err
	}
	if len(worktrees) > 0 {
		return fmt.Errorf("%w: %s", ErrHasWorktrees, repo.Name)
	}

	return os.RemoveAll(repo.Path)
}
