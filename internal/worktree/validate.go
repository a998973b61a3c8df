package worktree

import (
	"errors"
	"strings"
)

var (
	// ErrNameRequired indicates a worktree was requested without a name
	// and no generator produced one.
	ErrNameRequired = errors.New("worktree name required")

	// ErrInvalidName indicates an unusable worktree name.
	ErrInvalidName = errors.New("worktree name can only use letters, numbers, '-', '_', or '.'")

	// ErrInvalidBranch indicates an unusable branch name.
	ErrInvalidBranch = errors.New("branch name can only use letters, numbers, '-', '_', '.', or '/'")
)

// ValidateName checks a worktree name: non-empty, no whitespace, only
// filesystem-safe characters.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	for _, ch := range name {
		if !isNameChar(ch) {
			return ErrInvalidName
		}
	}
	return nil
}

// ValidateBranch checks a branch name: no whitespace, slash-separated
// name characters, no leading or trailing slash.
func ValidateBranch(name string) error {
	if name == "" {
		return errors.New("branch name required")
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return errors.New("branch name cannot start or end with '/'")
	}
	for _, ch := range name {
		if ch != '/' && !isNameChar(ch) {
			return ErrInvalidBranch
		}
	}
	return nil
}

func isNameChar(ch rune) bool {
	return ch >= 'a' && ch <= 'z' ||
		ch >= 'A' && ch <= 'Z' ||
		ch >= '0' && ch <= '9' ||
		ch == '-' || ch == '_' || ch == '.'
}
