package repo

import (
	"fmt"
	"os"
	"strings"
)

// NameFromSource derives the repository name from a clone source: the
// last path segment, minus a .git suffix, sanitized to filesystem-safe
// characters. Works for https URLs, ssh specs, local paths, and plain
// owner/repo shorthand.
func NameFromSource(source string) (string, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return "", ErrInvalidSource
	}

	tail := trimmed
	// scp-style ssh: git@host:owner/repo.git
	if idx := strings.LastIndex(trimmed, ":"); idx >= 0 && strings.Contains(trimmed[:idx], "@") {
		tail = trimmed[idx+1:]
	}
	if idx := strings.LastIndex(tail, "/"); idx >= 0 {
		tail = tail[idx+1:]
	}
	tail = strings.TrimSuffix(tail, ".git")

	name := sanitizeName(tail)
	if name == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidSource, source)
	}
	return name, nil
}

// ValidName sanitizes an explicitly chosen repository name.
func ValidName(name string) (string, error) {
	cleaned := sanitizeName(strings.TrimSuffix(strings.TrimSpace(name), ".git"))
	if cleaned == "" {
		return "", fmt.Errorf("invalid repository name: %q", name)
	}
	return cleaned, nil
}

// GithubSlug returns the owner/repo slug if source is plain GitHub
// shorthand, or "" otherwise. URLs, ssh specs, and anything path-like
// are not shorthand.
func GithubSlug(source string) string {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t\n") {
		return ""
	}
	if looksLikeURLOrSSH(trimmed) || isPathLike(trimmed) {
		return ""
	}

	trimmed = strings.TrimRight(trimmed, "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	owner, name, ok := strings.Cut(trimmed, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return ""
	}
	if !isSlugPart(owner) || !isSlugPart(name) {
		return ""
	}
	return owner + "/" + name
}

func looksLikeURLOrSSH(value string) bool {
	return strings.Contains(value, "://") ||
		strings.HasPrefix(value, "git@") ||
		(strings.Contains(value, "@") && strings.Contains(value, ":"))
}

func isPathLike(value string) bool {
	if strings.HasPrefix(value, "/") ||
		strings.HasPrefix(value, "./") ||
		strings.HasPrefix(value, "../") ||
		strings.HasPrefix(value, "~/") {
		return true
	}
	_, err := os.Stat(value)
	return err == nil
}

func isSlugPart(value string) bool {
	for _, ch := range value {
		if !isNameChar(ch) {
			return false
		}
	}
	return true
}

func isNameChar(ch rune) bool {
	return ch >= 'a' && ch <= 'z' ||
		ch >= 'A' && ch <= 'Z' ||
		ch >= '0' && ch <= '9' ||
		ch == '-' || ch == '_' || ch == '.'
}

// sanitizeName replaces runs of unsupported characters with a single
// dash and trims leading/trailing dashes.
func sanitizeName(raw string) string {
	var b strings.Builder
	lastDash := false
	for _, ch := range raw {
		if isNameChar(ch) {
			b.WriteRune(ch)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
