package styles

import "charm.land/lipgloss/v2"

// Style functions return styles based on the active theme; they are
// functions instead of variables to pick up theme changes.

// TitleStyle for the app title bar
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)
}

// RepoStyle for repository lines
func RepoStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(Normal)
}

// WorktreeStyle for worktree lines
func WorktreeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Normal)
}

// BranchStyle for the branch annotation on worktree lines
func BranchStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Info)
}

// SelectedStyle for the cursor-highlighted line
func SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)
}

// MutedStyle for secondary text (counts, hints)
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Muted)
}

// StatusStyle for the busy/progress status line
func StatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Info).
		Italic(true)
}

// ErrorStyle for inline error messages
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Error)
}

// SuccessStyle for confirmation messages
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Success)
}

// WarningStyle for the update-available banner
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Warning)
}

// HelpStyle for key hints at the bottom
func HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Muted)
}

// PromptStyle for input prompts
func PromptStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)
}

// FilterStyle for the filter text being typed
func FilterStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
}

// MatchHighlightStyle for fuzzy matched characters
func MatchHighlightStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Underline(true)
}
