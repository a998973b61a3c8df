// Package styles provides the shared color palette for TUI components.
//
// Colors are package variables so every component picks up the active
// theme; Apply swaps the palette based on the configured theme name.
package styles

import (
	"image/color"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // main accent color (titles, prompts, selection)
	Success color.Color // success indicators
	Error   color.Color // error messages
	Muted   color.Color // disabled/inactive text
	Normal  color.Color // standard text
	Info    color.Color // informational text
	Warning color.Color // warning indicators
}

// accentTheme builds a theme around a single accent color; everything
// but the accent is shared across themes.
func accentTheme(accent color.Color) Theme {
	return Theme{
		Primary: accent,
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
		Normal:  lipgloss.Color("252"), // light gray
		Info:    lipgloss.Color("244"), // gray
		Warning: lipgloss.Color("214"), // orange
	}
}

// DefaultThemeName is used when the config names no theme or an
// unknown one.
const DefaultThemeName = "orange"

// themes maps config names to accent colors.
var themes = map[string]Theme{
	"green":   accentTheme(lipgloss.Color("#00ff00")),
	"red":     accentTheme(lipgloss.Color("#ff0000")),
	"blue":    accentTheme(lipgloss.Color("#0000ff")),
	"skyblue": accentTheme(lipgloss.Color("#87ceeb")),
	"magenta": accentTheme(lipgloss.Color("#ff00ff")),
	"yellow":  accentTheme(lipgloss.Color("#ffff00")),
	"gold":    accentTheme(lipgloss.Color("#ffd700")),
	"silver":  accentTheme(lipgloss.Color("#c0c0c0")),
	"white":   accentTheme(lipgloss.Color("#ffffff")),
	"lime":    accentTheme(lipgloss.Color("#bfff00")),
	"orange":  accentTheme(lipgloss.Color("#ffa500")),
	"violet":  accentTheme(lipgloss.Color("#9400d3")),
	"pink":    accentTheme(lipgloss.Color("#ff69b4")),
}

// Active palette, defaulting to the orange theme.
var (
	Primary color.Color = themes[DefaultThemeName].Primary
	Success color.Color = themes[DefaultThemeName].Success
	Error   color.Color = themes[DefaultThemeName].Error
	Muted   color.Color = themes[DefaultThemeName].Muted
	Normal  color.Color = themes[DefaultThemeName].Normal
	Info    color.Color = themes[DefaultThemeName].Info
	Warning color.Color = themes[DefaultThemeName].Warning
)

// Names returns the available theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply activates the named theme; unknown names keep the default.
func Apply(name string) {
	theme, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		theme = themes[DefaultThemeName]
	}
	Primary = theme.Primary
	Success = theme.Success
	Error = theme.Error
	Muted = theme.Muted
	Normal = theme.Normal
	Info = theme.Info
	Warning = theme.Warning
}
