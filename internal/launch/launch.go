// Package launch resolves and invokes an editor or terminal for a
// worktree path. Tools are spawned detached; bbq does not wait for
// them.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

var (
	// ErrNoEditor indicates no editor was configured and none of the
	// known candidates is installed.
	ErrNoEditor = errors.New("no editor found: configure editor in ~/.bbq/config.toml")

	// ErrNoTerminal indicates no terminal emulator was configured and
	// none of the known candidates is installed.
	ErrNoTerminal = errors.New("no terminal emulator found: configure terminal in ~/.bbq/config.toml")
)

// editorCandidates are tried in order when no editor is configured.
var editorCandidates = []string{"zed", "cursor", "code"}

// terminalCandidates are tried in order on non-macOS systems when no
// terminal is configured, each with the flag that sets the working
// directory.
var terminalCandidates = []struct {
	command string
	args    []string
}{
	{"wezterm", []string{"start", "--cwd"}},
	{"alacritty", []string{"--working-directory"}},
	{"kitty", []string{"--directory"}},
	{"gnome-terminal", []string{"--working-directory"}},
	{"konsole", []string{"--workdir"}},
	{"xfce4-terminal", []string{"--working-directory"}},
	{"x-terminal-emulator", []string{"--working-directory"}},
	{"xterm", nil},
}

// NormalizeTarget reduces a tool name to lowercase alphanumerics and
// maps editor aliases onto their commands ("VS Code" -> "code").
func NormalizeTarget(value string) string {
	var b strings.Builder
	for _, ch := range value {
		switch {
		case ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		case ch >= 'A' && ch <= 'Z':
			b.WriteRune(ch + 'a' - 'A')
		}
	}
	switch normalized := b.String(); normalized {
	case "vscode", "visualstudiocode":
		return "code"
	default:
		return normalized
	}
}

// Launcher resolves tool commands from explicit targets, configuration,
// and installed candidates, in that order.
type Launcher struct {
	// Editor and Terminal are the configured commands, empty when
	// unset.
	Editor   string
	Terminal string

	// lookPath and start are swapped out by tests.
	lookPath func(string) (string, error)
	start    func(*exec.Cmd) error
}

// New returns a Launcher with the given configured tools.
func New(editor, terminal string) *Launcher {
	return &Launcher{
		Editor:   editor,
		Terminal: terminal,
		lookPath: exec.LookPath,
		start:    (*exec.Cmd).Start,
	}
}

func (l *Launcher) available(command string) bool {
	_, err := l.lookPath(command)
	return err == nil
}

// spawn starts a detached process with all standard streams discarded.
func (l *Launcher) spawn(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("launch %s: %w", name, err)
	}
	return nil
}

// DetectEditors returns the installed editor candidates, in preference
// order. The TUI offers them as open targets.
func (l *Launcher) DetectEditors() []string {
	var found []string
	for _, candidate := range editorCandidates {
		if l.available(candidate) {
			found = append(found, candidate)
		}
	}
	return found
}

// OpenEditor opens path in an editor. A non-empty target wins over the
// configured editor, which wins over candidate detection.
func (l *Launcher) OpenEditor(ctx context.Context, path, target string) error {
	command := NormalizeTarget(target)
	if command == "" {
		command = strings.TrimSpace(l.Editor)
	}
	if command == "" {
		for _, candidate := range editorCandidates {
			if l.available(candidate) {
				command = candidate
				break
			}
		}
	}
	if command == "" {
		return ErrNoEditor
	}
	return l.spawn(ctx, command, path)
}

// OpenTerminal opens a terminal with path as its working directory.
// The configured terminal wins over candidate detection; on macOS the
// stock Terminal.app is the fallback.
func (l *Launcher) OpenTerminal(ctx context.Context, path string) error {
	if command := strings.TrimSpace(l.Terminal); command != "" {
		return l.spawnConfiguredTerminal(ctx, command, path)
	}

	if runtime.GOOS == "darwin" {
		return l.openMacTerminal(ctx, path)
	}

	for _, candidate := range terminalCandidates {
		if !l.available(candidate.command) {
			continue
		}
		if candidate.command == "xterm" {
			return l.spawnXterm(ctx, path)
		}
		args := append(append([]string{}, candidate.args...), path)
		return l.spawn(ctx, candidate.command, args...)
	}
	return ErrNoTerminal
}

// spawnConfiguredTerminal runs a user-configured terminal command. A
// bare command name gets the path appended; anything with spaces runs
// through the shell.
func (l *Launcher) spawnConfiguredTerminal(ctx context.Context, command, path string) error {
	if !strings.ContainsAny(command, " \t") {
		return l.spawn(ctx, command, path)
	}
	return l.spawn(ctx, "sh", "-lc", command+" "+shellEscape(path))
}

func (l *Launcher) spawnXterm(ctx context.Context, path string) error {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}
	commandLine := "cd " + shellEscape(path) + " && exec " + shell
	return l.spawn(ctx, "xterm", "-e", "sh", "-lc", commandLine)
}

// openMacTerminal tells Terminal.app to open a window at path.
func (l *Launcher) openMacTerminal(ctx context.Context, path string) error {
	commandLine := "cd " + shellEscape(path)
	script := "tell application \"Terminal\"\n" +
		"  activate\n" +
		"  set newWindow to do script \"\"\n" +
		"  do script \"" + escapeAppleScript(commandLine) + "\" in newWindow\n" +
		"end tell"

	out, err := exec.CommandContext(ctx, "osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

func shellEscape(value string) string {
	if value == "" {
		return "''"
	}
	safe := true
	for _, ch := range value {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-' || ch == '_' || ch == '.' || ch == '/' || ch == ':' || ch == '@' || ch == '=':
		default:
			safe = false
		}
	}
	if safe {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

func escapeAppleScript(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}
