// Package hooks runs user-authored lifecycle scripts around worktree
// creation and removal.
//
// A hook lives inside the worktree checkout at .bbq/worktree/<kind> and
// must start with a shebang line; the interpreter named there is invoked
// with the script path as its argument and the worktree as working
// directory. A missing hook file is a successful no-op. Hooks run
// synchronously with no timeout.
package hooks

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Kind identifies a lifecycle hook.
type Kind string

const (
	// PostCreate runs after a worktree has been materialized. Its
	// failure fails the create operation as a whole.
	PostCreate Kind = "post-create"

	// PreDelete runs before a worktree is removed. A non-zero exit
	// aborts the removal, leaving the worktree untouched.
	PreDelete Kind = "pre-delete"
)

// Dir is the hook directory relative to the worktree checkout.
const Dir = ".bbq/worktree"

// ErrNoShebang indicates a hook script whose first line is not a
// shebang, so no interpreter can be determined.
var ErrNoShebang = errors.New("hook script has no shebang line")

// ExitError reports a hook that ran and exited non-zero.
type ExitError struct {
	Script string
	Code   int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("hook %s: exit status %d", e.Script, e.Code)
}

// Path returns the hook script path for a worktree.
func Path(worktreePath string, kind Kind) string {
	return filepath.Join(worktreePath, filepath.FromSlash(Dir), string(kind))
}

// Find returns the hook script path if a regular file exists there,
// or "" when the worktree has no such hook.
func Find(worktreePath string, kind Kind) string {
	path := Path(worktreePath, kind)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return path
}

// Runner executes lifecycle hooks for worktrees.
type Runner struct {
	// Notify, if set, is called with the script path right before a
	// hook starts. The TUI uses it to display a status line.
	Notify func(kind Kind, script string)

	// Output receives the hook's stdout and stderr. When nil the
	// streams are inherited from the process.
	Output io.Writer
}

// Run executes the hook of the given kind for the worktree at
// worktreePath. It returns the script path that ran, or "" when the
// worktree has no such hook (which is success).
func (r Runner) Run(ctx context.Context, worktreePath string, kind Kind) (string, error) {
	script := Find(worktreePath, kind)
	if script == "" {
		return "", nil
	}

	interp, err := readShebang(script)
	if err != nil {
		return script, err
	}

	if r.Notify != nil {
		r.Notify(kind, script)
	}

	args := append(interp[1:], script)
	cmd := exec.CommandContext(ctx, interp[0], args...)
	cmd.Dir = worktreePath
	if r.Output != nil {
		cmd.Stdout = r.Output
		cmd.Stderr = r.Output
		cmd.Stdin = nil
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		cmd.Stdin = os.Stdin
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return script, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return script, &ExitError{Script: script, Code: exitErr.ExitCode()}
		}
		return script, fmt.Errorf("hook %s: %w", script, err)
	}
	return script, nil
}

// readShebang reads the interpreter command line from the script's
// first line. The line must start with "#!" and name a command;
// whitespace splits interpreter arguments ("#!/usr/bin/env bash").
func readShebang(script string) ([]string, error) {
	f, err := os.Open(script)
	if err != nil {
		return nil, fmt.Errorf("hook %s: %w", script, err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("hook %s: %w", script, err)
	}
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "#!") {
		return nil, fmt.Errorf("hook %s: %w", script, ErrNoShebang)
	}

	fields := strings.Fields(line[2:])
	if len(fields) == 0 {
		return nil, fmt.Errorf("hook %s: %w", script, ErrNoShebang)
	}
	return fields, nil
}
