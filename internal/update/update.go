// Package update checks for a newer bbq release in the background.
//
// The check runs concurrently with foreground work and shares exactly
// one piece of state: the last-known version, which it writes back to
// the persisted configuration. Failures are silent; an update check
// must never break a command.
package update

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/bbq-sh/bbq/internal/cmd"
	"github.com/bbq-sh/bbq/internal/config"
)

// Formula is the Homebrew formula bbq ships as.
const Formula = "bbq"

// IsHomebrewInstall reports whether the running binary came from
// Homebrew. Only then can brew tell us about newer versions.
func IsHomebrewInstall() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	return strings.Contains(exe, "/Cellar/"+Formula+"/")
}

// brewOutdated mirrors the fields of `brew outdated --json=v2` we read.
type brewOutdated struct {
	Formulae []struct {
		Name           string `json:"name"`
		CurrentVersion string `json:"current_version"`
	} `json:"formulae"`
}

// LatestVersion asks brew for a newer bbq version. Returns "" when bbq
// is up to date or the check failed.
func LatestVersion(ctx context.Context) string {
	out, err := cmd.OutputContext(ctx, "", "brew", "outdated", "--json=v2")
	if err != nil {
		return ""
	}
	return parseOutdated(out)
}

func parseOutdated(out []byte) string {
	var parsed brewOutdated
	if err := json.Unmarshal(out, &parsed); err != nil {
		return ""
	}
	for _, formula := range parsed.Formulae {
		if formula.Name == Formula {
			return strings.TrimSpace(formula.CurrentVersion)
		}
	}
	return ""
}

// Check runs the background update check and persists a newly seen
// version through the store. It returns the latest version, or "" when
// there is nothing new.
func Check(ctx context.Context, store *config.Store) string {
	if !IsHomebrewInstall() {
		return ""
	}
	latest := LatestVersion(ctx)
	if latest == "" {
		return ""
	}

	cfg, err := store.Load()
	if err == nil && cfg.KnownLatestVersion != latest {
		// Best effort; a failed write just means we ask brew again
		// next time.
		_ = store.SetKnownLatestVersion(latest)
	}
	return latest
}

// Upgrade runs brew upgrade for bbq.
func Upgrade(ctx context.Context) error {
	return cmd.RunContext(ctx, "", "brew", "upgrade", Formula)
}
