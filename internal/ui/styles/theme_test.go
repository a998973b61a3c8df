package styles

import "testing"

func TestApply(t *testing.T) {
	t.Cleanup(func() { Apply(DefaultThemeName) })

	Apply("green")
	if Primary != themes["green"].Primary {
		t.Error("Apply(green) did not activate the green accent")
	}

	Apply("  Violet ")
	if Primary != themes["violet"].Primary {
		t.Error("Apply trims and lowercases the theme name")
	}

	Apply("no-such-theme")
	if Primary != themes[DefaultThemeName].Primary {
		t.Error("unknown theme should fall back to the default accent")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(themes) {
		t.Fatalf("Names() len = %d, want %d", len(names), len(themes))
	}
	seen := false
	for i, name := range names {
		if name == DefaultThemeName {
			seen = true
		}
		if i > 0 && names[i-1] > name {
			t.Errorf("Names() not sorted at %d: %q > %q", i, names[i-1], name)
		}
	}
	if !seen {
		t.Errorf("Names() missing %q", DefaultThemeName)
	}
}
