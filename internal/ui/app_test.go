package ui

import (
	"testing"

	"github.com/bbq-sh/bbq/internal/repo"
	"github.com/bbq-sh/bbq/internal/worktree"
)

func testApp() *App {
	a := &App{
		worktrees: make(map[string][]worktree.Worktree),
		expanded:  make(map[string]bool),
	}
	a.repos = []repo.Repo{
		{Name: "gadgets"},
		{Name: "widgets"},
	}
	a.worktrees["widgets"] = []worktree.Worktree{
		{Repo: "widgets", Name: "main", Branch: "main"},
		{Repo: "widgets", Name: "tokyo", Branch: "user/tokyo"},
	}
	a.worktrees["gadgets"] = []worktree.Worktree{
		{Repo: "gadgets", Name: "lisbon", Branch: "lisbon"},
	}
	return a
}

func labels(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.label()
	}
	return out
}

func TestRebuildItems_Collapsed(t *testing.T) {
	a := testApp()
	a.rebuildItems()

	got := labels(a.items)
	want := []string{"gadgets", "widgets"}
	if len(got) != len(want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRebuildItems_Expanded(t *testing.T) {
	a := testApp()
	a.expanded["widgets"] = true
	a.rebuildItems()

	got := labels(a.items)
	want := []string{"gadgets", "widgets", "widgets/main", "widgets/tokyo"}
	if len(got) != len(want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRebuildItems_FilterExpandsAndMatches(t *testing.T) {
	a := testApp()
	a.filter = "tokyo"
	a.rebuildItems()

	got := labels(a.items)
	if len(got) != 1 || got[0] != "widgets/tokyo" {
		t.Fatalf("items = %v, want [widgets/tokyo]", got)
	}
}

func TestRebuildItems_ClampsCursor(t *testing.T) {
	a := testApp()
	a.expanded["widgets"] = true
	a.rebuildItems()
	a.cursor = len(a.items) - 1

	a.filter = "gadgets"
	a.rebuildItems()

	if _, ok := a.current(); !ok {
		t.Fatal("current() not ok after filtering")
	}
	if a.cursor >= len(a.items) {
		t.Errorf("cursor = %d, items = %d", a.cursor, len(a.items))
	}
}

func TestCurrent_Empty(t *testing.T) {
	a := &App{}
	if _, ok := a.current(); ok {
		t.Error("current() ok on empty item list")
	}
}
