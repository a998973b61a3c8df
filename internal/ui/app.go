// Package ui implements the interactive terminal browser: repositories
// and their worktrees in one tree, with clone/create/open/remove
// actions and a background update check.
package ui

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"

	"github.com/bbq-sh/bbq/internal/config"
	"github.com/bbq-sh/bbq/internal/git"
	"github.com/bbq-sh/bbq/internal/hooks"
	"github.com/bbq-sh/bbq/internal/launch"
	"github.com/bbq-sh/bbq/internal/repo"
	"github.com/bbq-sh/bbq/internal/ui/styles"
	"github.com/bbq-sh/bbq/internal/update"
	"github.com/bbq-sh/bbq/internal/worktree"
)

// Deps are the collaborators the browser drives.
type Deps struct {
	Cfg      config.Config
	Store    *config.Store
	Registry *repo.Registry
	Root     string
	Launcher *launch.Launcher
	Version  string
}

// Run starts the interactive browser and blocks until it exits.
func Run(ctx context.Context, deps Deps) error {
	styles.Apply(deps.Cfg.Theme)

	app := newApp(ctx, deps)

	// Output to stderr so stdout stays clean for piping; the profile
	// detection handles NO_COLOR and non-TTY output.
	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(app,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	_, err := p.Run()
	return err
}

type itemKind int

const (
	itemRepo itemKind = iota
	itemWorktree
)

// item is one visible row of the tree.
type item struct {
	kind     itemKind
	repo     repo.Repo
	worktree worktree.Worktree
}

func (it item) label() string {
	if it.kind == itemRepo {
		return it.repo.Name
	}
	return it.repo.Name + "/" + it.worktree.Name
}

type inputMode int

const (
	modeNone inputMode = iota
	modeFilter
	modeClone
	modeCreate
	modeConfirmRemove
)

// Messages

type loadedMsg struct {
	repos     []repo.Repo
	worktrees map[string][]worktree.Worktree
	err       error
}

type statusMsg string

type opDoneMsg struct {
	note string
	err  error
}

type updateAvailableMsg string

type clipboardMsg struct{ err error }

// App is the bubbletea model for the browser.
type App struct {
	ctx     context.Context
	deps    Deps
	manager *worktree.Manager

	// statusCh carries progress lines from long-running operations,
	// e.g. the hook runner's notify callback.
	statusCh chan string
	hookOut  bytes.Buffer

	repos     []repo.Repo
	worktrees map[string][]worktree.Worktree
	expanded  map[string]bool
	items     []item
	cursor    int

	filter string
	mode   inputMode
	input  textinput.Model
	// pendingRemove is the item a confirm prompt refers to.
	pendingRemove item

	spin    spinner.Model
	busy    bool
	status  string
	flash   string // one-shot success note
	errMsg  string
	latest  string // newer version seen by the update check
	width   int
	height  int
}

func newApp(ctx context.Context, deps Deps) *App {
	statusCh := make(chan string, 8)

	app := &App{
		ctx:       ctx,
		deps:      deps,
		statusCh:  statusCh,
		worktrees: make(map[string][]worktree.Worktree),
		expanded:  make(map[string]bool),
	}

	runner := hooks.Runner{
		Output: &app.hookOut,
		Notify: func(kind hooks.Kind, script string) {
			statusCh <- fmt.Sprintf("Running %s script %s", kind, script)
		},
	}
	app.manager = worktree.NewManager(deps.Root, runner)

	ti := textinput.New()
	ti.CharLimit = 156
	ti.SetWidth(40)
	tiStyles := ti.Styles()
	tiStyles.Cursor.Shape = tea.CursorBar
	tiStyles.Cursor.Blink = true
	ti.SetStyles(tiStyles)
	app.input = ti

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	app.spin = sp

	return app
}

// Init kicks off the initial load and the background update check.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.load(), a.waitStatus()}
	if a.deps.Cfg.UpdatesEnabled() {
		cmds = append(cmds, a.checkUpdates())
	}
	return tea.Batch(cmds...)
}

// load reads repos and their worktrees fresh from disk.
func (a *App) load() tea.Cmd {
	return func() tea.Msg {
		repos, err := a.deps.Registry.List()
		if err != nil {
			return loadedMsg{err: err}
		}
		worktrees := make(map[string][]worktree.Worktree, len(repos))
		for _, r := range repos {
			wts, err := a.manager.List(a.ctx, r)
			if err != nil {
				return loadedMsg{err: err}
			}
			worktrees[r.Name] = wts
		}
		return loadedMsg{repos: repos, worktrees: worktrees}
	}
}

// waitStatus forwards one progress line from a running operation.
func (a *App) waitStatus() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-a.statusCh
		if !ok {
			return nil
		}
		return statusMsg(line)
	}
}

func (a *App) checkUpdates() tea.Cmd {
	return func() tea.Msg {
		latest := update.Check(a.ctx, a.deps.Store)
		if latest == "" {
			return nil
		}
		return updateAvailableMsg(latest)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case loadedMsg:
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.repos = msg.repos
		a.worktrees = msg.worktrees
		a.rebuildItems()
		return a, nil

	case statusMsg:
		a.status = string(msg)
		return a, a.waitStatus()

	case opDoneMsg:
		a.busy = false
		a.status = ""
		if msg.err != nil {
			a.errMsg = msg.err.Error()
		} else {
			a.errMsg = ""
			a.flash = msg.note
		}
		return a, a.load()

	case updateAvailableMsg:
		a.latest = string(msg)
		return a, nil

	case clipboardMsg:
		if msg.err != nil {
			a.errMsg = msg.err.Error()
		} else {
			a.flash = "path copied"
		}
		return a, nil

	case tea.KeyPressMsg:
		return a.handleKey(msg)
	}

	if a.busy {
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}
	if a.mode == modeClone || a.mode == modeCreate || a.mode == modeFilter {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if a.busy {
		// Long-running steps cannot be interrupted, only the view
		// abandoned.
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, nil
	}

	if a.mode != modeNone {
		return a.handleInputKey(msg)
	}

	a.flash = ""
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.items)-1 {
			a.cursor++
		}
	case "enter", "l", "right", " ":
		return a.toggleOrOpen()
	case "h", "left":
		if it, ok := a.current(); ok && it.kind == itemRepo {
			a.expanded[it.repo.Name] = false
			a.rebuildItems()
		}
	case "c":
		a.mode = modeClone
		a.input.Placeholder = "url, path, or owner/repo"
		a.input.SetValue("")
		a.input.Focus()
		return a, textinput.Blink
	case "n":
		if _, ok := a.current(); ok {
			a.mode = modeCreate
			a.input.Placeholder = "worktree name (empty = generated)"
			a.input.SetValue("")
			a.input.Focus()
			return a, textinput.Blink
		}
	case "e":
		if it, ok := a.current(); ok && it.kind == itemWorktree {
			return a, a.openEditor(it.worktree)
		}
	case "t":
		if it, ok := a.current(); ok && it.kind == itemWorktree {
			return a, a.openTerminal(it.worktree)
		}
	case "y":
		if it, ok := a.current(); ok && it.kind == itemWorktree {
			return a, a.copyPath(it.worktree)
		}
	case "d", "x":
		if it, ok := a.current(); ok {
			a.pendingRemove = it
			a.mode = modeConfirmRemove
		}
	case "/":
		a.mode = modeFilter
		a.input.Placeholder = "filter"
		a.input.SetValue(a.filter)
		a.input.Focus()
		return a, textinput.Blink
	case "r":
		return a, a.load()
	case "esc":
		if a.filter != "" {
			a.filter = ""
			a.rebuildItems()
		}
	}
	return a, nil
}

func (a *App) handleInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if a.mode == modeConfirmRemove {
		switch msg.String() {
		case "y", "Y", "enter":
			it := a.pendingRemove
			a.mode = modeNone
			return a, a.remove(it)
		default:
			a.mode = modeNone
		}
		return a, nil
	}

	switch msg.String() {
	case "esc", "ctrl+c":
		a.mode = modeNone
		a.input.Blur()
		return a, nil
	case "enter":
		value := strings.TrimSpace(a.input.Value())
		mode := a.mode
		a.mode = modeNone
		a.input.Blur()
		switch mode {
		case modeFilter:
			a.filter = value
			a.rebuildItems()
			return a, nil
		case modeClone:
			if value == "" {
				return a, nil
			}
			return a, a.clone(value)
		case modeCreate:
			it, ok := a.current()
			if !ok {
				return a, nil
			}
			return a, a.create(it.repo, value)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.mode == modeFilter {
		a.filter = strings.TrimSpace(a.input.Value())
		a.rebuildItems()
	}
	return a, cmd
}

func (a *App) toggleOrOpen() (tea.Model, tea.Cmd) {
	it, ok := a.current()
	if !ok {
		return a, nil
	}
	if it.kind == itemRepo {
		a.expanded[it.repo.Name] = !a.expanded[it.repo.Name]
		a.rebuildItems()
		return a, nil
	}
	return a, a.openEditor(it.worktree)
}

func (a *App) current() (item, bool) {
	if a.cursor < 0 || a.cursor >= len(a.items) {
		return item{}, false
	}
	return a.items[a.cursor], true
}

// rebuildItems flattens the repo tree into visible rows, applying the
// fuzzy filter. Filtering expands everything so matches are visible.
func (a *App) rebuildItems() {
	var all []item
	for _, r := range a.repos {
		all = append(all, item{kind: itemRepo, repo: r})
		if a.filter != "" || a.expanded[r.Name] {
			for _, wt := range a.worktrees[r.Name] {
				all = append(all, item{kind: itemWorktree, repo: r, worktree: wt})
			}
		}
	}

	if a.filter == "" {
		a.items = all
	} else {
		labels := make([]string, len(all))
		for i, it := range all {
			labels[i] = it.label()
		}
		matches := fuzzy.Find(a.filter, labels)
		items := make([]item, 0, len(matches))
		for _, match := range matches {
			items = append(items, all[match.Index])
		}
		a.items = items
	}

	if a.cursor >= len(a.items) {
		a.cursor = len(a.items) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Operations

func (a *App) startOp(status string, op func() opDoneMsg) tea.Cmd {
	a.busy = true
	a.status = status
	a.errMsg = ""
	return tea.Batch(
		a.spin.Tick,
		func() tea.Msg { return op() },
	)
}

func (a *App) clone(source string) tea.Cmd {
	return a.startOp("Cloning "+source, func() opDoneMsg {
		r, err := a.deps.Registry.Clone(a.ctx, source, "")
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{note: "cloned " + r.Name}
	})
}

func (a *App) create(r repo.Repo, name string) tea.Cmd {
	cfg := a.deps.Cfg
	a.expanded[r.Name] = true
	return a.startOp("Creating worktree", func() opDoneMsg {
		opts := worktree.CreateOptions{
			Name:         name,
			UseCityNames: name == "" && cfg.UseCityNames(),
		}
		if cfg.GithubPrefixEnabled() {
			opts.BranchPrefix = git.GhUsername(a.ctx)
		}
		wt, err := a.manager.Create(a.ctx, r, opts)
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{note: "created " + wt.Name}
	})
}

func (a *App) remove(it item) tea.Cmd {
	if it.kind == itemRepo {
		return a.startOp("Removing repo "+it.repo.Name, func() opDoneMsg {
			if err := a.deps.Registry.Remove(a.ctx, it.repo.Name); err != nil {
				return opDoneMsg{err: err}
			}
			return opDoneMsg{note: "removed " + it.repo.Name}
		})
	}
	return a.startOp("Removing worktree "+it.worktree.Name, func() opDoneMsg {
		if err := a.manager.Remove(a.ctx, it.repo, it.worktree.Name, false); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{note: "removed " + it.worktree.Name}
	})
}

func (a *App) openEditor(wt worktree.Worktree) tea.Cmd {
	return func() tea.Msg {
		if err := a.deps.Launcher.OpenEditor(a.ctx, wt.Path, ""); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{note: "opened " + wt.Name}
	}
}

func (a *App) openTerminal(wt worktree.Worktree) tea.Cmd {
	return func() tea.Msg {
		if err := a.deps.Launcher.OpenTerminal(a.ctx, wt.Path); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{note: "terminal at " + wt.Name}
	}
}

func (a *App) copyPath(wt worktree.Worktree) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(wt.Path)}
	}
}

// View

func (a *App) View() tea.View {
	var b strings.Builder

	title := "bbq"
	if a.deps.Version != "" {
		title += " " + a.deps.Version
	}
	b.WriteString(styles.TitleStyle().Render(title))
	if a.latest != "" {
		b.WriteString("  ")
		b.WriteString(styles.WarningStyle().Render("update available: " + a.latest + " (brew upgrade bbq)"))
	}
	b.WriteString("\n\n")

	if len(a.repos) == 0 {
		b.WriteString(styles.MutedStyle().Render("no repos yet (press c to clone one)"))
		b.WriteString("\n")
	}

	for i, it := range a.items {
		b.WriteString(a.renderItem(it, i == a.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case a.busy:
		b.WriteString(a.spin.View())
		b.WriteString(" ")
		b.WriteString(styles.StatusStyle().Render(a.status))
		b.WriteString("\n")
	case a.mode == modeClone:
		b.WriteString(styles.PromptStyle().Render("clone from > "))
		b.WriteString(a.input.View())
		b.WriteString("\n")
	case a.mode == modeCreate:
		b.WriteString(styles.PromptStyle().Render("new worktree > "))
		b.WriteString(a.input.View())
		b.WriteString("\n")
	case a.mode == modeFilter:
		b.WriteString(styles.PromptStyle().Render("filter > "))
		b.WriteString(a.input.View())
		b.WriteString("\n")
	case a.mode == modeConfirmRemove:
		b.WriteString(styles.ErrorStyle().Render("remove " + a.pendingRemove.label() + "? (y/N)"))
		b.WriteString("\n")
	case a.errMsg != "":
		b.WriteString(styles.ErrorStyle().Render(a.errMsg))
		b.WriteString("\n")
	case a.flash != "":
		b.WriteString(styles.SuccessStyle().Render(a.flash))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle().Render(a.helpLine()))

	return tea.NewView(b.String())
}

func (a *App) renderItem(it item, selected bool) string {
	var line string
	if it.kind == itemRepo {
		count := len(a.worktrees[it.repo.Name])
		marker := "▸"
		if a.expanded[it.repo.Name] || a.filter != "" {
			marker = "▾"
		}
		line = fmt.Sprintf("%s %s %s", marker,
			styles.RepoStyle().Render(it.repo.Name),
			styles.MutedStyle().Render(fmt.Sprintf("(%d)", count)))
	} else {
		branch := it.worktree.Branch
		if branch == "" {
			branch = "detached"
		}
		line = fmt.Sprintf("    %s %s",
			styles.WorktreeStyle().Render(it.worktree.Name),
			styles.BranchStyle().Render("["+branch+"]"))
	}
	if selected {
		return styles.SelectedStyle().Render("> ") + line
	}
	return "  " + line
}

func (a *App) helpLine() string {
	if a.mode != modeNone {
		return "enter confirm • esc cancel"
	}
	it, onWorktree := a.current()
	if onWorktree && it.kind == itemWorktree {
		return "e edit • t terminal • y copy path • d remove • / filter • q quit"
	}
	return "enter expand • c clone • n new worktree • d remove • / filter • q quit"
}
