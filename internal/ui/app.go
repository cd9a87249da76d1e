package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/petdesk/internal/pets"
	"github.com/five82/petdesk/internal/prefs"
	"github.com/five82/petdesk/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewPets View = iota
	ViewLogs
)

// mode is the input mode of the pets view.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
	modeConfirm
)

// Collection is what the renderer needs from the pet collection.
type Collection interface {
	Refresh(ctx context.Context) state.Outcome
	Add(ctx context.Context, in pets.Input) (state.Outcome, error)
	Delete(ctx context.Context, id int64) (state.Outcome, error)
	LoadSamples() state.Outcome
	Filter(query string) []pets.Pet
	Stats(subset []pets.Pet) pets.Stats
	Snapshot() state.Snapshot
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Collection Collection
	Origin     string // backend origin used to resolve image paths
	LogPath    string
	ThemeName  string
	PrefsPath  string
	Tick       time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	coll      Collection
	origin    string
	logPath   string
	prefsPath string
	tick      time.Duration

	// UI state
	theme       Theme
	keys        keyMap
	currentView View
	mode        mode
	width       int
	height      int
	ready       bool
	showHelp    bool
	errorMsg    string

	// Data state
	snapshot state.Snapshot
	visible  []pets.Pet
	stats    pets.Stats

	// Pets view state
	selectedRow int
	search      textinput.Model
	query       string
	form        formState
	confirmID   int64

	// Log state
	logViewport viewport.Model
	logLines    []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	m := Model{
		ctx:         ctx,
		coll:        opts.Collection,
		origin:      opts.Origin,
		logPath:     opts.LogPath,
		prefsPath:   opts.PrefsPath,
		tick:        tick,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		currentView: ViewPets,
		search:      newSearchInput(),
		form:        newFormState(),
		visible:     []pets.Pet{},
	}
	m.sync()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.coll != nil {
		cmds = append(cmds, refreshCmd(m.ctx, m.coll))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initLogViewport()
		}
		m.ready = true
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case outcomeMsg:
		m.handleOutcome(msg)
		return m, nil

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.currentView == ViewPets {
		switch m.mode {
		case modeForm:
			return m.renderForm()
		case modeConfirm:
			return m.renderConfirm()
		}
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeForm:
		return m.handleFormKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.errorMsg = "save theme: " + err.Error()
			}
		}
		return m, nil

	case "r":
		if m.coll == nil {
			return m, nil
		}
		m.errorMsg = ""
		return m, refreshCmd(m.ctx, m.coll)

	case "S":
		if m.coll == nil {
			return m, nil
		}
		m.coll.LoadSamples()
		m.selectedRow = 0
		m.sync()
		return m, nil

	case "l":
		if m.currentView == ViewLogs {
			m.currentView = ViewPets
			return m, nil
		}
		m.currentView = ViewLogs
		return m, readLogsCmd(m.logPath)

	case "esc":
		if m.currentView == ViewLogs {
			m.currentView = ViewPets
			return m, nil
		}
		if m.query != "" {
			m.clearSearch()
		}
		m.errorMsg = ""
		return m, nil
	}

	switch m.currentView {
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handlePetsKey(msg)
	}
}

// handlePetsKey processes keyboard input for the pets view.
func (m Model) handlePetsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		return m, m.startSearch()
	case "a":
		return m, m.openForm()
	case "d":
		if p := m.selectedPet(); p != nil {
			m.confirmID = p.ID
			m.mode = modeConfirm
		}
		return m, nil
	}

	count := len(m.visible)
	if count == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "g", "home":
		m.selectedRow = 0
	case "G", "end":
		m.selectedRow = count - 1
	}

	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.sync()

	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.currentView == ViewLogs {
		cmds = append(cmds, readLogsCmd(m.logPath))
	}
	return m, tea.Batch(cmds...)
}

// handleOutcome applies the result of a collection operation.
func (m *Model) handleOutcome(msg outcomeMsg) {
	if msg.err != nil {
		m.errorMsg = msg.op + ": " + msg.err.Error()
	}
	if msg.op == opAdd && msg.err == nil && msg.out.Pet.ID != 0 {
		m.sync()
		m.selectPet(msg.out.Pet.ID)
		return
	}
	m.sync()
}

// sync pulls the latest snapshot and recomputes the visible subset.
func (m *Model) sync() {
	if m.coll == nil {
		return
	}
	m.snapshot = m.coll.Snapshot()
	m.visible = m.coll.Filter(m.query)
	m.stats = m.coll.Stats(m.visible)
	if m.selectedRow >= len(m.visible) {
		m.selectedRow = len(m.visible) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// selectedPet returns the highlighted pet, or nil when nothing is listed.
func (m Model) selectedPet() *pets.Pet {
	if m.selectedRow < 0 || m.selectedRow >= len(m.visible) {
		return nil
	}
	p := m.visible[m.selectedRow]
	return &p
}

// selectPet highlights the listed pet with id, if any.
func (m *Model) selectPet(id int64) {
	for i := range m.visible {
		if m.visible[i].ID == id {
			m.selectedRow = i
			return
		}
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	// Main content
	b.WriteString(m.renderContent())
	b.WriteString("\n")

	// Notices
	b.WriteString(m.renderNotices())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderPets()
	}
}

// contentHeight is the height left for panes after the header, command bar
// and notice line.
func (m Model) contentHeight() int {
	return max(m.height-3, 3)
}

// Messages

type tickMsg time.Time

const (
	opRefresh = "refresh"
	opAdd     = "add"
	opDelete  = "delete"
)

type outcomeMsg struct {
	op  string
	out state.Outcome
	err error
}

type logLinesMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func refreshCmd(ctx context.Context, c Collection) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{op: opRefresh, out: c.Refresh(ctx)}
	}
}

func addCmd(ctx context.Context, c Collection, in pets.Input) tea.Cmd {
	return func() tea.Msg {
		out, err := c.Add(ctx, in)
		return outcomeMsg{op: opAdd, out: out, err: err}
	}
}

func deleteCmd(ctx context.Context, c Collection, id int64) tea.Cmd {
	return func() tea.Msg {
		out, err := c.Delete(ctx, id)
		return outcomeMsg{op: opDelete, out: out, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if err != nil && opts.Context != nil && opts.Context.Err() != nil {
		// Interrupted by signal; treat as a normal exit.
		return nil
	}
	return err
}
