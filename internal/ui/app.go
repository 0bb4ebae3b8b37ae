package ui

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/seek/internal/prefs"
	"github.com/five82/seek/internal/results"
)

// inputField identifies which text input receives typed keys.
type inputField int

const (
	fieldQuery inputField = iota
	fieldGlobs
)

// Options configures the UI.
type Options struct {
	Manager   *results.Manager
	Tick      time.Duration
	Prefs     prefs.Prefs
	PrefsPath string
	Query     string
	Globs     string
}

// previewKey identifies the preview state last loaded into the viewport.
type previewKey struct {
	path   string
	line   int
	status results.PreviewStatus
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	manager   *results.Manager
	tick      time.Duration
	prefs     prefs.Prefs
	prefsPath string
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	layout   paneLayout
	showHelp bool

	// Inputs
	query textinput.Model
	globs textinput.Model
	focus inputField

	// Results and preview
	listOffset   int
	preview      viewport.Model
	previewShown previewKey

	// Footer
	help       help.Model
	spinner    spinner.Model
	toast      string
	toastUntil time.Time
}

// New creates a new Bubble Tea model. The initial query and globs are handed
// to the manager so the first tick starts searching.
func New(opts Options) Model {
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTickInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	query := textinput.New()
	query.Prompt = "Search "
	query.Placeholder = "pattern"
	query.SetValue(opts.Query)
	query.Focus()

	globs := textinput.New()
	globs.Prompt = "Glob   "
	globs.Placeholder = "*.go;!vendor/**"
	globs.SetValue(opts.Globs)

	m := Model{
		manager:      opts.Manager,
		tick:         tick,
		prefs:        opts.Prefs,
		prefsPath:    prefsPath,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(opts.Prefs.Theme),
		query:        query,
		globs:        globs,
		preview:      viewport.New(0, 0),
		previewShown: previewKey{status: -1},
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.applyTheme()
	m.applyInputs()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.tick),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case editorClosedMsg:
		if msg.err != nil {
			log.Printf("[ui] editor exited: %v", msg.err)
			m.setToast("editor: " + msg.err.Error())
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			log.Printf("[ui] clipboard: %v", msg.err)
			m.setToast("Clipboard unavailable")
		} else {
			m.setToast("Copied " + msg.location)
		}
		return m, nil
	}

	// Cursor blink and other input messages.
	return m.updateInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input. Commands are matched before the key
// reaches the focused input, so ctrl+h never deletes a character.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.applyTheme()
		m.savePrefs()
		m.previewShown.status = -1
		m.syncPreview()
		return m, nil

	case key.Matches(msg, m.keys.SwitchInput):
		m.switchInput()
		return m, nil

	case key.Matches(msg, m.keys.ClearInput):
		if m.focus == fieldQuery {
			m.query.SetValue("")
		} else {
			m.globs.SetValue("")
		}
		m.applyInputs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleHidden):
		m.manager.ToggleHidden()
		m.prefs.ShowHidden = prefs.Bool(m.manager.Options().ShowHidden)
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.TogglePreview):
		m.manager.TogglePreview()
		m.prefs.ShowPreview = prefs.Bool(m.manager.ShowPreview())
		m.savePrefs()
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.manager.SelectPrev()
	case key.Matches(msg, m.keys.Down):
		m.manager.SelectNext()
	case key.Matches(msg, m.keys.PageUp):
		m.manager.Move(-max(m.layout.listRows(), 1))
	case key.Matches(msg, m.keys.PageDown):
		m.manager.Move(max(m.layout.listRows(), 1))
	case key.Matches(msg, m.keys.Top):
		m.manager.SelectFirst()
	case key.Matches(msg, m.keys.Bottom):
		m.manager.SelectLast()

	case key.Matches(msg, m.keys.Open):
		cmd, ok := m.manager.OpenSelection()
		if !ok {
			return m, nil
		}
		log.Printf("[ui] opening editor: %v", cmd.Args)
		return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
			return editorClosedMsg{err: err}
		})

	case key.Matches(msg, m.keys.Copy):
		if location, ok := m.manager.SelectedLocation(); ok {
			return m, copyCmd(location)
		}
		return m, nil

	case key.Matches(msg, m.keys.PreviewUp):
		m.scrollPreview(-1)
		return m, nil
	case key.Matches(msg, m.keys.PreviewDown):
		m.scrollPreview(1)
		return m, nil
	case key.Matches(msg, m.keys.PreviewPageUp):
		m.scrollPreview(-max(m.preview.Height/2, 1))
		return m, nil
	case key.Matches(msg, m.keys.PreviewPageDown):
		m.scrollPreview(max(m.preview.Height/2, 1))
		return m, nil

	default:
		return m.updateInput(msg)
	}

	// Selection moved.
	m.ensureVisible()
	m.syncPreview()
	return m, nil
}

// updateInput forwards msg to the focused input and pushes its value to the
// manager. The manager ignores values that did not change.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == fieldQuery {
		m.query, cmd = m.query.Update(msg)
	} else {
		m.globs, cmd = m.globs.Update(msg)
	}
	m.applyInputs()
	return m, cmd
}

func (m *Model) applyInputs() {
	m.manager.SetQuery(m.query.Value())
	m.manager.SetGlobs(m.globs.Value())
}

func (m *Model) switchInput() {
	if m.focus == fieldQuery {
		m.focus = fieldGlobs
		m.query.Blur()
		m.globs.Focus()
		return
	}
	m.focus = fieldQuery
	m.globs.Blur()
	m.query.Focus()
}

// handleTick pumps the results manager and schedules the next tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.manager.Tick() {
		m.ensureVisible()
	}
	m.syncPreview()

	if m.toast != "" && now.After(m.toastUntil) {
		m.toast = ""
	}

	return m, tickCmd(m.tick)
}

// ensureVisible scrolls the result list so the selection is on screen.
func (m *Model) ensureVisible() {
	rows := m.layout.listRows()
	idx, ok := m.manager.Selection()
	if !ok {
		if m.manager.Count() == 0 {
			m.listOffset = 0
		}
		return
	}
	if rows <= 0 {
		m.listOffset = idx
		return
	}
	if idx < m.listOffset {
		m.listOffset = idx
	}
	if idx >= m.listOffset+rows {
		m.listOffset = idx - rows + 1
	}
	m.listOffset = max(m.listOffset, 0)
}

// resize recomputes pane sizes after a terminal resize or preview toggle.
func (m *Model) resize() {
	m.layout = computeLayout(m.width, m.height, m.manager.ShowPreview())

	w, h := inner(m.layout.PreviewWidth, m.layout.PreviewHeight)
	m.preview.Width = w
	m.preview.Height = h

	m.query.Width = max(m.width-queryInputReserve, 1)
	m.globs.Width = max(m.width-globInputReserve, 1)
	m.help.Width = max(m.width-themeIndicatorReserve, 0)

	m.previewShown.status = -1
	m.syncPreview()
	m.ensureVisible()
}

func (m *Model) setToast(msg string) {
	m.toast = msg
	m.toastUntil = time.Now().Add(ToastDuration)
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Printf("[ui] save prefs: %v", err)
	}
}

// Messages

type tickMsg time.Time

type editorClosedMsg struct {
	err error
}

type clipboardMsg struct {
	location string
	err      error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func copyCmd(location string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{location: location, err: writeClipboard(location)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
