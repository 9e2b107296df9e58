package tui

import (
	"errors"

	"github.com/Veraticus/grievance-intel/internal/common"
	"github.com/Veraticus/grievance-intel/internal/model"
	"github.com/Veraticus/grievance-intel/internal/store"
	"github.com/Veraticus/grievance-intel/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the grievance view. It owns one Store for its lifetime and keeps
// the draft in its form inputs.
type Model struct {
	theme       themes.Theme
	hint        error
	mount       tea.Cmd
	keymap      KeyMap
	config      Config
	store       store.Store
	help        help.Model
	description textarea.Model
	list        viewport.Model
	title       textinput.Model
	width       int
	height      int
	focus       field
	quitting    bool
}

// New creates the grievance view.
func New(opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(cfg)
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	title := textinput.New()
	title.Placeholder = titlePlaceholder
	title.Prompt = ""
	title.CharLimit = 200

	description := textarea.New()
	description.Placeholder = descriptionPlaceholder
	description.ShowLineNumbers = false
	description.CharLimit = 4000
	description.SetHeight(descriptionHeight)

	m := Model{
		theme:       cfg.Theme,
		keymap:      DefaultKeyMap(),
		config:      cfg,
		store:       store.New(cfg.Backend, cfg.storeOptions()...),
		help:        help.New(),
		title:       title,
		description: description,
		list:        viewport.New(cfg.Width, minListHeight),
		width:       cfg.Width,
		height:      cfg.Height,
	}

	// The mount fetch is issued here so the store records its sequence
	// number; Init only hands the command to the runtime.
	m.store, m.mount = m.store.Mount()
	m, _ = m.setFocus(fieldTitle)
	m.layout()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.mount, textinput.Blink)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)

	case store.SubmittedMsg:
		if msg.Err == nil {
			m.resetForm()
		}

	case store.FetchedMsg, store.SuccessExpiredMsg, store.SnapshotLoadedMsg:
		// Store only

	default:
		var cmd tea.Cmd
		m, cmd = m.updateFocused(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.store, cmd = m.store.Update(msg)
	cmds = append(cmds, cmd)

	m.layout()
	return m, tea.Batch(cmds...)
}

// Draft returns the current form contents.
func (m Model) Draft() model.Draft {
	return model.Draft{
		Title:       m.title.Value(),
		Description: m.description.Value(),
	}
}

// Store returns the view's store.
func (m Model) Store() store.Store {
	return m.store
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Submit):
		return m.submit()

	case key.Matches(msg, m.keymap.Refresh):
		var cmd tea.Cmd
		m.store, cmd = m.store.FetchAll()
		return m, cmd

	case key.Matches(msg, m.keymap.NextField):
		return m.setFocus(m.focus.next())

	case key.Matches(msg, m.keymap.PrevField):
		return m.setFocus(m.focus.prev())

	case key.Matches(msg, m.keymap.PageUp, m.keymap.PageDown):
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if m.focus == fieldNone {
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keymap.Up, m.keymap.Down):
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if key.Matches(msg, m.keymap.Blur) {
		return m.setFocus(fieldNone)
	}

	if m.focus == fieldTitle && msg.Type == tea.KeyEnter {
		return m.setFocus(fieldDescription)
	}

	m.hint = nil
	return m.updateFocused(msg)
}

// submit validates the draft and hands it to the store. Nothing happens while
// a submit is in flight.
func (m Model) submit() (Model, tea.Cmd) {
	if m.store.Loading() {
		return m, nil
	}

	draft := m.Draft()
	if err := draft.Validate(); err != nil {
		m.hint = err
		if errors.Is(err, common.ErrTitleRequired) {
			return m.setFocus(fieldTitle)
		}
		return m.setFocus(fieldDescription)
	}

	m.hint = nil
	var cmd tea.Cmd
	m.store, cmd = m.store.Submit(draft)
	return m, cmd
}

func (m Model) setFocus(f field) (Model, tea.Cmd) {
	m.focus = f
	m.title.Blur()
	m.description.Blur()

	switch f {
	case fieldTitle:
		return m, m.title.Focus()
	case fieldDescription:
		return m, m.description.Focus()
	default:
		return m, nil
	}
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

func (m *Model) resetForm() {
	m.title.Reset()
	m.description.Reset()
	m.hint = nil
}
