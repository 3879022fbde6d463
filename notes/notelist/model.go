// Package notelist is a terminal list view over a note store. It lists
// notes and adds, renames and deletes them through modal dialogs. Local
// state only changes by refetching after the store reports success.
package notelist

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/phanxgames/mindpaper/notes"
)

// Service is the subset of notes.Client the list needs.
type Service interface {
	List(ctx context.Context) ([]notes.Note, error)
	Add(ctx context.Context, title string) error
	Edit(ctx context.Context, id int64, title string) error
	Delete(ctx context.Context, id int64) error
}

type modalKind int

const (
	modalNone modalKind = iota
	modalAdd
	modalEdit
	modalDelete
)

type confirmFocus int

const (
	focusConfirm confirmFocus = iota
	focusCancel
)

// notesLoadedMsg carries the result of a list request.
type notesLoadedMsg struct {
	notes []notes.Note
	err   error
}

// mutationDoneMsg carries the result of an add, edit or delete request.
type mutationDoneMsg struct {
	op  modalKind
	err error
}

// Model is the Bubble Tea model for the note list.
type Model struct {
	svc     Service
	timeout time.Duration

	notes   []notes.Note
	cursor  int
	loading bool
	err     string

	modal   modalKind
	current notes.Note
	input   textinput.Model
	focus   confirmFocus
	pending bool

	keys   keyMap
	help   help.Model
	width  int
	height int
}

// New returns a list view backed by svc. Each request is bounded by
// timeout; zero means no bound.
func New(svc Service, timeout time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "title"
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		svc:     svc,
		timeout: timeout,
		input:   ti,
		keys:    defaultKeys(),
		help:    help.New(),
		loading: true,
	}
}

// Notes returns the notes as last fetched.
func (m Model) Notes() []notes.Note { return m.notes }

// Err returns the last request error shown to the user.
func (m Model) Err() string { return m.err }

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

func (m Model) ctx() (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		list, err := m.svc.List(ctx)
		return notesLoadedMsg{notes: list, err: err}
	}
}

func (m Model) mutate(op modalKind, title string, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		var err error
		switch op {
		case modalAdd:
			err = m.svc.Add(ctx, title)
		case modalEdit:
			err = m.svc.Edit(ctx, id, title)
		case modalDelete:
			err = m.svc.Delete(ctx, id)
		}
		return mutationDoneMsg{op: op, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case notesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.notes = msg.notes
		if m.cursor >= len(m.notes) {
			m.cursor = max(0, len(m.notes)-1)
		}
		return m, nil

	case mutationDoneMsg:
		m.pending = false
		if msg.err != nil {
			// The dialog stays open so the user can retry or cancel.
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.closeModal()
		m.loading = true
		return m, m.fetch()

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.fetch()
	case key.Matches(msg, m.keys.Add):
		m.current = notes.Note{}
		return m, m.openInput(modalAdd, "")
	case key.Matches(msg, m.keys.Edit):
		if n, ok := m.selected(); ok {
			m.current = n
			return m, m.openInput(modalEdit, n.Title)
		}
	case key.Matches(msg, m.keys.Delete):
		if n, ok := m.selected(); ok {
			m.current = n
			m.modal = modalDelete
			m.focus = focusCancel
			m.err = ""
		}
	}
	return m, nil
}

func (m *Model) openInput(kind modalKind, value string) tea.Cmd {
	m.modal = kind
	m.err = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeModal() {
	m.modal = modalNone
	m.current = notes.Note{}
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) selected() (notes.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.notes) {
		return notes.Note{}, false
	}
	return m.notes[m.cursor], true
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeModal()
		m.err = ""
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	if m.modal == modalDelete {
		switch msg.String() {
		case "tab", "shift+tab", "left", "right", "h", "l":
			if m.focus == focusConfirm {
				m.focus = focusCancel
			} else {
				m.focus = focusConfirm
			}
		case "y":
			m.pending = true
			return m, m.mutate(modalDelete, "", m.current.ID)
		case "enter":
			if m.focus == focusCancel {
				m.closeModal()
				return m, nil
			}
			m.pending = true
			return m, m.mutate(modalDelete, "", m.current.ID)
		}
		return m, nil
	}

	if msg.String() == "enter" {
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.err = "title is empty"
			return m, nil
		}
		m.pending = true
		return m, m.mutate(m.modal, title, m.current.ID)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
