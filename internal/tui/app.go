// Package tui is the full screen terminal interface over a Session.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"task-list/internal/api"
	"task-list/internal/display"
	"task-list/internal/domain"
	"task-list/internal/errors"
)

// Focus targets, in tab order
const (
	FocusList = iota
	FocusName
	FocusPriority
	FocusDue
	FocusCount
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Bold(true)

	completeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#dcedc8")).
			Foreground(lipgloss.Color("#1b1b1b"))

	incompleteStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#f0f4c3")).
			Foreground(lipgloss.Color("#1b1b1b"))

	selectedStyle = lipgloss.NewStyle().Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// Options configure the terminal UI
type Options struct {
	DisplayDateFormat string
	RelativeDue       bool
	Now               func() time.Time
}

// Model represents the main application state
type Model struct {
	ctx       context.Context
	session   *api.Session
	formatter *display.Formatter
	now       func() time.Time

	tasks    []domain.Task
	hasTasks bool
	selected int
	focus    int

	nameInput textinput.Model
	dueInput  textinput.Model

	confirmClear bool
	message      string
	err          error
	width        int
	height       int
}

// New creates a new application model over session
func New(ctx context.Context, session *api.Session, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	name := textinput.New()
	name.Placeholder = "What needs doing?"
	name.Prompt = "> "
	name.Width = 40
	name.CharLimit = 200

	due := textinput.New()
	due.Placeholder = session.InputDateFormat()
	due.Prompt = "> "
	due.Width = 20
	due.CharLimit = 40

	m := Model{
		ctx:       ctx,
		session:   session,
		formatter: display.NewFormatter(opts.DisplayDateFormat, opts.RelativeDue),
		now:       opts.Now,
		nameInput: name,
		dueInput:  due,
	}
	m.refresh()
	return m
}

// Run starts the program on the given streams and blocks until it quits
func Run(ctx context.Context, session *api.Session, in io.Reader, out io.Writer, opts Options) error {
	p := tea.NewProgram(
		New(ctx, session, opts),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		// Remove-all confirmation: y confirms, any other key cancels
		if m.confirmClear {
			m.confirmClear = false
			if key := msg.String(); key == "y" || key == "Y" {
				m.apply(m.session.RemoveAll(m.ctx), "Removed all tasks")
			} else {
				m.message = ""
			}
			return m, nil
		}

		if m.focus == FocusList {
			return m.updateList(msg)
		}
		return m.updateForm(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.selected < len(m.tasks)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case " ", "space", "enter", "x":
		if task, ok := m.selectedTask(); ok {
			m.apply(m.session.Toggle(m.ctx, task.ID), "")
		}
	case "d":
		if task, ok := m.selectedTask(); ok {
			m.apply(m.session.Remove(m.ctx, task.ID), fmt.Sprintf("Removed %q", task.Name))
		}
	case "D":
		if m.hasTasks {
			m.confirmClear = true
			m.message = "Remove all tasks? (y/N)"
		}
	case "f":
		m.session.CycleFilter()
		m.refresh()
	case "s":
		m.session.CycleSort()
		m.refresh()
	case "a", "n", "tab":
		return m.setFocus(FocusName)
	case "shift+tab":
		return m.setFocus(FocusDue)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.setFocus(FocusList)
	case "tab":
		return m.setFocus((m.focus + 1) % FocusCount)
	case "shift+tab":
		return m.setFocus((m.focus + FocusCount - 1) % FocusCount)
	case "enter":
		return m.submit()
	}

	switch m.focus {
	case FocusPriority:
		switch msg.String() {
		case "left", "right", " ", "space", "h", "l":
			m.session.CyclePriority()
		}
		return m, nil
	case FocusName:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	case FocusDue:
		var cmd tea.Cmd
		m.dueInput, cmd = m.dueInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submit copies the form into the draft and adds it. On failure the form is
// kept and the reason is shown inline.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.session.SetName(m.nameInput.Value())
	if err := m.session.SetDueDate(m.dueInput.Value()); err != nil {
		m.err = err
		return m, nil
	}

	task, err := m.session.Submit(m.ctx)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.nameInput.Reset()
	m.dueInput.Reset()
	m.err = nil
	m.message = fmt.Sprintf("Added %q", task.Name)
	m.refresh()
	return m.setFocus(FocusName)
}

func (m Model) setFocus(focus int) (tea.Model, tea.Cmd) {
	m.focus = focus
	m.nameInput.Blur()
	m.dueInput.Blur()

	var cmd tea.Cmd
	switch focus {
	case FocusName:
		cmd = m.nameInput.Focus()
	case FocusDue:
		cmd = m.dueInput.Focus()
	}
	return m, cmd
}

// apply records the outcome of a mutation and reloads the view
func (m *Model) apply(err error, message string) {
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.message = message
	m.refresh()
}

// refresh reloads the view and keeps the selection in range
func (m *Model) refresh() {
	tasks, err := m.session.View(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	hasTasks, err := m.session.HasTasks(m.ctx)
	if err != nil {
		m.err = err
		return
	}

	m.tasks = tasks
	m.hasTasks = hasTasks
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) selectedTask() (domain.Task, bool) {
	if len(m.tasks) == 0 || m.selected >= len(m.tasks) {
		return domain.Task{}, false
	}
	return m.tasks[m.selected], true
}

// View renders the form, the task list and the help line
func (m Model) View() string {
	sections := []string{
		titleStyle.Render("Task List"),
		m.renderForm(),
	}
	if line := m.renderStatus(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, m.renderList(), m.renderHelp())

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width > 0 {
		return borderStyle.Width(m.width - 2).Render(view)
	}
	return view
}

func (m Model) renderForm() string {
	draft := m.session.Draft()
	priority := fmt.Sprintf("< %s >", draft.Priority)

	lines := []string{
		m.label("Name", FocusName) + m.nameInput.View(),
		m.label("Priority", FocusPriority) + priority,
		m.label("Due", FocusDue) + m.dueInput.View(),
	}
	return strings.Join(lines, "\n")
}

func (m Model) label(text string, focus int) string {
	text = fmt.Sprintf("%-10s", text+":")
	if m.focus == focus {
		return focusedLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func (m Model) renderStatus() string {
	if m.err != nil {
		msg := display.ErrorMessage(m.err)
		if errors.ShouldLogError(m.err) {
			msg = "Error: " + msg
		}
		return errorStyle.Render(msg)
	}
	return m.message
}

func (m Model) renderList() string {
	header := fmt.Sprintf("%s [filter: %s • sort: %s]",
		display.Count(len(m.tasks)), m.session.Filter(), m.session.Sort())
	lines := []string{header}

	if len(m.tasks) == 0 {
		lines = append(lines, labelStyle.Render("No tasks available."))
		return strings.Join(lines, "\n")
	}

	now := m.now()
	for i, task := range m.tasks {
		line := fmt.Sprintf("%s %-6s %-12s %s",
			display.StatusMark(task.Status),
			task.Priority,
			m.formatter.Due(task.DueDate, now),
			task.Name,
		)

		style := incompleteStyle
		if task.IsComplete() {
			style = completeStyle
		}
		prefix := "  "
		if i == m.selected && m.focus == FocusList {
			prefix = "> "
			style = style.Inherit(selectedStyle)
		}
		lines = append(lines, prefix+style.Render(line))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	if m.confirmClear {
		return helpStyle.Render(" y: remove all • any other key: cancel")
	}

	if m.focus != FocusList {
		return helpStyle.Render(" Tab/Shift+Tab: next/prev field • ←/→: priority • Enter: add • Esc: back to list")
	}

	help := " j/k: navigate • Space: toggle • d: remove"
	if m.hasTasks {
		help += " • D: remove all"
	}
	help += " • f: filter • s: sort • a: add • q: quit"
	return helpStyle.Render(help)
}
