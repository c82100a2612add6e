// Package tui provides a full-screen Bubble Tea variant of the question
// session.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bull/docqa/internal/session"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type exchange struct {
	question string
	answer   string
	err      error
}

// Model is the Bubble Tea model for the question session. Queries run
// synchronously on Enter, matching the one-question-at-a-time contract
// of the underlying engine.
type Model struct {
	engine     session.Engine
	input      textinput.Model
	viewport   viewport.Model
	transcript []exchange
	status     string
	ready      bool
}

// New creates a TUI session over the given engine.
func New(engine session.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "You: "
	ti.Placeholder = "Ask a question ('exit' to leave)"
	ti.Focus()
	ti.CharLimit = 0
	return Model{
		engine:   engine,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   "Index ready.",
	}
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, frameHeight := inputBoxStyle.GetFrameSize()
		reserved := 2 + frameHeight + 1 // title + input box + status
		m.viewport.Width = msg.Width
		m.viewport.Height = max(3, msg.Height-reserved)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			if session.IsExit(question) {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.ask(question)
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, nil
		case "up":
			m.viewport.ScrollUp(1)
			return m, nil
		case "down":
			m.viewport.ScrollDown(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask runs one query and records the exchange. A failed query stays in
// the transcript with the usual hint; the session continues.
func (m *Model) ask(question string) {
	answer, err := m.engine.Query(context.Background(), question)
	m.transcript = append(m.transcript, exchange{question: question, answer: answer, err: err})
	if err != nil {
		m.status = session.ErrorHint
	} else {
		m.status = fmt.Sprintf("%d question(s) answered.", len(m.transcript))
	}
}

// View renders the transcript, input box, and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := titleStyle.Render("docqa")
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return title + "\n" + m.viewport.View() + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No questions yet."
	}
	var b strings.Builder
	for i, ex := range m.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("You: " + ex.question))
		b.WriteString("\n")
		if ex.err != nil {
			b.WriteString(errorStyle.Render("Error: " + ex.err.Error()))
		} else {
			b.WriteString("AI: " + ex.answer)
		}
	}
	return b.String()
}
