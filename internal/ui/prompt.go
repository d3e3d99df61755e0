package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/jamroom/internal/models"
	"github.com/saravenpi/jamroom/internal/session"
)

// PromptModel asks for one line of input on behalf of the session. It keeps
// the main screen underneath so timers keep running while the user types.
type PromptModel struct {
	parent AppModel
	prompt models.Prompt
	input  textinput.Model
}

func NewPromptModel(parent AppModel, prompt models.Prompt) PromptModel {
	input := textinput.New()
	input.Placeholder = placeholderFor(prompt.Kind)
	input.Focus()
	input.CharLimit = 100
	input.Width = 50
	input.SetValue(prompt.Initial)

	return PromptModel{
		parent: parent,
		prompt: prompt,
		input:  input,
	}
}

func placeholderFor(kind models.PromptKind) string {
	switch kind {
	case models.PromptFileName:
		return session.DefaultTrackName
	case models.PromptGenre:
		return session.DefaultGenre
	default:
		return "Name"
	}
}

func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg, wakeMsg, spinner.TickMsg:
		return m.forward(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m.parent.apply(session.CancelPrompt{})
		case "enter", "ctrl+s":
			return m.parent.apply(session.SubmitPrompt{Value: m.input.Value()})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PromptModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.parent.Update(msg)
	if app, ok := updated.(AppModel); ok {
		m.parent = app
	}
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.input.Width = min(ws.Width-10, 60)
	}
	return m, cmd
}

func (m PromptModel) View() string {
	var b strings.Builder

	title := "Add User"
	if m.prompt.Kind != models.PromptUserName {
		title = "🎼 Create Music"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	focusedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("74"))
	b.WriteString(focusedStyle.Render(m.prompt.Label) + "\n")
	b.WriteString(m.input.View() + "\n\n")

	if feed := m.parent.feedView(); feed != "" {
		b.WriteString(feed + "\n\n")
	}

	help := "enter: ok • esc: cancel"
	if m.prompt.Kind != models.PromptUserName {
		help = "enter: ok • esc: use default"
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}
