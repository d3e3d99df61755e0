package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/jamroom/internal/session"
)

// AlertModel shows a one-shot message until it is acknowledged.
type AlertModel struct {
	parent  AppModel
	message string
}

func NewAlertModel(parent AppModel, message string) AlertModel {
	return AlertModel{parent: parent, message: message}
}

func (m AlertModel) Init() tea.Cmd {
	return nil
}

func (m AlertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg, wakeMsg, spinner.TickMsg:
		updated, cmd := m.parent.Update(msg)
		if app, ok := updated.(AppModel); ok {
			m.parent = app
		}
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter", "esc", " ", "y":
			return m.parent.apply(session.DismissAlert{})
		}
	}
	return m, nil
}

func (m AlertModel) View() string {
	box := lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("74"))

	s := box.Render(normalStyle.Render(m.message)) + "\n\n"
	if feed := m.parent.feedView(); feed != "" {
		s += feed + "\n\n"
	}
	s += helpStyle.Render("enter: ok")
	return s
}
