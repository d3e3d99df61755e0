package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/jamroom/internal/session"
)

type controlItem struct {
	title  string
	desc   string
	action session.Action
}

func (i controlItem) FilterValue() string { return i.title }
func (i controlItem) Title() string       { return i.title }
func (i controlItem) Description() string { return i.desc }

func controlItems(looping bool) []list.Item {
	loop := controlItem{title: "🔁 Start Loop", desc: "Repeat a beat until stopped", action: session.StartLooping{}}
	if looping {
		loop = controlItem{title: "🛑 Stop Loop", desc: "Stop the running loop", action: session.StopLooping{}}
	}
	return []list.Item{
		controlItem{title: "🎼 Create Music (Mock)", desc: "Name a track and send it to the selection", action: session.BeginCreateMusic{}},
		controlItem{title: "▶️ Play Sound", desc: "Play a single note", action: session.PlaySound{}},
		loop,
		controlItem{title: "➕ Add User", desc: "Add someone to the user list", action: session.BeginAddUser{}},
	}
}

// newControlsList creates the list of music and roster controls.
func newControlsList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("74")).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("8"))

	l := list.New(controlItems(false), delegate, 40, 14)
	l.Title = "🎧 Music App"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}
