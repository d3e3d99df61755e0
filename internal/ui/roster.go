package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/jamroom/internal/models"
	"github.com/saravenpi/jamroom/internal/session"
)

type userItem struct {
	user     models.User
	selected bool
	messages int
}

func (i userItem) FilterValue() string { return string(i.user) }

func (i userItem) Title() string {
	mark := "[ ]"
	if i.selected {
		mark = "[x]"
	}
	return fmt.Sprintf("%s %s", mark, session.TruncateName(string(i.user)))
}

func (i userItem) Description() string {
	switch i.messages {
	case 0:
		return "no messages"
	case 1:
		return "1 message"
	default:
		return fmt.Sprintf("%d messages", i.messages)
	}
}

func rosterItems(s session.State) []list.Item {
	items := make([]list.Item, len(s.Roster))
	for i, u := range s.Roster {
		items[i] = userItem{user: u, selected: s.IsSelected(u), messages: len(s.ChatLog[u])}
	}
	return items
}

// newRosterList creates the user list. Names are truncated for display only.
func newRosterList(mode models.SelectionMode) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("74")).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("8"))

	l := list.New([]list.Item{}, delegate, 30, 14)
	l.Title = fmt.Sprintf("Users (%s select)", mode)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}
