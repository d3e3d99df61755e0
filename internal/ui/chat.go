package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/muesli/reflow/wordwrap"
	"github.com/saravenpi/jamroom/internal/session"
)

// chatPanel shows the logs of every selected user and the shared compose box.
type chatPanel struct {
	viewport viewport.Model
	textarea textarea.Model
	width    int
}

func newChatPanel() chatPanel {
	vp := viewport.New(40, 10)

	ta := textarea.New()
	ta.Placeholder = "Type a message"
	ta.CharLimit = 1000
	ta.SetHeight(2)
	ta.SetWidth(40)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	return chatPanel{viewport: vp, textarea: ta, width: 40}
}

func (c *chatPanel) setSize(width, height int) {
	c.width = width
	c.viewport.Width = width
	c.viewport.Height = max(height-6, 3)
	c.textarea.SetWidth(width)
}

func (c *chatPanel) setContent(s session.State) {
	var content strings.Builder
	wrapWidth := c.viewport.Width
	if wrapWidth <= 0 {
		wrapWidth = 40
	}

	for i, u := range s.Selection {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(messageHeaderStyle.Render(string(u)) + "\n")
		msgs := s.ChatLog[u]
		if len(msgs) == 0 {
			content.WriteString(helpStyle.Render("  nothing yet") + "\n")
			continue
		}
		for _, msg := range msgs {
			wrapped := wordwrap.String(msg, wrapWidth-2)
			content.WriteString(messageFromMeStyle.Render(wrapped) + "\n")
		}
	}

	c.viewport.SetContent(content.String())
	c.viewport.GotoBottom()
}

func (c chatPanel) view(s session.State, focused bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(wordwrap.String("Chat with "+s.ChatWith(), c.width)) + "\n")
	b.WriteString(c.viewport.View() + "\n")
	label := "Message:"
	if focused {
		label = "> " + label
	}
	b.WriteString(inputStyle.Render(label) + "\n")
	b.WriteString(c.textarea.View())
	return b.String()
}
