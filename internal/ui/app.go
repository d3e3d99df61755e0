package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/jamroom/internal/audio"
	"github.com/saravenpi/jamroom/internal/session"
)

type focusArea int

const (
	focusTrack focusArea = iota
	focusControls
	focusUsers
	focusChat
)

// wakeMsg asks the app to fire the session tasks due at.
type wakeMsg struct {
	at time.Time
}

// AppModel is the main screen. The session holds all state; the widgets
// here are re-synced from it after every dispatch.
type AppModel struct {
	session      *session.Session
	synth        audio.Synth
	log          *slog.Logger
	track        textinput.Model
	controls     list.Model
	roster       list.Model
	chat         chatPanel
	spinner      spinner.Model
	focus        focusArea
	wakeAt       time.Time
	audioErr     error
	windowWidth  int
	windowHeight int
}

func NewAppModel(sess *session.Session, synth audio.Synth, logger *slog.Logger) AppModel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	track := textinput.New()
	track.Placeholder = "Enter track name"
	track.CharLimit = 100
	track.Width = 30

	m := AppModel{
		session:      sess,
		synth:        synth,
		log:          logger,
		track:        track,
		controls:     newControlsList(),
		roster:       newRosterList(sess.State().Mode),
		chat:         newChatPanel(),
		spinner:      s,
		focus:        focusControls,
		windowWidth:  100,
		windowHeight: 30,
	}
	m.sync()
	m.resize(m.windowWidth, m.windowHeight)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case wakeMsg:
		if msg.at.Equal(m.wakeAt) {
			m.wakeAt = time.Time{}
		}
		m.runEffects(m.session.Advance())
		m.sync()
		cmd := m.scheduleWake()
		return m, cmd

	case spinner.TickMsg:
		st := m.session.State()
		if st.IsPlaying || st.IsLooping {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusTrack:
		m.track, cmd = m.track.Update(msg)
	case focusChat:
		m.chat.textarea, cmd = m.chat.textarea.Update(msg)
	}
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+r":
		return m.apply(session.Reset{})
	case "tab":
		cmd := m.cycleFocus(1)
		return m, cmd
	case "shift+tab":
		cmd := m.cycleFocus(-1)
		return m, cmd
	}

	switch m.focus {
	case focusChat:
		switch key {
		case "esc":
			cmd := m.setFocus(focusUsers)
			return m, cmd
		case "enter", "ctrl+s":
			return m.apply(session.SendMessage{})
		}
		var cmd tea.Cmd
		m.chat.textarea, cmd = m.chat.textarea.Update(msg)
		if v := m.chat.textarea.Value(); v != m.session.State().Draft {
			cmd = tea.Batch(cmd, m.dispatch(session.SetDraft{Text: v}))
		}
		return m, cmd

	case focusTrack:
		if key == "esc" || key == "enter" {
			cmd := m.setFocus(focusControls)
			return m, cmd
		}
		var cmd tea.Cmd
		m.track, cmd = m.track.Update(msg)
		if v := m.track.Value(); v != m.session.State().TrackName {
			cmd = tea.Batch(cmd, m.dispatch(session.SetTrackName{Name: v}))
		}
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "c":
		return m.apply(session.BeginCreateMusic{})
	case "p":
		return m.apply(session.PlaySound{})
	case "l":
		return m.apply(session.ToggleLoop{})
	case "a":
		return m.apply(session.BeginAddUser{})
	case "t":
		cmd := m.setFocus(focusTrack)
		return m, cmd
	case "i":
		cmd := m.setFocus(focusChat)
		return m, cmd
	case "enter", " ":
		if m.focus == focusControls {
			if item, ok := m.controls.SelectedItem().(controlItem); ok {
				return m.apply(item.action)
			}
			return m, nil
		}
		if item, ok := m.roster.SelectedItem().(userItem); ok {
			return m.apply(session.ToggleSelection{User: item.user})
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusControls {
		m.controls, cmd = m.controls.Update(msg)
	} else {
		m.roster, cmd = m.roster.Update(msg)
	}
	return m, cmd
}

// apply dispatches a and moves to the prompt or alert screen when the new
// state asks for one.
func (m AppModel) apply(a session.Action) (tea.Model, tea.Cmd) {
	cmd := m.dispatch(a)
	return m.next(cmd)
}

func (m AppModel) next(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	st := m.session.State()
	if st.Prompt != nil {
		prompt := NewPromptModel(m, *st.Prompt)
		return prompt, tea.Batch(cmd, prompt.Init())
	}
	if st.Alert != "" {
		return NewAlertModel(m, st.Alert), cmd
	}
	return m, cmd
}

func (m *AppModel) dispatch(a session.Action) tea.Cmd {
	prev := m.session.State()
	m.runEffects(m.session.Dispatch(a))
	m.sync()

	cmds := []tea.Cmd{m.scheduleWake()}
	st := m.session.State()
	if !(prev.IsPlaying || prev.IsLooping) && (st.IsPlaying || st.IsLooping) {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// runEffects hands audio effects to the synth. Failures are logged and shown
// in the status line; the session state never depends on them.
func (m *AppModel) runEffects(effects []session.Effect) {
	ctx := context.Background()
	for _, eff := range effects {
		var err error
		switch e := eff.(type) {
		case session.PlayNotes:
			err = m.synth.PlayNotes(ctx, e.Notes)
		case session.StartLoop:
			err = m.synth.StartLoop(ctx, e.Note, e.Interval)
		case session.StopLoop:
			err = m.synth.StopLoop()
		}
		if err != nil {
			m.log.Warn("audio effect failed", "effect", fmt.Sprintf("%T", eff), "error", err)
			m.audioErr = err
		}
	}
}

// scheduleWake arms a tick for the next due task unless an earlier one is
// already armed.
func (m *AppModel) scheduleWake() tea.Cmd {
	d, ok := m.session.NextWake()
	if !ok {
		return nil
	}
	at := m.session.Now().Add(d)
	if !m.wakeAt.IsZero() && !at.Before(m.wakeAt) {
		return nil
	}
	m.wakeAt = at
	return tea.Tick(d, func(time.Time) tea.Msg {
		return wakeMsg{at: at}
	})
}

// sync copies the session state into the widgets.
func (m *AppModel) sync() {
	st := m.session.State()

	setItemsKeepCursor(&m.controls, controlItems(st.IsLooping))
	setItemsKeepCursor(&m.roster, rosterItems(st))

	if m.track.Value() != st.TrackName {
		m.track.SetValue(st.TrackName)
	}
	if m.chat.textarea.Value() != st.Draft {
		m.chat.textarea.SetValue(st.Draft)
	}
	m.chat.setContent(st)

	if m.focus == focusChat && len(st.Selection) == 0 {
		m.setFocus(focusUsers)
	}
}

func setItemsKeepCursor(l *list.Model, items []list.Item) {
	idx := l.Index()
	l.SetItems(items)
	if len(items) > 0 {
		l.Select(min(idx, len(items)-1))
	}
}

func (m *AppModel) cycleFocus(step int) tea.Cmd {
	areas := []focusArea{focusTrack, focusControls, focusUsers}
	if len(m.session.State().Selection) > 0 {
		areas = append(areas, focusChat)
	}
	cur := 0
	for i, a := range areas {
		if a == m.focus {
			cur = i
		}
	}
	return m.setFocus(areas[(cur+step+len(areas))%len(areas)])
}

func (m *AppModel) setFocus(f focusArea) tea.Cmd {
	if f == focusChat && len(m.session.State().Selection) == 0 {
		return nil
	}
	m.focus = f
	m.track.Blur()
	m.chat.textarea.Blur()

	switch f {
	case focusTrack:
		m.track.Focus()
		return textinput.Blink
	case focusChat:
		m.chat.textarea.Focus()
		return textarea.Blink
	}
	return nil
}

func (m *AppModel) resize(width, height int) {
	m.windowWidth = width
	m.windowHeight = height

	bodyHeight := max(height-4, 10)
	left := width * 2 / 5
	users := width / 4
	chat := width - left - users

	m.track.Width = max(left-8, 10)
	m.controls.SetSize(left-4, max(bodyHeight-10, 6))
	m.roster.SetSize(users-4, bodyHeight-2)
	m.chat.setSize(max(chat-4, 10), bodyHeight-2)
	m.chat.setContent(m.session.State())
}

func (m AppModel) panel(content string, focused bool, width int) string {
	style := panelStyle
	if focused {
		style = focusedPanelStyle
	}
	return style.Width(max(width-2, 10)).Render(content)
}

func (m AppModel) statusView() string {
	st := m.session.State()
	var lines []string
	if st.IsPlaying {
		lines = append(lines, fmt.Sprintf("%s 🔊 Playing your track...", m.spinner.View()))
	}
	if st.IsLooping {
		lines = append(lines, loopingStyle.Render("🔁 Looping"))
	}
	if m.audioErr != nil {
		lines = append(lines, errorStyle.Render("audio: "+m.audioErr.Error()))
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) feedView() string {
	st := m.session.State()
	lines := make([]string, 0, len(st.Feed))
	for _, n := range st.Feed {
		lines = append(lines, noteStyle.Render(n.Text))
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) View() string {
	st := m.session.State()
	left := m.windowWidth * 2 / 5
	users := m.windowWidth / 4
	chat := m.windowWidth - left - users

	trackLabel := normalStyle.Render("Track:")
	if m.focus == focusTrack {
		trackLabel = selectedStyle.Render("> Track:")
	}

	var music strings.Builder
	music.WriteString(trackLabel + " " + m.track.View() + "\n\n")
	music.WriteString(m.controls.View())
	if status := m.statusView(); status != "" {
		music.WriteString("\n" + status)
	}
	if feed := m.feedView(); feed != "" {
		music.WriteString("\n\n" + feed)
	}

	panels := []string{
		m.panel(music.String(), m.focus == focusControls || m.focus == focusTrack, left),
		m.panel(m.roster.View(), m.focus == focusUsers, users),
	}
	if len(st.Selection) > 0 {
		panels = append(panels, m.panel(m.chat.view(st, m.focus == focusChat), m.focus == focusChat, chat))
	}

	s := lipgloss.JoinHorizontal(lipgloss.Top, panels...) + "\n"
	s += helpStyle.Render(m.helpText())
	return s
}

func (m AppModel) helpText() string {
	switch m.focus {
	case focusChat:
		return "enter/ctrl+s: send • esc: back to users • tab: next panel • ctrl+r: reset • ctrl+c: quit"
	case focusTrack:
		return "type a track name • enter/esc: done • tab: next panel"
	}
	return "↑↓/jk: navigate • enter/space: select • c: create • p: play • l: loop • a: add user • t: track • i: chat • tab: next panel • ctrl+r: reset • q: quit"
}
