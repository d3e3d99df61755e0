package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/saravenpi/jamroom/internal/models"
	"github.com/saravenpi/jamroom/internal/session"
	"github.com/stretchr/testify/require"
)

type recordingSynth struct {
	played  [][]models.Note
	loops   []models.Note
	stopped int
}

func (r *recordingSynth) PlayNotes(_ context.Context, notes []models.Note) error {
	r.played = append(r.played, notes)
	return nil
}

func (r *recordingSynth) StartLoop(_ context.Context, note models.Note, _ string) error {
	r.loops = append(r.loops, note)
	return nil
}

func (r *recordingSynth) StopLoop() error {
	r.stopped++
	return nil
}

func newTestApp(mode models.SelectionMode) (AppModel, *session.Session, *clock.Mock, *recordingSynth) {
	clk := clock.NewMock()
	sess := session.New(session.Options{Mode: mode, Roster: session.DefaultRoster}, clk, nil)
	synth := &recordingSynth{}
	return NewAppModel(sess, synth, nil), sess, clk, synth
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestApp_Play_Marks_Playing_Until_Wake(t *testing.T) {
	req := require.New(t)
	app, sess, clk, synth := newTestApp(models.SelectionMulti)

	// When p is pressed
	m, cmd := app.Update(runes("p"))

	// Then the cue is played and a wake-up is armed
	req.NotNil(cmd)
	req.Equal([][]models.Note{session.PlayCue}, synth.played)
	req.True(sess.State().IsPlaying)
	req.Contains(m.View(), "Playing your track")
	req.Contains(m.View(), "Tune 1 created!")

	// When the playing duration passes and the wake-up arrives
	clk.Add(session.PlayingDuration)
	m = press(m, wakeMsg{at: clk.Now()})

	// Then the indicator is gone but the notice remains
	req.False(sess.State().IsPlaying)
	req.NotContains(m.View(), "Playing your track")
	req.Contains(m.View(), "Tune 1 created!")
}

func TestApp_Create_Music_Flow(t *testing.T) {
	req := require.New(t)
	app, sess, _, synth := newTestApp(models.SelectionMulti)

	// Given Bob is selected in the user panel
	m := press(app,
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeySpace},
	)
	req.Equal([]models.User{"Bob"}, sess.State().Selection)

	// When c is pressed the file name prompt opens with the track name
	m = press(m, runes("c"))
	prompt, ok := m.(PromptModel)
	req.True(ok)
	req.Equal(models.PromptFileName, prompt.prompt.Kind)
	req.Equal(session.DefaultTrackName, prompt.input.Value())
	req.Contains(m.View(), "Enter the file name:")

	// And esc falls back to the default name and asks for the genre
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	prompt, ok = m.(PromptModel)
	req.True(ok)
	req.Equal(models.PromptGenre, prompt.prompt.Kind)

	// And a genre is typed and submitted
	m = press(m, runes("Jazz"), tea.KeyMsg{Type: tea.KeyEnter})

	// Then the creation cue is played and the alert is shown
	req.Equal([][]models.Note{session.CreationCue}, synth.played)
	_, ok = m.(AlertModel)
	req.True(ok)
	req.Contains(m.View(), "Mock file created: Untitled Beat_Jazz.txt")
	req.Equal([]string{"Sent you a mock file: Untitled Beat_Jazz.txt"}, sess.State().Messages("Bob"))

	// When the alert is acknowledged the main screen returns
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	_, ok = m.(AppModel)
	req.True(ok)
	req.Empty(sess.State().Alert)
	req.Len(sess.State().Feed, 1)
	req.Equal("Created a mock file: Untitled Beat_Jazz.txt", sess.State().Feed[0].Text)
}

func TestApp_Add_User_Prompt(t *testing.T) {
	req := require.New(t)
	app, sess, _, _ := newTestApp(models.SelectionMulti)

	m := press(app, runes("a"), runes("Dana"), tea.KeyMsg{Type: tea.KeyEnter})

	_, ok := m.(AppModel)
	req.True(ok)
	req.Equal([]models.User{"Alice", "Bob", "Charlie", "Dana"}, sess.State().Roster)
	req.Contains(m.View(), "Dana")
}

func TestApp_Add_User_Cancelled(t *testing.T) {
	req := require.New(t)
	app, sess, _, _ := newTestApp(models.SelectionMulti)

	m := press(app, runes("a"), runes("Eve"), tea.KeyMsg{Type: tea.KeyEsc})

	_, ok := m.(AppModel)
	req.True(ok)
	req.Len(sess.State().Roster, 3)
}

func TestApp_Send_Message_To_Selection(t *testing.T) {
	req := require.New(t)
	app, sess, _, _ := newTestApp(models.SelectionMulti)

	// Given Alice and Bob are selected
	m := press(app,
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeySpace},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeySpace},
	)
	req.Equal([]models.User{"Alice", "Bob"}, sess.State().Selection)
	req.Contains(m.View(), "Chat with Alice, Bob")

	// When a message is typed in the chat panel and sent
	m = press(m, runes("i"), runes("hello"))
	req.Equal("hello", sess.State().Draft)
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	// Then both users get it and the draft is cleared
	req.Equal([]string{"You: hello"}, sess.State().Messages("Alice"))
	req.Equal([]string{"You: hello"}, sess.State().Messages("Bob"))
	req.Empty(sess.State().Draft)
	req.Contains(m.View(), "You: hello")
}

func TestApp_Single_Mode_Replaces_Selection(t *testing.T) {
	req := require.New(t)
	app, sess, _, _ := newTestApp(models.SelectionSingle)

	press(app,
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeySpace},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeySpace},
	)

	req.Equal([]models.User{"Bob"}, sess.State().Selection)
}

func TestApp_Loop_Toggle_And_Reset(t *testing.T) {
	req := require.New(t)
	app, sess, _, synth := newTestApp(models.SelectionMulti)

	// When l is pressed the loop starts
	m := press(app, runes("l"))
	req.True(sess.State().IsLooping)
	req.Equal([]models.Note{session.LoopNote}, synth.loops)
	req.Contains(m.View(), "Looping")

	// And pressing l again stops it
	m = press(m, runes("l"))
	req.False(sess.State().IsLooping)
	req.Equal(1, synth.stopped)

	// When a loop runs and the session is reset
	m = press(m, runes("l"), tea.KeyMsg{Type: tea.KeyCtrlR})

	// Then the loop is stopped and the state is fresh
	req.Equal(2, synth.stopped)
	req.False(sess.State().IsLooping)
	req.Empty(sess.State().Feed)
	req.Equal(uint64(1), sess.State().Generation)
	req.NotContains(m.View(), "Looping")
}

func TestApp_Stale_Wake_After_Reset_Is_Harmless(t *testing.T) {
	req := require.New(t)
	app, sess, clk, _ := newTestApp(models.SelectionMulti)

	m := press(app, runes("p"), tea.KeyMsg{Type: tea.KeyCtrlR})
	req.Equal(0, sess.Pending())

	clk.Add(session.NotificationLifetime)
	m = press(m, wakeMsg{at: clk.Now()})

	req.False(sess.State().IsPlaying)
	req.Empty(sess.State().Feed)
	_, ok := m.(AppModel)
	req.True(ok)
}

type failingSynth struct {
	recordingSynth
}

func (f *failingSynth) PlayNotes(context.Context, []models.Note) error {
	return errors.New("no sound device")
}

func TestApp_Audio_Failure_Does_Not_Block_State(t *testing.T) {
	req := require.New(t)
	sess := session.New(session.Options{Roster: session.DefaultRoster}, clock.NewMock(), nil)
	m := tea.Model(NewAppModel(sess, &failingSynth{}, nil))

	m = press(m, runes("p"))

	req.True(sess.State().IsPlaying)
	req.Contains(m.View(), "no sound device")
}

func TestApp_Wake_Keeps_Earliest_Due_Task(t *testing.T) {
	req := require.New(t)
	app, sess, clk, _ := newTestApp(models.SelectionMulti)
	start := sess.Now()

	// Given the loop notice arms a wake-up at its expiry
	m := press(app, runes("l"))
	req.Equal(start.Add(session.NotificationLifetime), m.(AppModel).wakeAt)

	// When a play schedules an earlier task the wake-up moves forward
	m = press(m, runes("p"))
	req.Equal(start.Add(session.PlayingDuration), m.(AppModel).wakeAt)

	// And a later task leaves it where it is
	clk.Add(100 * time.Millisecond)
	m = press(m, runes("p"))
	req.Equal(start.Add(session.PlayingDuration), m.(AppModel).wakeAt)

	// When that wake-up fires the next one is armed at the following task
	clk.Add(session.PlayingDuration - 100*time.Millisecond)
	m, cmd := m.Update(wakeMsg{at: start.Add(session.PlayingDuration)})
	req.NotNil(cmd)
	req.True(sess.State().IsPlaying)
	req.Equal(start.Add(100*time.Millisecond+session.PlayingDuration), m.(AppModel).wakeAt)
}
