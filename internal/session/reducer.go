package session

import (
	"fmt"
	"strings"

	"github.com/saravenpi/jamroom/internal/models"
)

type Action interface {
	action()
}

type (
	AddUser         struct{ Name string }
	ToggleSelection struct{ User models.User }
	SetDraft        struct{ Text string }
	SetTrackName    struct{ Name string }
	// SendMessage sends Text, or the pending draft when Text is empty.
	SendMessage       struct{ Text string }
	NotifyFileCreated struct{ FileName string }
	PushNotification  struct{ Text string }
	PlaySound         struct{}
	StartLooping      struct{}
	StopLooping       struct{}
	ToggleLoop        struct{}
	BeginCreateMusic  struct{}
	BeginAddUser      struct{}
	SubmitPrompt      struct{ Value string }
	// CancelPrompt behaves like submitting an empty value.
	CancelPrompt struct{}
	DismissAlert struct{}
	Reset        struct{}
	// Fire applies a task whose delay has elapsed.
	Fire struct{ Task Task }
)

func (AddUser) action()           {}
func (ToggleSelection) action()   {}
func (SetDraft) action()          {}
func (SetTrackName) action()      {}
func (SendMessage) action()       {}
func (NotifyFileCreated) action() {}
func (PushNotification) action()  {}
func (PlaySound) action()         {}
func (StartLooping) action()      {}
func (StopLooping) action()       {}
func (ToggleLoop) action()        {}
func (BeginCreateMusic) action()  {}
func (BeginAddUser) action()      {}
func (SubmitPrompt) action()      {}
func (CancelPrompt) action()      {}
func (DismissAlert) action()      {}
func (Reset) action()             {}
func (Fire) action()              {}

// Reduce maps a state and an action to the next state plus the effects the
// host must carry out. It is pure.
func Reduce(s State, a Action) (State, []Effect) {
	switch a := a.(type) {
	case AddUser:
		return s.addUser(a.Name), nil

	case ToggleSelection:
		return s.toggleSelection(a.User), nil

	case SetDraft:
		c := s.clone()
		c.Draft = a.Text
		return c, nil

	case SetTrackName:
		c := s.clone()
		c.TrackName = a.Name
		return c, nil

	case SendMessage:
		text := a.Text
		if text == "" {
			text = s.Draft
		}
		if strings.TrimSpace(text) == "" {
			return s, nil
		}
		c := s.appendToSelected("You: " + Truncate(text, MessageLimit)).clone()
		c.Draft = ""
		return c, nil

	case NotifyFileCreated:
		return s.notifyFileCreated(a.FileName)

	case PushNotification:
		c, eff := s.pushNotification(a.Text)
		return c, []Effect{eff}

	case PlaySound:
		c, eff := s.pushNotification("Tune 1 created!")
		c.IsPlaying = true
		c.playToken++
		return c, []Effect{
			PlayNotes{Notes: PlayCue},
			Schedule{Task: Task{
				Kind:       TaskClearPlaying,
				Delay:      PlayingDuration,
				Generation: c.Generation,
				Target:     c.playToken,
			}},
			eff,
		}

	case StartLooping:
		if s.IsLooping {
			return s, nil
		}
		c, eff := s.pushNotification("Loop started!")
		c.IsLooping = true
		return c, []Effect{StartLoop{Note: LoopNote, Interval: LoopInterval}, eff}

	case StopLooping:
		if !s.IsLooping {
			return s, nil
		}
		c := s.clone()
		c.IsLooping = false
		return c, []Effect{StopLoop{}}

	case ToggleLoop:
		if s.IsLooping {
			return Reduce(s, StopLooping{})
		}
		return Reduce(s, StartLooping{})

	case BeginCreateMusic:
		if s.Prompt != nil {
			return s, nil
		}
		c := s.clone()
		c.Prompt = &models.Prompt{Kind: models.PromptFileName, Label: "Enter the file name:", Initial: s.TrackName}
		return c, nil

	case BeginAddUser:
		if s.Prompt != nil {
			return s, nil
		}
		c := s.clone()
		c.Prompt = &models.Prompt{Kind: models.PromptUserName, Label: "Enter the new user's name:"}
		return c, nil

	case SubmitPrompt:
		return s.submitPrompt(a.Value)

	case CancelPrompt:
		return s.submitPrompt("")

	case DismissAlert:
		if s.Alert == "" {
			return s, nil
		}
		c := s.clone()
		c.Alert = ""
		return c, nil

	case Reset:
		c := NewState(s.opts)
		c.Generation = s.Generation + 1
		c.nextNotification = s.nextNotification
		c.playToken = s.playToken
		if s.IsLooping {
			return c, []Effect{StopLoop{}}
		}
		return c, nil

	case Fire:
		return s.fire(a.Task), nil
	}

	return s, nil
}

func (s State) notifyFileCreated(fileName string) (State, []Effect) {
	c := s.appendToSelected("Sent you a mock file: " + fileName)
	c, eff := c.pushNotification("Created a mock file: " + fileName)
	c.Alert = fmt.Sprintf("🎶 Mock file created: %s", fileName)
	return c, []Effect{eff}
}

// submitPrompt feeds one answer into the active prompt. The create-music flow
// asks for a file name, then a genre, then plays the creation cue and
// delivers the mock file to the selection.
func (s State) submitPrompt(value string) (State, []Effect) {
	if s.Prompt == nil {
		return s, nil
	}
	c := s.clone()
	kind := c.Prompt.Kind
	c.Prompt = nil

	switch kind {
	case models.PromptUserName:
		return c.addUser(value), nil

	case models.PromptFileName:
		c.pendingFileName = orDefault(value, DefaultTrackName)
		c.Prompt = &models.Prompt{Kind: models.PromptGenre, Label: "Enter the genre:"}
		return c, nil

	case models.PromptGenre:
		fileName := MockFileName(c.pendingFileName, value)
		c.pendingFileName = ""
		next, effects := c.notifyFileCreated(fileName)
		return next, append([]Effect{PlayNotes{Notes: CreationCue}}, effects...)
	}

	return c, nil
}

func (s State) fire(t Task) State {
	if t.Generation != s.Generation {
		return s
	}
	switch t.Kind {
	case TaskClearPlaying:
		if !s.IsPlaying || t.Target != s.playToken {
			return s
		}
		c := s.clone()
		c.IsPlaying = false
		return c
	case TaskExpireNotification:
		return s.expireNotification(t.Target)
	}
	return s
}
