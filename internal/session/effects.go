package session

import (
	"time"

	"github.com/saravenpi/jamroom/internal/models"
)

// Effect is something Reduce asks the host to do. Schedule effects are
// absorbed by Session; the audio effects are handed to the host.
type Effect interface {
	effect()
}

type TaskKind int

const (
	TaskClearPlaying TaskKind = iota
	TaskExpireNotification
)

func (k TaskKind) String() string {
	switch k {
	case TaskClearPlaying:
		return "clear_playing"
	case TaskExpireNotification:
		return "expire_notification"
	}
	return "unknown"
}

// Task is a deferred state change. Target is the notification ID for
// TaskExpireNotification and the play token for TaskClearPlaying.
type Task struct {
	ID         uint64
	Kind       TaskKind
	Delay      time.Duration
	Generation uint64
	Target     uint64
}

type Schedule struct {
	Task Task
}

type PlayNotes struct {
	Notes []models.Note
}

// StartLoop repeats Note every Interval (a note value such as "4n") until a
// StopLoop effect arrives.
type StartLoop struct {
	Note     models.Note
	Interval string
}

type StopLoop struct{}

func (Schedule) effect()  {}
func (PlayNotes) effect() {}
func (StartLoop) effect() {}
func (StopLoop) effect()  {}

var (
	// CreationCue is the arpeggio played when a mock file is created.
	CreationCue = []models.Note{
		{Pitch: "C4", Duration: "8n"},
		{Pitch: "E4", Duration: "8n", Offset: 500 * time.Millisecond},
		{Pitch: "G4", Duration: "8n", Offset: time.Second},
	}
	PlayCue  = []models.Note{{Pitch: "C4", Duration: "8n"}}
	LoopNote = models.Note{Pitch: "C4", Duration: "8n"}
)

const LoopInterval = "4n"
