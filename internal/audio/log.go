package audio

import (
	"context"
	"log/slog"

	"github.com/saravenpi/jamroom/internal/models"
)

// LogSynth writes each note to the logger instead of sounding it.
type LogSynth struct {
	log *slog.Logger
	bpm float64
}

func NewLogSynth(logger *slog.Logger, bpm float64) *LogSynth {
	return &LogSynth{log: logger, bpm: bpm}
}

func (s *LogSynth) PlayNotes(ctx context.Context, notes []models.Note) error {
	if err := validate(notes, s.bpm); err != nil {
		return err
	}
	for _, n := range notes {
		freq, _ := Frequency(n.Pitch)
		dur, _ := NoteValue(n.Duration, s.bpm)
		s.log.InfoContext(ctx, "note",
			"pitch", n.Pitch,
			"freq_hz", freq,
			"duration", dur,
			"offset", n.Offset,
		)
	}
	return nil
}

func (s *LogSynth) StartLoop(ctx context.Context, note models.Note, interval string) error {
	every, err := NoteValue(interval, s.bpm)
	if err != nil {
		return err
	}
	if err := validate([]models.Note{note}, s.bpm); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "loop started", "pitch", note.Pitch, "every", every)
	return nil
}

func (s *LogSynth) StopLoop() error {
	s.log.Info("loop stopped")
	return nil
}
