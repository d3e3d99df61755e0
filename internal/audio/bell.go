package audio

import (
	"context"
	"io"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/saravenpi/jamroom/internal/models"
)

const bel = "\a"

// BellSynth rings the terminal bell once per note. Pitch is ignored but
// timing follows the note offsets and the loop interval.
type BellSynth struct {
	out   io.Writer
	clock clock.Clock
	bpm   float64
	mu    sync.Mutex
	loop  looper
}

func NewBellSynth(out io.Writer, clk clock.Clock, bpm float64) *BellSynth {
	if out == nil {
		out = io.Discard
	}
	return &BellSynth{out: out, clock: clk, bpm: bpm}
}

func (b *BellSynth) PlayNotes(ctx context.Context, notes []models.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(notes, b.bpm); err != nil {
		return err
	}
	for _, n := range notes {
		if n.Offset <= 0 {
			b.ring()
			continue
		}
		b.clock.AfterFunc(n.Offset, b.ring)
	}
	return nil
}

func (b *BellSynth) StartLoop(ctx context.Context, note models.Note, interval string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate([]models.Note{note}, b.bpm); err != nil {
		return err
	}
	every, err := NoteValue(interval, b.bpm)
	if err != nil {
		return err
	}
	b.loop.start(b.clock, every, b.ring)
	return nil
}

func (b *BellSynth) StopLoop() error {
	b.loop.stop()
	return nil
}

func (b *BellSynth) ring() {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.out, bel)
}
