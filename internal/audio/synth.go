package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/saravenpi/jamroom/internal/models"
)

// Synth is the tone-synthesis collaborator. Calls return once the notes are
// scheduled; playback itself is not awaited.
type Synth interface {
	PlayNotes(ctx context.Context, notes []models.Note) error
	StartLoop(ctx context.Context, note models.Note, interval string) error
	StopLoop() error
}

const (
	BackendBell    = "bell"
	BackendCommand = "command"
	BackendLog     = "log"
	BackendOff     = "off"
)

var ErrUnknownBackend = errors.New("unknown audio backend")

type Options struct {
	Backend string
	// Command is the player argv for the command backend. The placeholders
	// {pitch}, {freq} and {seconds} are substituted per note.
	Command []string
	BPM     float64
}

// New builds the synth selected by opts.Backend. Bell output goes to out.
func New(opts Options, clk clock.Clock, logger *slog.Logger, out io.Writer) (Synth, error) {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "audio", "backend", opts.Backend)

	switch strings.ToLower(opts.Backend) {
	case BackendBell, "":
		return NewBellSynth(out, clk, opts.BPM), nil
	case BackendCommand:
		return NewCommandSynth(opts.Command, clk, opts.BPM, logger)
	case BackendLog:
		return NewLogSynth(logger, opts.BPM), nil
	case BackendOff:
		return Silent{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// Silent discards every call.
type Silent struct{}

func (Silent) PlayNotes(context.Context, []models.Note) error       { return nil }
func (Silent) StartLoop(context.Context, models.Note, string) error { return nil }
func (Silent) StopLoop() error                                      { return nil }

// validate checks every pitch and duration before anything is scheduled.
func validate(notes []models.Note, bpm float64) error {
	for _, n := range notes {
		if _, err := Frequency(n.Pitch); err != nil {
			return err
		}
		if _, err := NoteValue(n.Duration, bpm); err != nil {
			return err
		}
	}
	return nil
}

// looper repeats a callback on a clock ticker until stopped.
type looper struct {
	mu     sync.Mutex
	ticker *clock.Ticker
	done   chan struct{}
}

func (l *looper) start(clk clock.Clock, every time.Duration, fn func()) {
	l.stop()

	l.mu.Lock()
	defer l.mu.Unlock()
	ticker := clk.Ticker(every)
	done := make(chan struct{})
	l.ticker, l.done = ticker, done

	go func() {
		fn()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()
}

func (l *looper) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ticker == nil {
		return
	}
	l.ticker.Stop()
	close(l.done)
	l.ticker, l.done = nil, nil
}

func (l *looper) running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticker != nil
}
