package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/saravenpi/jamroom/internal/models"
)

// DefaultCommand plays a sine tone through SoX.
var DefaultCommand = []string{"play", "-q", "-n", "synth", "{seconds}", "sine", "{freq}"}

var ErrEmptyCommand = errors.New("player command is empty")

// runFunc runs a player process and returns its combined output.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// CommandSynth starts an external player process for every note. Player
// failures happen after the call returned, so they are only logged.
// StopLoop kills running players and drops notes still waiting on a timer.
type CommandSynth struct {
	argv  []string
	clock clock.Clock
	bpm   float64
	log   *slog.Logger
	run   runFunc
	loop  looper

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func NewCommandSynth(argv []string, clk clock.Clock, bpm float64, logger *slog.Logger) (*CommandSynth, error) {
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	if strings.TrimSpace(argv[0]) == "" {
		return nil, ErrEmptyCommand
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &CommandSynth{argv: argv, clock: clk, bpm: bpm, log: logger, run: execRun, ctx: ctx, cancel: cancel}, nil
}

// playCtx is the context players started now run under.
func (s *CommandSynth) playCtx() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *CommandSynth) PlayNotes(ctx context.Context, notes []models.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(notes, s.bpm); err != nil {
		return err
	}
	playCtx := s.playCtx()
	for _, n := range notes {
		if n.Offset <= 0 {
			go s.play(playCtx, n)
			continue
		}
		s.clock.AfterFunc(n.Offset, func() { s.play(playCtx, n) })
	}
	return nil
}

func (s *CommandSynth) StartLoop(ctx context.Context, note models.Note, interval string) error {
	if err := validate([]models.Note{note}, s.bpm); err != nil {
		return err
	}
	every, err := NoteValue(interval, s.bpm)
	if err != nil {
		return err
	}
	s.loop.start(s.clock, every, func() { go s.play(s.playCtx(), note) })
	return nil
}

func (s *CommandSynth) StopLoop() error {
	s.loop.stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel()
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return nil
}

func (s *CommandSynth) play(ctx context.Context, n models.Note) {
	if ctx.Err() != nil {
		return
	}
	if err := s.playNote(ctx, n); err != nil && ctx.Err() == nil {
		s.log.Warn("player command failed", "pitch", n.Pitch, "error", err)
	}
}

func (s *CommandSynth) playNote(ctx context.Context, n models.Note) error {
	args, err := s.expand(n)
	if err != nil {
		return err
	}
	output, err := s.run(ctx, args[0], args[1:]...)
	outputStr := strings.TrimSpace(string(output))
	if err != nil {
		if outputStr == "" {
			return fmt.Errorf("%s failed: %w", args[0], err)
		}
		return fmt.Errorf("%s failed: %w (output: %s)", args[0], err, outputStr)
	}
	return nil
}

// expand substitutes the note placeholders into the argv template.
func (s *CommandSynth) expand(n models.Note) ([]string, error) {
	freq, err := Frequency(n.Pitch)
	if err != nil {
		return nil, err
	}
	dur, err := NoteValue(n.Duration, s.bpm)
	if err != nil {
		return nil, err
	}
	r := strings.NewReplacer(
		"{pitch}", n.Pitch,
		"{freq}", strconv.FormatFloat(freq, 'f', 2, 64),
		"{seconds}", strconv.FormatFloat(dur.Seconds(), 'f', 3, 64),
	)
	args := make([]string, len(s.argv))
	for i, a := range s.argv {
		args[i] = r.Replace(a)
	}
	return args, nil
}
