package audio

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const DefaultBPM = 120.0

var (
	ErrUnknownPitch     = errors.New("unknown pitch")
	ErrUnknownNoteValue = errors.New("unknown note value")
)

var pitchClasses = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// Frequency converts scientific pitch notation ("C4", "F#3", "Bb5") to Hz in
// twelve-tone equal temperament with A4 at 440 Hz. A missing octave means 4.
func Frequency(pitch string) (float64, error) {
	p := strings.TrimSpace(pitch)
	if p == "" {
		return 0, fmt.Errorf("%w: empty", ErrUnknownPitch)
	}
	semitone, ok := pitchClasses[strings.ToUpper(p[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPitch, pitch)
	}
	rest := p[1:]
	for len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		if rest[0] == '#' {
			semitone++
		} else {
			semitone--
		}
		rest = rest[1:]
	}

	octave := 4
	if rest != "" {
		o, err := strconv.Atoi(rest)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnknownPitch, pitch)
		}
		octave = o
	}

	midi := semitone + (octave+1)*12
	return 440 * math.Pow(2, float64(midi-69)/12), nil
}

// NoteValue converts a note value ("4n", "8n", "8t", "4n.") to a duration at
// the given tempo. Triplets take two thirds and dotted values one and a half
// times the plain value.
func NoteValue(value string, bpm float64) (time.Duration, error) {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	v := strings.TrimSpace(value)
	dotted := strings.HasSuffix(v, ".")
	v = strings.TrimSuffix(v, ".")
	if len(v) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNoteValue, value)
	}

	kind := v[len(v)-1]
	if kind != 'n' && kind != 't' {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNoteValue, value)
	}
	div, err := strconv.Atoi(v[:len(v)-1])
	if err != nil || div <= 0 || div&(div-1) != 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNoteValue, value)
	}

	seconds := 60 / bpm * 4 / float64(div)
	if kind == 't' {
		seconds *= 2.0 / 3.0
	}
	if dotted {
		seconds *= 1.5
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
