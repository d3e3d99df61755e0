package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// User is a roster entry, identified by its display name.
type User string

type Notification struct {
	ID   uint64
	Text string
}

// Note is one synthesizer trigger. Pitch is scientific notation ("C4"),
// Duration a note value ("8n") and Offset the delay from the start of the cue.
type Note struct {
	Pitch    string
	Duration string
	Offset   time.Duration
}

type SelectionMode int

const (
	SelectionMulti SelectionMode = iota
	SelectionSingle
)

var ErrInvalidSelectionMode = errors.New("invalid selection mode")

func (m SelectionMode) String() string {
	if m == SelectionSingle {
		return "single"
	}
	return "multi"
}

// ParseSelectionMode accepts "single" or "multi" (case-insensitive). The empty
// string maps to multi.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "multi":
		return SelectionMulti, nil
	case "single":
		return SelectionSingle, nil
	default:
		return SelectionMulti, fmt.Errorf("%w: %q", ErrInvalidSelectionMode, s)
	}
}

type PromptKind int

const (
	PromptFileName PromptKind = iota
	PromptGenre
	PromptUserName
)

// Prompt is an outstanding request to the input collaborator.
type Prompt struct {
	Kind    PromptKind
	Label   string
	Initial string
}
