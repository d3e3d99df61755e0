package session

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/saravenpi/jamroom/internal/models"
)

const (
	DefaultTrackName = "Untitled Beat"
	DefaultGenre     = "Rock"

	NameDisplayLimit = 8
	MessageLimit     = 100

	NotificationLifetime = 2000 * time.Millisecond
	PlayingDuration      = 1000 * time.Millisecond
)

// DefaultRoster is the roster a fresh session starts with.
var DefaultRoster = []models.User{"Alice", "Bob", "Charlie"}

// Options seed a State. Reset returns to the state built from the same options.
type Options struct {
	Mode      models.SelectionMode
	Roster    []models.User
	TrackName string
}

// State is the whole session as a value. Reduce never mutates a State it is
// given; every slice and the chat log map are copied before being changed.
type State struct {
	TrackName  string
	Draft      string
	IsPlaying  bool
	IsLooping  bool
	Feed       []models.Notification
	Roster     []models.User
	Selection  []models.User
	ChatLog    map[models.User][]string
	Mode       models.SelectionMode
	Generation uint64
	Prompt     *models.Prompt
	Alert      string

	opts             Options
	pendingFileName  string
	nextNotification uint64
	playToken        uint64
}

// NewState builds the initial state. Empty and duplicate roster names in
// opts are skipped the same way AddUser would skip them.
func NewState(opts Options) State {
	s := State{
		TrackName: opts.TrackName,
		Mode:      opts.Mode,
		ChatLog:   make(map[models.User][]string),
		opts:      opts,
	}
	if s.TrackName == "" {
		s.TrackName = DefaultTrackName
	}
	for _, u := range opts.Roster {
		s = s.addUser(string(u))
	}
	return s
}

func (s State) IsSelected(u models.User) bool {
	return lo.Contains(s.Selection, u)
}

// Messages returns a copy of the chat log for u.
func (s State) Messages(u models.User) []string {
	return append([]string(nil), s.ChatLog[u]...)
}

// ChatWith joins the selection for the chat panel header.
func (s State) ChatWith() string {
	return strings.Join(lo.Map(s.Selection, func(u models.User, _ int) string { return string(u) }), ", ")
}

func (s State) clone() State {
	c := s
	c.Feed = append([]models.Notification(nil), s.Feed...)
	c.Roster = append([]models.User(nil), s.Roster...)
	c.Selection = append([]models.User(nil), s.Selection...)
	c.ChatLog = lo.Assign(s.ChatLog)
	if s.Prompt != nil {
		p := *s.Prompt
		c.Prompt = &p
	}
	return c
}

func (s State) addUser(name string) State {
	name = strings.TrimSpace(name)
	u := models.User(name)
	if name == "" || lo.Contains(s.Roster, u) {
		return s
	}
	c := s.clone()
	c.Roster = append(c.Roster, u)
	c.ChatLog[u] = []string{}
	return c
}

func (s State) toggleSelection(u models.User) State {
	if !lo.Contains(s.Roster, u) {
		return s
	}
	c := s.clone()
	switch {
	case lo.Contains(c.Selection, u):
		c.Selection = lo.Without(c.Selection, u)
	case c.Mode == models.SelectionSingle:
		c.Selection = []models.User{u}
	default:
		c.Selection = append(c.Selection, u)
	}
	return c
}

// appendToSelected appends line to the log of every selected user. The log
// slices are replaced, never appended to in place.
func (s State) appendToSelected(line string) State {
	if len(s.Selection) == 0 {
		return s
	}
	c := s.clone()
	for _, u := range c.Selection {
		log := c.ChatLog[u]
		next := make([]string, len(log), len(log)+1)
		copy(next, log)
		c.ChatLog[u] = append(next, line)
	}
	return c
}

func (s State) pushNotification(text string) (State, Effect) {
	c := s.clone()
	c.nextNotification++
	n := models.Notification{ID: c.nextNotification, Text: text}
	c.Feed = append(c.Feed, n)
	return c, Schedule{Task: Task{
		Kind:       TaskExpireNotification,
		Delay:      NotificationLifetime,
		Generation: c.Generation,
		Target:     n.ID,
	}}
}

func (s State) expireNotification(id uint64) State {
	if !lo.ContainsBy(s.Feed, func(n models.Notification) bool { return n.ID == id }) {
		return s
	}
	c := s.clone()
	c.Feed = lo.Reject(c.Feed, func(n models.Notification, _ int) bool { return n.ID == id })
	return c
}
