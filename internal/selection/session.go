package selection

import (
	"time"

	"github.com/ayusman/airkeys/internal/keyboard"
)

// Session is one typing session: the selection machine plus the text typed
// so far. The text lives as long as the session and is never persisted.
type Session struct {
	machine  *Machine
	text     []rune
	onCommit func(Event)
}

// NewSession creates an empty session using the given machine.
func NewSession(m *Machine) *Session {
	if m == nil {
		m = NewMachine(DefaultDwell, DefaultCooldown)
	}
	return &Session{machine: m}
}

// OnCommit sets a callback invoked after each commit has been applied.
func (s *Session) OnCommit(fn func(Event)) {
	s.onCommit = fn
}

// Machine returns the underlying selection machine.
func (s *Session) Machine() *Machine {
	return s.machine
}

// Update feeds one frame's hover key into the machine and applies any
// resulting commit to the typed text.
func (s *Session) Update(hover string, now time.Time) (Event, bool) {
	ev, ok := s.machine.Tick(hover, now)
	if !ok {
		return Event{}, false
	}

	s.Apply(ev.Key)
	if s.onCommit != nil {
		s.onCommit(ev)
	}
	return ev, true
}

// Apply applies the effect of committing key to the typed text.
func (s *Session) Apply(key string) {
	switch key {
	case keyboard.KeySpace:
		s.text = append(s.text, ' ')
	case keyboard.KeyEnter:
		s.text = append(s.text, '\n')
	case keyboard.KeyClear:
		s.text = s.text[:0]
	default:
		s.text = append(s.text, []rune(key)...)
	}
}

// Text returns everything typed so far.
func (s *Session) Text() string {
	return string(s.text)
}

// Tail returns the last n characters of the typed text.
func (s *Session) Tail(n int) string {
	if n <= 0 {
		return ""
	}
	if len(s.text) <= n {
		return string(s.text)
	}
	return string(s.text[len(s.text)-n:])
}

// Len returns the number of characters typed.
func (s *Session) Len() int {
	return len(s.text)
}
