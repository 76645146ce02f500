package selection

import (
	"strings"
	"testing"
	"time"

	"github.com/ayusman/airkeys/internal/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Apply(t *testing.T) {
	tests := []struct {
		name  string
		start string
		key   string
		want  string
	}{
		{name: "letter", start: "HI", key: "A", want: "HIA"},
		{name: "space", start: "HI", key: keyboard.KeySpace, want: "HI "},
		{name: "enter", start: "HI", key: keyboard.KeyEnter, want: "HI\n"},
		{name: "clear", start: "HELLO WORLD", key: keyboard.KeyClear, want: ""},
		{name: "clear empty", start: "", key: keyboard.KeyClear, want: ""},
		{name: "multi character label", start: "", key: "TAB", want: "TAB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(nil)
			for _, r := range tt.start {
				if r == ' ' {
					s.Apply(keyboard.KeySpace)
				} else {
					s.Apply(string(r))
				}
			}
			require.Equal(t, tt.start, s.Text())

			s.Apply(tt.key)
			assert.Equal(t, tt.want, s.Text())
		})
	}
}

func TestSession_SpecialKeyCommits(t *testing.T) {
	s := NewSession(NewMachine(DefaultDwell, DefaultCooldown))

	commit := func(key string, start time.Duration) {
		t.Helper()
		s.Update(key, at(start))
		_, ok := s.Update(key, at(start+DefaultDwell))
		require.True(t, ok)
		s.Update("", at(start+DefaultDwell+step))
	}

	commit("A", 0)
	commit(keyboard.KeySpace, time.Second)
	assert.Equal(t, "A ", s.Text())

	commit(keyboard.KeyEnter, 2*time.Second)
	assert.Equal(t, "A \n", s.Text())

	commit(keyboard.KeyClear, 3*time.Second)
	assert.Equal(t, "", s.Text())
	assert.Equal(t, 0, s.Len())
}

func TestSession_DebouncedHoverLeavesTextUnchanged(t *testing.T) {
	s := NewSession(nil)
	s.Apply("X")

	s.Update("A", at(0))
	s.Update("A", at(300*time.Millisecond))
	s.Update("", at(350*time.Millisecond))

	assert.Equal(t, "X", s.Text())
}

func TestSession_OnCommit(t *testing.T) {
	s := NewSession(nil)

	var events []Event
	s.OnCommit(func(ev Event) {
		// Text is already updated when the observer runs.
		assert.True(t, strings.HasSuffix(s.Text(), ev.Key))
		events = append(events, ev)
	})

	s.Update("A", at(0))
	s.Update("A", at(DefaultDwell))
	s.Update("", at(500*time.Millisecond))
	s.Update("B", at(600*time.Millisecond))
	s.Update("B", at(time.Second))

	require.Len(t, events, 2)
	assert.Equal(t, "A", events[0].Key)
	assert.Equal(t, "B", events[1].Key)
}

func TestSession_ABScenario(t *testing.T) {
	s := NewSession(nil)

	type sample struct {
		hover string
		span  time.Duration
	}
	trace := []sample{
		{"A", 500 * time.Millisecond},
		{"", 100 * time.Millisecond},
		{"B", 500 * time.Millisecond},
	}

	var keys []string
	now := time.Duration(0)
	for _, smp := range trace {
		end := now + smp.span
		for ; now < end; now += step {
			if ev, ok := s.Update(smp.hover, at(now)); ok {
				keys = append(keys, ev.Key)
			}
		}
	}

	assert.Equal(t, []string{"A", "B"}, keys)
	assert.Equal(t, "AB", s.Text())
}

func TestSession_Tail(t *testing.T) {
	s := NewSession(nil)
	assert.Equal(t, "", s.Tail(40))

	for i := 0; i < 50; i++ {
		s.Apply(string(rune('A' + i%26)))
	}
	require.Equal(t, 50, s.Len())

	tail := s.Tail(40)
	assert.Len(t, []rune(tail), 40)
	assert.Equal(t, s.Text()[10:], tail)
	assert.Equal(t, "", s.Tail(0))
	assert.Equal(t, s.Text(), s.Tail(100))
}

func TestSession_TailIsRuneAware(t *testing.T) {
	s := NewSession(nil)
	s.Apply("É")
	s.Apply("Ü")
	s.Apply("X")

	assert.Equal(t, "ÜX", s.Tail(2))
}
