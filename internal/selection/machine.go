// Package selection turns a per-frame hover signal into dwell-to-select
// key commits.
package selection

import "time"

// Default timings.
const (
	DefaultDwell    = 400 * time.Millisecond
	DefaultCooldown = time.Second
)

// Phase is the state of the selection machine.
type Phase int

const (
	// Idle means no key is hovered.
	Idle Phase = iota
	// Hovering means a key is hovered and its dwell timer is running.
	Hovering
	// Committed means a key was just selected and is suppressed until
	// its cooldown and a fresh dwell have both elapsed.
	Committed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Hovering:
		return "hovering"
	case Committed:
		return "committed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the machine.
type State struct {
	Phase Phase
	Key   string
	Since time.Time // Hovering: when the dwell timer started
	Until time.Time // Committed: end of the cooldown
}

// Event is a committed key selection.
type Event struct {
	Key string
	At  time.Time
	// Held is how long the key had been tracked when the commit fired.
	Held time.Duration
}

// Machine is the dwell/cooldown state machine. It is not safe for
// concurrent use; the frame loop owns it.
type Machine struct {
	dwell    time.Duration
	cooldown time.Duration
	state    State
	tracked  time.Time // first tick on the current key
}

// NewMachine creates a Machine. Non-positive durations fall back to the
// defaults.
func NewMachine(dwell, cooldown time.Duration) *Machine {
	if dwell <= 0 {
		dwell = DefaultDwell
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Machine{dwell: dwell, cooldown: cooldown}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Dwell returns the dwell threshold.
func (m *Machine) Dwell() time.Duration {
	return m.dwell
}

// Cooldown returns the cooldown applied after each commit.
func (m *Machine) Cooldown() time.Duration {
	return m.cooldown
}

// Reset returns the machine to Idle.
func (m *Machine) Reset() {
	m.state = State{Phase: Idle}
}

// Tick advances the machine with the key hovered at now. An empty hover
// means nothing is hovered. It reports a commit event when one fires.
func (m *Machine) Tick(hover string, now time.Time) (Event, bool) {
	if hover == "" {
		m.Reset()
		return Event{}, false
	}

	if m.state.Phase == Idle || m.state.Key != hover {
		m.state = State{Phase: Hovering, Key: hover, Since: now}
		m.tracked = now
		return Event{}, false
	}

	// The dwell is measured from the start of hovering, or from the end
	// of the cooldown after a commit, so a held key repeats only every
	// dwell + cooldown.
	start := m.state.Since
	if m.state.Phase == Committed {
		start = m.state.Until
	}
	if now.Sub(start) < m.dwell {
		return Event{}, false
	}

	ev := Event{Key: hover, At: now, Held: now.Sub(m.tracked)}
	m.state = State{Phase: Committed, Key: hover, Until: now.Add(m.cooldown)}
	return ev, true
}
