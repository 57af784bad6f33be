// ABOUTME: Machine owns one session's State and serialises every transition.
// ABOUTME: Listeners are notified outside the lock on the calling goroutine.
package session

import (
	"sync"

	"github.com/harperreed/fitday/internal/models"
	"github.com/rs/zerolog"
)

// Machine is the single writer of a session's State. It is safe for use by a
// tick driver and an input loop at the same time.
type Machine struct {
	mu        sync.Mutex
	state     State
	workout   *models.Workout
	done      chan struct{}
	listeners []Listener
	logger    zerolog.Logger
}

// NewMachine returns an idle Machine.
func NewMachine(logger zerolog.Logger) *Machine {
	return &Machine{logger: logger.With().Str("component", "session").Logger()}
}

// OnEvent registers a listener for every subsequent event.
func (m *Machine) OnEvent(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Start begins w. Fails with ErrInvalidState unless the machine is idle.
func (m *Machine) Start(w *models.Workout) error {
	m.mu.Lock()
	next, events, err := Start(m.state, w)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.workout = w
	m.done = make(chan struct{})
	m.commit(next, events)
	return nil
}

// Tick advances the countdown by one second.
func (m *Machine) Tick() {
	m.mu.Lock()
	next, events := Tick(m.state, m.workout)
	m.commit(next, events)
}

// Pause suspends the countdown.
func (m *Machine) Pause() {
	m.mu.Lock()
	next, events := Pause(m.state)
	m.commit(next, events)
}

// Resume continues the countdown.
func (m *Machine) Resume() {
	m.mu.Lock()
	next, events := Resume(m.state)
	m.commit(next, events)
}

// TogglePause pauses a ticking session or resumes a paused one.
func (m *Machine) TogglePause() {
	m.mu.Lock()
	var (
		next   State
		events []Event
	)
	if m.state.Paused {
		next, events = Resume(m.state)
	} else {
		next, events = Pause(m.state)
	}
	m.commit(next, events)
}

// Skip moves to the next exercise, or completes the workout on the last one.
func (m *Machine) Skip() error {
	m.mu.Lock()
	next, events, err := Skip(m.state, m.workout)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.commit(next, events)
	return nil
}

// Stop aborts the session.
func (m *Machine) Stop() error {
	m.mu.Lock()
	next, events, err := Stop(m.state)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.commit(next, events)
	return nil
}

// Reset returns a finished machine to Idle and forgets its workout.
func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := Reset(m.state)
	if err != nil {
		return err
	}
	m.state = next
	m.workout = nil
	m.done = nil
	return nil
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Workout returns the workout being run, or nil when idle.
func (m *Machine) Workout() *models.Workout {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.workout
}

// Current returns the exercise at the current index.
func (m *Machine) Current() (models.Exercise, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.workout == nil || m.state.Status == StatusIdle {
		return models.Exercise{}, false
	}
	return m.workout.Exercises[m.state.ExerciseIndex], true
}

// PhaseDuration returns the full length of the current phase.
func (m *Machine) PhaseDuration() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return PhaseDuration(m.state, m.workout)
}

// Progress returns the fraction of the workout done.
func (m *Machine) Progress() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Fraction(m.state, m.workout)
}

// Done returns a channel closed when the running session reaches a terminal
// state. It is nil while idle.
func (m *Machine) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

// commit stores next, releases the lock, and notifies listeners.
// Must be called with m.mu held.
func (m *Machine) commit(next State, events []Event) {
	prev := m.state
	m.state = next
	if next.Terminal() && !prev.Terminal() && m.done != nil {
		close(m.done)
	}
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	if prev.Status != next.Status {
		m.logger.Debug().
			Str("from", prev.Status.String()).
			Str("to", next.Status.String()).
			Msg("session status transition")
	}
	for _, ev := range events {
		m.logger.Debug().
			Str("event", ev.Kind.String()).
			Int("exercise", ev.ExerciseIndex).
			Str("phase", ev.Phase.String()).
			Int("remaining", ev.Remaining).
			Msg("session event")
		for _, l := range listeners {
			l(ev)
		}
	}
}
