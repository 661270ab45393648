package irrigation

import "sync"

// SensorFunc adapts a function to the Sensor interface.
type SensorFunc func() int

func (f SensorFunc) ReadRaw() int { return f() }

// Relay is an in-memory actuator. It latches the last written state, and
// Override changes the line behind the controller's back, like a manual switch.
type Relay struct {
	mu     sync.Mutex
	state  PumpState
	writes int
}

var _ Actuator = (*Relay)(nil)

func (r *Relay) Set(state PumpState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
	r.writes++
}

func (r *Relay) Get() PumpState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Override forces the line to state without counting as a controller write.
func (r *Relay) Override(state PumpState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
}

// Writes returns how many times Set was called.
func (r *Relay) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// Screen is an in-memory display with a fixed column budget.
type Screen struct {
	Columns int
	Line1   string
	Line2   string
}

var _ Display = (*Screen)(nil)

func (s *Screen) Show(line1, line2 string) {
	if s.Columns > 0 {
		line1 = Truncate(line1, s.Columns)
		line2 = Truncate(line2, s.Columns)
	}
	s.Line1, s.Line2 = line1, line2
}

// Journal is an in-memory log that keeps every emitted line.
type Journal struct {
	lines []string
}

var _ Logger = (*Journal)(nil)

func (j *Journal) Emit(text string) {
	j.lines = append(j.lines, text)
}

// Lines returns a copy of all emitted lines.
func (j *Journal) Lines() []string {
	out := make([]string, len(j.lines))
	copy(out, j.lines)
	return out
}

// Last returns the most recent line, or "" if nothing was emitted.
func (j *Journal) Last() string {
	if len(j.lines) == 0 {
		return ""
	}
	return j.lines[len(j.lines)-1]
}

// Reset drops all recorded lines.
func (j *Journal) Reset() {
	j.lines = j.lines[:0]
}
