package irrigation

// Sensor produces one raw moisture sample per call. 0 is saturated soil and larger
// values are drier. Implementations absorb their own I/O faults.
type Sensor interface {
	ReadRaw() int
}

// Actuator drives the pump relay line.
// Get reads the physical line back and may differ from the last Set if the relay
// was overridden externally.
type Actuator interface {
	Set(state PumpState)
	Get() PumpState
}

// Display shows two lines of text. Overlong lines are truncated.
type Display interface {
	Show(line1, line2 string)
}

// Logger receives one status line per cycle on a best-effort basis.
type Logger interface {
	Emit(text string)
}
