package irrigation

import "fmt"

// PumpState is the logical state of the pump relay line.
type PumpState bool

const (
	PumpOff PumpState = false
	PumpOn  PumpState = true
)

func (s PumpState) String() string {
	if s == PumpOn {
		return "ON"
	}
	return "OFF"
}

// ParsePumpState accepts the strings produced by String.
func ParsePumpState(s string) (PumpState, error) {
	switch s {
	case "ON":
		return PumpOn, nil
	case "OFF":
		return PumpOff, nil
	}
	return PumpOff, fmt.Errorf("invalid pump state %q", s)
}
