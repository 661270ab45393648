package irrigation

// Transition returns the next pump state for the given moisture percent.
//
// OFF becomes ON only below dry, ON becomes OFF only above wet. Every percent in
// [dry, wet] keeps the current state, which is what stops the pump from chattering
// when the reading hovers near a threshold.
func Transition(state PumpState, percent, dry, wet int) PumpState {
	switch {
	case state == PumpOff && percent < dry:
		return PumpOn
	case state == PumpOn && percent > wet:
		return PumpOff
	}
	return state
}

// Transition applies the configured thresholds.
func (c Config) Transition(state PumpState, percent int) PumpState {
	return Transition(state, percent, c.DryThreshold, c.WetThreshold)
}
