package irrigation

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the fixed parameters of the control loop.
type Config struct {
	SensorMax      int           // Raw reading of a completely dry sensor (12-bit ADC: 4095)
	DryThreshold   int           // Pump switches ON below this moisture percent
	WetThreshold   int           // Pump switches OFF above this moisture percent
	CycleDelay     time.Duration // Pause between two control cycles
	DisplayColumns int           // Character budget of each display line
}

// DefaultConfig returns the reference configuration: 12-bit sensor, 45/65 % thresholds,
// 5 s cadence and a 16x2 character display.
func DefaultConfig() Config {
	return Config{
		SensorMax:      4095,
		DryThreshold:   45,
		WetThreshold:   65,
		CycleDelay:     5 * time.Second,
		DisplayColumns: 16,
	}
}

// Validate checks that the configuration describes a usable hysteresis band.
func (c Config) Validate() error {
	if c.SensorMax <= 0 {
		return fmt.Errorf("sensor max must be positive, got %d", c.SensorMax)
	}
	if c.DryThreshold < 0 || c.DryThreshold > 100 {
		return fmt.Errorf("dry threshold %d out of range [0, 100]", c.DryThreshold)
	}
	if c.WetThreshold < 0 || c.WetThreshold > 100 {
		return fmt.Errorf("wet threshold %d out of range [0, 100]", c.WetThreshold)
	}
	if c.DryThreshold >= c.WetThreshold {
		return fmt.Errorf("dry threshold %d must be below wet threshold %d", c.DryThreshold, c.WetThreshold)
	}
	if c.CycleDelay <= 0 {
		return errors.New("cycle delay must be positive")
	}
	if c.DisplayColumns <= 0 {
		return fmt.Errorf("display columns must be positive, got %d", c.DisplayColumns)
	}
	return nil
}

// InDeadBand reports whether percent lies within [DryThreshold, WetThreshold].
func (c Config) InDeadBand(percent int) bool {
	return percent >= c.DryThreshold && percent <= c.WetThreshold
}
