package irrigation

import (
	"context"
	"errors"
	"time"
)

// Controller runs the closed irrigation loop over its four collaborators.
// It is not safe for concurrent use. One goroutine owns it, as the super-loop does
// on the microcontroller.
type Controller struct {
	cfg      Config
	sensor   Sensor
	actuator Actuator
	display  Display
	log      Logger

	// state is the latched logical pump state. It only changes when a threshold is crossed.
	state PumpState
	wait  WaitFunc
}

// WaitFunc blocks for d or until ctx is done. It returns false when the loop must stop.
type WaitFunc func(ctx context.Context, d time.Duration) bool

// Option customises a Controller.
type Option func(*Controller)

// WithWait replaces the inter-cycle delay, mainly for tests and simulations.
func WithWait(wait WaitFunc) Option {
	return func(c *Controller) {
		if wait != nil {
			c.wait = wait
		}
	}
}

// New creates a controller in the power-on state (pump OFF).
func New(cfg Config, sensor Sensor, actuator Actuator, display Display, log Logger, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sensor == nil || actuator == nil || display == nil || log == nil {
		return nil, errors.New("all collaborators are required")
	}

	c := &Controller{
		cfg:      cfg,
		sensor:   sensor,
		actuator: actuator,
		display:  display,
		log:      log,
		state:    PumpOff,
		wait:     sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the controller configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns the latched logical pump state.
func (c *Controller) State() PumpState {
	return c.state
}

// Splash shows a start-up banner before the first cycle.
func (c *Controller) Splash(title string) {
	c.display.Show(Truncate(title, c.cfg.DisplayColumns), "")
	c.log.Emit(title + " - irrigation controller started")
}

// Step runs exactly one control cycle and returns the reported status.
//
// Outside the dead band the relay is always written with the decided state.
// Inside it nothing is written, so a manual override of the relay holds until
// the moisture crosses a threshold.
func (c *Controller) Step() Status {
	percent := Normalize(c.sensor.ReadRaw(), c.cfg.SensorMax)

	next := c.cfg.Transition(c.state, percent)
	if !c.cfg.InDeadBand(percent) {
		c.actuator.Set(next)
	}
	c.state = next

	s := Status{
		Moisture: percent,
		Pump:     c.actuator.Get(),
	}
	Report(s, c.display, c.log, c.cfg.DisplayColumns)
	return s
}

// Run repeats Step every CycleDelay until ctx is done.
func (c *Controller) Run(ctx context.Context) {
	for ctx.Err() == nil {
		c.Step()
		if !c.wait(ctx, c.cfg.CycleDelay) {
			return
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
