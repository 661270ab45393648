package board

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"

	"github.com/itohio/goirrigate/pkg/irrigation"
)

// Relay drives the pump through a GPIO line.
// Most hobby relay modules switch on a low level, hence ActiveLow.
type Relay struct {
	pin       gpio.PinIO
	activeLow bool
}

// NewRelay configures pin as an output with the pump OFF.
func NewRelay(pin gpio.PinIO, activeLow bool) (*Relay, error) {
	r := &Relay{pin: pin, activeLow: activeLow}
	if err := pin.Out(r.level(irrigation.PumpOff)); err != nil {
		return nil, fmt.Errorf("failed to configure relay pin %s: %w", pin.Name(), err)
	}
	return r, nil
}

func (r *Relay) level(s irrigation.PumpState) gpio.Level {
	return gpio.Level(bool(s) != r.activeLow)
}

func (r *Relay) Set(s irrigation.PumpState) {
	if err := r.pin.Out(r.level(s)); err != nil {
		log.Printf("board: relay write %s failed: %v", s, err)
	}
}

// Get reads the line back, so a relay toggled outside the controller is reported as is.
func (r *Relay) Get() irrigation.PumpState {
	return irrigation.PumpState(r.pin.Read() == r.level(irrigation.PumpOn))
}
