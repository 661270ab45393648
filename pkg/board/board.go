// Package board wires the irrigation controller to a Raspberry Pi:
// an ADS1115 for the probe, a GPIO relay for the pump and an optional SSD1306 OLED.
package board

import (
	"errors"
	"fmt"
	"log"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/itohio/goirrigate/pkg/config"
	"github.com/itohio/goirrigate/pkg/irrigation"
)

const (
	// ADS1115 single-ended readings are 15 bit. Shifting down to 12 bit keeps
	// the firmware's sensor_max valid on both targets.
	adcShift = 15 - 12

	adcFullScale = 4096 * physic.MilliVolt
	adcRate      = 128 * physic.Hertz
)

var adcChannels = []ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

// Board holds the opened peripherals.
type Board struct {
	Sensor  *Moisture
	Relay   *Relay
	Display irrigation.Display
	Log     *Console

	bus    i2c.BusCloser
	adcPin ads1x15.PinADC
	oled   *ssd1306.Dev
}

// Open initialises periph and the peripherals described by cfg.
// A zero DisplayAddress leaves the board headless.
func Open(cfg config.BoardConfig) (*Board, error) {
	if cfg.ADCChannel < 0 || cfg.ADCChannel >= len(adcChannels) {
		return nil, fmt.Errorf("invalid ADC channel %d", cfg.ADCChannel)
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus: %w", err)
	}

	b := &Board{bus: bus, Log: NewConsole(nil)}

	adc, err := ads1x15.NewADS1115(bus, &ads1x15.Opts{I2cAddress: cfg.ADCAddress})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to initialize ADC at 0x%02X: %w", cfg.ADCAddress, err)
	}
	b.adcPin, err = adc.PinForChannel(adcChannels[cfg.ADCChannel], adcFullScale, adcRate, ads1x15.SaveEnergy)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to open ADC channel %d: %w", cfg.ADCChannel, err)
	}
	b.Sensor = NewMoisture(b.adcPin, adcShift)
	log.Printf("board: ADC initialized at 0x%02X channel %d", cfg.ADCAddress, cfg.ADCChannel)

	pin := gpioreg.ByName(cfg.RelayPin)
	if pin == nil {
		b.Close()
		return nil, fmt.Errorf("unknown relay pin %q", cfg.RelayPin)
	}
	b.Relay, err = NewRelay(pin, cfg.RelayActiveLow)
	if err != nil {
		b.Close()
		return nil, err
	}
	log.Printf("board: relay on %s (active low: %v)", cfg.RelayPin, cfg.RelayActiveLow)

	if cfg.DisplayAddress == 0 {
		b.Display = headless{}
		return b, nil
	}

	b.oled, err = ssd1306.NewI2C(&addressedBus{Bus: bus, addr: cfg.DisplayAddress}, &ssd1306.DefaultOpts)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to initialize display at 0x%02X: %w", cfg.DisplayAddress, err)
	}
	b.Display = NewOLED(b.oled)
	log.Printf("board: display initialized at 0x%02X", cfg.DisplayAddress)

	return b, nil
}

// Controller builds an irrigation controller on top of the board peripherals.
func (b *Board) Controller(cfg irrigation.Config, opts ...irrigation.Option) (*irrigation.Controller, error) {
	return irrigation.New(cfg, b.Sensor, b.Relay, b.Display, b.Log, opts...)
}

// Close switches the pump off and releases the peripherals.
func (b *Board) Close() error {
	var errs []error
	if b.Relay != nil {
		b.Relay.Set(irrigation.PumpOff)
	}
	if b.oled != nil {
		errs = append(errs, b.oled.Halt())
	}
	if b.adcPin != nil {
		errs = append(errs, b.adcPin.Halt())
	}
	if b.bus != nil {
		errs = append(errs, b.bus.Close())
	}
	return errors.Join(errs...)
}

// addressedBus pins every transaction to one address.
// ssd1306.NewI2C always talks to 0x3C; this lets the display sit elsewhere.
type addressedBus struct {
	i2c.Bus
	addr uint16
}

func (b *addressedBus) Tx(_ uint16, w, r []byte) error {
	return b.Bus.Tx(b.addr, w, r)
}

type headless struct{}

func (headless) Show(line1, line2 string) {}

var (
	_ irrigation.Sensor   = (*Moisture)(nil)
	_ irrigation.Actuator = (*Relay)(nil)
	_ irrigation.Display  = (*OLED)(nil)
	_ irrigation.Display  = headless{}
	_ irrigation.Logger   = (*Console)(nil)
	_ sampleReader        = (analog.PinADC)(nil)
)
