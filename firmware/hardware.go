//go:build tinygo

package main

import (
	"machine"

	"tinygo.org/x/drivers/hd44780i2c"

	"github.com/itohio/goirrigate/pkg/irrigation"
)

// adcSensor averages several conversions and scales them to ADC_RESOLUTION bits.
type adcSensor struct {
	adc machine.ADC
}

func newADCSensor(pin machine.Pin) *adcSensor {
	pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	})
	return &adcSensor{adc: adc}
}

func (s *adcSensor) ReadRaw() int {
	var sum uint32
	for range ADC_OVERSAMPLE {
		sum += uint32(s.adc.Get())
	}
	// machine.ADC.Get is always scaled to 16 bits
	return int(sum/ADC_OVERSAMPLE) >> (16 - ADC_RESOLUTION)
}

// relay drives the pump and reads the pin back.
type relay struct {
	pin       machine.Pin
	activeLow bool
}

func newRelay(pin machine.Pin, activeLow bool) *relay {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r := &relay{pin: pin, activeLow: activeLow}
	r.Set(irrigation.PumpOff)
	return r
}

func (r *relay) Set(s irrigation.PumpState) {
	r.pin.Set(bool(s) != r.activeLow)
}

func (r *relay) Get() irrigation.PumpState {
	return irrigation.PumpState(r.pin.Get() != r.activeLow)
}

// lcd shows the two status lines on an HD44780.
type lcd struct {
	dev hd44780i2c.Device
}

func newLCD(bus *machine.I2C) (*lcd, error) {
	dev := hd44780i2c.New(bus, LCD_ADDRESS)
	if err := dev.Configure(hd44780i2c.Config{Width: LCD_COLS, Height: LCD_ROWS}); err != nil {
		return nil, err
	}
	dev.BacklightOn(true)
	return &lcd{dev: dev}, nil
}

func (l *lcd) Show(line1, line2 string) {
	l.dev.ClearDisplay()
	l.dev.SetCursor(0, 0)
	l.dev.Print([]byte(line1))
	l.dev.SetCursor(0, 1)
	l.dev.Print([]byte(line2))
}

// uartLog writes one status line per call to the serial console.
type uartLog struct{}

func (uartLog) Emit(text string) {
	println(text)
}
