//go:build tinygo

//go:generate tinygo flash -target=xiao

package main

import (
	"context"
	"machine"
	"time"

	"github.com/itohio/goirrigate/pkg/irrigation"
)

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: UART_BAUD_RATE})

	// Relay first, so the pump is OFF before anything else can fail
	pump := newRelay(PIN_RELAY, RELAY_ACTIVE_LOW)

	sensor := newADCSensor(PIN_SENSOR)

	if err := machine.I2C0.Configure(machine.I2CConfig{Frequency: machine.TWI_FREQ_100KHZ}); err != nil {
		fail("i2c: " + err.Error())
	}
	display, err := newLCD(machine.I2C0)
	if err != nil {
		fail("lcd: " + err.Error())
	}

	cfg := irrigation.DefaultConfig()
	cfg.DisplayColumns = LCD_COLS

	ctrl, err := irrigation.New(cfg, sensor, pump, display, uartLog{})
	if err != nil {
		fail("controller: " + err.Error())
	}

	ctrl.Splash(SPLASH_TITLE)
	time.Sleep(SPLASH_DURATION_MS * time.Millisecond)

	ctrl.Run(context.Background())
}

// fail reports a fatal setup error forever; the relay stays OFF.
func fail(msg string) {
	for {
		println("error:", msg)
		time.Sleep(5 * time.Second)
	}
}
