//go:build tinygo

package main

import "machine"

const (
	// ADC configuration
	ADC_REFERENCE_MV = 3300 // Reference voltage in millivolts (3.3V)
	ADC_RESOLUTION   = 12   // ADC resolution in bits (12-bit = 0-4095)
	ADC_OVERSAMPLE   = 16   // Conversions averaged per reading

	// Relay module switches on a LOW level
	RELAY_ACTIVE_LOW = true

	// Pins
	PIN_SENSOR = machine.A1
	PIN_RELAY  = machine.D7

	// HD44780 16x2 behind a PCF8574 backpack
	LCD_ADDRESS = 0x27
	LCD_COLS    = 16
	LCD_ROWS    = 2

	// Status lines are ~30 bytes every few seconds; 115200 matches the host link default.
	UART_BAUD_RATE = 115200

	SPLASH_TITLE       = "GoIrrigate"
	SPLASH_DURATION_MS = 2000
)
