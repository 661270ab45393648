package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/itohio/goirrigate/pkg/irrigation"
)

// Config represents the application configuration.
type Config struct {
	Serial     SerialConfig     `yaml:"serial"`
	Controller ControllerConfig `yaml:"controller"`
	Board      BoardConfig      `yaml:"board"`
	Monitor    MonitorConfig    `yaml:"monitor"`
	Mock       MockConfig       `yaml:"mock"`
}

// SerialConfig contains serial port configuration for the firmware link.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// ControllerConfig contains the control loop parameters.
type ControllerConfig struct {
	SensorMax      int           `yaml:"sensor_max"`
	DryThreshold   int           `yaml:"dry_threshold"` // Pump ON below this percent
	WetThreshold   int           `yaml:"wet_threshold"` // Pump OFF above this percent
	CycleDelay     time.Duration `yaml:"cycle_delay"`
	DisplayColumns int           `yaml:"display_columns"`
	Title          string        `yaml:"title"` // Splash banner shown at start-up
}

// BoardConfig contains the Raspberry Pi wiring.
type BoardConfig struct {
	I2CBus         string `yaml:"i2c_bus"`          // "" selects the first bus
	ADCAddress     uint16 `yaml:"adc_address"`      // ADS1115 address
	ADCChannel     int    `yaml:"adc_channel"`      // Single-ended channel 0-3
	RelayPin       string `yaml:"relay_pin"`        // periph pin name, e.g. GPIO23
	RelayActiveLow bool   `yaml:"relay_active_low"` // Most relay modules switch on LOW
	DisplayAddress uint16 `yaml:"display_address"`  // SSD1306 address, 0 disables the display
}

// MonitorConfig contains desktop monitor parameters.
type MonitorConfig struct {
	Window time.Duration `yaml:"window"` // Time span kept in the history and shown on the trend
}

// MockConfig contains simulated soil bed parameters.
type MockConfig struct {
	InitialMoisture float64       `yaml:"initial_moisture"` // Starting moisture (%)
	DryingRate      float64       `yaml:"drying_rate"`      // Moisture loss per cycle with the pump OFF (%)
	WateringRate    float64       `yaml:"watering_rate"`    // Moisture gain per cycle with the pump ON (%)
	NoiseLevel      float64       `yaml:"noise_level"`      // Sensor noise amplitude (%)
	Tick            time.Duration `yaml:"tick"`             // Simulated cycle period
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	ic := irrigation.DefaultConfig()
	return &Config{
		Serial: SerialConfig{
			Port:     "/dev/ttyACM0", // "COM3" on Windows
			BaudRate: 115200,
		},
		Controller: ControllerConfig{
			SensorMax:      ic.SensorMax,
			DryThreshold:   ic.DryThreshold,
			WetThreshold:   ic.WetThreshold,
			CycleDelay:     ic.CycleDelay,
			DisplayColumns: ic.DisplayColumns,
			Title:          "GoIrrigate",
		},
		Board: BoardConfig{
			I2CBus:         "",
			ADCAddress:     0x48,
			ADCChannel:     0,
			RelayPin:       "GPIO23",
			RelayActiveLow: true,
			DisplayAddress: 0x3C,
		},
		Monitor: MonitorConfig{
			Window: 30 * time.Minute,
		},
		Mock: MockConfig{
			InitialMoisture: 60,
			DryingRate:      0.8,
			WateringRate:    2.5,
			NoiseLevel:      0.5,
			Tick:            200 * time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// Validate rejects values that would stall or crash the monitor and the simulator.
// Controller parameters are checked by Irrigation.
func (c *Config) Validate() error {
	if c.Monitor.Window <= 0 {
		return fmt.Errorf("monitor window must be positive, got %v", c.Monitor.Window)
	}
	if c.Mock.Tick <= 0 {
		return fmt.Errorf("mock tick must be positive, got %v", c.Mock.Tick)
	}
	if c.Mock.DryingRate < 0 {
		return fmt.Errorf("mock drying rate must not be negative, got %v", c.Mock.DryingRate)
	}
	if c.Mock.WateringRate < 0 {
		return fmt.Errorf("mock watering rate must not be negative, got %v", c.Mock.WateringRate)
	}
	if c.Mock.NoiseLevel < 0 {
		return fmt.Errorf("mock noise level must not be negative, got %v", c.Mock.NoiseLevel)
	}
	if c.Mock.InitialMoisture < 0 || c.Mock.InitialMoisture > 100 {
		return fmt.Errorf("mock initial moisture %v out of range [0, 100]", c.Mock.InitialMoisture)
	}
	return nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Irrigation returns the validated control loop configuration.
func (c *Config) Irrigation() (irrigation.Config, error) {
	ic := irrigation.Config{
		SensorMax:      c.Controller.SensorMax,
		DryThreshold:   c.Controller.DryThreshold,
		WetThreshold:   c.Controller.WetThreshold,
		CycleDelay:     c.Controller.CycleDelay,
		DisplayColumns: c.Controller.DisplayColumns,
	}
	if err := ic.Validate(); err != nil {
		return irrigation.Config{}, fmt.Errorf("invalid controller config: %w", err)
	}
	return ic, nil
}

// ensureDefaults ensures that all required fields have default values if missing.
// Thresholds are left alone: 0 is a legal dry threshold and Irrigation validates them.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Controller.SensorMax == 0 {
		c.Controller.SensorMax = def.Controller.SensorMax
	}
	if c.Controller.CycleDelay == 0 {
		c.Controller.CycleDelay = def.Controller.CycleDelay
	}
	if c.Controller.DisplayColumns == 0 {
		c.Controller.DisplayColumns = def.Controller.DisplayColumns
	}
	if c.Controller.Title == "" {
		c.Controller.Title = def.Controller.Title
	}

	if c.Board.ADCAddress == 0 {
		c.Board.ADCAddress = def.Board.ADCAddress
	}
	if c.Board.RelayPin == "" {
		c.Board.RelayPin = def.Board.RelayPin
	}

	if c.Monitor.Window == 0 {
		c.Monitor.Window = def.Monitor.Window
	}

	if c.Mock.Tick == 0 {
		c.Mock.Tick = def.Mock.Tick
	}
	if c.Mock.DryingRate == 0 {
		c.Mock.DryingRate = def.Mock.DryingRate
	}
	if c.Mock.WateringRate == 0 {
		c.Mock.WateringRate = def.Mock.WateringRate
	}
}
