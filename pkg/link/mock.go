package link

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/itohio/goirrigate/pkg/config"
	"github.com/itohio/goirrigate/pkg/irrigation"
)

// Mock simulates a soil bed watered by the real irrigation controller.
// The controller runs against in-memory collaborators and its log lines travel
// through the same parser as lines read from the serial port.
type Mock struct {
	cfg  *config.MockConfig
	ctrl irrigation.Config

	records   chan Record
	done      chan struct{}
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
	closed    bool

	relay   *irrigation.Relay
	journal *irrigation.Journal
	screen  *irrigation.Screen

	// Simulation state
	moisture float32 // True soil moisture (%)
	ticks    int
}

// NewMock creates a new mocked device instance.
func NewMock(cfg *config.MockConfig, ctrl irrigation.Config) *Mock {
	if cfg == nil {
		def := config.Default().Mock
		cfg = &def
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:      cfg,
		ctrl:     ctrl,
		records:  make(chan Record, DefaultBufferSize),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
		relay:    &irrigation.Relay{},
		journal:  &irrigation.Journal{},
		screen:   &irrigation.Screen{Columns: ctrl.DisplayColumns},
		moisture: float32(cfg.InitialMoisture),
	}
}

// Connect starts the simulated controller.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}
	if m.closed {
		return fmt.Errorf("device closed")
	}

	ctrl, err := irrigation.New(m.ctrl, irrigation.SensorFunc(m.readRaw), m.relay, m.screen, m.journal)
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}

	m.connected = true

	go m.generateRecords(ctrl)

	return nil
}

// Close stops the simulation and closes the records channel.
func (m *Mock) Close() error {
	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		return nil
	}

	m.cancel()
	m.connected = false
	m.closed = true
	m.mu.Unlock()

	<-m.done
	return nil
}

// Records returns the channel for reading records.
func (m *Mock) Records() <-chan Record {
	return m.records
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Override flips the simulated relay by hand, bypassing the controller.
func (m *Mock) Override(state irrigation.PumpState) {
	m.relay.Override(state)
}

// Moisture returns the true simulated soil moisture.
func (m *Mock) Moisture() float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.moisture
}

// generateRecords runs one control cycle per tick.
func (m *Mock) generateRecords(ctrl *irrigation.Controller) {
	defer close(m.done)
	defer close(m.records)

	ticker := time.NewTicker(m.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			rec, err := m.cycle(ctrl)
			if err != nil {
				log.Printf("link: mock: %v", err)
				continue
			}
			select {
			case m.records <- rec:
			case <-m.ctx.Done():
				return
			default:
				// Channel full, skip
			}
		}
	}
}

// cycle runs the controller once, then lets the soil react to the pump.
func (m *Mock) cycle(ctrl *irrigation.Controller) (Record, error) {
	ctrl.Step()
	m.advance(m.relay.Get())

	status, err := irrigation.ParseLogLine(m.journal.Last())
	if err != nil {
		return Record{}, err
	}
	m.journal.Reset()

	return Record{Timestamp: time.Now(), Status: status}, nil
}

// advance applies one tick of drying or watering.
func (m *Mock) advance(pump irrigation.PumpState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pump == irrigation.PumpOn {
		m.moisture += float32(m.cfg.WateringRate)
	} else {
		m.moisture -= float32(m.cfg.DryingRate)
	}
	m.moisture = math32.Max(0, math32.Min(100, m.moisture))
	m.ticks++
}

// readRaw converts the simulated moisture plus noise into a raw sensor reading.
func (m *Mock) readRaw() int {
	m.mu.RLock()
	t := float32(m.ticks)
	moisture := m.moisture
	m.mu.RUnlock()

	noise := (math32.Sin(t*1.3) + math32.Cos(t*0.7)) * float32(m.cfg.NoiseLevel) * 0.5
	moisture += noise

	raw := float32(m.ctrl.SensorMax) * (100 - moisture) / 100
	return int(math32.Round(raw))
}
