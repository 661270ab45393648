package board

import (
	"log"
	"sync"

	"periph.io/x/conn/v3/analog"
)

type sampleReader interface {
	Read() (analog.Sample, error)
}

// Moisture reads the probe through an analog pin.
// A failed conversion is logged and the previous value is returned.
type Moisture struct {
	pin   sampleReader
	shift uint

	mu   sync.Mutex
	last int
}

// NewMoisture reads pin and shifts each raw sample right by shift bits.
func NewMoisture(pin sampleReader, shift uint) *Moisture {
	return &Moisture{pin: pin, shift: shift}
}

func (m *Moisture) ReadRaw() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.pin.Read()
	if err != nil {
		log.Printf("board: moisture read failed, holding %d: %v", m.last, err)
		return m.last
	}

	raw := max(int(s.Raw), 0) >> m.shift
	m.last = raw
	return raw
}
