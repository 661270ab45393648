package history

import (
	"sync"
	"time"

	"github.com/itohio/goirrigate/pkg/irrigation"
	"github.com/itohio/goirrigate/pkg/link"
)

var _ Tracker = (*History)(nil)

// Run is a contiguous span of records with the pump ON.
type Run struct {
	StartIndex    int       // Index of the first ON record in the buffer
	EndIndex      int       // Index of the last ON record in the buffer
	StartTime     time.Time // Timestamp of the first ON record
	EndTime       time.Time // Timestamp of the first OFF record after the run, or of the last ON record while active
	StartMoisture int       // Moisture when the pump was first seen ON
	EndMoisture   int       // Moisture at EndTime
	Active        bool      // Pump is still ON at the newest record
}

// Duration returns the length of the run.
func (r Run) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Stats summarises the records inside the window.
type Stats struct {
	Count     int
	Min       int
	Max       int
	Last      irrigation.Status
	DutyCycle float64 // Fraction of the covered time with the pump ON
	Switches  int     // Number of pump state changes between consecutive records
}

// Tracker keeps a time window of records and derives pump runs from it.
type Tracker interface {
	ProcessRecords(input <-chan link.Record)
	Records() []link.Record                           // Current records buffer (ordered first to last)
	Runs() []Run                                      // Pump runs within the window
	Stats() Stats                                     // Summary of the window
	OnUpdate(func(records []link.Record, runs []Run)) // Register callback for updates
}

// History implements Tracker.
// Records are kept in a FIFO ordered oldest first and dropped by timestamp, not count.
type History struct {
	mu      sync.RWMutex
	records []link.Record
	runs    []Run
	window  time.Duration

	callbacks []func(records []link.Record, runs []Run)
	cbMu      sync.RWMutex

	// Set when the input channel closes, prevents further callbacks
	shutdown bool
}

// New creates a History that keeps records younger than window.
func New(window time.Duration) *History {
	return &History{
		records:   make([]link.Record, 0),
		runs:      make([]Run, 0),
		window:    window,
		callbacks: make([]func(records []link.Record, runs []Run), 0),
	}
}

// ProcessRecords consumes records until the input channel closes.
func (h *History) ProcessRecords(input <-chan link.Record) {
	for r := range input {
		h.Add(r)
	}
	h.mu.Lock()
	h.shutdown = true
	h.mu.Unlock()
}

// Add appends one record, trims the window and notifies callbacks.
func (h *History) Add(r link.Record) {
	h.mu.Lock()
	h.records = append(h.records, r)

	cutoff := r.Timestamp.Add(-h.window)
	cutoffIndex := 0
	for i, rec := range h.records {
		if rec.Timestamp.After(cutoff) {
			cutoffIndex = i
			break
		}
	}
	if cutoffIndex > 0 {
		h.records = h.records[cutoffIndex:]
	}

	h.runs = detectRuns(h.runs[:0], h.records)
	shouldNotify := !h.shutdown
	h.mu.Unlock()

	if shouldNotify {
		h.notifyCallbacks()
	}
}

// detectRuns scans records for ON spans. dst is reused when it has capacity.
func detectRuns(dst []Run, records []link.Record) []Run {
	var current *Run
	for i, rec := range records {
		switch {
		case rec.Pump == irrigation.PumpOn && current == nil:
			dst = append(dst, Run{
				StartIndex:    i,
				EndIndex:      i,
				StartTime:     rec.Timestamp,
				EndTime:       rec.Timestamp,
				StartMoisture: rec.Moisture,
				EndMoisture:   rec.Moisture,
				Active:        true,
			})
			current = &dst[len(dst)-1]
		case rec.Pump == irrigation.PumpOn:
			current.EndIndex = i
			current.EndTime = rec.Timestamp
			current.EndMoisture = rec.Moisture
		case current != nil:
			current.EndTime = rec.Timestamp
			current.EndMoisture = rec.Moisture
			current.Active = false
			current = nil
		}
	}
	return dst
}

// Records returns a copy of the current records buffer.
func (h *History) Records() []link.Record {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]link.Record, len(h.records))
	copy(result, h.records)
	return result
}

// Runs returns a copy of the current pump runs.
func (h *History) Runs() []Run {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]Run, len(h.runs))
	copy(result, h.runs)
	return result
}

// Stats summarises the current window.
func (h *History) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return summarize(h.records)
}

func summarize(records []link.Record) Stats {
	if len(records) == 0 {
		return Stats{}
	}

	s := Stats{
		Count: len(records),
		Min:   records[0].Moisture,
		Max:   records[0].Moisture,
		Last:  records[len(records)-1].Status,
	}

	var on, total time.Duration
	for i, rec := range records {
		s.Min = min(s.Min, rec.Moisture)
		s.Max = max(s.Max, rec.Moisture)
		if i == 0 {
			continue
		}
		prev := records[i-1]
		if prev.Pump != rec.Pump {
			s.Switches++
		}
		dt := rec.Timestamp.Sub(prev.Timestamp)
		total += dt
		if prev.Pump == irrigation.PumpOn {
			on += dt
		}
	}
	if total > 0 {
		s.DutyCycle = float64(on) / float64(total)
	}
	return s
}

// OnUpdate registers a callback function that will be called when records are updated.
// The callback should copy data quickly and return as fast as possible.
func (h *History) OnUpdate(callback func(records []link.Record, runs []Run)) {
	h.cbMu.Lock()
	defer h.cbMu.Unlock()
	h.callbacks = append(h.callbacks, callback)
}

// ResetShutdown allows callbacks again before a new record stream is processed.
func (h *History) ResetShutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shutdown = false
}

// notifyCallbacks copies data under the read lock and calls callbacks without any lock.
func (h *History) notifyCallbacks() {
	records := h.Records()
	runs := h.Runs()

	h.cbMu.RLock()
	callbacks := make([]func(records []link.Record, runs []Run), len(h.callbacks))
	copy(callbacks, h.callbacks)
	h.cbMu.RUnlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(records, runs)
		}
	}
}
