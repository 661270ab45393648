package history

import (
	"sync"
	"testing"
	"time"

	"github.com/itohio/goirrigate/pkg/irrigation"
	"github.com/itohio/goirrigate/pkg/link"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// series builds records one second apart from the given moisture and pump values.
func series(start time.Time, moisture []int, pump []irrigation.PumpState) []link.Record {
	records := make([]link.Record, len(moisture))
	for i := range moisture {
		records[i] = link.Record{
			Timestamp: start.Add(time.Duration(i) * time.Second),
			Status:    irrigation.Status{Moisture: moisture[i], Pump: pump[i]},
		}
	}
	return records
}

const (
	off = irrigation.PumpOff
	on  = irrigation.PumpOn
)

func TestHistory_TimestampBasedRemoval(t *testing.T) {
	h := New(2 * time.Second)
	now := time.Now()

	for _, r := range series(now, []int{50, 51, 52, 53}, []irrigation.PumpState{off, off, off, off}) {
		h.Add(r)
	}

	records := h.Records()
	require.Len(t, records, 2, "records at or before newest-window should be dropped")
	assert.Equal(t, 52, records[0].Moisture)
	assert.Equal(t, 53, records[1].Moisture)
}

func TestHistory_Runs(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		moisture []int
		pump     []irrigation.PumpState
		want     []Run
	}{
		{
			name:     "no runs",
			moisture: []int{50, 50, 50},
			pump:     []irrigation.PumpState{off, off, off},
			want:     []Run{},
		},
		{
			name:     "finished run",
			moisture: []int{46, 44, 50, 60, 66, 66},
			pump:     []irrigation.PumpState{off, on, on, on, off, off},
			want: []Run{{
				StartIndex: 1, EndIndex: 3,
				StartTime: now.Add(time.Second), EndTime: now.Add(4 * time.Second),
				StartMoisture: 44, EndMoisture: 66,
			}},
		},
		{
			name:     "active run",
			moisture: []int{50, 44, 46},
			pump:     []irrigation.PumpState{off, on, on},
			want: []Run{{
				StartIndex: 1, EndIndex: 2,
				StartTime: now.Add(time.Second), EndTime: now.Add(2 * time.Second),
				StartMoisture: 44, EndMoisture: 46,
				Active: true,
			}},
		},
		{
			name:     "two runs",
			moisture: []int{40, 70, 40, 45},
			pump:     []irrigation.PumpState{on, off, on, on},
			want: []Run{
				{
					StartIndex: 0, EndIndex: 0,
					StartTime: now, EndTime: now.Add(time.Second),
					StartMoisture: 40, EndMoisture: 70,
				},
				{
					StartIndex: 2, EndIndex: 3,
					StartTime: now.Add(2 * time.Second), EndTime: now.Add(3 * time.Second),
					StartMoisture: 40, EndMoisture: 45,
					Active: true,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(time.Hour)
			for _, r := range series(now, tt.moisture, tt.pump) {
				h.Add(r)
			}
			assert.Equal(t, tt.want, h.Runs())
		})
	}
}

func TestRun_Duration(t *testing.T) {
	now := time.Now()
	r := Run{StartTime: now, EndTime: now.Add(90 * time.Second)}
	assert.Equal(t, 90*time.Second, r.Duration())
}

func TestHistory_Stats(t *testing.T) {
	now := time.Now()

	h := New(time.Hour)
	assert.Equal(t, Stats{}, h.Stats())

	// ON for the intervals starting at index 1 and 2, OFF for 0 and 3.
	for _, r := range series(now, []int{46, 44, 55, 66, 64}, []irrigation.PumpState{off, on, on, off, off}) {
		h.Add(r)
	}

	s := h.Stats()
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 44, s.Min)
	assert.Equal(t, 66, s.Max)
	assert.Equal(t, irrigation.Status{Moisture: 64, Pump: off}, s.Last)
	assert.Equal(t, 2, s.Switches)
	assert.InDelta(t, 0.5, s.DutyCycle, 1e-9)
}

func TestHistory_ProcessRecords(t *testing.T) {
	h := New(time.Hour)

	var mu sync.Mutex
	var updates int
	var lastRuns []Run
	h.OnUpdate(func(records []link.Record, runs []Run) {
		mu.Lock()
		defer mu.Unlock()
		updates++
		lastRuns = runs
	})

	input := make(chan link.Record, 4)
	for _, r := range series(time.Now(), []int{40, 50, 70}, []irrigation.PumpState{on, on, off}) {
		input <- r
	}
	close(input)

	h.ProcessRecords(input)

	mu.Lock()
	assert.Equal(t, 3, updates)
	require.Len(t, lastRuns, 1)
	assert.False(t, lastRuns[0].Active)
	mu.Unlock()
	assert.Len(t, h.Records(), 3)
}

func TestHistory_NoCallbacksAfterShutdown(t *testing.T) {
	h := New(time.Hour)

	calls := 0
	h.OnUpdate(func(records []link.Record, runs []Run) { calls++ })

	input := make(chan link.Record)
	close(input)
	h.ProcessRecords(input)

	h.Add(link.Record{Timestamp: time.Now()})
	assert.Equal(t, 0, calls, "no callbacks after the input closed")
	assert.Len(t, h.Records(), 1, "records are still stored")

	h.ResetShutdown()
	h.Add(link.Record{Timestamp: time.Now()})
	assert.Equal(t, 1, calls)
}

func TestHistory_CopiesAreIndependent(t *testing.T) {
	h := New(time.Hour)
	h.Add(link.Record{Timestamp: time.Now(), Status: irrigation.Status{Moisture: 40, Pump: on}})

	records := h.Records()
	records[0].Moisture = 99
	runs := h.Runs()
	runs[0].StartMoisture = 99

	assert.Equal(t, 40, h.Records()[0].Moisture)
	assert.Equal(t, 40, h.Runs()[0].StartMoisture)
}
