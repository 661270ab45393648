package link

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/goirrigate/pkg/irrigation"
)

func TestSerial_ParseLine(t *testing.T) {
	stamp := time.Unix(1700000000, 0)
	d := New("/dev/null", 0, 0)
	d.now = func() time.Time { return stamp }

	tests := []struct {
		name   string
		line   string
		want   Record
		wantOK bool
	}{
		{
			name:   "pump on",
			line:   "Moisture: 40%, Pump: ON",
			want:   Record{Timestamp: stamp, Status: irrigation.Status{Moisture: 40, Pump: irrigation.PumpOn}},
			wantOK: true,
		},
		{
			name:   "pump off",
			line:   "Moisture: 70%, Pump: OFF",
			want:   Record{Timestamp: stamp, Status: irrigation.Status{Moisture: 70, Pump: irrigation.PumpOff}},
			wantOK: true,
		},
		{
			name:   "boot banner",
			line:   "GoIrrigate - irrigation controller started",
			wantOK: false,
		},
		{
			name:   "garbled status",
			line:   "Moisture: 4",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.parseLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSerial_ReadRecords(t *testing.T) {
	d := New("/dev/null", 0, 10)

	input := strings.Join([]string{
		"GoIrrigate - irrigation controller started",
		"",
		"Moisture: 50%, Pump: OFF",
		"  Moisture: 44%, Pump: ON  ",
		"noise",
		"Moisture: 70%, Pump: OFF",
	}, "\r\n")

	d.readRecords(strings.NewReader(input))

	var got []irrigation.Status
	for rec := range d.Records() {
		got = append(got, rec.Status)
	}

	require.Len(t, got, 3)
	assert.Equal(t, irrigation.Status{Moisture: 50, Pump: irrigation.PumpOff}, got[0])
	assert.Equal(t, irrigation.Status{Moisture: 44, Pump: irrigation.PumpOn}, got[1])
	assert.Equal(t, irrigation.Status{Moisture: 70, Pump: irrigation.PumpOff}, got[2])
}

func TestSerial_NotConnected(t *testing.T) {
	d := New("/dev/does-not-exist", 0, 0)

	assert.False(t, d.IsConnected())
	assert.NoError(t, d.Close())
	assert.Error(t, d.Connect())
	assert.False(t, d.IsConnected())
}
