package irrigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		name      string
		status    Status
		columns   int
		wantLine1 string
		wantLine2 string
	}{
		{
			name:      "pump on",
			status:    Status{Moisture: 42, Pump: PumpOn},
			columns:   16,
			wantLine1: "Moisture: 42%",
			wantLine2: "Pump: ON",
		},
		{
			name:      "saturated fits exactly",
			status:    Status{Moisture: 100, Pump: PumpOff},
			columns:   14,
			wantLine1: "Moisture: 100%",
			wantLine2: "Pump: OFF",
		},
		{
			name:      "narrow display truncates",
			status:    Status{Moisture: 100, Pump: PumpOff},
			columns:   8,
			wantLine1: "Moisture",
			wantLine2: "Pump: OF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l1, l2 := FormatDisplay(tt.status, tt.columns)
			assert.Equal(t, tt.wantLine1, l1)
			assert.Equal(t, tt.wantLine2, l2)
			assert.LessOrEqual(t, len(l1), tt.columns)
			assert.LessOrEqual(t, len(l2), tt.columns)
		})
	}
}

func TestLogLine(t *testing.T) {
	assert.Equal(t, "Moisture: 7%, Pump: ON", LogLine(Status{Moisture: 7, Pump: PumpOn}))
	assert.Equal(t, "Moisture: 100%, Pump: OFF", LogLine(Status{Moisture: 100, Pump: PumpOff}))
}

func TestReport(t *testing.T) {
	screen := &Screen{Columns: 16}
	journal := &Journal{}

	Report(Status{Moisture: 55, Pump: PumpOn}, screen, journal, 16)

	assert.Equal(t, "Moisture: 55%", screen.Line1)
	assert.Equal(t, "Pump: ON", screen.Line2)
	assert.Equal(t, []string{"Moisture: 55%, Pump: ON"}, journal.Lines())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "", Truncate("abc", -1))
}

func TestParseLogLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Status
		wantErr bool
	}{
		{name: "pump on", line: "Moisture: 42%, Pump: ON", want: Status{Moisture: 42, Pump: PumpOn}},
		{name: "pump off saturated", line: "Moisture: 100%, Pump: OFF", want: Status{Moisture: 100, Pump: PumpOff}},
		{name: "dry", line: "Moisture: 0%, Pump: ON", want: Status{Moisture: 0, Pump: PumpOn}},
		{name: "banner", line: "GoIrrigate - irrigation controller started", wantErr: true},
		{name: "missing percent", line: "Moisture: 42, Pump: ON", wantErr: true},
		{name: "not a number", line: "Moisture: xx%, Pump: ON", wantErr: true},
		{name: "out of range", line: "Moisture: 101%, Pump: ON", wantErr: true},
		{name: "bad pump", line: "Moisture: 42%, Pump: MAYBE", wantErr: true},
		{name: "missing pump", line: "Moisture: 42%, Valve: ON", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLogLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsStatusLine(t *testing.T) {
	assert.True(t, IsStatusLine("Moisture: 42%, Pump: ON"))
	assert.False(t, IsStatusLine("GoIrrigate - irrigation controller started"))
}
