package irrigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Endpoints(t *testing.T) {
	assert.Equal(t, 100, Normalize(0, 4095))
	assert.Equal(t, 0, Normalize(4095, 4095))
	assert.Equal(t, 50, Normalize(2048, 4095))
}

func TestNormalize_RangeAndMonotonic(t *testing.T) {
	const max = 4095
	prev := Normalize(0, max)
	for r := 0; r <= max; r++ {
		p := Normalize(r, max)
		assert.GreaterOrEqual(t, p, 0, "raw %d", r)
		assert.LessOrEqual(t, p, 100, "raw %d", r)
		if p > prev {
			t.Fatalf("not monotonic at raw %d: %d > %d", r, p, prev)
		}
		prev = p
	}
}

func TestNormalize_ClampsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		raw  int
		want int
	}{
		{name: "negative", raw: -10, want: 100},
		{name: "above max", raw: 5000, want: 0},
		{name: "far above max", raw: 1 << 20, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, 4095))
		})
	}
}

func TestNormalize_SmallSensorRange(t *testing.T) {
	assert.Equal(t, 100, Normalize(0, 10))
	assert.Equal(t, 50, Normalize(5, 10))
	assert.Equal(t, 0, Normalize(10, 10))
	assert.Equal(t, 0, Normalize(3, 0), "invalid sensor max")
}

func TestClampRaw(t *testing.T) {
	assert.Equal(t, 0, ClampRaw(-1, 100))
	assert.Equal(t, 100, ClampRaw(101, 100))
	assert.Equal(t, 42, ClampRaw(42, 100))
}

func TestNormalize_WideSensorExact(t *testing.T) {
	tests := []struct {
		name      string
		raw       int
		sensorMax int
		want      int
	}{
		{name: "20 bit just below half step", raw: 89129, sensorMax: 1 << 20, want: 91},
		{name: "20 bit midpoint", raw: 1 << 19, sensorMax: 1 << 20, want: 50},
		{name: "half step rounds up", raw: 1, sensorMax: 200, want: 100},
		{name: "just past half step", raw: 3, sensorMax: 200, want: 99},
		{name: "24 bit full scale", raw: 1<<24 - 1, sensorMax: 1<<24 - 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, tt.sensorMax))
		})
	}
}

func TestNormalize_MatchesExactRounding(t *testing.T) {
	for _, sensorMax := range []int{1023, 4095, 65535, 1 << 20} {
		step := sensorMax/5000 + 1
		for r := 0; r <= sensorMax; r += step {
			num := 100 * (sensorMax - r)
			want := num / sensorMax
			if 2*(num%sensorMax) >= sensorMax {
				want++
			}
			if got := Normalize(r, sensorMax); got != want {
				t.Fatalf("max %d raw %d: got %d, want %d", sensorMax, r, got, want)
			}
		}
	}
}
