package history

import "github.com/itohio/goirrigate/pkg/link"

// Downsample reduces records to at most maxPoints by decimation.
// dst is reused if it has sufficient capacity, otherwise a new slice is allocated.
func Downsample(dst []link.Record, records []link.Record, maxPoints int) []link.Record {
	if len(records) <= maxPoints {
		if cap(dst) >= len(records) {
			dst = dst[:len(records)]
			copy(dst, records)
			return dst
		}
		result := make([]link.Record, len(records))
		copy(result, records)
		return result
	}

	if cap(dst) >= maxPoints {
		dst = dst[:0]
	} else {
		dst = make([]link.Record, 0, maxPoints)
	}

	step := float64(len(records)) / float64(maxPoints)
	for i := range maxPoints {
		idx := int(float64(i) * step)
		if idx < len(records) {
			dst = append(dst, records[idx])
		}
	}

	// Keep the newest record so the trend ends at the current reading.
	if len(dst) > 0 {
		dst[len(dst)-1] = records[len(records)-1]
	}

	return dst
}
