package irrigation

// ClampRaw forces a raw reading into [0, sensorMax].
// Out-of-range samples come from a faulty sensor and are absorbed here rather than reported.
func ClampRaw(raw, sensorMax int) int {
	if raw < 0 {
		return 0
	}
	if raw > sensorMax {
		return sensorMax
	}
	return raw
}

// Normalize maps a raw reading onto the 0-100 moisture scale.
// 0 is the wettest raw value and maps to 100 %; sensorMax maps to 0 %.
func Normalize(raw, sensorMax int) int {
	if sensorMax <= 0 {
		return 0
	}
	raw = ClampRaw(raw, sensorMax)

	// Rounds half up in integers so that wide sensors stay exact.
	full := int64(sensorMax)
	return int((200*(full-int64(raw)) + full) / (2 * full))
}
