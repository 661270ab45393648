package irrigation

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	moisturePrefix = "Moisture: "
	pumpPrefix     = "Pump: "
)

// Status is what one control cycle reports: the moisture percent and the pump
// state read back from the relay line.
type Status struct {
	Moisture int
	Pump     PumpState
}

// FormatDisplay renders s as two display lines of at most columns characters.
func FormatDisplay(s Status, columns int) (line1, line2 string) {
	line1 = moisturePrefix + strconv.Itoa(s.Moisture) + "%"
	line2 = pumpPrefix + s.Pump.String()
	return Truncate(line1, columns), Truncate(line2, columns)
}

// LogLine renders s as a single log line, e.g. "Moisture: 42%, Pump: ON".
func LogLine(s Status) string {
	return moisturePrefix + strconv.Itoa(s.Moisture) + "%, " + pumpPrefix + s.Pump.String()
}

// Report pushes s to the display and the log.
func Report(s Status, display Display, log Logger, columns int) {
	display.Show(FormatDisplay(s, columns))
	log.Emit(LogLine(s))
}

// Truncate cuts text to at most columns bytes. Display text is plain ASCII.
func Truncate(text string, columns int) string {
	if columns < 0 {
		columns = 0
	}
	if len(text) > columns {
		return text[:columns]
	}
	return text
}

// IsStatusLine reports whether line looks like a LogLine rather than free text
// such as the start-up banner.
func IsStatusLine(line string) bool {
	return strings.HasPrefix(line, moisturePrefix)
}

// ParseLogLine is the inverse of LogLine.
func ParseLogLine(line string) (Status, error) {
	moisture, pump, ok := strings.Cut(line, ", ")
	if !ok {
		return Status{}, fmt.Errorf("invalid status line %q", line)
	}

	m, ok := strings.CutPrefix(moisture, moisturePrefix)
	if !ok {
		return Status{}, fmt.Errorf("missing moisture in %q", line)
	}
	m, ok = strings.CutSuffix(m, "%")
	if !ok {
		return Status{}, fmt.Errorf("missing percent sign in %q", line)
	}
	percent, err := strconv.Atoi(m)
	if err != nil {
		return Status{}, fmt.Errorf("invalid moisture: %w", err)
	}
	if percent < 0 || percent > 100 {
		return Status{}, fmt.Errorf("moisture out of range: %d", percent)
	}

	p, ok := strings.CutPrefix(pump, pumpPrefix)
	if !ok {
		return Status{}, fmt.Errorf("missing pump state in %q", line)
	}
	state, err := ParsePumpState(p)
	if err != nil {
		return Status{}, err
	}

	return Status{Moisture: percent, Pump: state}, nil
}
