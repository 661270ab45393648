package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/itohio/goirrigate/pkg/history"
	"github.com/itohio/goirrigate/pkg/irrigation"
	"github.com/itohio/goirrigate/pkg/link"
)

// streamRecords prints records and feeds them into h until the channel
// closes or ctx is done.
func streamRecords(ctx context.Context, w io.Writer, records <-chan link.Record, h *history.History) {
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-records:
			if !ok {
				return
			}
			h.Add(r)
			fmt.Fprintln(w, formatRecord(r))
		}
	}
}

func formatRecord(r link.Record) string {
	return r.Timestamp.Format("15:04:05") + " " + irrigation.LogLine(r.Status)
}

// printSummary writes one line describing the records seen.
func printSummary(w io.Writer, h *history.History) {
	s := h.Stats()
	if s.Count == 0 {
		fmt.Fprintln(w, "no records received")
		return
	}
	fmt.Fprintf(w, "records: %d, moisture: %d%%-%d%%, pump duty: %.1f%%, switches: %d, runs: %d\n",
		s.Count, s.Min, s.Max, s.DutyCycle*100, s.Switches, len(h.Runs()))
}
