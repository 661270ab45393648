package trend

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/goirrigate/pkg/history"
	"github.com/itohio/goirrigate/pkg/irrigation"
	"github.com/itohio/goirrigate/pkg/link"
)

// TrendWidget is a custom Fyne widget that plots soil moisture against the
// controller thresholds and shades the periods the pump was running.
type TrendWidget struct {
	widget.BaseWidget

	dry, wet int
	window   time.Duration

	// Data (protected by mu)
	mu   sync.RWMutex
	runs []history.Run
	last *irrigation.Status

	// Display buffer (reused for downsampling)
	displayRecords []link.Record

	xMin, xMax time.Time

	maxDisplayPoints int
}

// New creates a TrendWidget for the given thresholds.
// window is the minimum time span shown on the X axis.
func New(cfg irrigation.Config, window time.Duration) *TrendWidget {
	w := &TrendWidget{
		dry:              cfg.DryThreshold,
		wet:              cfg.WetThreshold,
		window:           window,
		runs:             make([]history.Run, 0),
		displayRecords:   make([]link.Record, 0, 1000),
		maxDisplayPoints: 1000,
	}
	w.xMin, w.xMax = timeRange(nil, window)
	w.ExtendBaseWidget(w)
	w.Refresh()
	return w
}

// UpdateData updates the widget with a new history snapshot.
// This should be called from the history callback using fyne.Do().
func (w *TrendWidget) UpdateData(records []link.Record, runs []history.Run) {
	w.mu.Lock()

	w.displayRecords = history.Downsample(w.displayRecords, records, w.maxDisplayPoints)
	w.runs = runs
	if len(records) > 0 {
		last := records[len(records)-1].Status
		w.last = &last
	}
	w.xMin, w.xMax = timeRange(w.displayRecords, w.window)

	w.mu.Unlock()

	// Refresh outside the lock
	w.Refresh()
}

// timeRange returns the X axis span, at least window wide and ending at the newest record.
func timeRange(records []link.Record, window time.Duration) (time.Time, time.Time) {
	if len(records) == 0 {
		now := time.Now()
		return now.Add(-window), now
	}
	xMin := records[0].Timestamp
	xMax := records[len(records)-1].Timestamp
	if xMax.Sub(xMin) < window {
		xMin = xMax.Add(-window)
	}
	return xMin, xMax
}

// CreateRenderer creates the widget renderer.
func (w *TrendWidget) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255})
	return &trendRenderer{
		trend:      w,
		background: background,
		objects:    []fyne.CanvasObject{background},
	}
}
