package trend

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/itohio/goirrigate/pkg/history"
	"github.com/itohio/goirrigate/pkg/irrigation"
	"github.com/itohio/goirrigate/pkg/link"
)

var (
	gridColor     = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	labelColor    = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	moistureColor = color.RGBA{R: 80, G: 200, B: 120, A: 255}
	dryColor      = color.RGBA{R: 220, G: 120, B: 40, A: 255}
	wetColor      = color.RGBA{R: 60, G: 140, B: 255, A: 255}
	runColor      = color.RGBA{R: 60, G: 140, B: 255, A: 60}
	statusColor   = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// plot is the drawing area inside the widget margins.
type plot struct {
	x, y, w, h float32
	xMin, xMax time.Time
}

func newPlot(size fyne.Size, xMin, xMax time.Time) plot {
	const (
		marginLeft   = 50
		marginRight  = 20
		marginTop    = 30
		marginBottom = 30
	)
	return plot{
		x:    marginLeft,
		y:    marginTop,
		w:    size.Width - marginLeft - marginRight,
		h:    size.Height - marginTop - marginBottom,
		xMin: xMin,
		xMax: xMax,
	}
}

// X maps a timestamp onto the horizontal axis.
func (p plot) X(t time.Time) float32 {
	span := p.xMax.Sub(p.xMin).Seconds()
	if span <= 0 {
		return p.x + p.w
	}
	return p.x + float32(t.Sub(p.xMin).Seconds()/span)*p.w
}

// Y maps a moisture percentage onto the vertical axis, 100% at the top.
func (p plot) Y(percent int) float32 {
	return p.y + p.h - float32(percent)/100*p.h
}

// trendRenderer renders the trend widget.
type trendRenderer struct {
	trend *TrendWidget

	background *canvas.Rectangle
	objects    []fyne.CanvasObject

	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *trendRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 250)
}

// Layout arranges the widget components.
func (r *trendRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	if r.lastSize != size {
		r.lastSize = size
		r.trend.BaseWidget.Refresh()
	}
}

// Refresh rebuilds the canvas objects from the current data.
func (r *trendRenderer) Refresh() {
	r.trend.mu.RLock()
	records := r.trend.displayRecords
	runs := r.trend.runs
	last := r.trend.last
	dry, wet := r.trend.dry, r.trend.wet
	xMin, xMax := r.trend.xMin, r.trend.xMax
	r.trend.mu.RUnlock()

	size := r.trend.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	r.objects = []fyne.CanvasObject{r.background}
	p := newPlot(size, xMin, xMax)

	r.drawRuns(p, runs)
	r.drawGrid(p)
	r.drawThreshold(p, dry, dryColor, "dry")
	r.drawThreshold(p, wet, wetColor, "wet")
	r.drawMoisture(p, records)
	r.drawStatus(p, last)
}

// drawGrid draws horizontal lines every 20% and time labels along the bottom.
func (r *trendRenderer) drawGrid(p plot) {
	for percent := 0; percent <= 100; percent += 20 {
		y := p.Y(percent)
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(p.x, y)
		line.Position2 = fyne.NewPos(p.x+p.w, y)
		line.StrokeWidth = 1
		r.objects = append(r.objects, line)

		text := canvas.NewText(fmt.Sprintf("%d%%", percent), labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(p.x-5, y-6))
		r.objects = append(r.objects, text)
	}

	numVLines := 6
	span := p.xMax.Sub(p.xMin)
	for i := range numVLines + 1 {
		x := p.x + float32(i)*p.w/float32(numVLines)
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(x, p.y)
		line.Position2 = fyne.NewPos(x, p.y+p.h)
		line.StrokeWidth = 1
		r.objects = append(r.objects, line)

		age := span - span*time.Duration(i)/time.Duration(numVLines)
		text := canvas.NewText(formatAge(age), labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		text.Move(fyne.NewPos(x-20, p.y+p.h+5))
		r.objects = append(r.objects, text)
	}
}

func (r *trendRenderer) drawThreshold(p plot, percent int, c color.Color, label string) {
	y := p.Y(percent)
	line := canvas.NewLine(c)
	line.Position1 = fyne.NewPos(p.x, y)
	line.Position2 = fyne.NewPos(p.x+p.w, y)
	line.StrokeWidth = 1
	r.objects = append(r.objects, line)

	text := canvas.NewText(fmt.Sprintf("%s %d%%", label, percent), c)
	text.TextSize = 10
	text.Move(fyne.NewPos(p.x+p.w-60, y-14))
	r.objects = append(r.objects, text)
}

// drawRuns shades the pump ON spans.
func (r *trendRenderer) drawRuns(p plot, runs []history.Run) {
	for _, run := range runs {
		if run.StartTime.After(p.xMax) || run.EndTime.Before(p.xMin) {
			continue
		}
		x1 := max(p.X(run.StartTime), p.x)
		x2 := min(p.X(run.EndTime), p.x+p.w)
		if run.Active {
			x2 = p.x + p.w
		}
		if x2 <= x1 {
			x2 = x1 + 1
		}

		rect := canvas.NewRectangle(runColor)
		rect.Move(fyne.NewPos(x1, p.y))
		rect.Resize(fyne.NewSize(x2-x1, p.h))
		r.objects = append(r.objects, rect)
	}
}

func (r *trendRenderer) drawMoisture(p plot, records []link.Record) {
	if len(records) < 2 {
		return
	}

	prev := fyne.NewPos(p.X(records[0].Timestamp), p.Y(records[0].Moisture))
	for _, rec := range records[1:] {
		next := fyne.NewPos(p.X(rec.Timestamp), p.Y(rec.Moisture))
		line := canvas.NewLine(moistureColor)
		line.Position1 = prev
		line.Position2 = next
		line.StrokeWidth = 1.5
		r.objects = append(r.objects, line)
		prev = next
	}
}

func (r *trendRenderer) drawStatus(p plot, last *irrigation.Status) {
	status := "waiting for data"
	if last != nil {
		status = irrigation.LogLine(*last)
	}
	text := canvas.NewText(status, statusColor)
	text.TextSize = 12
	text.Move(fyne.NewPos(p.x, p.y-22))
	r.objects = append(r.objects, text)
}

// Objects returns all canvas objects for rendering.
func (r *trendRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *trendRenderer) Destroy() {}

// formatAge renders how long ago a grid line is, e.g. "-5m" or "now".
func formatAge(d time.Duration) string {
	switch {
	case d <= 0:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("-%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("-%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("-%.1fh", d.Hours())
	}
}
