package plot

import (
	"image/color"
	"math"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Layout constants
const (
	MinWidth     float32 = 320
	MinHeight    float32 = 220
	TickCount            = 4
	TickTextSize float32 = 10
	MarkerRadius float32 = 2.5
	MaxMarkers           = 200
	LineWidth    float32 = 1.5
	LegendGap    float32 = 12
)

// DefaultInsets leave room for tick labels, title and legend
var DefaultInsets = Insets{Left: 56, Top: 28, Right: 16, Bottom: 28}

// Palette colours are assigned to series in order
var Palette = []color.Color{
	color.NRGBA{R: 25, G: 118, B: 210, A: 255},
	color.NRGBA{R: 211, G: 47, B: 47, A: 255},
	color.NRGBA{R: 46, G: 160, B: 67, A: 255},
	color.NRGBA{R: 245, G: 124, B: 0, A: 255},
	color.NRGBA{R: 123, G: 31, B: 162, A: 255},
	color.NRGBA{R: 0, G: 151, B: 167, A: 255},
}

var gridColor = color.NRGBA{R: 128, G: 128, B: 128, A: 60}

// SeriesColor returns the palette colour for series i
func SeriesColor(i int) color.Color {
	return Palette[i%len(Palette)]
}

// Canvas is a widget that renders line series with axes and a legend
type Canvas struct {
	widget.BaseWidget

	mu     sync.RWMutex
	series []Series
	title  string
}

// NewCanvas creates a plotting canvas for the given series
func NewCanvas(series ...Series) *Canvas {
	c := &Canvas{series: series}
	c.ExtendBaseWidget(c)
	return c
}

// SetSeries replaces the plotted data and redraws
func (c *Canvas) SetSeries(series ...Series) {
	c.mu.Lock()
	c.series = series
	c.mu.Unlock()
	c.Refresh()
}

// Series returns the plotted data
func (c *Canvas) Series() []Series {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Series(nil), c.series...)
}

// SetTitle sets the caption drawn above the plot area
func (c *Canvas) SetTitle(title string) {
	c.mu.Lock()
	c.title = title
	c.mu.Unlock()
	c.Refresh()
}

// Title returns the caption
func (c *Canvas) Title() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.title
}

// CreateRenderer creates the widget renderer
func (c *Canvas) CreateRenderer() fyne.WidgetRenderer {
	return &canvasRenderer{plot: c}
}

type canvasRenderer struct {
	plot    *Canvas
	objects []fyne.CanvasObject
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.rebuild(size)
}

func (r *canvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(MinWidth, MinHeight)
}

func (r *canvasRenderer) Refresh() {
	r.rebuild(r.plot.Size())
	canvas.Refresh(r.plot)
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *canvasRenderer) Destroy() {}

// rebuild recreates every primitive for the current size
func (r *canvasRenderer) rebuild(size fyne.Size) {
	series := r.plot.Series()
	title := r.plot.Title()
	in := DefaultInsets
	b := DataBounds(series)
	fg := theme.Color(theme.ColorNameForeground)

	areaW := size.Width - in.Left - in.Right
	areaH := size.Height - in.Top - in.Bottom
	if areaW <= 0 || areaH <= 0 {
		r.objects = nil
		return
	}

	objs := make([]fyne.CanvasObject, 0, 64)

	// Grid and tick labels
	for i := 0; i <= TickCount; i++ {
		f := float64(i) / TickCount
		xv := snapZero(lerp(b.MinX, b.MaxX, f), span(b.MinX, b.MaxX))
		yv := snapZero(lerp(b.MinY, b.MaxY, f), span(b.MinY, b.MaxY))
		px := b.Project(xv, b.MinY, size, in).X
		py := b.Project(b.MinX, yv, size, in).Y

		vline := canvas.NewLine(gridColor)
		vline.Position1 = fyne.NewPos(px, in.Top)
		vline.Position2 = fyne.NewPos(px, in.Top+areaH)
		hline := canvas.NewLine(gridColor)
		hline.Position1 = fyne.NewPos(in.Left, py)
		hline.Position2 = fyne.NewPos(in.Left+areaW, py)

		xt := tickText(xv, fg)
		xt.Move(fyne.NewPos(px-xt.MinSize().Width/2, in.Top+areaH+2))
		yt := tickText(yv, fg)
		yt.Move(fyne.NewPos(in.Left-yt.MinSize().Width-4, py-yt.MinSize().Height/2))

		objs = append(objs, vline, hline, xt, yt)
	}

	frame := canvas.NewRectangle(color.Transparent)
	frame.StrokeColor = fg
	frame.StrokeWidth = 1
	frame.Move(fyne.NewPos(in.Left, in.Top))
	frame.Resize(fyne.NewSize(areaW, areaH))
	objs = append(objs, frame)

	// Data
	for i, s := range series {
		col := SeriesColor(i)
		for _, seg := range Segments(s, b, size, in) {
			line := canvas.NewLine(col)
			line.StrokeWidth = LineWidth
			line.Position1 = seg[0]
			line.Position2 = seg[1]
			objs = append(objs, line)
		}
		if s.Len() <= MaxMarkers {
			for j := 0; j < s.Len(); j++ {
				if !isFinite(s.X[j]) || !isFinite(s.Y[j]) {
					continue
				}
				p := b.Project(s.X[j], s.Y[j], size, in)
				dot := canvas.NewCircle(col)
				dot.Move(fyne.NewPos(p.X-MarkerRadius, p.Y-MarkerRadius))
				dot.Resize(fyne.NewSize(2*MarkerRadius, 2*MarkerRadius))
				objs = append(objs, dot)
			}
		}
	}

	// Title on the left, legend flush right
	if title != "" {
		t := canvas.NewText(title, fg)
		t.TextStyle = fyne.TextStyle{Bold: true}
		t.Move(fyne.NewPos(in.Left, 4))
		objs = append(objs, t)
	}
	x := in.Left + areaW
	for i := len(series) - 1; i >= 0; i-- {
		label := canvas.NewText(series[i].Name, SeriesColor(i))
		label.TextSize = TickTextSize + 2
		x -= label.MinSize().Width
		label.Move(fyne.NewPos(x, 6))
		x -= LegendGap
		objs = append(objs, label)
	}

	r.objects = objs
}

// Segments returns the line segments joining consecutive finite points of s.
// A NaN or infinite value breaks the line.
func Segments(s Series, b Bounds, size fyne.Size, in Insets) [][2]fyne.Position {
	var out [][2]fyne.Position
	var prev fyne.Position
	havePrev := false
	for i := 0; i < s.Len(); i++ {
		if !isFinite(s.X[i]) || !isFinite(s.Y[i]) {
			havePrev = false
			continue
		}
		p := b.Project(s.X[i], s.Y[i], size, in)
		if havePrev {
			out = append(out, [2]fyne.Position{prev, p})
		}
		prev, havePrev = p, true
	}
	return out
}

func tickText(v float64, fg color.Color) *canvas.Text {
	t := canvas.NewText(FormatTick(v), fg)
	t.TextSize = TickTextSize
	return t
}

// snapZero hides rounding noise such as 1e-17 on a tick that should read 0
func snapZero(v, span float64) float64 {
	if math.Abs(v) < span*1e-9 {
		return 0
	}
	return v
}

// FormatTick renders an axis value compactly
func FormatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
