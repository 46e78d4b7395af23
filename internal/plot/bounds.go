package plot

import (
	"math"

	"fyne.io/fyne/v2"
	"gonum.org/v1/gonum/floats"
)

// Bounds padding and fallbacks
const (
	BoundsPadding     = 0.05
	DegenerateSpread  = 0.5
	DegenerateRelSpan = 0.1
)

// Bounds is the data rectangle mapped onto the plot area
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Insets reserve room around the plot area for labels
type Insets struct {
	Left, Top, Right, Bottom float32
}

// DataBounds returns padded bounds covering every finite point of series.
// Empty or constant ranges are widened so the result always has positive extent.
func DataBounds(series []Series) Bounds {
	var xs, ys []float64
	for _, s := range series {
		n := s.Len()
		for i := 0; i < n; i++ {
			if isFinite(s.X[i]) && isFinite(s.Y[i]) {
				xs = append(xs, s.X[i])
				ys = append(ys, s.Y[i])
			}
		}
	}
	if len(xs) == 0 {
		return Bounds{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	}

	minX, maxX := widen(floats.Min(xs), floats.Max(xs))
	minY, maxY := widen(floats.Min(ys), floats.Max(ys))

	padX := padding(minX, maxX)
	padY := padding(minY, maxY)
	return Bounds{
		MinX: clampFinite(minX - padX),
		MaxX: clampFinite(maxX + padX),
		MinY: clampFinite(minY - padY),
		MaxY: clampFinite(maxY + padY),
	}
}

func widen(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	spread := math.Abs(lo) * DegenerateRelSpan
	if spread == 0 {
		spread = DegenerateSpread
	}
	return clampFinite(lo - spread), clampFinite(hi + spread)
}

// padding is BoundsPadding of hi-lo, computed without overflowing for
// ranges wider than MaxFloat64.
func padding(lo, hi float64) float64 {
	if d := hi - lo; !math.IsInf(d, 0) {
		return d * BoundsPadding
	}
	return hi*BoundsPadding - lo*BoundsPadding
}

// lerp returns the value at fraction f of the way from lo to hi
func lerp(lo, hi, f float64) float64 {
	if d := hi - lo; !math.IsInf(d, 0) {
		return lo + f*d
	}
	return lo*(1-f) + hi*f
}

// fraction is the inverse of lerp
func fraction(v, lo, hi float64) float64 {
	d, off := hi-lo, v-lo
	if !math.IsInf(d, 0) && !math.IsInf(off, 0) {
		return off / d
	}
	return (v/2 - lo/2) / (hi/2 - lo/2)
}

// span is hi-lo, capped at MaxFloat64
func span(lo, hi float64) float64 {
	return clampFinite(hi - lo)
}

func clampFinite(v float64) float64 {
	switch {
	case v > math.MaxFloat64:
		return math.MaxFloat64
	case v < -math.MaxFloat64:
		return -math.MaxFloat64
	default:
		return v
	}
}

// Project maps a data point into widget coordinates for a widget of the given size
func (b Bounds) Project(x, y float64, size fyne.Size, in Insets) fyne.Position {
	w := float64(size.Width - in.Left - in.Right)
	h := float64(size.Height - in.Top - in.Bottom)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	fx := fraction(x, b.MinX, b.MaxX)
	fy := fraction(y, b.MinY, b.MaxY)
	return fyne.NewPos(
		in.Left+float32(fx*w),
		in.Top+float32((1-fy)*h),
	)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
