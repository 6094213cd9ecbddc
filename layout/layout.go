// Package layout holds the page geometry shared by every composer: A4 page sizes,
// orientation resolution and the scale-to-fit box used to place any raster.
package layout

import (
	"math"

	"github.com/flanksource/pdfo/api"
)

// A4 dimensions in millimetres
const (
	A4Short = 210.0
	A4Long  = 297.0
)

// Box is a placed rectangle in page units
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the x coordinate of the right edge
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y coordinate of the bottom edge
func (b Box) Bottom() float64 { return b.Y + b.H }

// Inset shrinks the box by m on every side
func (b Box) Inset(m float64) Box {
	return Box{X: b.X + m, Y: b.Y + m, W: math.Max(0, b.W-2*m), H: math.Max(0, b.H-2*m)}
}

// FitBox scales content of size cw x ch to the largest size that fits in a bw x bh box
// while keeping its aspect ratio, and centres it in that box. The returned X/Y are
// offsets relative to the box origin.
//
// When cw/ch > bw/bh the result is width-bound (W == bw), otherwise height-bound
// (H == bh). Non-positive or non-finite input yields an empty box centred in the container.
func FitBox(cw, ch, bw, bh float64) Box {
	if !positive(cw) || !positive(ch) || !positive(bw) || !positive(bh) {
		return Box{X: math.Max(bw, 0) / 2, Y: math.Max(bh, 0) / 2}
	}

	ratio := cw / ch
	var w, h float64
	if ratio > bw/bh {
		w = bw
		h = bw / ratio
	} else {
		h = bh
		w = bh * ratio
	}
	return Box{X: (bw - w) / 2, Y: (bh - h) / 2, W: w, H: h}
}

// FitInto is FitBox against a positioned container, returning absolute coordinates
func FitInto(cw, ch float64, container Box) Box {
	b := FitBox(cw, ch, container.W, container.H)
	b.X += container.X
	b.Y += container.Y
	return b
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ResolveOrientation returns the concrete orientation for one page. In auto mode a
// ratio >= 1 (square included) is landscape; any fixed mode is echoed back.
func ResolveOrientation(mode api.Orientation, ratio float64) api.Orientation {
	switch mode {
	case api.Landscape:
		return api.Landscape
	case api.Auto:
		if ratio >= 1 {
			return api.Landscape
		}
		return api.Portrait
	default:
		return api.Portrait
	}
}

// PageSize returns the A4 width and height for a resolved orientation
func PageSize(o api.Orientation) (w, h float64) {
	if o == api.Landscape {
		return A4Long, A4Short
	}
	return A4Short, A4Long
}

// Ratio returns w/h, or 0 when h is not positive
func Ratio(w, h float64) float64 {
	if h <= 0 {
		return 0
	}
	return w / h
}

// IsLandscape is shorthand used by composers for orientation-dependent constants
func IsLandscape(o api.Orientation) bool {
	return o == api.Landscape
}

// Pick returns landscape when o is landscape, else portrait
func Pick[T any](o api.Orientation, portrait, landscape T) T {
	if o == api.Landscape {
		return landscape
	}
	return portrait
}
