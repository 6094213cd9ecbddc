// Package pdf is the boundary to the vector drawing backend. Composers draw through the
// Canvas interface; Builder renders to a real document with gofpdf and Recorder keeps the
// drawing calls in memory for layout assertions.
package pdf

import (
	"fmt"
	"io"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/layout"
)

// Style selects whether a shape is filled, stroked or both
type Style string

const (
	Fill       Style = "F"
	Stroke     Style = "D"
	FillStroke Style = "FD"
)

// Align is horizontal text alignment relative to the anchor x
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

// Font is the single built-in typeface at a weight and point size
type Font struct {
	Bold bool
	Size float64
}

// TextOptions position a text run. Angle is in degrees, counter-clockwise around the anchor.
type TextOptions struct {
	Align Align
	Angle float64
}

// Canvas is the drawing surface every page composer works against.
// Coordinates are millimetres from the top-left corner of the current page; text y is the
// baseline.
type Canvas interface {
	AddPage(o api.Orientation)
	PageSize() (w, h float64)
	PageCount() int

	SetFillColor(c api.RGB)
	SetDrawColor(c api.RGB)
	SetTextColor(c api.RGB)
	SetFont(f Font)
	SetLineWidth(w float64)

	Rect(b layout.Box, style Style)
	Circle(x, y, r float64, style Style)
	Line(x1, y1, x2, y2 float64)
	Text(s string, x, y float64, opts TextOptions)
	StringWidth(s string) float64

	// Image places encoded raster data (format "JPG" or "PNG") into b. A rejected image
	// returns an error and leaves the canvas usable.
	Image(name string, data []byte, format string, b layout.Box) error

	// Err reports a failure of the backend itself; once set the document is unusable
	Err() error
	Output(w io.Writer) error
}

// DrawingBackendError means the drawing backend failed and the partial document must be
// discarded.
type DrawingBackendError struct {
	Op  string
	Err error
}

func (e *DrawingBackendError) Error() string {
	return fmt.Sprintf("drawing backend failed during %s: %v", e.Op, e.Err)
}

func (e *DrawingBackendError) Unwrap() error {
	return e.Err
}
