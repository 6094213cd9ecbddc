package pdf

import (
	"encoding/json"
	"io"

	"github.com/samber/lo"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/layout"
)

// OpKind names a recorded drawing call
type OpKind string

const (
	OpPage   OpKind = "page"
	OpRect   OpKind = "rect"
	OpCircle OpKind = "circle"
	OpLine   OpKind = "line"
	OpText   OpKind = "text"
	OpImage  OpKind = "image"
)

// Op is one drawing call with the graphics state it was drawn with
type Op struct {
	Kind        OpKind          `json:"kind"`
	Page        int             `json:"page"`
	Box         layout.Box      `json:"box"`
	Style       Style           `json:"style,omitempty"`
	Text        string          `json:"text,omitempty"`
	Name        string          `json:"name,omitempty"`
	Format      string          `json:"format,omitempty"`
	Font        Font            `json:"font"`
	Options     TextOptions     `json:"options"`
	Fill        api.RGB         `json:"fill"`
	Draw        api.RGB         `json:"draw"`
	TextColor   api.RGB         `json:"textColor"`
	LineWidth   float64         `json:"lineWidth,omitempty"`
	Orientation api.Orientation `json:"orientation,omitempty"`
}

// Recorder is an in-memory Canvas. Text width is approximated from the font size.
type Recorder struct {
	Ops []Op

	// RejectImage, when set, decides which images fail to embed
	RejectImage func(name string) error
	// Fail, when set, is reported as a backend failure
	Fail error

	page      int
	width     float64
	height    float64
	fill      api.RGB
	draw      api.RGB
	text      api.RGB
	font      Font
	lineWidth float64
}

// NewRecorder returns an empty recorder with the backend's default state
func NewRecorder() *Recorder {
	return &Recorder{font: Font{Size: 12}, lineWidth: 0.2}
}

func (r *Recorder) record(op Op) {
	op.Page = r.page
	op.Fill = r.fill
	op.Draw = r.draw
	op.TextColor = r.text
	op.Font = r.font
	op.LineWidth = r.lineWidth
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) AddPage(o api.Orientation) {
	r.page++
	r.width, r.height = layout.PageSize(o)
	r.record(Op{Kind: OpPage, Orientation: layout.ResolveOrientation(o, 0), Box: layout.Box{W: r.width, H: r.height}})
}

func (r *Recorder) PageSize() (float64, float64) { return r.width, r.height }
func (r *Recorder) PageCount() int               { return r.page }
func (r *Recorder) SetFillColor(c api.RGB)       { r.fill = c }
func (r *Recorder) SetDrawColor(c api.RGB)       { r.draw = c }
func (r *Recorder) SetTextColor(c api.RGB)       { r.text = c }
func (r *Recorder) SetFont(f Font)               { r.font = f }
func (r *Recorder) SetLineWidth(w float64)       { r.lineWidth = w }

func (r *Recorder) Rect(b layout.Box, style Style) {
	r.record(Op{Kind: OpRect, Box: b, Style: style})
}

func (r *Recorder) Circle(x, y, radius float64, style Style) {
	r.record(Op{Kind: OpCircle, Box: layout.Box{X: x - radius, Y: y - radius, W: 2 * radius, H: 2 * radius}, Style: style})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.record(Op{Kind: OpLine, Box: layout.Box{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}})
}

func (r *Recorder) Text(s string, x, y float64, opts TextOptions) {
	if s == "" {
		return
	}
	r.record(Op{Kind: OpText, Text: s, Box: layout.Box{X: x, Y: y}, Options: opts})
}

// StringWidth approximates Helvetica at half an em per character
func (r *Recorder) StringWidth(s string) float64 {
	return float64(len([]rune(s))) * r.font.Size * 0.5 * 25.4 / 72
}

func (r *Recorder) Image(name string, data []byte, format string, b layout.Box) error {
	if r.RejectImage != nil {
		if err := r.RejectImage(name); err != nil {
			return err
		}
	}
	r.record(Op{Kind: OpImage, Name: name, Format: format, Box: b})
	return nil
}

func (r *Recorder) Err() error {
	if r.Fail != nil {
		return &DrawingBackendError{Op: "draw", Err: r.Fail}
	}
	return nil
}

// Output writes the recorded calls as JSON
func (r *Recorder) Output(w io.Writer) error {
	if err := r.Err(); err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(r.Ops)
}

// Find returns the recorded calls of a kind, optionally limited to one page (page > 0)
func (r *Recorder) Find(kind OpKind, page int) []Op {
	return lo.Filter(r.Ops, func(op Op, _ int) bool {
		return op.Kind == kind && (page <= 0 || op.Page == page)
	})
}

// Texts returns the strings drawn on a page, in drawing order
func (r *Recorder) Texts(page int) []string {
	return lo.Map(r.Find(OpText, page), func(op Op, _ int) string { return op.Text })
}

// TextOp returns the first text call drawing s
func (r *Recorder) TextOp(s string) (Op, bool) {
	return lo.Find(r.Ops, func(op Op) bool { return op.Kind == OpText && op.Text == s })
}
