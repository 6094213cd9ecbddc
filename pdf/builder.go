package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/jung-kurt/gofpdf"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/layout"
)

// FontFamily is the built-in typeface used for all text
const FontFamily = "Helvetica"

// Builder renders a Canvas to a PDF document with gofpdf
type Builder struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	width     float64
	height    float64
	pages     int
	title     string
	author    string
	created   time.Time
	compress  bool
}

// BuilderOption is a function that configures a Builder
type BuilderOption func(*Builder)

// WithTitle sets the document title metadata
func WithTitle(title string) BuilderOption {
	return func(b *Builder) {
		b.title = title
	}
}

// WithAuthor sets the document author metadata
func WithAuthor(author string) BuilderOption {
	return func(b *Builder) {
		b.author = author
	}
}

// WithCreationDate pins the creation and modification dates, making output reproducible
func WithCreationDate(t time.Time) BuilderOption {
	return func(b *Builder) {
		b.created = t
	}
}

// WithCompression toggles stream compression
func WithCompression(enabled bool) BuilderOption {
	return func(b *Builder) {
		b.compress = enabled
	}
}

// NewBuilder creates an empty A4 document in millimetres. Pages are added with AddPage.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{compress: true}
	for _, opt := range opts {
		opt(b)
	}

	f := gofpdf.New("P", "mm", "A4", "")
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(0, 0, 0)
	f.SetCompression(b.compress)
	// image resources are kept in maps, sort them so identical input gives identical bytes
	f.SetCatalogSort(true)
	f.SetCreator("pdfo", true)
	f.SetProducer("pdfo", true)
	if b.title != "" {
		f.SetTitle(b.title, true)
	}
	if b.author != "" {
		f.SetAuthor(b.author, true)
	}
	if !b.created.IsZero() {
		f.SetCreationDate(b.created)
		f.SetModificationDate(b.created)
	}
	f.SetFont(FontFamily, "", 12)

	b.pdf = f
	b.translate = f.UnicodeTranslatorFromDescriptor("")
	return b
}

// AddPage starts an A4 page in the given orientation. Auto is treated as portrait; callers
// resolve it per page first.
func (b *Builder) AddPage(o api.Orientation) {
	orient := "P"
	if o == api.Landscape {
		orient = "L"
	}
	b.pdf.AddPageFormat(orient, gofpdf.SizeType{Wd: layout.A4Short, Ht: layout.A4Long})
	b.width, b.height = layout.PageSize(o)
	b.pages++
}

func (b *Builder) PageSize() (float64, float64) {
	return b.width, b.height
}

func (b *Builder) PageCount() int {
	return b.pages
}

func (b *Builder) SetFillColor(c api.RGB) {
	b.pdf.SetFillColor(c.R, c.G, c.B)
}

func (b *Builder) SetDrawColor(c api.RGB) {
	b.pdf.SetDrawColor(c.R, c.G, c.B)
}

func (b *Builder) SetTextColor(c api.RGB) {
	b.pdf.SetTextColor(c.R, c.G, c.B)
}

func (b *Builder) SetFont(f Font) {
	style := ""
	if f.Bold {
		style = "B"
	}
	b.pdf.SetFont(FontFamily, style, f.Size)
}

func (b *Builder) SetLineWidth(w float64) {
	b.pdf.SetLineWidth(w)
}

func (b *Builder) Rect(box layout.Box, style Style) {
	b.pdf.Rect(box.X, box.Y, box.W, box.H, string(style))
}

func (b *Builder) Circle(x, y, r float64, style Style) {
	b.pdf.Circle(x, y, r, string(style))
}

func (b *Builder) Line(x1, y1, x2, y2 float64) {
	b.pdf.Line(x1, y1, x2, y2)
}

func (b *Builder) StringWidth(s string) float64 {
	return b.pdf.GetStringWidth(b.encode(s))
}

// Text draws s with its baseline at y. Alignment offsets x by the rendered width before
// any rotation is applied.
func (b *Builder) Text(s string, x, y float64, opts TextOptions) {
	if s == "" {
		return
	}
	txt := b.encode(s)
	switch opts.Align {
	case AlignCenter:
		x -= b.pdf.GetStringWidth(txt) / 2
	case AlignRight:
		x -= b.pdf.GetStringWidth(txt)
	}

	if opts.Angle != 0 {
		b.pdf.TransformBegin()
		b.pdf.TransformRotate(opts.Angle, x, y)
		b.pdf.Text(x, y, txt)
		b.pdf.TransformEnd()
		return
	}
	b.pdf.Text(x, y, txt)
}

// Image registers the encoded image under name and draws it into box. Registration
// failures are reported and cleared so the rest of the page can still be drawn.
func (b *Builder) Image(name string, data []byte, format string, box layout.Box) error {
	if b.pdf.Err() {
		return b.Err()
	}
	opts := gofpdf.ImageOptions{ImageType: format, ReadDpi: false}
	if info := b.pdf.GetImageInfo(name); info == nil {
		b.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		if b.pdf.Err() {
			err := b.pdf.Error()
			b.pdf.ClearError()
			logger.Debugf("rejected image %s: %v", name, err)
			return fmt.Errorf("failed to embed image %s: %w", name, err)
		}
	}
	b.pdf.ImageOptions(name, box.X, box.Y, box.W, box.H, false, opts, 0, "")
	return nil
}

func (b *Builder) Err() error {
	if b.pdf.Err() {
		return &DrawingBackendError{Op: "draw", Err: b.pdf.Error()}
	}
	return nil
}

// Output serializes the finished document
func (b *Builder) Output(w io.Writer) error {
	if err := b.Err(); err != nil {
		return err
	}
	if err := b.pdf.Output(w); err != nil {
		return &DrawingBackendError{Op: "output", Err: err}
	}
	return nil
}

// encode maps text to the cp1252 encoding of the built-in font. Turkish letters missing
// from cp1252 are folded to their closest Latin form.
func (b *Builder) encode(s string) string {
	return b.translate(turkishFold.Replace(s))
}

var turkishFold = strings.NewReplacer(
	"ğ", "g", "Ğ", "G",
	"ş", "s", "Ş", "S",
	"ı", "i", "İ", "I",
)
