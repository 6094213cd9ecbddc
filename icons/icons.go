// Package icons draws the contact-method glyphs shown on the catalog cover.
//
// Each icon is built as a small SVG document and rasterized to a square PNG. The output
// depends only on (kind, size), so the same call always produces identical bytes.
package icons

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/flanksource/pdfo/api"
)

// Kind is a contact method with its own glyph
type Kind int

const (
	WhatsApp Kind = iota
	Instagram
	Telegram
)

// DefaultSize is the raster edge length used on the cover
const DefaultSize = 128

// Kinds lists every icon in cover order
func Kinds() []Kind {
	return []Kind{WhatsApp, Instagram, Telegram}
}

func (k Kind) String() string {
	switch k {
	case WhatsApp:
		return "whatsapp"
	case Instagram:
		return "instagram"
	case Telegram:
		return "telegram"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a name back to its Kind
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(k.String(), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown icon %q", s)
}

// FallbackColor is the plain circle colour drawn when an icon cannot be rendered
func (k Kind) FallbackColor() api.RGB {
	switch k {
	case WhatsApp:
		return api.RGB{R: 37, G: 211, B: 102}
	case Instagram:
		return api.RGB{R: 225, G: 48, B: 108}
	case Telegram:
		return api.RGB{R: 0, G: 136, B: 204}
	}
	return api.RGB{R: 150, G: 150, B: 150}
}

// SVG returns the vector source of the icon on a size×size canvas
func SVG(kind Kind, size int) ([]byte, error) {
	if size < 8 {
		return nil, fmt.Errorf("icon size %d too small", size)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(size, size, 0, 0, size, size)

	switch kind {
	case WhatsApp:
		drawWhatsApp(canvas, size)
	case Instagram:
		drawInstagram(canvas, size)
	case Telegram:
		drawTelegram(canvas, size)
	default:
		return nil, fmt.Errorf("unknown icon %s", kind)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// Draw renders the icon to a size×size PNG with a transparent background outside the glyph
func Draw(kind Kind, size int) ([]byte, error) {
	src, err := SVG(kind, size)
	if err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(src), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s icon: %w", kind, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	var out bytes.Buffer
	if err := png.Encode(&out, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode %s icon: %w", kind, err)
	}
	return out.Bytes(), nil
}

// green disc with a white speech bubble holding a handset
func drawWhatsApp(canvas *svg.SVG, size int) {
	c := size / 2
	canvas.Circle(c, c, c, "fill:#25D366")

	bubble := size * 30 / 100
	stroke := max(size*6/100, 1)
	canvas.Circle(c, c, bubble, fmt.Sprintf("fill:none;stroke:#ffffff;stroke-width:%d", stroke))
	// tail at the lower left of the bubble
	canvas.Polygon(
		[]int{c - bubble*7/10, c - bubble*11/10, c - bubble*3/10},
		[]int{c + bubble*5/10, c + bubble*11/10, c + bubble*9/10},
		"fill:#ffffff")

	// handset: two ear pieces joined by a diagonal grip
	h := bubble / 2
	canvas.Line(c-h*6/10, c-h*6/10, c+h*6/10, c+h*6/10,
		fmt.Sprintf("stroke:#ffffff;stroke-width:%d;stroke-linecap:round", max(stroke*3/2, 1)))
	canvas.Circle(c-h*7/10, c-h*7/10, max(h*4/10, 1), "fill:#ffffff")
	canvas.Circle(c+h*7/10, c+h*7/10, max(h*4/10, 1), "fill:#ffffff")
}

// gradient rounded square with a white camera outline
func drawInstagram(canvas *svg.SVG, size int) {
	canvas.Def()
	canvas.LinearGradient("ig", 0, 0, 100, 100, []svg.Offcolor{
		{Offset: 0, Color: "#f09433", Opacity: 1},
		{Offset: 25, Color: "#e6683c", Opacity: 1},
		{Offset: 50, Color: "#dc2743", Opacity: 1},
		{Offset: 75, Color: "#cc2366", Opacity: 1},
		{Offset: 100, Color: "#bc1888", Opacity: 1},
	})
	canvas.DefEnd()

	corner := size * 20 / 100
	canvas.Roundrect(0, 0, size, size, corner, corner, "fill:url(#ig)")

	inset := size * 20 / 100
	stroke := max(size*6/100, 1)
	outline := fmt.Sprintf("fill:none;stroke:#ffffff;stroke-width:%d", stroke)
	lens := size * 10 / 100
	canvas.Roundrect(inset, inset, size-2*inset, size-2*inset, lens, lens, outline)
	canvas.Circle(size/2, size/2, size*20/100, outline)

	flash := size * 12 / 100
	canvas.Circle(size-inset-flash, inset+flash, max(size*5/100, 1), "fill:#ffffff")
}

// blue disc with a white paper plane
func drawTelegram(canvas *svg.SVG, size int) {
	c := size / 2
	canvas.Circle(c, c, c, "fill:#0088cc")

	plane := size / 2
	x := c - plane*4/10
	y := c
	canvas.Polygon(
		[]int{x, x + plane, x + plane*4/10, x + plane*5/10},
		[]int{y, y - plane*3/10, y + plane*4/10, y},
		"fill:#ffffff")
}
