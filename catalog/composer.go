package catalog

import (
	"context"
	"strings"

	"github.com/flanksource/commons/logger"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/icons"
	"github.com/flanksource/pdfo/layout"
	"github.com/flanksource/pdfo/pdf"
	"github.com/flanksource/pdfo/raster"
)

var gray = api.RGB{R: 150, G: 150, B: 150}

// Composer draws pages onto a canvas. Failures of a single element (logo, photo, icon,
// thumbnail) are logged and replaced by a fallback; only the canvas itself can fail a page.
type Composer struct {
	Canvas   pdf.Canvas
	Preparer Preparer
	// IconSize is the raster edge length of contact icons in pixels
	IconSize int

	log logger.Logger
}

// NewComposer returns a composer drawing on c
func NewComposer(c pdf.Canvas, prep Preparer) *Composer {
	if prep == nil {
		prep = raster.NewPreprocessor()
	}
	return &Composer{
		Canvas:   c,
		Preparer: prep,
		IconSize: icons.DefaultSize,
		log:      logger.GetLogger("catalog"),
	}
}

func (cp *Composer) fillPage(color api.RGB) (w, h float64) {
	w, h = cp.Canvas.PageSize()
	cp.Canvas.SetFillColor(color)
	cp.Canvas.Rect(layout.Box{W: w, H: h}, pdf.Fill)
	return w, h
}

// prepare loads one image, logging instead of failing when it cannot be read
func (cp *Composer) prepare(ctx context.Context, ref string, quality api.Quality, what string) *raster.Prepared {
	src := raster.ParseSource(ref)
	if src == nil {
		return nil
	}
	img, err := cp.Preparer.Prepare(ctx, src, quality)
	if err != nil {
		cp.log.Warnf("skipping %s: %v", what, err)
		return nil
	}
	return img
}

func (cp *Composer) image(name string, img *raster.Prepared, b layout.Box) bool {
	if err := cp.Canvas.Image(name, img.Data, img.Format, b); err != nil {
		cp.log.Warnf("could not place %s: %v", name, err)
		return false
	}
	return true
}

// letterSpace uppercases s and puts a space between every character
func letterSpace(s string) string {
	runes := []rune(strings.ToUpper(s))
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}
