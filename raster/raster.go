// Package raster turns user supplied image sources into JPEG buffers sized for embedding,
// at a resolution and compression picked by the session's quality profile.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/flanksource/commons/logger"
	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/tiff" // register TIFF decoding
	_ "golang.org/x/image/webp" // register WebP decoding

	"github.com/flanksource/pdfo/api"
)

// Prepared is a decoded, resampled and re-encoded image ready for embedding
type Prepared struct {
	Data           []byte
	Format         string // gofpdf image type, always "JPG"
	Width          int
	Height         int
	OriginalWidth  int
	OriginalHeight int
}

// Ratio is Width/Height
func (p *Prepared) Ratio() float64 {
	if p == nil || p.Height == 0 {
		return 0
	}
	return float64(p.Width) / float64(p.Height)
}

// DecodeError means a source could not be turned into pixels. It is always recovered
// locally by the caller with a visible fallback.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode image %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Preprocessor prepares images for embedding
type Preprocessor struct {
	// Background replaces transparency, since JPEG has no alpha channel
	Background color.Color
}

// NewPreprocessor returns a preprocessor that flattens transparency onto white
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{Background: color.White}
}

// Prepare decodes src, scales both dimensions by the quality's scale (rounded, minimum 1),
// resamples with a Lanczos filter and re-encodes as JPEG at the quality's compression factor.
// Any read or decode failure is returned as *DecodeError.
func (p *Preprocessor) Prepare(ctx context.Context, src Source, quality api.Quality) (*Prepared, error) {
	if src == nil {
		return nil, &DecodeError{Source: "<none>", Err: fmt.Errorf("no image source")}
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, &DecodeError{Source: src.String(), Err: err}
	}
	defer rc.Close()

	img, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Source: src.String(), Err: err}
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, &DecodeError{Source: src.String(), Err: fmt.Errorf("empty image %dx%d", bounds.Dx(), bounds.Dy())}
	}

	// Decoding is the expensive step, bail out before resampling if cancelled
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profile := quality.Profile()
	w, h := ScaledSize(bounds.Dx(), bounds.Dy(), profile.Scale)

	var resized image.Image = img
	if w != bounds.Dx() || h != bounds.Dy() {
		resized = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	bg := p.Background
	if bg == nil {
		bg = color.White
	}
	flat := imaging.Overlay(imaging.New(w, h, bg), resized, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(JPEGQuality(profile.Compression))); err != nil {
		return nil, &DecodeError{Source: src.String(), Err: fmt.Errorf("failed to encode jpeg: %w", err)}
	}

	logger.Debugf("prepared %s %dx%d -> %dx%d (%s, %d bytes)", src, bounds.Dx(), bounds.Dy(), w, h, quality, buf.Len())

	return &Prepared{
		Data:           buf.Bytes(),
		Format:         "JPG",
		Width:          w,
		Height:         h,
		OriginalWidth:  bounds.Dx(),
		OriginalHeight: bounds.Dy(),
	}, nil
}

// ScaledSize multiplies both dimensions by scale, rounding to the nearest pixel with a
// minimum of 1.
func ScaledSize(w, h int, scale float64) (int, int) {
	return scaleDim(w, scale), scaleDim(h, scale)
}

func scaleDim(v int, scale float64) int {
	s := int(math.Round(float64(v) * scale))
	if s < 1 {
		return 1
	}
	return s
}

// JPEGQuality maps a 0-1 compression factor to the 1-100 JPEG quality scale
func JPEGQuality(compression float64) int {
	q := int(math.Round(compression * 100))
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
