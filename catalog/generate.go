// Package catalog assembles catalog and product-sheet documents: it orders the pages,
// feeds each composer its prepared images, reports progress and returns the finished
// document as a RenderResult.
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/go-playground/validator/v10"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/pdf"
	"github.com/flanksource/pdfo/raster"
)

// ProgressFunc receives completion percentages, non-decreasing and ending at 100
type ProgressFunc func(percent int)

// Options configure a Generator
type Options struct {
	// MaxConcurrentDecode bounds how many photos are decoded ahead of the page being drawn.
	// 1 decodes strictly one image at a time.
	MaxConcurrentDecode int `validate:"min=1,max=16" yaml:"maxConcurrentDecode"`
	// IconSize is the raster size of cover contact icons in pixels
	IconSize int `validate:"min=16,max=1024" yaml:"iconSize"`
	// ReleaseSuperseded releases the previous result when a newer one is produced
	ReleaseSuperseded bool `yaml:"releaseSuperseded"`

	NewCanvas func() pdf.Canvas `validate:"-" yaml:"-"`
	Preparer  Preparer          `validate:"-" yaml:"-"`
	Now       func() time.Time  `validate:"-" yaml:"-"`
}

// DefaultOptions decode sequentially and release superseded results
func DefaultOptions() Options {
	return Options{
		MaxConcurrentDecode: 1,
		IconSize:            128,
		ReleaseSuperseded:   true,
	}
}

var validate = validator.New()

// Generator renders catalogs and product sheets
type Generator struct {
	opts Options
	log  logger.Logger

	mu     sync.Mutex
	latest *RenderResult
}

// NewGenerator validates opts and fills unset hooks with the gofpdf builder, the raster
// preprocessor and the wall clock
func NewGenerator(opts Options) (*Generator, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid generator options: %w", err)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Preparer == nil {
		opts.Preparer = raster.NewPreprocessor()
	}
	if opts.NewCanvas == nil {
		now := opts.Now
		opts.NewCanvas = func() pdf.Canvas {
			return pdf.NewBuilder(pdf.WithCreationDate(now()))
		}
	}
	return &Generator{opts: opts, log: logger.GetLogger("catalog")}, nil
}

func (g *Generator) composer(c pdf.Canvas) *Composer {
	cp := NewComposer(c, g.opts.Preparer)
	cp.IconSize = g.opts.IconSize
	return cp
}

// Latest returns the most recent result, nil before the first run
func (g *Generator) Latest() *RenderResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest
}

func (g *Generator) publish(r *RenderResult) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.opts.ReleaseSuperseded && g.latest != nil && g.latest != r {
		g.latest.Release()
	}
	g.latest = r
}

// Generate renders a catalog: the cover followed by one photo page per image, in order.
// Undecodable images become placeholder pages, so the page count is always len(images)+1.
// Only a drawing backend failure or cancellation of ctx returns an error.
func (g *Generator) Generate(ctx context.Context, images []ImageAsset, cover api.CoverConfig, quality api.Quality, onProgress ProgressFunc) (*RenderResult, error) {
	// the caller may keep editing its copies while we render
	cover = cover.WithDefaults()
	images = append([]ImageAsset(nil), images...)
	progress := newProgress(onProgress)

	c := g.opts.NewCanvas()
	cp := g.composer(c)
	total := len(images) + 1

	g.log.Infof("generating catalog %q: %d images, %s quality", cover.BrandName, len(images), quality)
	progress.report(0)

	pipeline := g.decode(ctx, images, quality)
	defer pipeline.stop()

	var first *decoded
	if cover.Orientation == api.Auto && len(images) > 0 {
		r, err := pipeline.next(ctx)
		if err != nil {
			return nil, err
		}
		first = &r
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("catalog generation cancelled: %w", err)
	}
	cp.ComposeCover(ctx, cover, first.ratio())
	if err := c.Err(); err != nil {
		return nil, err
	}
	progress.step(1, total)

	for i, asset := range images {
		var r decoded
		if i == 0 && first != nil {
			r = *first
		} else {
			var err error
			if r, err = pipeline.next(ctx); err != nil {
				return nil, err
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("catalog generation cancelled: %w", err)
		}

		if r.err != nil {
			g.log.Warnf("image %d (%s) rendered as placeholder: %v", i+1, asset.Name, r.err)
		}
		cp.ComposePhoto(r.img, fmt.Sprintf("photo-%d", i), cover.Orientation, i, len(images))
		pipeline.done()

		if err := c.Err(); err != nil {
			return nil, err
		}
		progress.step(i+2, total)
	}

	return g.finish(c, progress, SuggestFilename(cover.BrandName, g.opts.Now()))
}

// GenerateProduct renders the single-page product sheet for design
func (g *Generator) GenerateProduct(ctx context.Context, design api.ProductDesign, onProgress ProgressFunc) (*RenderResult, error) {
	design = design.Snapshot()
	progress := newProgress(onProgress)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("product generation cancelled: %w", err)
	}

	g.log.Infof("generating product sheet %q: %d images", design.ModelCode, len(design.Images))
	c := g.opts.NewCanvas()
	g.composer(c).ComposeProduct(ctx, design, progress.report)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("product generation cancelled: %w", err)
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	return g.finish(c, progress, SuggestFilename(design.ModelCode, g.opts.Now()))
}

func (g *Generator) finish(c pdf.Canvas, progress *progressSink, filename string) (*RenderResult, error) {
	var buf bytes.Buffer
	if err := c.Output(&buf); err != nil {
		return nil, err
	}
	progress.report(100)

	result := newResult(buf.Bytes(), c.PageCount(), filename)
	g.publish(result)
	g.log.Infof("generated %s", result)
	return result, nil
}

// progressSink forwards percentages to the caller, never going backwards
type progressSink struct {
	fn   ProgressFunc
	last int
}

func newProgress(fn ProgressFunc) *progressSink {
	return &progressSink{fn: fn, last: -1}
}

func (p *progressSink) report(pct int) {
	if pct < p.last {
		pct = p.last
	}
	p.last = pct
	if p.fn != nil {
		p.fn(pct)
	}
}

func (p *progressSink) step(done, total int) {
	p.report(int(math.Round(float64(done) / float64(total) * 100)))
}
