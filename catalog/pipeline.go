package catalog

import (
	"context"
	"fmt"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/layout"
	"github.com/flanksource/pdfo/raster"
)

type decoded struct {
	img *raster.Prepared
	err error
}

// ratio is the original aspect ratio, 0 when the image could not be read
func (d *decoded) ratio() float64 {
	if d == nil || d.img == nil {
		return 0
	}
	return layout.Ratio(float64(d.img.OriginalWidth), float64(d.img.OriginalHeight))
}

// pipeline prepares photos in order, at most cap(slots) ahead of the page being drawn.
// A slot is taken before an image starts decoding and given back once its page is drawn,
// which bounds the number of decoded rasters held in memory.
type pipeline struct {
	results []chan decoded
	slots   chan struct{}
	cancel  context.CancelFunc
	pos     int
}

func (g *Generator) decode(ctx context.Context, images []ImageAsset, quality api.Quality) *pipeline {
	ctx, cancel := context.WithCancel(ctx)
	p := &pipeline{
		results: make([]chan decoded, len(images)),
		slots:   make(chan struct{}, g.opts.MaxConcurrentDecode),
		cancel:  cancel,
	}
	for i := range p.results {
		p.results[i] = make(chan decoded, 1)
	}

	go func() {
		for i, asset := range images {
			select {
			case p.slots <- struct{}{}:
			case <-ctx.Done():
				return
			}
			go func() {
				img, err := g.opts.Preparer.Prepare(ctx, asset.Source, quality)
				p.results[i] <- decoded{img: img, err: err}
			}()
		}
	}()
	return p
}

// next waits for the next image in order
func (p *pipeline) next(ctx context.Context) (decoded, error) {
	select {
	case r := <-p.results[p.pos]:
		p.pos++
		return r, nil
	case <-ctx.Done():
		return decoded{}, fmt.Errorf("catalog generation cancelled: %w", ctx.Err())
	}
}

// done frees the slot of the image whose page was just drawn
func (p *pipeline) done() {
	<-p.slots
}

func (p *pipeline) stop() {
	p.cancel()
}
