package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/pdf"
	"github.com/flanksource/pdfo/raster"
)

// fakePreparer returns a WxH image for sources named "WxH..." and fails for sources
// whose name starts with "bad"
type fakePreparer struct {
	delay time.Duration

	mu        sync.Mutex
	calls     []string
	qualities map[string]api.Quality
	inFlight  int
	peak      int
}

func (f *fakePreparer) Prepare(ctx context.Context, src raster.Source, q api.Quality) (*raster.Prepared, error) {
	if src == nil {
		return nil, &raster.DecodeError{Source: "<none>", Err: errors.New("no source")}
	}
	name := src.String()

	f.mu.Lock()
	f.calls = append(f.calls, name)
	if f.qualities == nil {
		f.qualities = map[string]api.Quality{}
	}
	f.qualities[name] = q
	f.inFlight++
	f.peak = max(f.peak, f.inFlight)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if strings.HasPrefix(name, "bad") {
		return nil, &raster.DecodeError{Source: name, Err: errors.New("corrupt")}
	}
	var w, h int
	if _, err := fmt.Sscanf(name, "%dx%d", &w, &h); err != nil {
		return nil, &raster.DecodeError{Source: name, Err: err}
	}
	return &raster.Prepared{Data: []byte(name), Format: "JPG", Width: w, Height: h, OriginalWidth: w, OriginalHeight: h}, nil
}

func (f *fakePreparer) quality(name string) api.Quality {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.qualities[name]
}

func asset(name string) ImageAsset {
	return NewImageAsset(raster.Bytes{Name: name}, 0)
}

func assets(names ...string) []ImageAsset {
	out := make([]ImageAsset, len(names))
	for i, n := range names {
		out[i] = asset(n)
	}
	return out
}

// recording returns a generator drawing on recorders; the last recorder is returned
// through the pointer after each run
func recording(t *testing.T, prep Preparer, last **pdf.Recorder, tweak ...func(*Options)) *Generator {
	t.Helper()
	opts := DefaultOptions()
	opts.Preparer = prep
	opts.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	opts.NewCanvas = func() pdf.Canvas {
		r := pdf.NewRecorder()
		*last = r
		return r
	}
	for _, fn := range tweak {
		fn(&opts)
	}
	g, err := NewGenerator(opts)
	require.NoError(t, err)
	return g
}

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type progressLog struct {
	mu     sync.Mutex
	values []int
}

func (p *progressLog) record(v int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = append(p.values, v)
}
