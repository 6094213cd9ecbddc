package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/pdf"
	"github.com/flanksource/pdfo/raster"
)

func TestGenerate_PageCount(t *testing.T) {
	for _, n := range []int{0, 1, 3, 10} {
		t.Run(fmt.Sprintf("%d images", n), func(t *testing.T) {
			var rec *pdf.Recorder
			g := recording(t, &fakePreparer{}, &rec)

			names := make([]string, n)
			for i := range names {
				names[i] = "640x480.jpg"
			}
			res, err := g.Generate(context.Background(), assets(names...), api.CoverConfig{BrandName: "F-MOR"}, api.QualityMedium, nil)
			require.NoError(t, err)
			assert.Equal(t, n+1, res.PageCount)
			assert.Equal(t, n+1, rec.PageCount())
			assert.Greater(t, res.ByteLength, 0)
			assert.Equal(t, FormatFileSize(int64(res.ByteLength)), res.FormattedSize)
			assert.Equal(t, "F_MOR_1700000000000.pdf", res.Filename)
		})
	}
}

func TestGenerate_ProgressMonotonic(t *testing.T) {
	var rec *pdf.Recorder
	g := recording(t, &fakePreparer{}, &rec)
	var log progressLog

	_, err := g.Generate(context.Background(), assets("10x10", "bad", "20x10"), api.CoverConfig{}, api.QualityLow, log.record)
	require.NoError(t, err)

	require.NotEmpty(t, log.values)
	assert.Equal(t, 0, log.values[0])
	assert.Equal(t, 100, log.values[len(log.values)-1])
	for i := 1; i < len(log.values); i++ {
		assert.GreaterOrEqual(t, log.values[i], log.values[i-1])
	}
	assert.Contains(t, log.values, 25)
	assert.Contains(t, log.values, 50)
	assert.Contains(t, log.values, 75)
}

func TestGenerate_BadImageBecomesPlaceholder(t *testing.T) {
	var rec *pdf.Recorder
	g := recording(t, &fakePreparer{}, &rec)

	res, err := g.Generate(context.Background(), assets("800x600", "bad.jpg", "600x800"), api.CoverConfig{}, api.QualityMedium, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, res.PageCount)

	assert.Len(t, rec.Find(pdf.OpImage, 2), 1)
	assert.Empty(t, rec.Find(pdf.OpImage, 3))
	assert.Contains(t, rec.Texts(3), PlaceholderText)
	assert.NotContains(t, rec.Texts(2), PlaceholderText)

	assert.Contains(t, rec.Texts(2), "1 / 3")
	assert.Contains(t, rec.Texts(3), "2 / 3")
	assert.Contains(t, rec.Texts(4), "3 / 3")
}

func TestGenerate_RejectedImageBecomesPlaceholder(t *testing.T) {
	var rec *pdf.Recorder
	g := recording(t, &fakePreparer{}, &rec, func(o *Options) {
		o.NewCanvas = func() pdf.Canvas {
			rec = pdf.NewRecorder()
			rec.RejectImage = func(string) error { return errors.New("unsupported jpeg") }
			return rec
		}
	})

	res, err := g.Generate(context.Background(), assets("800x600"), api.CoverConfig{}, api.QualityMedium, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.PageCount)
	assert.Contains(t, rec.Texts(2), PlaceholderText)
}

func TestGenerate_PhotoPlacement(t *testing.T) {
	var rec *pdf.Recorder
	g := recording(t, &fakePreparer{}, &rec)

	_, err := g.Generate(context.Background(), assets("1000x500"), api.CoverConfig{Orientation: api.Portrait}, api.QualityHigh, nil)
	require.NoError(t, err)

	imgs := rec.Find(pdf.OpImage, 2)
	require.Len(t, imgs, 1)
	// 190 x 267 printable area, width bound
	assert.InDelta(t, 10, imgs[0].Box.X, 1e-9)
	assert.InDelta(t, 190, imgs[0].Box.W, 1e-9)
	assert.InDelta(t, 95, imgs[0].Box.H, 1e-9)
	assert.InDelta(t, (297-95)/2.0-5, imgs[0].Box.Y, 1e-9)

	caption, ok := rec.TextOp("1 / 1")
	require.True(t, ok)
	assert.InDelta(t, 105, caption.Box.X, 1e-9)
	assert.InDelta(t, 292, caption.Box.Y, 1e-9)
	assert.Equal(t, 9.0, caption.Font.Size)
	assert.Equal(t, gray, caption.TextColor)
	assert.Equal(t, pdf.AlignCenter, caption.Options.Align)
}

func TestGenerate_AutoOrientation(t *testing.T) {
	var rec *pdf.Recorder
	g := recording(t, &fakePreparer{}, &rec)

	_, err := g.Generate(context.Background(), assets("800x600", "600x800", "500x500", "bad"),
		api.CoverConfig{Orientation: api.Auto}, api.QualityMedium, nil)
	require.NoError(t, err)

	pages := rec.Find(pdf.OpPage, 0)
	require.Len(t, pages, 5)
	got := make([]api.Orientation, len(pages))
	for i, p := range pages {
		got[i] = p.Orientation
	}
	assert.Equal(t, []api.Orientation{
		api.Landscape, // cover follows the first photo
		api.Landscape,
		api.Portrait,
		api.Landscape, // square counts as landscape
		api.Portrait,  // unreadable image
	}, got)
}

func TestGenerate_AutoOrientationCoverWithoutPhotos(t *testing.T) {
	var rec *pdf.Recorder
	g := recording(t, &fakePreparer{}, &rec)

	_, err := g.Generate(context.Background(), nil, api.CoverConfig{Orientation: api.Auto}, api.QualityMedium, nil)
	require.NoError(t, err)
	assert.Equal(t, api.Portrait, rec.Find(pdf.OpPage, 1)[0].Orientation)
}

func TestGenerate_FixedOrientation(t *testing.T) {
	var rec *pdf.Recorder
	g := recording(t, &fakePreparer{}, &rec)

	_, err := g.Generate(context.Background(), assets("600x800", "800x600"), api.CoverConfig{Orientation: api.Landscape}, api.QualityMedium, nil)
	require.NoError(t, err)
	for _, p := range rec.Find(pdf.OpPage, 0) {
		assert.Equal(t, api.Landscape, p.Orientation)
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	var rec *pdf.Recorder
	g := recording(t, &fakePreparer{}, &rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Generate(ctx, assets("10x10"), api.CoverConfig{}, api.QualityMedium, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "PDF generation was cancelled", UserMessage(err))
}

func TestGenerate_CancelledBetweenPages(t *testing.T) {
	var rec *pdf.Recorder
	g := recording(t, &fakePreparer{delay: time.Millisecond}, &rec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := g.Generate(ctx, assets("10x10", "10x10", "10x10", "10x10"), api.CoverConfig{}, api.QualityMedium, func(p int) {
		if p >= 40 {
			cancel()
		}
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, rec.PageCount(), 5)
	assert.Nil(t, g.Latest())
}

func TestGenerate_BackendFailure(t *testing.T) {
	var rec *pdf.Recorder
	g := recording(t, &fakePreparer{}, &rec, func(o *Options) {
		o.NewCanvas = func() pdf.Canvas {
			rec = pdf.NewRecorder()
			rec.Fail = errors.New("out of memory")
			return rec
		}
	})

	_, err := g.Generate(context.Background(), assets("10x10"), api.CoverConfig{}, api.QualityMedium, nil)
	var backend *pdf.DrawingBackendError
	require.True(t, errors.As(err, &backend))
	assert.Contains(t, UserMessage(err), "Could not build the PDF document")
}

func TestGenerate_BoundedDecode(t *testing.T) {
	for _, limit := range []int{1, 3} {
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			prep := &fakePreparer{delay: 2 * time.Millisecond}
			var rec *pdf.Recorder
			g := recording(t, prep, &rec, func(o *Options) { o.MaxConcurrentDecode = limit })

			names := []string{"10x10", "20x10", "30x10", "40x10", "50x10", "60x10"}
			_, err := g.Generate(context.Background(), assets(names...), api.CoverConfig{}, api.QualityMedium, nil)
			require.NoError(t, err)

			assert.LessOrEqual(t, prep.peak, limit)
			images := rec.Find(pdf.OpImage, 0)
			require.Len(t, images, len(names))
			for i, op := range images {
				assert.Equal(t, i+2, op.Page, "pages are drawn in order")
			}
			if limit == 1 {
				assert.Equal(t, names, prep.calls)
			}
		})
	}
}

func TestGenerate_ReleasesSupersededResult(t *testing.T) {
	var rec *pdf.Recorder
	g := recording(t, &fakePreparer{}, &rec)

	first, err := g.Generate(context.Background(), assets("10x10"), api.CoverConfig{}, api.QualityMedium, nil)
	require.NoError(t, err)
	_, err = first.Handle.Bytes()
	require.NoError(t, err)

	second, err := g.Generate(context.Background(), assets("10x10"), api.CoverConfig{}, api.QualityMedium, nil)
	require.NoError(t, err)

	_, err = first.Handle.Bytes()
	assert.ErrorIs(t, err, ErrReleased)
	assert.Same(t, second, g.Latest())
	assert.False(t, second.Handle.Released())
}

func TestNewGenerator_ValidatesOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxConcurrentDecode = 0
	_, err := NewGenerator(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.IconSize = 4
	_, err = NewGenerator(opts)
	assert.Error(t, err)
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "Could not read image cat.jpg", UserMessage(fmt.Errorf("wrap: %w", &raster.DecodeError{Source: "cat.jpg", Err: errors.New("x")})))
	assert.Contains(t, UserMessage(ErrReleased), "no longer available")
	assert.Equal(t, "PDF generation was cancelled", UserMessage(context.DeadlineExceeded))
	assert.Equal(t, "Could not build the PDF document", UserMessage(errors.New("other")))
}
