package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/icons"
	"github.com/flanksource/pdfo/pdf"
)

func composeCover(t *testing.T, cover api.CoverConfig, rec *pdf.Recorder) api.Orientation {
	t.Helper()
	cp := NewComposer(rec, &fakePreparer{})
	return cp.ComposeCover(context.Background(), cover, 0)
}

func TestComposeCover_TitleAndSubtitle(t *testing.T) {
	rec := pdf.NewRecorder()
	o := composeCover(t, api.CoverConfig{
		BrandName:  "F-MOR",
		Subtitle:   "collection",
		BrandColor: "#112233",
	}, rec)
	assert.Equal(t, api.Portrait, o)

	bg := rec.Find(pdf.OpRect, 1)[0]
	assert.Equal(t, api.White, bg.Fill)
	assert.Equal(t, 210.0, bg.Box.W)

	brand, ok := rec.TextOp("F-MOR")
	require.True(t, ok)
	assert.True(t, brand.Font.Bold)
	assert.Equal(t, 48.0, brand.Font.Size)
	assert.Equal(t, api.RGB{R: 0x11, G: 0x22, B: 0x33}, brand.TextColor)
	assert.InDelta(t, 105, brand.Box.X, 1e-9)
	assert.InDelta(t, 297*0.4, brand.Box.Y, 1e-9)

	sub, ok := rec.TextOp("C O L L E C T I O N")
	require.True(t, ok)
	assert.False(t, sub.Font.Bold)
	assert.Equal(t, 14.0, sub.Font.Size)
	assert.InDelta(t, 297*0.4+15+5, sub.Box.Y, 1e-9)
	assert.Equal(t, pdf.AlignCenter, sub.Options.Align)
}

func TestComposeCover_LandscapeSizes(t *testing.T) {
	rec := pdf.NewRecorder()
	composeCover(t, api.CoverConfig{BrandName: "X", Subtitle: "y", Orientation: api.Landscape}, rec)

	brand, _ := rec.TextOp("X")
	assert.Equal(t, 56.0, brand.Font.Size)
	assert.InDelta(t, 210*0.4, brand.Box.Y, 1e-9)
	sub, _ := rec.TextOp("Y")
	assert.Equal(t, 16.0, sub.Font.Size)
}

func TestComposeCover_MalformedColorsFallBackToWhite(t *testing.T) {
	rec := pdf.NewRecorder()
	composeCover(t, api.CoverConfig{BrandName: "A", BackgroundColor: "pink", BrandColor: "#12"}, rec)

	assert.Equal(t, api.White, rec.Find(pdf.OpRect, 1)[0].Fill)
	brand, _ := rec.TextOp("A")
	assert.Equal(t, api.White, brand.TextColor)
}

func TestComposeCover_Logo(t *testing.T) {
	rec := pdf.NewRecorder()
	prep := &fakePreparer{}
	NewComposer(rec, prep).ComposeCover(context.Background(), api.CoverConfig{Logo: "/logos/400x100.png", BrandName: "B"}, 0)

	imgs := rec.Find(pdf.OpImage, 1)
	require.Len(t, imgs, 1)
	logo := imgs[0]
	assert.Equal(t, "logo", logo.Name)
	assert.InDelta(t, 80, logo.Box.W, 1e-9)
	assert.InDelta(t, 20, logo.Box.H, 1e-9)
	assert.InDelta(t, 65, logo.Box.X, 1e-9)
	assert.InDelta(t, 297*0.4-20-15, logo.Box.Y, 1e-9)
	assert.Equal(t, api.QualityHigh, prep.quality("400x100.png"))
}

func TestComposeCover_BadLogoIsSkipped(t *testing.T) {
	rec := pdf.NewRecorder()
	composeCover(t, api.CoverConfig{Logo: "bad-logo.png", BrandName: "Brand"}, rec)

	assert.Empty(t, rec.Find(pdf.OpImage, 1))
	_, ok := rec.TextOp("Brand")
	assert.True(t, ok)
}

func TestComposeCover_ContactsBelowSubtitle(t *testing.T) {
	rec := pdf.NewRecorder()
	composeCover(t, api.CoverConfig{
		Subtitle:  "s",
		BrandName: "b",
		WhatsApp1: "555 1",
		WhatsApp2: "555 2",
		Instagram: "@fmor",
		TextColor: "#010203",
	}, rec)

	anchor := 297*0.4 + 15 + 20
	contactY := anchor + 10

	placed := rec.Find(pdf.OpImage, 1)
	require.Len(t, placed, 2)
	assert.Equal(t, "icon-whatsapp-128", placed[0].Name)
	assert.True(t, strings.HasPrefix(placed[1].Name, "icon-instagram"))

	// two entries of 60mm centred on 210mm, shifted by the icon size
	startX := (210-2*60)/2.0 + 10
	assert.InDelta(t, startX-5, placed[0].Box.X, 1e-9)
	assert.InDelta(t, contactY-5, placed[0].Box.Y, 1e-9)
	assert.InDelta(t, 10, placed[0].Box.W, 1e-9)
	assert.InDelta(t, startX+60-5, placed[1].Box.X, 1e-9)

	first, ok := rec.TextOp("555 1")
	require.True(t, ok)
	second, _ := rec.TextOp("555 2")
	assert.InDelta(t, startX+5+3, first.Box.X, 1e-9)
	assert.InDelta(t, contactY+1, first.Box.Y, 1e-9)
	assert.InDelta(t, contactY+6, second.Box.Y, 1e-9)
	assert.Equal(t, pdf.AlignLeft, first.Options.Align)
	assert.Equal(t, 10.0, first.Font.Size)
	assert.Equal(t, api.RGB{R: 1, G: 2, B: 3}, first.TextColor)

	ig, _ := rec.TextOp("@fmor")
	assert.InDelta(t, startX+60+8, ig.Box.X, 1e-9)
}

func TestComposeCover_ContactsAtBottom(t *testing.T) {
	for _, tt := range []struct {
		orientation api.Orientation
		y           float64
	}{
		{api.Portrait, 297 - 30},
		{api.Landscape, 210 - 25},
	} {
		rec := pdf.NewRecorder()
		composeCover(t, api.CoverConfig{
			Telegram:         "@fmor_tg",
			Orientation:      tt.orientation,
			ContactPlacement: api.PageBottom,
		}, rec)
		text, ok := rec.TextOp("@fmor_tg")
		require.True(t, ok)
		assert.InDelta(t, tt.y+1, text.Box.Y, 1e-9)
	}
}

func TestComposeCover_NoContactRowWithoutContacts(t *testing.T) {
	rec := pdf.NewRecorder()
	composeCover(t, api.CoverConfig{BrandName: "only"}, rec)
	assert.Empty(t, rec.Find(pdf.OpImage, 0))
	assert.Empty(t, rec.Find(pdf.OpCircle, 0))
	assert.Equal(t, []string{"only"}, rec.Texts(1))
}

func TestComposeCover_IconFallbackCircles(t *testing.T) {
	rec := pdf.NewRecorder()
	rec.RejectImage = func(name string) error {
		if strings.HasPrefix(name, "icon-") {
			return errors.New("png rejected")
		}
		return nil
	}
	composeCover(t, api.CoverConfig{WhatsApp1: "1", Instagram: "2", Telegram: "3"}, rec)

	circles := rec.Find(pdf.OpCircle, 1)
	require.Len(t, circles, 3)
	assert.Equal(t, icons.WhatsApp.FallbackColor(), circles[0].Fill)
	assert.Equal(t, icons.Instagram.FallbackColor(), circles[1].Fill)
	assert.Equal(t, icons.Telegram.FallbackColor(), circles[2].Fill)
	assert.Equal(t, pdf.Fill, circles[0].Style)
	assert.InDelta(t, 10, circles[0].Box.W, 1e-9)

	// the text is drawn even though the icon failed
	assert.Equal(t, []string{"1", "2", "3"}, rec.Texts(1))
}

func TestContactEntries(t *testing.T) {
	entries := contactEntries(api.CoverConfig{WhatsApp2: "only second", Telegram: "t"})
	require.Len(t, entries, 2)
	assert.Equal(t, icons.WhatsApp, entries[0].kind)
	assert.Equal(t, []string{"only second"}, entries[0].lines)
	assert.Equal(t, icons.Telegram, entries[1].kind)
}

func TestLetterSpace(t *testing.T) {
	assert.Equal(t, "C A T A L O G", letterSpace("catalog"))
	assert.Equal(t, "Ç İ", letterSpace("çİ"))
	assert.Equal(t, "", letterSpace(""))
}
