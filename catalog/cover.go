package catalog

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/icons"
	"github.com/flanksource/pdfo/layout"
	"github.com/flanksource/pdfo/pdf"
)

// Cover offsets in millimetres
const (
	coverAnchor       = 0.4
	logoGap           = 15.0
	brandAdvance      = 15.0
	subtitleOffset    = 5.0
	subtitleAdvance   = 20.0
	contactTextGap    = 3.0
	contactLinePitch  = 5.0
	contactTextOffset = 1.0
)

type contactEntry struct {
	kind  icons.Kind
	lines []string
}

// contactEntries lists the cover's contact methods in display order. Both WhatsApp
// numbers share one entry.
func contactEntries(cover api.CoverConfig) []contactEntry {
	var entries []contactEntry
	if phones := lo.Compact([]string{cover.WhatsApp1, cover.WhatsApp2}); len(phones) > 0 {
		entries = append(entries, contactEntry{kind: icons.WhatsApp, lines: phones})
	}
	if cover.Instagram != "" {
		entries = append(entries, contactEntry{kind: icons.Instagram, lines: []string{cover.Instagram}})
	}
	if cover.Telegram != "" {
		entries = append(entries, contactEntry{kind: icons.Telegram, lines: []string{cover.Telegram}})
	}
	return entries
}

// ComposeCover adds the cover page: background, logo, brand name, letter-spaced subtitle
// and the contact row. firstRatio is the aspect ratio of the first photo, used only in
// auto orientation. It returns the orientation the page was drawn in.
func (cp *Composer) ComposeCover(ctx context.Context, cover api.CoverConfig, firstRatio float64) api.Orientation {
	cover = cover.WithDefaults()
	o := layout.ResolveOrientation(cover.Orientation, firstRatio)
	c := cp.Canvas

	c.AddPage(o)
	w, h := cp.fillPage(api.HexToRGB(cover.BackgroundColor))
	brand := api.HexToRGB(cover.BrandColor)

	y := h * coverAnchor

	if logo := cp.prepare(ctx, cover.Logo, api.QualityHigh, "logo"); logo != nil {
		fit := layout.FitBox(float64(logo.Width), float64(logo.Height),
			layout.Pick(o, 80.0, 100.0), layout.Pick(o, 50.0, 40.0))
		cp.image("logo", logo, layout.Box{X: (w - fit.W) / 2, Y: y - fit.H - logoGap, W: fit.W, H: fit.H})
	}

	if cover.BrandName != "" {
		c.SetFont(pdf.Font{Bold: true, Size: layout.Pick(o, 48.0, 56.0)})
		c.SetTextColor(brand)
		c.Text(cover.BrandName, w/2, y, pdf.TextOptions{Align: pdf.AlignCenter})
		y += brandAdvance
	}

	if cover.Subtitle != "" {
		c.SetFont(pdf.Font{Size: layout.Pick(o, 14.0, 16.0)})
		c.SetTextColor(brand)
		c.Text(letterSpace(cover.Subtitle), w/2, y+subtitleOffset, pdf.TextOptions{Align: pdf.AlignCenter})
		y += subtitleAdvance
	}

	if cover.HasContact() {
		iconSize := layout.Pick(o, 10.0, 12.0)
		contactY := y + iconSize
		if cover.ContactPlacement == api.PageBottom {
			contactY = h - layout.Pick(o, 30.0, 25.0)
		}
		cp.contactRow(cover, o, w, contactY, iconSize)
	}

	return o
}

func (cp *Composer) contactRow(cover api.CoverConfig, o api.Orientation, pageW, y, iconSize float64) {
	c := cp.Canvas
	entries := contactEntries(cover)
	spacing := layout.Pick(o, 60.0, 70.0)
	startX := (pageW-float64(len(entries))*spacing)/2 + iconSize

	for i, e := range entries {
		x := startX + float64(i)*spacing
		cp.icon(e.kind, x, y, iconSize)

		c.SetFont(pdf.Font{Size: layout.Pick(o, 10.0, 11.0)})
		c.SetTextColor(api.HexToRGB(cover.TextColor))
		for idx, line := range e.lines {
			c.Text(line, x+iconSize/2+contactTextGap, y+contactTextOffset+float64(idx)*contactLinePitch,
				pdf.TextOptions{Align: pdf.AlignLeft})
		}
	}
}

// icon draws a contact icon centred on (x, y), or a plain coloured circle if the icon
// cannot be drawn
func (cp *Composer) icon(kind icons.Kind, x, y, size float64) {
	png, err := icons.Draw(kind, cp.IconSize)
	if err == nil {
		name := fmt.Sprintf("icon-%s-%d", kind, cp.IconSize)
		err = cp.Canvas.Image(name, png, "PNG", layout.Box{X: x - size/2, Y: y - size/2, W: size, H: size})
	}
	if err != nil {
		cp.log.Warnf("drawing %s icon as a plain circle: %v", kind, err)
		cp.Canvas.SetFillColor(kind.FallbackColor())
		cp.Canvas.Circle(x, y, size/2, pdf.Fill)
	}
}
