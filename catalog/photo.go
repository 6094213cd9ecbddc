package catalog

import (
	"fmt"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/layout"
	"github.com/flanksource/pdfo/pdf"
	"github.com/flanksource/pdfo/raster"
)

const (
	photoMargin        = 10.0
	photoCaptionSpace  = 10.0
	photoLift          = 5.0
	photoCaptionOffset = 5.0
)

// PlaceholderText is drawn on a photo page whose image could not be read
const PlaceholderText = "Image unavailable"

// ComposePhoto adds one photo page. In auto mode the orientation follows the image's own
// aspect ratio. A nil img renders the placeholder message instead; the caption
// "index+1 / total" is always drawn.
func (cp *Composer) ComposePhoto(img *raster.Prepared, name string, mode api.Orientation, index, total int) api.Orientation {
	c := cp.Canvas
	o := layout.ResolveOrientation(mode, img.Ratio())

	c.AddPage(o)
	w, h := cp.fillPage(api.White)

	placed := false
	if img != nil {
		fit := layout.FitBox(float64(img.Width), float64(img.Height),
			w-2*photoMargin, h-2*photoMargin-photoCaptionSpace)
		box := layout.Box{X: (w - fit.W) / 2, Y: (h-fit.H)/2 - photoLift, W: fit.W, H: fit.H}
		placed = cp.image(name, img, box)
	}
	if !placed {
		c.SetFont(pdf.Font{Size: 12})
		c.SetTextColor(gray)
		c.Text(PlaceholderText, w/2, h/2, pdf.TextOptions{Align: pdf.AlignCenter})
	}

	c.SetFont(pdf.Font{Size: 9})
	c.SetTextColor(gray)
	c.Text(fmt.Sprintf("%d / %d", index+1, total), w/2, h-photoCaptionOffset, pdf.TextOptions{Align: pdf.AlignCenter})
	return o
}
