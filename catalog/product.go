package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/layout"
	"github.com/flanksource/pdfo/pdf"
)

// Product sheet geometry in millimetres
const (
	watermarkX       = 8.0
	watermarkTop     = 30.0
	watermarkPitch   = 40.0
	watermarkRepeats = 7

	contentX      = 20.0
	contentRight  = 10.0
	imageTop      = 15.0
	imageShare    = 0.55
	mainShare     = 0.75
	thumbGap      = 3.0
	maxThumbnails = 3
	panelGap      = 8.0

	boxHeight      = 12.0
	rowHeight      = 8.0
	materialHeight = 20.0
)

const (
	modelLabel    = "Model Code :"
	colorLabel    = "COLOR"
	piecesLabel   = "PIECES"
	materialLabel = "MATERIAL"
)

var (
	white      = api.White
	headerRule = api.RGB{R: 200, G: 200, B: 200}
)

func noProgress(int) {}

// ComposeProduct adds the single product spec page: side watermark, main image with up
// to three thumbnails on the left and the model/colour/size/material panel on the right.
// progress receives 10, 30, 50 and 70 as the page is built.
func (cp *Composer) ComposeProduct(ctx context.Context, design api.ProductDesign, progress func(int)) {
	if progress == nil {
		progress = noProgress
	}
	design = design.WithDefaults()
	c := cp.Canvas
	header := api.HexToRGB(design.HeaderColor)
	text := api.HexToRGB(design.TextColor)

	c.AddPage(design.Orientation)
	w, h := cp.fillPage(api.HexToRGB(design.BackgroundColor))
	progress(10)

	if design.BrandWatermark != "" {
		c.SetFont(pdf.Font{Bold: true, Size: 14})
		c.SetTextColor(header)
		for i := 0; i < watermarkRepeats; i++ {
			c.Text(design.BrandWatermark, watermarkX, watermarkTop+float64(i)*watermarkPitch, pdf.TextOptions{Angle: 90})
		}
	}
	progress(30)

	contentW := w - contentX - contentRight
	area := layout.Box{X: contentX, Y: imageTop, W: contentW * imageShare, H: h - 30}
	cp.productImages(ctx, design.Images, area, progress)
	progress(70)

	panel := layout.Box{X: area.Right() + panelGap, Y: imageTop, W: contentW - area.W - panelGap}
	cp.infoPanel(design, panel, header, text)
}

// productImages draws the main image top-aligned in the upper part of area and the
// thumbnails in equal slots beneath it. A slot whose image fails stays blank.
func (cp *Composer) productImages(ctx context.Context, refs []string, area layout.Box, progress func(int)) {
	if len(refs) == 0 {
		progress(50)
		return
	}

	mainH := area.H
	if len(refs) > 1 {
		mainH = area.H * mainShare
	}
	if main := cp.prepare(ctx, refs[0], api.QualityHigh, "main image"); main != nil {
		fit := layout.FitBox(float64(main.Width), float64(main.Height), area.W, mainH)
		mainH = fit.H
		cp.image("product-0", main, layout.Box{X: area.X + fit.X, Y: area.Y, W: fit.W, H: fit.H})
	}
	progress(50)

	count := min(len(refs)-1, maxThumbnails)
	if count <= 0 {
		return
	}
	slotW := (area.W - float64(count-1)*thumbGap) / float64(count)
	slotH := area.H - mainH - 10
	thumbY := area.Y + mainH + 5

	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return
		}
		thumb := cp.prepare(ctx, refs[i], api.QualityMedium, fmt.Sprintf("thumbnail %d", i))
		if thumb == nil {
			continue
		}
		fit := layout.FitBox(float64(thumb.Width), float64(thumb.Height), slotW, slotH)
		x := area.X + float64(i-1)*(slotW+thumbGap) + fit.X
		cp.image(fmt.Sprintf("product-%d", i), thumb, layout.Box{X: x, Y: thumbY, W: fit.W, H: fit.H})
	}
}

func (cp *Composer) infoPanel(design api.ProductDesign, panel layout.Box, header, text api.RGB) {
	c := cp.Canvas
	x, pw := panel.X, panel.W
	y := panel.Y
	half := pw / 2

	// model code
	c.SetDrawColor(header)
	c.SetLineWidth(0.5)
	c.Rect(layout.Box{X: x, Y: y, W: pw, H: boxHeight}, pdf.Stroke)
	c.SetFont(pdf.Font{Size: 9})
	c.SetTextColor(text)
	c.Text(modelLabel, x+3, y+7, pdf.TextOptions{})
	c.SetFont(pdf.Font{Bold: true, Size: 11})
	c.Text(design.ModelCode, x+28, y+7, pdf.TextOptions{})
	y += 16

	// colour table header
	c.SetFillColor(header)
	c.Rect(layout.Box{X: x, Y: y, W: pw, H: rowHeight}, pdf.Fill)
	c.SetFont(pdf.Font{Bold: true, Size: 8})
	c.SetTextColor(white)
	c.Text(colorLabel, x+half/2, y+5.5, pdf.TextOptions{Align: pdf.AlignCenter})
	c.Text(piecesLabel, x+half+half/2, y+5.5, pdf.TextOptions{Align: pdf.AlignCenter})
	c.SetDrawColor(headerRule)
	c.Line(x+half, y, x+half, y+rowHeight)
	y += rowHeight

	// colour rows
	c.SetFont(pdf.Font{Size: 8})
	c.SetTextColor(text)
	c.SetDrawColor(header)
	for _, row := range design.VisibleColorRows() {
		c.Rect(layout.Box{X: x, Y: y, W: pw, H: rowHeight}, pdf.Stroke)
		c.Line(x+half, y, x+half, y+rowHeight)
		if row.Left != "" {
			c.Text(strings.ToUpper(row.Left), x+half/2, y+5.5, pdf.TextOptions{Align: pdf.AlignCenter})
		}
		if row.Right != "" {
			c.Text(strings.ToUpper(row.Right), x+half+half/2, y+5.5, pdf.TextOptions{Align: pdf.AlignCenter})
		}
		y += rowHeight
	}
	y += 5

	// sizes
	c.SetDrawColor(header)
	c.Rect(layout.Box{X: x, Y: y, W: pw, H: boxHeight}, pdf.Stroke)
	c.SetFont(pdf.Font{Bold: true, Size: 10})
	c.SetTextColor(text)
	c.Text(design.Sizes, x+half, y+7.5, pdf.TextOptions{Align: pdf.AlignCenter})
	y += 18

	if design.Material == "" {
		return
	}
	c.SetFillColor(header)
	c.Rect(layout.Box{X: x, Y: y, W: pw, H: materialHeight}, pdf.Fill)
	c.SetFont(pdf.Font{Bold: true, Size: 9})
	c.SetTextColor(white)
	c.Text(materialLabel, x+half, y+8, pdf.TextOptions{Align: pdf.AlignCenter})
	c.SetFont(pdf.Font{Bold: true, Size: 8})
	c.Text(strings.ToUpper(design.Material), x+half, y+15, pdf.TextOptions{Align: pdf.AlignCenter})
}
