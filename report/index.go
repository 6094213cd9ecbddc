// Package report renders overview documents about saved product designs
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/samber/lo"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/catalog"
	"github.com/flanksource/pdfo/raster"
)

const (
	rowHeight    = 24.0
	headerHeight = 8.0
)

var (
	headerBackground = &props.Color{Red: 240, Green: 240, Blue: 240}
	ruleColor        = &props.Color{Red: 200, Green: 200, Blue: 200}
	mutedColor       = &props.Color{Red: 128, Green: 128, Blue: 128}
)

// Column headers of the design index
var Columns = []string{"", "Model Code", "Sizes", "Material", "Colours", "Updated"}

// DesignIndex renders a grid with one row per design: a thumbnail of its main image,
// model code, sizes, material, number of filled colour rows and last update.
// Designs whose main image cannot be read get an empty thumbnail cell.
func DesignIndex(ctx context.Context, designs []api.ProductDesign, prep catalog.Preparer) ([]byte, error) {
	log := logger.GetLogger("report")
	if prep == nil {
		prep = raster.NewPreprocessor()
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithRightMargin(10).
		WithTopMargin(10).
		WithBottomMargin(10).
		Build()
	m := maroto.New(cfg)

	m.AddRows(
		row.New(12).Add(col.New(12).Add(text.New(fmt.Sprintf("Saved designs (%d)", len(designs)), props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}))),
		headerRow(),
	)

	for _, d := range designs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("design index cancelled: %w", err)
		}
		m.AddRows(designRow(ctx, d, prep, log))
	}

	if len(designs) == 0 {
		m.AddRow(headerHeight, col.New(12).Add(text.New("No saved designs", props.Text{
			Size:  10,
			Style: fontstyle.Italic,
			Align: align.Center,
			Color: mutedColor,
		})))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate design index: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow() core.Row {
	style := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left, Top: 2}
	sizes := []int{2, 3, 2, 2, 1, 2}
	cols := make([]core.Col, len(Columns))
	for i, name := range Columns {
		cols[i] = col.New(sizes[i]).Add(text.New(name, style))
	}
	return row.New(headerHeight).Add(cols...).WithStyle(&props.Cell{
		BackgroundColor: headerBackground,
	})
}

func designRow(ctx context.Context, d api.ProductDesign, prep catalog.Preparer, log logger.Logger) core.Row {
	cell := props.Text{Size: 9, Align: align.Left, Top: rowHeight/2 - 2}

	thumb := col.New(2)
	if len(d.Images) > 0 {
		if src := raster.ParseSource(d.Images[0]); src != nil {
			img, err := prep.Prepare(ctx, src, api.QualityLow)
			if err != nil {
				log.Warnf("design %s: no thumbnail: %v", d.ID, err)
			} else {
				thumb.Add(image.NewFromBytes(img.Data, extension.Jpg, props.Rect{Center: true, Percent: 90}))
			}
		}
	}

	colours := lo.CountBy(d.Colors, func(r api.ColorRow) bool { return !r.IsEmpty() })
	updated := ""
	if !d.UpdatedAt.IsZero() {
		updated = d.UpdatedAt.Format(time.DateOnly)
	}

	return row.New(rowHeight).Add(
		thumb,
		col.New(3).Add(text.New(lo.CoalesceOrEmpty(d.ModelCode, "-"), props.Text{Size: 10, Style: fontstyle.Bold, Top: rowHeight/2 - 2})),
		col.New(2).Add(text.New(d.Sizes, cell)),
		col.New(2).Add(text.New(strings.ToUpper(d.Material), cell)),
		col.New(1).Add(text.New(fmt.Sprint(colours), cell)),
		col.New(2).Add(text.New(updated, cell)),
	).WithStyle(&props.Cell{
		BorderType:      border.Bottom,
		BorderColor:     ruleColor,
		BorderThickness: 0.2,
	})
}
