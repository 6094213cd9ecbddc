package main

import (
	"context"
	"fmt"
	"os"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/flanksource/pdfo"
	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/catalog"
	"github.com/flanksource/pdfo/design"
	"github.com/flanksource/pdfo/pdf"
	"github.com/flanksource/pdfo/raster"
)

func newCatalogCommand() *cobra.Command {
	var coverFile, quality, orientation, outDir, brand string

	cmd := &cobra.Command{
		Use:   "catalog [flags] <image1> [image2...]",
		Short: "Build a catalog: a cover page and one page per photo",
		Example: `  pdfo catalog --cover cover.yaml -o out/ a.jpg b.png
  pdfo catalog --brand "F-MOR" --orientation auto --quality low *.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > raster.MaxImages {
				return fmt.Errorf("at most %d images per catalog, got %d", raster.MaxImages, len(args))
			}

			q := settings.DefaultQuality()
			if quality != "" {
				var err error
				if q, err = api.ParseQuality(quality); err != nil {
					return err
				}
			}
			o := settings.DefaultOrientation()
			if orientation != "" {
				var err error
				if o, err = api.ParseOrientation(orientation); err != nil {
					return err
				}
			}

			cover := api.DefaultCoverConfig()
			cover.Orientation = o
			if coverFile != "" {
				var err error
				if cover, err = pdfo.LoadCover(coverFile, o); err != nil {
					return err
				}
				if orientation != "" {
					cover.Orientation = o
				}
			}
			if brand != "" {
				cover.BrandName = brand
			}

			assets := catalog.FileAssets(args...)
			for _, a := range assets {
				checkImage(a)
			}

			gen, err := newGenerator()
			if err != nil {
				return err
			}
			logger.Infof("Estimated size: %s", catalog.EstimateSize(assets, q))
			return run(cmd, "catalog", func(ctx context.Context, progress catalog.ProgressFunc) (*catalog.RenderResult, error) {
				return gen.Generate(ctx, assets, cover, q, progress)
			}, lo.CoalesceOrEmpty(outDir, settings.OutputDir))
		},
	}

	cmd.Flags().StringVar(&coverFile, "cover", "", "YAML file with the cover definition")
	cmd.Flags().StringVar(&brand, "brand", "", "Brand name, overrides the cover file")
	cmd.Flags().StringVarP(&quality, "quality", "q", "", "Image quality: low, medium or high")
	cmd.Flags().StringVar(&orientation, "orientation", "", "Page orientation: portrait, landscape or auto")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory")
	return cmd
}

// checkImage warns about files that will be rendered as placeholder pages
func checkImage(a catalog.ImageAsset) {
	f, ok := a.Source.(raster.File)
	if !ok {
		return
	}
	data, err := os.ReadFile(string(f))
	if err != nil {
		logger.Warnf("%s will be a placeholder page: %v", a.Name, err)
		return
	}
	if err := raster.Validate(a.Name, data); err != nil {
		logger.Warnf("%v", err)
	}
}

func newProductCommand() *cobra.Command {
	var designFile, id, outDir, preset string

	cmd := &cobra.Command{
		Use:   "product",
		Short: "Build a single-page product spec sheet",
		Example: `  pdfo product --design design.yaml -o out/
  pdfo product --id 6b1f... --preset Kahve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var d api.ProductDesign
			switch {
			case designFile != "" && id != "":
				return fmt.Errorf("use either --design or --id, not both")
			case designFile != "":
				var err error
				if d, err = pdfo.LoadDesign(designFile); err != nil {
					return err
				}
			case id != "":
				editor, closeStore, err := openEditor()
				if err != nil {
					return err
				}
				defer closeStore()
				if d, err = editor.Load(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to load design %s: %w", id, err)
				}
			default:
				return fmt.Errorf("--design or --id is required")
			}

			if preset != "" {
				var err error
				if d, err = design.ApplyPreset(d, preset); err != nil {
					return err
				}
			}
			if len(d.Images) == 0 {
				logger.Warnf("design %q has no images", d.ModelCode)
			}

			gen, err := newGenerator()
			if err != nil {
				return err
			}
			return run(cmd, "product", func(ctx context.Context, progress catalog.ProgressFunc) (*catalog.RenderResult, error) {
				return gen.GenerateProduct(ctx, d, progress)
			}, lo.CoalesceOrEmpty(outDir, settings.OutputDir))
		},
	}

	cmd.Flags().StringVar(&designFile, "design", "", "YAML file with the product design")
	cmd.Flags().StringVar(&id, "id", "", "Id of a saved design")
	cmd.Flags().StringVar(&preset, "preset", "", "Colour preset to apply")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory")
	return cmd
}

func newInspectCommand() *cobra.Command {
	var showText bool

	cmd := &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Show the page count and page sizes of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			info, err := pdf.Inspect(data)
			if err != nil {
				return err
			}

			out := struct {
				File          string         `yaml:"file"`
				FormattedSize string         `yaml:"formattedSize"`
				Pages         int            `yaml:"pages"`
				PageSizes     []pdf.PageInfo `yaml:"pageSizes"`
				Text          []string       `yaml:"text,omitempty"`
			}{
				File:          args[0],
				FormattedSize: catalog.FormatFileSize(int64(info.Size)),
				Pages:         info.Pages,
				PageSizes:     info.PageSizes,
			}
			if showText {
				if out.Text, err = pdf.ExtractText(data); err != nil {
					return err
				}
			}

			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(out)
		},
	}
	cmd.Flags().BoolVar(&showText, "text", false, "Include the text of every page")
	return cmd
}

func newEstimateCommand() *cobra.Command {
	var quality string

	cmd := &cobra.Command{
		Use:   "estimate [flags] <image1> [image2...]",
		Short: "Estimate the catalog size for each quality",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assets := catalog.FileAssets(args...)
			qualities := api.Qualities()
			if quality != "" {
				q, err := api.ParseQuality(quality)
				if err != nil {
					return err
				}
				qualities = []api.Quality{q}
			}
			for _, q := range qualities {
				p := q.Profile()
				fmt.Printf("%-7s %10s  %s\n", p.Label, catalog.EstimateSize(assets, q), p.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&quality, "quality", "q", "", "Only estimate this quality")
	return cmd
}
