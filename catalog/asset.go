package catalog

import (
	"context"
	"os"

	"github.com/google/uuid"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/raster"
)

// ImageAsset is one photograph of a catalog. The ID is stable across reordering and the
// asset is never modified once created.
type ImageAsset struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Source   raster.Source `json:"-"`
	ByteSize int64         `json:"byteSize,omitempty"`
}

// NewImageAsset wraps a source with a fresh id
func NewImageAsset(src raster.Source, byteSize int64) ImageAsset {
	name := ""
	if src != nil {
		name = src.String()
	}
	return ImageAsset{ID: uuid.NewString(), Name: name, Source: src, ByteSize: byteSize}
}

// FileAssets builds assets from image paths, recording each file's size when it can be
// read. Missing files still produce an asset so the page is rendered as a placeholder.
func FileAssets(paths ...string) []ImageAsset {
	assets := make([]ImageAsset, 0, len(paths))
	for _, p := range paths {
		var size int64
		if fi, err := os.Stat(p); err == nil {
			size = fi.Size()
		}
		assets = append(assets, NewImageAsset(raster.File(p), size))
	}
	return assets
}

// Preparer turns a source into an embeddable raster at a quality
type Preparer interface {
	Prepare(ctx context.Context, src raster.Source, quality api.Quality) (*raster.Prepared, error)
}
