package raster

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

// Source is anything that can be read as encoded image bytes
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// File is an image on the local filesystem
type File string

// Open implements Source
func (f File) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(string(f))
}

func (f File) String() string {
	return filepath.Base(string(f))
}

// Bytes is an in-memory encoded image
type Bytes struct {
	Name string
	Data []byte
}

// Open implements Source
func (b Bytes) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

func (b Bytes) String() string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("<%d bytes>", len(b.Data))
}

// DataURL is an RFC 2397 data: URL, the form product designs keep their images in
type DataURL string

// Open implements Source
func (d DataURL) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := dataurl.DecodeString(string(d))
	if err != nil {
		return nil, fmt.Errorf("invalid data url: %w", err)
	}
	return io.NopCloser(bytes.NewReader(u.Data)), nil
}

func (d DataURL) String() string {
	s := string(d)
	if i := strings.IndexByte(s, ','); i > 0 {
		return s[:i]
	}
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}

// ParseSource maps a stored image reference (file path or data URL) to a Source.
// An empty reference returns nil.
func ParseSource(ref string) Source {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil
	case strings.HasPrefix(ref, "data:"):
		return DataURL(ref)
	default:
		return File(ref)
	}
}

// EncodeDataURL packs raw image bytes into a data URL with the detected MIME type
func EncodeDataURL(data []byte) string {
	return dataurl.New(data, DetectMIME(data)).String()
}

// ReadAll loads the full encoded content of a source
func ReadAll(ctx context.Context, src Source) ([]byte, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
