package raster

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
)

const (
	// MaxFileSize is the largest upload accepted per image
	MaxFileSize = 10 * 1024 * 1024
	// MaxImages is the most photos accepted for one catalog
	MaxImages = 50
)

var (
	// ErrUnsupportedType is returned for uploads that are not a supported image type
	ErrUnsupportedType = errors.New("unsupported image type")
	// ErrTooLarge is returned for uploads above MaxFileSize
	ErrTooLarge = errors.New("image too large")
)

// SupportedTypes are the MIME types accepted on upload
var SupportedTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/heic",
	"image/heif",
}

// DetectMIME sniffs the MIME type of encoded image bytes
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}

// Validate checks an upload against the supported types and size limit. All problems
// are reported together.
func Validate(name string, data []byte) error {
	var errs []error

	mime := mimetype.Detect(data)
	if !lo.ContainsBy(SupportedTypes, func(t string) bool { return mime.Is(t) }) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrUnsupportedType, mime.String()))
	}
	if len(data) > MaxFileSize {
		errs = append(errs, fmt.Errorf("%w: %.1fMB (max: %dMB)", ErrTooLarge,
			float64(len(data))/1024/1024, MaxFileSize/1024/1024))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", name, errors.Join(errs...))
	}
	return nil
}
