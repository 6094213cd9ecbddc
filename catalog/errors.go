package catalog

import (
	"context"
	"errors"

	"github.com/flanksource/pdfo/pdf"
	"github.com/flanksource/pdfo/raster"
)

// ErrReleased is returned when reading a result whose handle was released
var ErrReleased = errors.New("document has been released")

// UserMessage maps a generation error to a single sentence for the user. It separates a
// cancelled run, a document that could not be built and an image that could not be read.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var backend *pdf.DrawingBackendError
	var decode *raster.DecodeError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "PDF generation was cancelled"
	case errors.Is(err, ErrReleased):
		return "This PDF is no longer available, generate it again"
	case errors.As(err, &backend):
		return "Could not build the PDF document, please try again with fewer or smaller images"
	case errors.As(err, &decode):
		return "Could not read image " + decode.Source
	case errors.Is(err, raster.ErrUnsupportedType), errors.Is(err, raster.ErrTooLarge):
		return "Could not read image: " + err.Error()
	}
	return "Could not build the PDF document"
}
