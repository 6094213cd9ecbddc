package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/flanksource/pdfo/api"
)

// DefaultImageSize is assumed for images of unknown size when estimating output size
const DefaultImageSize = 200000

// Handle is a revocable reference to a rendered document. Once released every read
// fails with ErrReleased and the buffer can be garbage collected.
type Handle struct {
	mu   sync.RWMutex
	data []byte
}

func newHandle(data []byte) *Handle {
	return &Handle{data: data}
}

// Bytes returns the document. The slice must not be modified.
func (h *Handle) Bytes() ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.data == nil {
		return nil, ErrReleased
	}
	return h.data, nil
}

// Reader returns a reader over the document
func (h *Handle) Reader() (io.Reader, error) {
	data, err := h.Bytes()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// WriteTo implements io.WriterTo
func (h *Handle) WriteTo(w io.Writer) (int64, error) {
	data, err := h.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Save writes the document to dir/name and returns the full path
func (h *Handle) Save(dir, name string) (string, error) {
	data, err := h.Bytes()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Release drops the buffer. It is safe to call more than once.
func (h *Handle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.data = nil
}

// Released reports whether Release has been called
func (h *Handle) Released() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.data == nil
}

// RenderResult is the outcome of one generation run. It is never mutated; a later run
// supersedes it.
type RenderResult struct {
	Handle        *Handle `json:"-"`
	ByteLength    int     `json:"byteLength"`
	FormattedSize string  `json:"formattedSize"`
	PageCount     int     `json:"pageCount"`
	// Filename is a suggested download name derived from the brand or model code
	Filename string `json:"filename"`
}

func newResult(data []byte, pages int, filename string) *RenderResult {
	return &RenderResult{
		Handle:        newHandle(data),
		ByteLength:    len(data),
		FormattedSize: FormatFileSize(int64(len(data))),
		PageCount:     pages,
		Filename:      filename,
	}
}

// Release releases the result's handle
func (r *RenderResult) Release() {
	if r != nil && r.Handle != nil {
		r.Handle.Release()
	}
}

func (r RenderResult) String() string {
	return fmt.Sprintf("%s (%d pages, %s)", r.Filename, r.PageCount, r.FormattedSize)
}

// FormatFileSize renders a byte count with base-1024 units: "N B", "x.x KB" or "x.xx MB"
func FormatFileSize(n int64) string {
	switch {
	case n == 0:
		return "0 B"
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	}
	return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
}

// EstimateBytes predicts the output size from the original image sizes and the quality's
// estimate multiplier. Images of unknown size count as DefaultImageSize.
func EstimateBytes(assets []ImageAsset, quality api.Quality) int64 {
	base := lo.SumBy(assets, func(a ImageAsset) int64 {
		return lo.Ternary(a.ByteSize > 0, a.ByteSize, DefaultImageSize)
	})
	return int64(float64(base) * quality.Profile().EstimateMultiplier)
}

// EstimateSize is EstimateBytes formatted for display, or "" when there are no images
func EstimateSize(assets []ImageAsset, quality api.Quality) string {
	if len(assets) == 0 {
		return ""
	}
	return FormatFileSize(EstimateBytes(assets, quality))
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9ğüşıöçĞÜŞİÖÇ]`)

// SuggestFilename derives a download name from a brand name or model code. Every
// character outside Latin and Turkish letters and digits becomes "_", and the Unix
// millisecond timestamp keeps names unique.
func SuggestFilename(name string, now time.Time) string {
	ts := now.UnixMilli()
	if strings.TrimSpace(name) == "" {
		return fmt.Sprintf("pdfo_%d.pdf", ts)
	}
	return fmt.Sprintf("%s_%d.pdf", unsafeFilenameChars.ReplaceAllString(name, "_"), ts)
}
