package pdf

import (
	"bytes"
	"fmt"
	"strings"

	pdfread "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/samber/lo"

	pdfoapi "github.com/flanksource/pdfo/api"
)

const pointsPerMM = 72 / 25.4

// PageInfo is the size of one page in millimetres
type PageInfo struct {
	Width       float64             `json:"width"`
	Height      float64             `json:"height"`
	Orientation pdfoapi.Orientation `json:"orientation"`
}

// Info describes a rendered document
type Info struct {
	Pages     int        `json:"pages"`
	Size      int        `json:"size"`
	PageSizes []PageInfo `json:"pageSizes"`
}

// Inspect validates a PDF and returns its page count and page sizes
func Inspect(data []byte) (*Info, error) {
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		return nil, fmt.Errorf("not a PDF document (missing %%PDF header)")
	}

	conf := model.NewDefaultConfiguration()
	if _, err := api.ReadContext(bytes.NewReader(data), conf); err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	pages, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	dims, err := api.PageDims(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read page sizes: %w", err)
	}

	info := &Info{Pages: pages, Size: len(data)}
	for _, d := range dims {
		p := PageInfo{Width: d.Width / pointsPerMM, Height: d.Height / pointsPerMM, Orientation: pdfoapi.Portrait}
		if p.Width > p.Height {
			p.Orientation = pdfoapi.Landscape
		}
		info.PageSizes = append(info.PageSizes, p)
	}
	return info, nil
}

// ExtractText returns the plain text of every page, one entry per page
func ExtractText(data []byte) ([]string, error) {
	r, err := pdfread.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		fonts := make(map[string]*pdfread.Font)
		for _, name := range p.Fonts() {
			f := p.Font(name)
			fonts[name] = &f
		}

		text, err := p.GetPlainText(fonts)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// ContainsText reports whether every needle appears somewhere in the document text
func ContainsText(data []byte, needles ...string) (bool, error) {
	pages, err := ExtractText(data)
	if err != nil {
		return false, err
	}
	all := strings.Join(pages, "\n")
	return lo.EveryBy(needles, func(n string) bool { return strings.Contains(all, n) }), nil
}
