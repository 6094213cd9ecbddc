package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Orientation is the page orientation policy. Auto picks portrait or landscape per page
// from the aspect ratio of the image placed on that page.
type Orientation string

// ParseOrientation accepts portrait, landscape or auto (case-insensitive, "p"/"l" shorthands).
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "portrait", "p":
		return Portrait, nil
	case "landscape", "l":
		return Landscape, nil
	case "auto":
		return Auto, nil
	}
	return "", fmt.Errorf("invalid orientation %q: must be portrait, landscape or auto", s)
}

// Quality selects a raster preprocessing profile
type Quality string

// QualityProfile binds the resample scale, JPEG compression factor and size estimate
// multiplier of a Quality.
type QualityProfile struct {
	Scale              float64 `json:"scale" yaml:"scale"`
	Compression        float64 `json:"compression" yaml:"compression"`
	EstimateMultiplier float64 `json:"estimate_multiplier" yaml:"estimate_multiplier"`
	Label              string  `json:"label" yaml:"label"`
	Description        string  `json:"description" yaml:"description"`
}

var qualityProfiles = map[Quality]QualityProfile{
	QualityLow: {
		Scale:              0.5,
		Compression:        0.4,
		EstimateMultiplier: 0.3,
		Label:              "Low",
		Description:        "Small file, quick to share",
	},
	QualityMedium: {
		Scale:              0.75,
		Compression:        0.7,
		EstimateMultiplier: 0.6,
		Label:              "Medium",
		Description:        "Balanced quality and size",
	},
	QualityHigh: {
		Scale:              1,
		Compression:        0.95,
		EstimateMultiplier: 1.2,
		Label:              "High",
		Description:        "Best quality, large file",
	},
}

// Profile returns the profile of q, falling back to medium for unknown values
func (q Quality) Profile() QualityProfile {
	if p, ok := qualityProfiles[q]; ok {
		return p
	}
	return qualityProfiles[QualityMedium]
}

// Qualities lists the supported profiles from smallest to largest output
func Qualities() []Quality {
	return []Quality{QualityLow, QualityMedium, QualityHigh}
}

// ParseQuality accepts low, medium or high
func ParseQuality(s string) (Quality, error) {
	q := Quality(strings.ToLower(strings.TrimSpace(s)))
	if q == "" {
		return QualityMedium, nil
	}
	if _, ok := qualityProfiles[q]; !ok {
		return "", fmt.Errorf("invalid quality %q: must be low, medium or high", s)
	}
	return q, nil
}

// ContactPlacement controls where the cover's contact row is drawn
type ContactPlacement string

// CoverConfig is the content and style of a catalog's cover page.
// Logo and every contact field are optional.
type CoverConfig struct {
	// Logo is a file path or data URL
	Logo             string           `json:"logo,omitempty" yaml:"logo,omitempty"`
	BrandName        string           `json:"brandName,omitempty" yaml:"brandName,omitempty"`
	Subtitle         string           `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	WhatsApp1        string           `json:"whatsapp1,omitempty" yaml:"whatsapp1,omitempty"`
	WhatsApp2        string           `json:"whatsapp2,omitempty" yaml:"whatsapp2,omitempty"`
	Instagram        string           `json:"instagram,omitempty" yaml:"instagram,omitempty"`
	Telegram         string           `json:"telegram,omitempty" yaml:"telegram,omitempty"`
	BackgroundColor  string           `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	BrandColor       string           `json:"brandColor,omitempty" yaml:"brandColor,omitempty"`
	TextColor        string           `json:"textColor,omitempty" yaml:"textColor,omitempty"`
	Orientation      Orientation      `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	ContactPlacement ContactPlacement `json:"contactPlacement,omitempty" yaml:"contactPlacement,omitempty"`
}

// DefaultCoverConfig returns an empty cover with the default palette
func DefaultCoverConfig() CoverConfig {
	return CoverConfig{
		BackgroundColor:  DefaultBackgroundColor,
		BrandColor:       DefaultBrandColor,
		TextColor:        DefaultTextColor,
		Orientation:      Portrait,
		ContactPlacement: BelowSubtitle,
	}
}

// WithDefaults fills blank style fields with the default palette
func (c CoverConfig) WithDefaults() CoverConfig {
	d := DefaultCoverConfig()
	c.BackgroundColor = lo.CoalesceOrEmpty(c.BackgroundColor, d.BackgroundColor)
	c.BrandColor = lo.CoalesceOrEmpty(c.BrandColor, d.BrandColor)
	c.TextColor = lo.CoalesceOrEmpty(c.TextColor, d.TextColor)
	c.Orientation = lo.CoalesceOrEmpty(c.Orientation, d.Orientation)
	c.ContactPlacement = lo.CoalesceOrEmpty(c.ContactPlacement, d.ContactPlacement)
	return c
}

// HasContact reports whether any contact field is set
func (c CoverConfig) HasContact() bool {
	return c.WhatsApp1 != "" || c.WhatsApp2 != "" || c.Instagram != "" || c.Telegram != ""
}

// ColorRow is one label/quantity row of a product's colour table
type ColorRow struct {
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
}

// IsEmpty is true when both cells are blank
func (r ColorRow) IsEmpty() bool {
	return r.Left == "" && r.Right == ""
}

// ProductDesign is the content of a single-page product spec sheet
type ProductDesign struct {
	ID             string `json:"id,omitempty" yaml:"id,omitempty"`
	ModelCode      string `json:"modelCode" yaml:"modelCode"`
	Sizes          string `json:"sizes" yaml:"sizes"`
	Material       string `json:"material" yaml:"material"`
	BrandWatermark string `json:"brandWatermark" yaml:"brandWatermark"`
	// Images are file paths or data URLs; the first is the main image
	Images          []string    `json:"images" yaml:"images" validate:"max=4"`
	Colors          []ColorRow  `json:"colors" yaml:"colors"`
	Orientation     Orientation `json:"orientation" yaml:"orientation"`
	BackgroundColor string      `json:"backgroundColor" yaml:"backgroundColor"`
	HeaderColor     string      `json:"headerColor" yaml:"headerColor"`
	TextColor       string      `json:"textColor" yaml:"textColor"`
	CreatedAt       time.Time   `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt       time.Time   `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// NewProductDesign returns a blank design with five empty colour rows
func NewProductDesign() ProductDesign {
	return ProductDesign{
		Images:          []string{},
		Colors:          make([]ColorRow, ColorRowCount),
		Orientation:     Portrait,
		BackgroundColor: DefaultBackgroundColor,
		HeaderColor:     DefaultHeaderColor,
		TextColor:       DefaultTextColor,
	}
}

// WithDefaults normalises a design loaded from outside: palette defaults, exactly
// ColorRowCount colour rows, at most MaxProductImages images and no auto orientation.
func (d ProductDesign) WithDefaults() ProductDesign {
	n := NewProductDesign()
	d.BackgroundColor = lo.CoalesceOrEmpty(d.BackgroundColor, n.BackgroundColor)
	d.HeaderColor = lo.CoalesceOrEmpty(d.HeaderColor, n.HeaderColor)
	d.TextColor = lo.CoalesceOrEmpty(d.TextColor, n.TextColor)
	if d.Orientation != Landscape {
		d.Orientation = Portrait
	}
	rows := make([]ColorRow, ColorRowCount)
	copy(rows, d.Colors)
	d.Colors = rows
	if len(d.Images) > MaxProductImages {
		d.Images = d.Images[:MaxProductImages]
	}
	if d.Images == nil {
		d.Images = []string{}
	}
	return d
}

// VisibleColorRows returns the rows the spec sheet renders: the non-empty rows, or all
// rows unchanged when every row is empty.
func (d ProductDesign) VisibleColorRows() []ColorRow {
	filled := lo.Reject(d.Colors, func(r ColorRow, _ int) bool { return r.IsEmpty() })
	if len(filled) > 0 {
		return filled
	}
	return d.Colors
}

// Snapshot returns a deep copy so callers can keep editing the original
func (d ProductDesign) Snapshot() ProductDesign {
	d.Images = append([]string{}, d.Images...)
	d.Colors = append([]ColorRow{}, d.Colors...)
	return d
}
