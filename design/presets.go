package design

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/flanksource/pdfo/api"
)

// Preset is a named product-sheet palette
type Preset struct {
	Name       string `json:"name" yaml:"name"`
	Background string `json:"background" yaml:"background"`
	Header     string `json:"header" yaml:"header"`
	Text       string `json:"text" yaml:"text"`
}

var presets = []Preset{
	{Name: "Klasik", Background: "#ffffff", Header: "#000000", Text: "#333333"},
	{Name: "Kahve", Background: "#f8f4f0", Header: "#8b4513", Text: "#5d3a1a"},
	{Name: "Pembe", Background: "#fff5f5", Header: "#e91e8c", Text: "#333333"},
	{Name: "Siyah", Background: "#f0f0f0", Header: "#1a1a1a", Text: "#333333"},
}

// Presets returns the built-in palettes
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

// FindPreset looks a palette up by name, ignoring case
func FindPreset(name string) (Preset, bool) {
	return lo.Find(presets, func(p Preset) bool { return strings.EqualFold(p.Name, name) })
}

// ApplyPreset returns d recoloured with the named palette
func ApplyPreset(d api.ProductDesign, name string) (api.ProductDesign, error) {
	p, ok := FindPreset(name)
	if !ok {
		names := lo.Map(presets, func(p Preset, _ int) string { return p.Name })
		return d, fmt.Errorf("unknown preset %q, available: %s", name, strings.Join(names, ", "))
	}
	d.BackgroundColor = p.Background
	d.HeaderColor = p.Header
	d.TextColor = p.Text
	return d, nil
}
