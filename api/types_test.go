package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]Orientation{
		"":          Portrait,
		"Portrait":  Portrait,
		"l":         Landscape,
		"LANDSCAPE": Landscape,
		" auto ":    Auto,
	} {
		got, err := ParseOrientation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseOrientation("sideways")
	assert.Error(t, err)
}

func TestParseQuality(t *testing.T) {
	q, err := ParseQuality("HIGH")
	require.NoError(t, err)
	assert.Equal(t, QualityHigh, q)

	q, err = ParseQuality("")
	require.NoError(t, err)
	assert.Equal(t, QualityMedium, q)

	_, err = ParseQuality("ultra")
	assert.Error(t, err)
}

func TestQualityProfiles(t *testing.T) {
	assert.Equal(t, 0.5, QualityLow.Profile().Scale)
	assert.Equal(t, 0.4, QualityLow.Profile().Compression)
	assert.Equal(t, 0.3, QualityLow.Profile().EstimateMultiplier)
	assert.Equal(t, 0.75, QualityMedium.Profile().Scale)
	assert.Equal(t, 0.7, QualityMedium.Profile().Compression)
	assert.Equal(t, 1.0, QualityHigh.Profile().Scale)
	assert.Equal(t, 0.95, QualityHigh.Profile().Compression)
	assert.Equal(t, 1.2, QualityHigh.Profile().EstimateMultiplier)
	assert.Equal(t, QualityMedium.Profile(), Quality("bogus").Profile())

	prev := 0.0
	for _, q := range Qualities() {
		assert.Greater(t, q.Profile().Scale, prev)
		prev = q.Profile().Scale
	}
}

func TestCoverConfig_WithDefaults(t *testing.T) {
	c := CoverConfig{BrandColor: "#000000"}.WithDefaults()
	assert.Equal(t, DefaultBackgroundColor, c.BackgroundColor)
	assert.Equal(t, "#000000", c.BrandColor)
	assert.Equal(t, DefaultTextColor, c.TextColor)
	assert.Equal(t, Portrait, c.Orientation)
	assert.Equal(t, BelowSubtitle, c.ContactPlacement)

	assert.False(t, c.HasContact())
	c.WhatsApp2 = "555"
	assert.True(t, c.HasContact())
}

func TestProductDesign_WithDefaults(t *testing.T) {
	d := ProductDesign{
		Images:      []string{"a", "b", "c", "d", "e"},
		Colors:      []ColorRow{{Left: "red", Right: "1"}},
		Orientation: Auto,
	}.WithDefaults()

	assert.Len(t, d.Images, MaxProductImages)
	assert.Len(t, d.Colors, ColorRowCount)
	assert.Equal(t, "red", d.Colors[0].Left)
	assert.Equal(t, Portrait, d.Orientation)
	assert.Equal(t, DefaultHeaderColor, d.HeaderColor)
	assert.NotNil(t, ProductDesign{}.WithDefaults().Images)
}

func TestProductDesign_VisibleColorRows(t *testing.T) {
	d := NewProductDesign()
	assert.Len(t, d.VisibleColorRows(), ColorRowCount)

	d.Colors[1] = ColorRow{Right: "3"}
	d.Colors[4] = ColorRow{Left: "blue"}
	assert.Equal(t, []ColorRow{{Right: "3"}, {Left: "blue"}}, d.VisibleColorRows())
}

func TestProductDesign_Snapshot(t *testing.T) {
	d := NewProductDesign()
	d.Images = []string{"a"}
	s := d.Snapshot()
	d.Images[0] = "changed"
	d.Colors[0].Left = "changed"
	assert.Equal(t, "a", s.Images[0])
	assert.Empty(t, s.Colors[0].Left)
}
