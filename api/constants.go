package api

// Orientation constants
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
	Auto      Orientation = "auto"
)

// Quality constants
const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// Contact row placement constants
const (
	BelowSubtitle ContactPlacement = "below-subtitle"
	PageBottom    ContactPlacement = "bottom"
)

// Cover defaults
const (
	DefaultBackgroundColor = "#ffffff"
	DefaultBrandColor      = "#e91e8c"
	DefaultTextColor       = "#333333"
	DefaultHeaderColor     = "#000000"
)

// Product design limits
const (
	MaxProductImages = 4
	ColorRowCount    = 5
)
