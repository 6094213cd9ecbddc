// Package pdfo holds the command line configuration of the catalog generator: global
// flags, the settings file and the cover and design files a run is given.
package pdfo

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/catalog"
)

// Settings are the defaults of every run, read from an optional file and PDFO_*
// environment variables
type Settings struct {
	Quality     string `yaml:"quality" json:"quality" env:"PDFO_QUALITY" env-default:"medium" validate:"oneof=low medium high"`
	Orientation string `yaml:"orientation" json:"orientation" env:"PDFO_ORIENTATION" env-default:"portrait" validate:"oneof=portrait landscape auto"`
	OutputDir   string `yaml:"outputDir" json:"outputDir" env:"PDFO_OUTPUT_DIR" env-default:"."`
	DesignDB    string `yaml:"designDB" json:"designDB" env:"PDFO_DESIGN_DB"`
	// MaxConcurrentDecode and IconSize fall back to their defaults when unset or 0
	MaxConcurrentDecode int  `yaml:"maxConcurrentDecode" json:"maxConcurrentDecode" env:"PDFO_MAX_CONCURRENT_DECODE" env-default:"1" validate:"min=1,max=16"`
	IconSize            int  `yaml:"iconSize" json:"iconSize" env:"PDFO_ICON_SIZE" env-default:"128" validate:"min=16,max=1024"`
	KeepSuperseded      bool `yaml:"keepSuperseded" json:"keepSuperseded" env:"PDFO_KEEP_SUPERSEDED"`
}

var validate = validator.New()

// LoadSettings reads path (if not empty) and then the environment, and validates the result
func LoadSettings(path string) (Settings, error) {
	var s Settings
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &s)
	} else {
		err = cleanenv.ReadEnv(&s)
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return s, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// DefaultQuality is the parsed Quality setting
func (s Settings) DefaultQuality() api.Quality {
	q, err := api.ParseQuality(s.Quality)
	if err != nil {
		return api.QualityMedium
	}
	return q
}

// DefaultOrientation is the parsed Orientation setting
func (s Settings) DefaultOrientation() api.Orientation {
	o, err := api.ParseOrientation(s.Orientation)
	if err != nil {
		return api.Portrait
	}
	return o
}

// GeneratorOptions maps the settings onto catalog generator options
func (s Settings) GeneratorOptions() catalog.Options {
	opts := catalog.DefaultOptions()
	opts.MaxConcurrentDecode = s.MaxConcurrentDecode
	opts.IconSize = s.IconSize
	opts.ReleaseSuperseded = !s.KeepSuperseded
	return opts
}

// LoadCover reads a cover definition. A missing orientation takes fallback.
func LoadCover(path string, fallback api.Orientation) (api.CoverConfig, error) {
	var cover api.CoverConfig
	if err := readYAML(path, &cover); err != nil {
		return cover, err
	}
	if cover.Orientation == "" {
		cover.Orientation = fallback
	}
	o, err := api.ParseOrientation(string(cover.Orientation))
	if err != nil {
		return cover, fmt.Errorf("%s: %w", path, err)
	}
	cover.Orientation = o
	switch cover.ContactPlacement {
	case "", api.BelowSubtitle, api.PageBottom:
	default:
		return cover, fmt.Errorf("%s: invalid contactPlacement %q: must be %s or %s",
			path, cover.ContactPlacement, api.BelowSubtitle, api.PageBottom)
	}
	return cover.WithDefaults(), nil
}

// LoadDesign reads a product design; unset fields keep the blank design defaults
func LoadDesign(path string) (api.ProductDesign, error) {
	d := api.NewProductDesign()
	if err := readYAML(path, &d); err != nil {
		return d, err
	}
	if len(d.Images) > api.MaxProductImages {
		return d, fmt.Errorf("%s: %d images, a product design holds at most %d", path, len(d.Images), api.MaxProductImages)
	}
	if _, err := api.ParseOrientation(string(d.Orientation)); err != nil {
		return d, fmt.Errorf("%s: %w", path, err)
	}
	return d.WithDefaults(), nil
}

// WriteDesign saves a design as YAML
func WriteDesign(path string, d api.ProductDesign) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode design: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
