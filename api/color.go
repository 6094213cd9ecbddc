package api

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is an sRGB colour with 0-255 channels
type RGB struct {
	R int `json:"r" yaml:"r"`
	G int `json:"g" yaml:"g"`
	B int `json:"b" yaml:"b"`
}

// White is returned for any colour that cannot be parsed
var White = RGB{R: 255, G: 255, B: 255}

// HexToRGB converts a #RRGGBB string (leading # optional, any case) to RGB.
// Anything else yields White: user-entered colours must never break a layout.
func HexToRGB(hex string) RGB {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return White
	}
	var rgb [3]int
	for i := range rgb {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return White
		}
		rgb[i] = int(v)
	}
	return RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
}

// Hex returns the #rrggbb form
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
