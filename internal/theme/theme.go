// Package theme provides the color palettes used to draw the virtual keyboard.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
)

// Theme names.
const (
	Dark  = "dark"
	Light = "light"
	Neon  = "neon"
	Glass = "glass"
)

// GlassAlpha is the opacity of key fills for translucent themes.
const GlassAlpha = 0.4

// ErrUnknownTheme is returned when a theme name is not registered.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is an immutable palette for the keyboard.
type Theme struct {
	Name   string
	Normal color.RGBA // Key fill when not hovered
	Hover  color.RGBA // Key fill under the fingertip
	Text   color.RGBA // Label color

	// Translucent themes blend the key fill over the camera frame
	// with Alpha opacity instead of painting it opaquely.
	Translucent bool
	Alpha       float64
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

var themes = map[string]Theme{
	Dark: {
		Name:   Dark,
		Normal: rgb(40, 40, 40),
		Hover:  rgb(255, 200, 0),
		Text:   rgb(255, 255, 255),
	},
	Light: {
		Name:   Light,
		Normal: rgb(220, 220, 220),
		Hover:  rgb(255, 120, 0),
		Text:   rgb(0, 0, 0),
	},
	Neon: {
		Name:   Neon,
		Normal: rgb(0, 0, 0),
		Hover:  rgb(0, 255, 0),
		Text:   rgb(255, 255, 0),
	},
	Glass: {
		Name:        Glass,
		Normal:      rgb(100, 100, 100),
		Hover:       rgb(255, 255, 255),
		Text:        rgb(255, 255, 255),
		Translucent: true,
		Alpha:       GlassAlpha,
	},
}

// Lookup returns the theme registered under name.
func Lookup(name string) (Theme, error) {
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// Names returns the registered theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fill returns the key fill color for a key, given whether it is hovered.
func (t Theme) Fill(hovered bool) color.RGBA {
	if hovered {
		return t.Hover
	}
	return t.Normal
}
