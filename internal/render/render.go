// Package render draws the virtual keyboard and its overlays onto camera frames.
package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/airkeys/internal/keyboard"
	"github.com/ayusman/airkeys/internal/theme"
)

// Key drawing settings.
const (
	BorderThickness = 2
	LabelScale      = 1.2
	LabelThickness  = 2
	LabelFont       = gocv.FontHersheySimplex
)

// BorderColor outlines every key regardless of theme.
var BorderColor = color.RGBA{255, 255, 255, 255}

// Renderer draws a fixed layout with a fixed theme. It holds no per-frame
// state, so the same inputs always produce the same picture.
type Renderer struct {
	theme   theme.Theme
	layout  keyboard.Layout
	metrics keyboard.Metrics
}

// New creates a Renderer.
func New(th theme.Theme, layout keyboard.Layout, metrics keyboard.Metrics) *Renderer {
	return &Renderer{
		theme:   th,
		layout:  layout,
		metrics: metrics,
	}
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() theme.Theme {
	return r.theme
}

// Geometry returns the key rectangles the renderer draws.
func (r *Renderer) Geometry() keyboard.Geometry {
	return r.layout.Geometry(r.metrics)
}

// DrawKeyboard draws every key onto img, highlighting hover, and returns the
// key rectangles used. An empty hover highlights nothing.
func (r *Renderer) DrawKeyboard(img *gocv.Mat, hover string) keyboard.Geometry {
	geom := r.Geometry()
	for _, k := range geom {
		r.drawKey(img, k, k.Label == hover)
	}
	return geom
}

func (r *Renderer) drawKey(img *gocv.Mat, k keyboard.Key, hovered bool) {
	fillRect(img, k.Rect, r.theme.Fill(hovered), r.theme)
	gocv.RectangleWithParams(img, k.Rect, BorderColor, BorderThickness, gocv.LineAA, 0)

	size := gocv.GetTextSize(k.Label, LabelFont, LabelScale, LabelThickness)
	org := image.Point{
		X: k.Rect.Min.X + (k.Rect.Dx()-size.X)/2,
		Y: k.Rect.Min.Y + (k.Rect.Dy()+size.Y)/2,
	}
	gocv.PutText(img, k.Label, org, LabelFont, LabelScale, r.theme.Text, LabelThickness)
}

// fillRect paints rect opaquely, or blends it over the existing pixels with
// the theme's alpha when the theme is translucent.
func fillRect(img *gocv.Mat, rect image.Rectangle, c color.RGBA, th theme.Theme) {
	if !th.Translucent {
		gocv.RectangleWithParams(img, rect, c, -1, gocv.LineAA, 0)
		return
	}

	area := rect.Intersect(image.Rect(0, 0, img.Cols(), img.Rows()))
	if area.Empty() {
		return
	}

	roi := img.Region(area)
	defer roi.Close()

	overlay := roi.Clone()
	defer overlay.Close()
	gocv.Rectangle(&overlay, image.Rect(0, 0, area.Dx(), area.Dy()), c, -1)

	gocv.AddWeighted(overlay, th.Alpha, roi, 1-th.Alpha, 0, &roi)
}
