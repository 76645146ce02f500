package keyboard

import "image"

// Metrics controls where and how large the keys are drawn, in pixels.
type Metrics struct {
	Origin    image.Point // Top-left corner of the first key
	BaseWidth int         // Width of a 1x key
	KeyHeight int
	GapX      int // Horizontal gap between keys in a row
	GapY      int // Vertical gap between rows
}

// DefaultMetrics returns the metrics used by the on-screen keyboard.
func DefaultMetrics() Metrics {
	return Metrics{
		Origin:    image.Point{X: 50, Y: 120},
		BaseWidth: 80,
		KeyHeight: 80,
		GapX:      10,
		GapY:      15,
	}
}

// Key is a laid-out key: its label and screen rectangle.
type Key struct {
	Label string
	Rect  image.Rectangle
	Row   int
	Col   int
}

// Geometry is the ordered list of key rectangles for one frame.
// The order is the layout order, which makes hit-testing deterministic.
type Geometry []Key

// Geometry computes the screen rectangle for every key of the layout.
// The x cursor restarts at the origin for each row and advances by the key
// width plus GapX; rows advance by KeyHeight plus GapY.
func (l Layout) Geometry(m Metrics) Geometry {
	geom := make(Geometry, 0, l.Len())

	for row, labels := range l.Rows {
		y := m.Origin.Y + row*(m.KeyHeight+m.GapY)
		x := m.Origin.X
		for col, label := range labels {
			w := m.BaseWidth * WidthUnits(label)
			geom = append(geom, Key{
				Label: label,
				Rect:  image.Rect(x, y, x+w, y+m.KeyHeight),
				Row:   row,
				Col:   col,
			})
			x += w + m.GapX
		}
	}

	return geom
}

// HitTest returns the label of the first key whose rectangle strictly
// contains p. Points on a key border do not hit that key.
func (g Geometry) HitTest(p image.Point) (string, bool) {
	for _, k := range g {
		if contains(k.Rect, p) {
			return k.Label, true
		}
	}
	return "", false
}

// Rect returns the rectangle of the key with the given label.
func (g Geometry) Rect(label string) (image.Rectangle, bool) {
	for _, k := range g {
		if k.Label == label {
			return k.Rect, true
		}
	}
	return image.Rectangle{}, false
}

// Bounds returns the smallest rectangle covering every key.
func (g Geometry) Bounds() image.Rectangle {
	var b image.Rectangle
	for _, k := range g {
		b = b.Union(k.Rect)
	}
	return b
}

func contains(r image.Rectangle, p image.Point) bool {
	return r.Min.X < p.X && p.X < r.Max.X &&
		r.Min.Y < p.Y && p.Y < r.Max.Y
}
