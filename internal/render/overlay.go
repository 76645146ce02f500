package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/airkeys/internal/detector"
)

// Fingertip marker.
const FingertipRadius = 12

var FingertipColor = color.RGBA{0, 255, 0, 255}

// Typed text banner.
const (
	BannerChars     = 40 // Characters of typed text shown
	BannerScale     = 1.5
	BannerThickness = 3
)

var (
	BannerRect      = image.Rect(50, 30, 900, 90)
	BannerTextAt    = image.Pt(60, 75)
	BannerFill      = color.RGBA{0, 0, 0, 255}
	BannerTextColor = color.RGBA{0, 255, 0, 255}
)

// Hand skeleton.
var (
	SkeletonColor = color.RGBA{255, 255, 255, 255}
	JointColor    = color.RGBA{255, 0, 0, 255}
)

const (
	SkeletonThickness = 2
	JointRadius       = 2
)

// DrawFingertip draws the filled marker at the tracked fingertip.
func DrawFingertip(img *gocv.Mat, p image.Point) {
	gocv.Circle(img, p, FingertipRadius, FingertipColor, -1)
}

// DrawBanner draws the typed text banner. Callers pass the text already cut
// to the characters that should be visible.
func DrawBanner(img *gocv.Mat, text string) {
	gocv.Rectangle(img, BannerRect, BannerFill, -1)
	gocv.PutText(img, text, BannerTextAt, gocv.FontHersheySimplex, BannerScale, BannerTextColor, BannerThickness)
}

// DrawHand draws the landmark skeleton of a detected hand.
func DrawHand(img *gocv.Mat, hand *detector.HandLandmarks) {
	pts := hand.Pixels(img.Cols(), img.Rows())

	for _, c := range detector.HandConnections {
		gocv.Line(img, pts[c[0]], pts[c[1]], SkeletonColor, SkeletonThickness)
	}
	for _, p := range pts {
		gocv.Circle(img, p, JointRadius, JointColor, -1)
	}
}
