// Package detector provides hand detection interfaces and types for fingertip tracking.
package detector

import "image"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// HandConnections lists the landmark pairs joined when drawing a hand skeleton.
var HandConnections = [][2]int{
	{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{Wrist, IndexMCP}, {IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{IndexMCP, MiddleMCP}, {MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{MiddleMCP, RingMCP}, {RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{RingMCP, PinkyMCP}, {Wrist, PinkyMCP}, {PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
}

// Point3D is a landmark position. X and Y are normalized to [0,1] relative
// to the frame width and height; Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pixel converts the normalized point to pixel coordinates in a frame of
// the given size.
func (p Point3D) Pixel(width, height int) image.Point {
	return image.Point{
		X: int(p.X * float64(width)),
		Y: int(p.Y * float64(height)),
	}
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Fingertip returns the index fingertip in pixel coordinates.
func (h *HandLandmarks) Fingertip(width, height int) image.Point {
	return h.Points[IndexTip].Pixel(width, height)
}

// Pixels returns every landmark in pixel coordinates.
func (h *HandLandmarks) Pixels(width, height int) [NumLandmarks]image.Point {
	var pts [NumLandmarks]image.Point
	for i, p := range h.Points {
		pts[i] = p.Pixel(width, height)
	}
	return pts
}
