// Package capture provides camera capture functionality using GoCV (OpenCV).
package capture

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Default camera settings. The keyboard spans about 940px, so capture
// runs at 720p rather than VGA.
const (
	DefaultFPS    = 30
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Camera errors.
var (
	ErrOpenFailed    = errors.New("failed to open camera")
	ErrCameraNotOpen = errors.New("camera is not open")
	ErrReadFailed    = errors.New("failed to read frame from camera")
	ErrEmptyFrame    = errors.New("captured frame is empty")
)

// Camera is a source of BGR frames.
type Camera interface {
	Open() error
	Close() error
	// ReadFrame returns the next frame. The caller owns the Mat.
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
	// Size is the frame size the device agreed to, or the requested size
	// before Open.
	Size() image.Point
}

type cameraImpl struct {
	mu      sync.Mutex
	device  int
	size    image.Point
	fps     int
	capture *gocv.VideoCapture
}

// NewCamera creates a new Camera with the given device ID at the default
// resolution.
func NewCamera(deviceID int) Camera {
	return NewCameraWithSize(deviceID, DefaultWidth, DefaultHeight)
}

// NewCameraWithSize creates a new Camera that requests the given frame size.
// Non-positive dimensions fall back to the defaults.
func NewCameraWithSize(deviceID, width, height int) Camera {
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	return &cameraImpl{
		device: deviceID,
		size:   image.Pt(width, height),
		fps:    DefaultFPS,
	}
}

// Open starts capture at the requested resolution. The device may settle on
// a different size, which Size then reports.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture != nil {
		return nil
	}

	vc, err := gocv.OpenVideoCapture(c.device)
	if err != nil {
		return fmt.Errorf("%w: device %d: %v", ErrOpenFailed, c.device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return fmt.Errorf("%w: device %d", ErrOpenFailed, c.device)
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(c.size.X))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(c.size.Y))
	vc.Set(gocv.VideoCaptureFPS, float64(c.fps))

	if w, h := int(vc.Get(gocv.VideoCaptureFrameWidth)), int(vc.Get(gocv.VideoCaptureFrameHeight)); w > 0 && h > 0 {
		c.size = image.Pt(w, h)
	}
	c.capture = vc
	return nil
}

// Close releases the device. Closing a closed camera is a no-op.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil
	}
	err := c.capture.Close()
	c.capture = nil
	return err
}

func (c *cameraImpl) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return nil, ErrReadFailed
	}

	if mat.Empty() {
		mat.Close()
		return nil, ErrEmptyFrame
	}

	return &mat, nil
}

// SetFPS sets the frames per second for capture.
// Values less than or equal to 0 are ignored.
func (c *cameraImpl) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fps = fps

	if c.capture != nil {
		c.capture.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS returns the current frames per second setting.
func (c *cameraImpl) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fps
}

func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capture != nil
}

func (c *cameraImpl) Size() image.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Mirror flips a frame horizontally in place so the preview behaves like a mirror.
func Mirror(frame *gocv.Mat) {
	gocv.Flip(*frame, frame, 1)
}
