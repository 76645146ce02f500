package capture

import (
	"errors"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// ErrNoMoreFrames is returned once a non-looping MockCamera has played every frame.
var ErrNoMoreFrames = errors.New("no more frames")

// MockCamera plays back in-memory frames. Each ReadFrame returns a clone, so
// the source frames are never drawn on.
type MockCamera struct {
	mu     sync.Mutex
	frames []*gocv.Mat
	next   int
	loop   bool
	open   bool
	reads  int
}

// NewMockCamera creates a camera that plays frames in order, restarting
// from the first frame when loop is set.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{frames: frames, loop: loop}
}

// Open rewinds playback to the first frame.
func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.next = 0
	return nil
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return nil
}

func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrCameraNotOpen
	}
	if c.next >= len(c.frames) {
		if !c.loop || len(c.frames) == 0 {
			return nil, ErrNoMoreFrames
		}
		c.next = 0
	}

	frame := c.frames[c.next].Clone()
	c.next++
	c.reads++
	return &frame, nil
}

// Reads returns how many frames have been handed out.
func (c *MockCamera) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

func (c *MockCamera) SetFPS(fps int) {}

func (c *MockCamera) FPS() int { return DefaultFPS }

func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Size reports the size of the first frame, or the default size when there
// are no frames.
func (c *MockCamera) Size() image.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return image.Pt(DefaultWidth, DefaultHeight)
	}
	return image.Pt(c.frames[0].Cols(), c.frames[0].Rows())
}
