// Package display shows rendered frames and reports key presses.
package display

import (
	"sync"

	"gocv.io/x/gocv"
)

// KeyEsc is the key code returned by WaitKey for the Escape key.
const KeyEsc = 27

// Display defines the interface for frame output implementations.
type Display interface {
	// Show presents a frame.
	Show(frame *gocv.Mat)

	// WaitKey processes window events for up to delay milliseconds and
	// returns the pressed key code, or -1 if none.
	WaitKey(delay int) int

	// Close releases the display.
	Close() error
}

// Window displays frames in an OpenCV window.
type Window struct {
	window *gocv.Window
}

// NewWindow opens a window with the given title.
func NewWindow(title string) *Window {
	return &Window{window: gocv.NewWindow(title)}
}

// Show draws the frame in the window.
func (w *Window) Show(frame *gocv.Mat) {
	w.window.IMShow(*frame)
}

// WaitKey waits for a key press for up to delay milliseconds.
func (w *Window) WaitKey(delay int) int {
	return w.window.WaitKey(delay)
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.window.Close()
}

// Headless is a Display that keeps the last shown frame in memory instead
// of opening a window. It can press Escape after a number of frames.
type Headless struct {
	mu        sync.Mutex
	shown     int
	escAfter  int
	last      gocv.Mat
	hasLast   bool
	keepFrame bool
}

// NewHeadless creates a headless display. If escAfter is positive, WaitKey
// reports Escape once that many frames have been shown.
func NewHeadless(escAfter int) *Headless {
	return &Headless{escAfter: escAfter}
}

// KeepFrames makes Show retain a copy of the most recent frame.
func (h *Headless) KeepFrames() *Headless {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keepFrame = true
	return h
}

// Show records the frame.
func (h *Headless) Show(frame *gocv.Mat) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.shown++
	if !h.keepFrame {
		return
	}
	if h.hasLast {
		h.last.Close()
	}
	h.last = frame.Clone()
	h.hasLast = true
}

// WaitKey returns Escape once the configured number of frames was shown.
func (h *Headless) WaitKey(delay int) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.escAfter > 0 && h.shown >= h.escAfter {
		return KeyEsc
	}
	return -1
}

// Shown returns how many frames have been shown.
func (h *Headless) Shown() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shown
}

// Last returns a copy of the most recent frame. The caller must close it.
func (h *Headless) Last() (gocv.Mat, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.hasLast {
		return gocv.Mat{}, false
	}
	return h.last.Clone(), true
}

// Close releases the retained frame.
func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hasLast {
		h.last.Close()
		h.hasLast = false
	}
	return nil
}
