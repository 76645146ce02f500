// Package app provides the frame loop that turns fingertip hovers into typed text.
package app

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/ayusman/airkeys/internal/capture"
	"github.com/ayusman/airkeys/internal/detector"
	"github.com/ayusman/airkeys/internal/display"
	"github.com/ayusman/airkeys/internal/keyboard"
	"github.com/ayusman/airkeys/internal/render"
	"github.com/ayusman/airkeys/internal/selection"
	"github.com/ayusman/airkeys/internal/store"
	"github.com/ayusman/airkeys/internal/theme"
)

const (
	// DefaultTheme is the palette used at startup.
	DefaultTheme = theme.Dark
	// WindowTitle is the title of the preview window.
	WindowTitle = "Air Keyboard"
	// WaitKeyDelay is how long each frame polls for a key press, in milliseconds.
	WaitKeyDelay = 1
)

// Config holds configuration options for the application.
type Config struct {
	Store       *store.Store // Optional commit journal
	CameraID    int
	FrameWidth  int
	FrameHeight int
	Theme       string
	Layout      keyboard.Layout
	Metrics     keyboard.Metrics
	Dwell       time.Duration
	Cooldown    time.Duration
	Detector    detector.Config
}

// DefaultConfig returns the configuration used by the binary.
func DefaultConfig() Config {
	return Config{
		CameraID:    0,
		FrameWidth:  capture.DefaultWidth,
		FrameHeight: capture.DefaultHeight,
		Theme:       DefaultTheme,
		Layout:      keyboard.QWERTY,
		Metrics:     keyboard.DefaultMetrics(),
		Dwell:       selection.DefaultDwell,
		Cooldown:    selection.DefaultCooldown,
		Detector:    detector.DefaultConfig(),
	}
}

// App owns every per-run resource: camera, detector, display and the typing
// session. It runs on a single goroutine.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	display  display.Display
	renderer *render.Renderer
	session  *selection.Session
	journal  *store.Session
	now      func() time.Time
}

// New creates a new App. Zero-valued config fields take their defaults;
// an unknown theme or an invalid layout is an error.
func New(config Config) (*App, error) {
	defaults := DefaultConfig()
	if config.Theme == "" {
		config.Theme = defaults.Theme
	}
	if len(config.Layout.Rows) == 0 {
		config.Layout = defaults.Layout
	}
	if config.Metrics == (keyboard.Metrics{}) {
		config.Metrics = defaults.Metrics
	}
	if config.Detector == (detector.Config{}) {
		config.Detector = defaults.Detector
	}

	th, err := theme.Lookup(config.Theme)
	if err != nil {
		return nil, err
	}
	if err := config.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	a := &App{
		config:   config,
		camera:   capture.NewCameraWithSize(config.CameraID, config.FrameWidth, config.FrameHeight),
		renderer: render.New(th, config.Layout, config.Metrics),
		session:  selection.NewSession(selection.NewMachine(config.Dwell, config.Cooldown)),
		now:      time.Now,
	}
	a.session.OnCommit(a.recordCommit)

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a, nil
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.detector = d
}

// SetCamera sets the frame source.
func (a *App) SetCamera(c capture.Camera) {
	a.camera = c
}

// SetDisplay sets the frame output. Without one, Run opens a window.
func (a *App) SetDisplay(d display.Display) {
	a.display = d
}

// SetClock replaces the time source used for dwell timing.
func (a *App) SetClock(now func() time.Time) {
	a.now = now
}

// Run opens the camera and processes frames until the camera stops, Escape
// is pressed or ctx is canceled. The camera, detector and display are
// released before Run returns.
func (a *App) Run(ctx context.Context) error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	if a.display == nil {
		a.display = display.NewWindow(WindowTitle)
	}

	a.startJournal()
	size := a.camera.Size()
	log.Printf("Keyboard started (theme: %s, camera: %dx%d)", a.renderer.Theme().Name, size.X, size.Y)
	if bounds := a.renderer.Geometry().Bounds(); !bounds.In(image.Rect(0, 0, size.X, size.Y)) {
		log.Printf("Keyboard %v does not fit the %dx%d frame; outer keys are clipped", bounds, size.X, size.Y)
	}

	defer a.shutdown()
	a.runLoop(ctx)
	return nil
}

func (a *App) shutdown() {
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
	if err := a.display.Close(); err != nil {
		log.Printf("Error closing display: %v", err)
	}
	a.endJournal()

	log.Println("Keyboard stopped")
}

// Session returns the typing session.
func (a *App) Session() *selection.Session {
	return a.session
}

// Text returns everything typed so far.
func (a *App) Text() string {
	return a.session.Text()
}

// Renderer returns the keyboard renderer.
func (a *App) Renderer() *render.Renderer {
	return a.renderer
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.detector
}
