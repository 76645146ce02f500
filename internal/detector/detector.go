package detector

import "gocv.io/x/gocv"

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 1).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns the configuration used for single-hand typing.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.7,
		MinTrackingConf: 0.5,
	}
}

// Primary applies the confidence gate to a detection result and returns
// the first hand that passes it. Only one hand is ever tracked.
func (c Config) Primary(hands []HandLandmarks) (*HandLandmarks, bool) {
	for i := range hands {
		if hands[i].Score >= c.MinConfidence {
			return &hands[i], true
		}
	}
	return nil, false
}
