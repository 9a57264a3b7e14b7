package detector

import "gocv.io/x/gocv"

// Detector defines the interface for body pose detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected persons with
	// their body landmarks. Returns an empty slice if nobody is visible.
	Detect(frame *gocv.Mat) ([]Person, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for pose detection.
type Config struct {
	// MaxPersons is the maximum number of persons to detect (default: 1).
	MaxPersons int

	// MinConfidence is the minimum person detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinLandmarkConf is the minimum per-landmark visibility threshold (0.0-1.0).
	// Landmarks below this are dropped from the result.
	MinLandmarkConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxPersons:      1,
		MinConfidence:   0.5,
		MinLandmarkConf: 0.3,
	}
}
