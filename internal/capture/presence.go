package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// PresenceConfig holds tuning for the presence gate.
type PresenceConfig struct {
	// MinChangedPct is the percentage of pixels that must change
	// between frames for the scene to count as active.
	MinChangedPct float64
	// BlurKernel is the Gaussian blur kernel size used for noise
	// reduction before differencing. Must be odd.
	BlurKernel int
	// DiffThreshold is the binary threshold applied to the per-pixel
	// difference.
	DiffThreshold float32
}

// DefaultPresenceConfig returns the presence gate defaults: 1% changed
// pixels over a 21x21 blur with a difference threshold of 25.
func DefaultPresenceConfig() PresenceConfig {
	return PresenceConfig{
		MinChangedPct: 1.0,
		BlurKernel:    21,
		DiffThreshold: 25,
	}
}

// PresenceGate decides whether anything is moving in the scene by
// differencing consecutive frames. The pipeline uses it to idle at a
// low frame rate when the room is still and to ramp up when a person
// is active.
type PresenceGate struct {
	config      PresenceConfig
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// NewPresenceGate creates a PresenceGate with the given configuration.
func NewPresenceGate(config PresenceConfig) *PresenceGate {
	if config.MinChangedPct <= 0 {
		config.MinChangedPct = DefaultPresenceConfig().MinChangedPct
	}
	if config.BlurKernel <= 0 {
		config.BlurKernel = DefaultPresenceConfig().BlurKernel
	}
	if config.DiffThreshold <= 0 {
		config.DiffThreshold = DefaultPresenceConfig().DiffThreshold
	}

	return &PresenceGate{
		config:   config,
		prevGray: gocv.NewMat(),
	}
}

// Observe compares the frame against the previous one and reports
// whether the scene is active, along with the changed-pixel percentage.
// The first frame establishes the baseline and always reports inactive.
func (g *PresenceGate) Observe(frame *gocv.Mat) (bool, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	kernel := image.Point{X: g.config.BlurKernel, Y: g.config.BlurKernel}
	gocv.GaussianBlur(gray, &blurred, kernel, 0, 0, gocv.BorderDefault)

	if !g.initialized {
		blurred.CopyTo(&g.prevGray)
		g.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, g.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, g.config.DiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()
	changedPct := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&g.prevGray)

	return changedPct > g.config.MinChangedPct, changedPct
}

// Reset clears the baseline so the next frame re-establishes it.
func (g *PresenceGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.prevGray.Empty() {
		g.prevGray.Close()
		g.prevGray = gocv.NewMat()
	}
	g.initialized = false
}

// Close releases resources used by the presence gate.
func (g *PresenceGate) Close() {
	g.Reset()
}
