package posture

import "time"

// Debounce timing defaults.
const (
	// DefaultSitConfirmDelay is how long a sitting streak must hold
	// before it is confirmed.
	DefaultSitConfirmDelay = 5 * time.Second
	// DefaultFallWindow is how recently the subject must have been
	// standing for a fallen frame to count as a fall.
	DefaultFallWindow = 3 * time.Second
)

// Events carries the debounced flags after one update.
type Events struct {
	// SitConfirmed is true while an unbroken sitting streak has lasted
	// at least the confirmation delay.
	SitConfirmed bool
	// FallDetected is true once a standing-to-fallen transition has
	// occurred inside the fall window. It stays set until the subject
	// is seen standing again or the person leaves the frame.
	FallDetected bool
}

// Debouncer turns noisy per-frame labels into stable, time-qualified
// events. It holds all state explicitly and is driven purely by the
// timestamps passed to Update, so tests can feed synthetic clocks.
//
// Not safe for concurrent use; the pipeline processes frames strictly
// sequentially.
type Debouncer struct {
	sitConfirmDelay time.Duration
	fallWindow      time.Duration

	isSitting    bool
	sitStartedAt time.Time
	sitConfirmed bool

	wasStanding    bool
	lastStandingAt time.Time
	fallDetected   bool
}

// NewDebouncer creates a Debouncer with the default timing thresholds.
func NewDebouncer() *Debouncer {
	return &Debouncer{
		sitConfirmDelay: DefaultSitConfirmDelay,
		fallWindow:      DefaultFallWindow,
	}
}

// NewDebouncerWithThresholds creates a Debouncer with custom timing.
// Non-positive values fall back to the defaults.
func NewDebouncerWithThresholds(sitConfirmDelay, fallWindow time.Duration) *Debouncer {
	d := NewDebouncer()
	if sitConfirmDelay > 0 {
		d.sitConfirmDelay = sitConfirmDelay
	}
	if fallWindow > 0 {
		d.fallWindow = fallWindow
	}
	return d
}

// Update consumes one frame's label and returns the current event flags.
// It must be called once per processed frame with a monotonically
// non-decreasing timestamp.
func (d *Debouncer) Update(label Label, now time.Time) Events {
	if label == LabelNoPerson {
		d.Reset()
		return Events{}
	}

	// Sitting streak. The pending confirmation is the recorded start
	// timestamp; comparing it against now on every frame keeps at most
	// one "timer" alive and cancels it the instant the streak breaks.
	if label == LabelSitting {
		if !d.isSitting {
			d.isSitting = true
			d.sitStartedAt = now
		}
		if !d.sitConfirmed && now.Sub(d.sitStartedAt) >= d.sitConfirmDelay {
			d.sitConfirmed = true
		}
	} else {
		d.isSitting = false
		d.sitStartedAt = time.Time{}
		d.sitConfirmed = false
	}

	// Fall window. Labels other than standing/fallen deliberately leave
	// the armed window untouched: a transient misread between standing
	// and fallen must not disarm detection.
	switch label {
	case LabelStanding:
		d.wasStanding = true
		d.lastStandingAt = now
		d.fallDetected = false
	case LabelFallen:
		if d.wasStanding && now.Sub(d.lastStandingAt) < d.fallWindow {
			d.fallDetected = true
			// One-shot: re-arming requires observing standing again.
			d.wasStanding = false
		}
	}

	return Events{
		SitConfirmed: d.sitConfirmed,
		FallDetected: d.fallDetected,
	}
}

// Reset clears all debounce state, as when the subject leaves the frame.
func (d *Debouncer) Reset() {
	d.isSitting = false
	d.sitStartedAt = time.Time{}
	d.sitConfirmed = false
	d.wasStanding = false
	d.lastStandingAt = time.Time{}
	d.fallDetected = false
}

// IsSitting reports whether the current streak is a sitting streak.
func (d *Debouncer) IsSitting() bool {
	return d.isSitting
}

// SitStartedAt returns the start of the current sitting streak, or the
// zero time when the subject is not sitting.
func (d *Debouncer) SitStartedAt() time.Time {
	return d.sitStartedAt
}
