// Package posture classifies body landmarks into posture labels and
// debounces the per-frame labels into confirmed alerts.
package posture

import (
	"math"

	"github.com/thanawatkee/posewatch/internal/detector"
)

// Label is the posture classification outcome for one frame.
type Label string

const (
	// LabelSitting indicates a bent-knee seated posture.
	LabelSitting Label = "sitting"
	// LabelStanding indicates an upright posture with a straight leg.
	LabelStanding Label = "standing"
	// LabelArmRaised indicates a wrist raised above the shoulder.
	LabelArmRaised Label = "arm_raised"
	// LabelFallen indicates a body lying horizontally.
	LabelFallen Label = "fallen"
	// LabelUnknown indicates the landmarks did not match any rule.
	LabelUnknown Label = "unknown"
	// LabelNoPerson indicates the frame contained no detected person.
	// It is produced by the caller, never by Classify.
	LabelNoPerson Label = "no_person"
)

// Classification thresholds.
const (
	// fallWidthRatio: a shoulder span wider than this fraction of the
	// shoulder-to-hip extent means the body is horizontal.
	fallWidthRatio = 0.8
	// Knee angle band for a seated leg, in degrees.
	sitKneeMin = 70
	sitKneeMax = 110
	// Minimum knee angle for a straight, standing leg.
	standKneeMin = 160
	// angleEpsilon keeps the angle denominator away from zero when a
	// landmark pair coincides.
	angleEpsilon = 1e-6
)

// Classify maps one person's landmarks to a posture label.
//
// Rules are evaluated in priority order; the first match wins:
// missing left hip/knee/ankle → unknown, horizontal shoulder span →
// fallen, knee angle in the sitting band → sitting, straight knee →
// standing, wrist above shoulder → arm_raised, otherwise unknown.
func Classify(landmarks detector.Landmarks) Label {
	hip, hipOK := landmarks[detector.LeftHip]
	knee, kneeOK := landmarks[detector.LeftKnee]
	ankle, ankleOK := landmarks[detector.LeftAnkle]
	if !hipOK || !kneeOK || !ankleOK {
		return LabelUnknown
	}

	if ls, ok := landmarks[detector.LeftShoulder]; ok {
		if rs, ok := landmarks[detector.RightShoulder]; ok {
			width := math.Abs(ls.X - rs.X)
			height := math.Abs(ls.Y - hip.Y)
			if width > fallWidthRatio*height {
				return LabelFallen
			}
		}
	}

	// Knee angle with the hip and ankle as ray endpoints. NaN inputs
	// fail both comparisons and fall through.
	angle := Angle(hip, knee, ankle)
	if angle > sitKneeMin && angle < sitKneeMax {
		return LabelSitting
	}
	if angle > standKneeMin {
		return LabelStanding
	}

	wrist, wristOK := landmarks[detector.LeftWrist]
	shoulder, shoulderOK := landmarks[detector.LeftShoulder]
	if wristOK && shoulderOK && wrist.Y < shoulder.Y {
		return LabelArmRaised
	}

	return LabelUnknown
}

// Angle returns the angle in degrees at vertex b formed by the rays
// b→a and b→c. The result is in [0, 180]; swapping a and c yields the
// same angle.
func Angle(a, b, c detector.Landmark) float64 {
	bax := a.X - b.X
	bay := a.Y - b.Y
	bcx := c.X - b.X
	bcy := c.Y - b.Y

	dot := bax*bcx + bay*bcy
	magBA := math.Sqrt(bax*bax + bay*bay)
	magBC := math.Sqrt(bcx*bcx + bcy*bcy)

	cos := dot / (magBA*magBC + angleEpsilon)
	return math.Acos(cos) * 180 / math.Pi
}
