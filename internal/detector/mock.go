package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	persons []Person
	err     error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetPersons sets the persons that will be returned by Detect.
func (m *MockDetector) SetPersons(persons []Person) {
	m.persons = persons
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured persons or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Person, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.persons, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// StandingPose returns a preset Person with an upright body: straight
// left leg and shoulders well above the hips.
func StandingPose() Person {
	return Person{
		Score: 0.95,
		Landmarks: Landmarks{
			Nose:          {X: 320, Y: 80, Confidence: 0.99},
			LeftShoulder:  {X: 300, Y: 120, Confidence: 0.98},
			RightShoulder: {X: 340, Y: 120, Confidence: 0.98},
			LeftElbow:     {X: 295, Y: 180, Confidence: 0.95},
			LeftWrist:     {X: 295, Y: 230, Confidence: 0.94},
			LeftHip:       {X: 320, Y: 240, Confidence: 0.97},
			LeftKnee:      {X: 320, Y: 330, Confidence: 0.96},
			LeftAnkle:     {X: 320, Y: 420, Confidence: 0.95},
		},
	}
}

// SittingPose returns a preset Person with the left knee bent at
// roughly 90 degrees.
func SittingPose() Person {
	return Person{
		Score: 0.93,
		Landmarks: Landmarks{
			Nose:          {X: 320, Y: 90, Confidence: 0.99},
			LeftShoulder:  {X: 300, Y: 130, Confidence: 0.97},
			RightShoulder: {X: 340, Y: 130, Confidence: 0.97},
			LeftWrist:     {X: 310, Y: 250, Confidence: 0.92},
			LeftHip:       {X: 320, Y: 240, Confidence: 0.96},
			LeftKnee:      {X: 320, Y: 330, Confidence: 0.95},
			LeftAnkle:     {X: 410, Y: 330, Confidence: 0.93},
		},
	}
}

// FallenPose returns a preset Person lying horizontally: the shoulder
// span dwarfs the shoulder-to-hip vertical extent.
func FallenPose() Person {
	return Person{
		Score: 0.9,
		Landmarks: Landmarks{
			Nose:          {X: 160, Y: 310, Confidence: 0.9},
			LeftShoulder:  {X: 200, Y: 300, Confidence: 0.92},
			RightShoulder: {X: 240, Y: 302, Confidence: 0.92},
			LeftHip:       {X: 390, Y: 308, Confidence: 0.9},
			LeftKnee:      {X: 480, Y: 312, Confidence: 0.88},
			LeftAnkle:     {X: 560, Y: 310, Confidence: 0.85},
		},
	}
}

// ArmRaisedPose returns a preset Person with the left wrist above the
// left shoulder and a knee angle outside the sitting and standing bands.
func ArmRaisedPose() Person {
	return Person{
		Score: 0.94,
		Landmarks: Landmarks{
			Nose:          {X: 320, Y: 90, Confidence: 0.99},
			LeftShoulder:  {X: 300, Y: 130, Confidence: 0.97},
			RightShoulder: {X: 340, Y: 130, Confidence: 0.97},
			LeftElbow:     {X: 305, Y: 100, Confidence: 0.95},
			LeftWrist:     {X: 310, Y: 60, Confidence: 0.94},
			LeftHip:       {X: 320, Y: 240, Confidence: 0.96},
			LeftKnee:      {X: 320, Y: 330, Confidence: 0.95},
			LeftAnkle:     {X: 380, Y: 390, Confidence: 0.93},
		},
	}
}
