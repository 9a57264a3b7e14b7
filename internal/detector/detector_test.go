package detector

import (
	"errors"
	"testing"
)

func TestLandmarks_Has(t *testing.T) {
	lm := Landmarks{
		LeftHip:  {X: 1, Y: 2},
		LeftKnee: {X: 3, Y: 4},
	}

	if !lm.Has(LeftHip) {
		t.Error("expected LeftHip to be present")
	}

	if !lm.Has(LeftHip, LeftKnee) {
		t.Error("expected LeftHip and LeftKnee to be present")
	}

	if lm.Has(LeftHip, LeftAnkle) {
		t.Error("expected Has to fail when LeftAnkle is missing")
	}

	var empty Landmarks
	if empty.Has(Nose) {
		t.Error("expected Has to fail on empty landmark set")
	}
}

func TestMockDetector_ReturnsConfiguredPersons(t *testing.T) {
	m := NewMockDetector()

	persons, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(persons) != 0 {
		t.Errorf("expected no persons by default, got %d", len(persons))
	}

	m.SetPersons([]Person{StandingPose()})
	persons, err = m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(persons) != 1 {
		t.Fatalf("expected 1 person, got %d", len(persons))
	}
	if !persons[0].Landmarks.Has(LeftHip, LeftKnee, LeftAnkle) {
		t.Error("standing pose should include the left leg landmarks")
	}
}

func TestMockDetector_ReturnsConfiguredError(t *testing.T) {
	m := NewMockDetector()
	wantErr := errors.New("camera unplugged")
	m.SetError(wantErr)

	if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}

func TestJSONPerson_FiltersLowConfidenceLandmarks(t *testing.T) {
	p := jsonPerson{
		Score: 0.9,
		Landmarks: map[string]jsonLandmark{
			"left_hip":  {X: 10, Y: 20, Confidence: 0.9},
			"left_knee": {X: 10, Y: 40, Confidence: 0.1},
		},
	}

	person := p.toPerson(0.3)

	if _, ok := person.Landmarks[LeftHip]; !ok {
		t.Error("high confidence landmark should survive conversion")
	}
	if _, ok := person.Landmarks[LeftKnee]; ok {
		t.Error("low confidence landmark should be dropped")
	}
	if person.Score != 0.9 {
		t.Errorf("score = %f, want 0.9", person.Score)
	}
}

func TestPresetPoses_HaveRequiredLandmarks(t *testing.T) {
	tests := []struct {
		name   string
		person Person
	}{
		{"standing", StandingPose()},
		{"sitting", SittingPose()},
		{"fallen", FallenPose()},
		{"arm raised", ArmRaisedPose()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.person.Landmarks.Has(LeftHip, LeftKnee, LeftAnkle) {
				t.Error("preset should include hip, knee and ankle")
			}
			if tt.person.Score <= 0 {
				t.Error("preset should carry a positive score")
			}
		})
	}
}
