// Package detector provides body pose detection interfaces and types for posture monitoring.
package detector

// Name identifies a body landmark by its anatomical name.
// Names follow the MediaPipe/COCO skeleton convention.
type Name string

// Body landmark names produced by the pose model.
const (
	Nose          Name = "nose"
	LeftEye       Name = "left_eye"
	RightEye      Name = "right_eye"
	LeftEar       Name = "left_ear"
	RightEar      Name = "right_ear"
	LeftShoulder  Name = "left_shoulder"
	RightShoulder Name = "right_shoulder"
	LeftElbow     Name = "left_elbow"
	RightElbow    Name = "right_elbow"
	LeftWrist     Name = "left_wrist"
	RightWrist    Name = "right_wrist"
	LeftHip       Name = "left_hip"
	RightHip      Name = "right_hip"
	LeftKnee      Name = "left_knee"
	RightKnee     Name = "right_knee"
	LeftAnkle     Name = "left_ankle"
	RightAnkle    Name = "right_ankle"
)

// Landmark is a single body keypoint in image pixel space.
// Y grows downward, matching the image coordinate system.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// Landmarks maps landmark names to detected positions for one person.
// Landmarks the model could not see are simply absent from the map.
type Landmarks map[Name]Landmark

// Person represents one detected person in a frame.
type Person struct {
	Landmarks Landmarks `json:"landmarks"`
	Score     float64   `json:"score"`
}

// Has reports whether every named landmark is present.
func (l Landmarks) Has(names ...Name) bool {
	for _, n := range names {
		if _, ok := l[n]; !ok {
			return false
		}
	}
	return true
}
