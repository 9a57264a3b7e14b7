// Package testdata provides synthetic video frames for testing.
package testdata

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// BlankFrame returns a uniformly dark frame at the standard capture size.
func BlankFrame() *gocv.Mat {
	mat := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	return &mat
}

// FrameWithSubject returns a frame with a bright rectangle at the given
// position, standing in for a person in view.
func FrameWithSubject(x, y int) *gocv.Mat {
	mat := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	rect := image.Rect(x, y, x+120, y+300)
	gocv.Rectangle(&mat, rect, color.RGBA{R: 220, G: 220, B: 220, A: 255}, -1)
	return &mat
}

// MovingSequence returns frames with the subject shifting right each
// frame, enough change to trip a presence gate.
func MovingSequence(n int) []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, FrameWithSubject(100+i*40, 120))
	}
	return frames
}

// CloseFrames releases every frame in the slice.
func CloseFrames(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}
