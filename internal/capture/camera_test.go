package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera(0)

	if c.IsOpen() {
		t.Error("camera should not be open before Open()")
	}

	if c.FPS() != DefaultFPS {
		t.Errorf("FPS() = %d, want %d", c.FPS(), DefaultFPS)
	}
}

func TestCamera_ReadFrameWhenClosed(t *testing.T) {
	c := NewCamera(0)

	_, err := c.ReadFrame()
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want %v", err, ErrCameraNotOpen)
	}
}

func TestCamera_SetFPSIgnoresNonPositive(t *testing.T) {
	c := NewCamera(0)

	c.SetFPS(0)
	if c.FPS() != DefaultFPS {
		t.Errorf("FPS() = %d after SetFPS(0), want %d", c.FPS(), DefaultFPS)
	}

	c.SetFPS(-3)
	if c.FPS() != DefaultFPS {
		t.Errorf("FPS() = %d after SetFPS(-3), want %d", c.FPS(), DefaultFPS)
	}

	c.SetFPS(15)
	if c.FPS() != 15 {
		t.Errorf("FPS() = %d after SetFPS(15), want 15", c.FPS())
	}
}

func TestMockCamera_Playback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	f1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer f1.Close()
	f2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer f2.Close()

	cam := NewMockCamera([]*gocv.Mat{&f1, &f2}, false)

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() before Open error = %v, want %v", err, ErrCameraNotOpen)
	}

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() #%d error = %v", i, err)
		}
		frame.Close()
	}

	if _, err := cam.ReadFrame(); err == nil {
		t.Error("non-looping camera should run out of frames")
	}

	cam.Reset()
	frame, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() after Reset error = %v", err)
	}
	frame.Close()
}

func TestMockCamera_Loop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	f := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer f.Close()

	cam := NewMockCamera([]*gocv.Mat{&f}, true)
	cam.Open()

	for i := 0; i < 3; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() #%d error = %v", i, err)
		}
		frame.Close()
	}
}
