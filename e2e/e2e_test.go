package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thanawatkee/posewatch/internal/app"
	"github.com/thanawatkee/posewatch/internal/detector"
	"github.com/thanawatkee/posewatch/internal/posture"
	"github.com/thanawatkee/posewatch/internal/server"
	"github.com/thanawatkee/posewatch/internal/store"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application := app.New(app.Config{
		Store:     s,
		PluginDir: filepath.Join(tmpDir, "plugins"),
	})
	mockDetector := detector.NewMockDetector()
	application.SetDetector(mockDetector)

	srv := server.New(server.Config{Store: s, App: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("CreateResponder", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/responders",
			"application/json",
			strings.NewReader(`{"alert_type": "fall_detected", "plugin_name": "notify", "action_name": "desktop"}`),
		)
		if err != nil {
			t.Fatalf("create responder error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}
	})

	// Drive the pipeline directly with a fall scenario
	t.Run("DetectFall", func(t *testing.T) {
		sessionID := seedSession(t, s)
		application.SetSession(sessionID)

		t0 := time.Now()
		application.Ingest([]detector.Person{detector.StandingPose()}, t0)
		status := application.Ingest([]detector.Person{detector.FallenPose()}, t0.Add(time.Second))

		if status.Label != posture.LabelFallen {
			t.Errorf("label = %q, want %q", status.Label, posture.LabelFallen)
		}
		if !status.FallDetected {
			t.Error("expected fall to be detected")
		}
	})

	t.Run("AlertVisibleOverAPI", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/alerts?type=fall_detected")
		if err != nil {
			t.Fatalf("list alerts error = %v", err)
		}
		defer resp.Body.Close()

		var body struct {
			Alerts []struct {
				ID    string `json:"id"`
				Type  string `json:"type"`
				Label string `json:"label"`
			} `json:"alerts"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode error = %v", err)
		}

		if len(body.Alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(body.Alerts))
		}
		if body.Alerts[0].Label != "fallen" {
			t.Errorf("label = %q, want fallen", body.Alerts[0].Label)
		}

		// Acknowledge it
		ackResp, err := client.Post(ts.URL+"/api/alerts/"+body.Alerts[0].ID+"/ack", "application/json", nil)
		if err != nil {
			t.Fatalf("ack error = %v", err)
		}
		ackResp.Body.Close()
		if ackResp.StatusCode != http.StatusOK {
			t.Errorf("ack status = %d, want %d", ackResp.StatusCode, http.StatusOK)
		}
	})

	t.Run("StatusEndpoint", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/status")
		if err != nil {
			t.Fatalf("status error = %v", err)
		}
		defer resp.Body.Close()

		var status app.Status
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if status.Label != posture.LabelFallen {
			t.Errorf("label = %q, want %q", status.Label, posture.LabelFallen)
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, _ := client.Get(ts.URL + "/api/health")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after pipeline operations")
		}
		resp.Body.Close()
	})
}

func TestE2E_SitConfirmation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application := app.New(app.Config{Store: s})
	mockDetector := detector.NewMockDetector()
	application.SetDetector(mockDetector)

	sessionID := seedSession(t, s)
	application.SetSession(sessionID)

	t0 := time.Now()
	for i := 0; i <= 26; i++ {
		application.Ingest([]detector.Person{detector.SittingPose()}, t0.Add(time.Duration(i)*200*time.Millisecond))
	}

	status := application.Status()
	if !status.SitConfirmed {
		t.Error("expected sit confirmation after five seconds of sitting")
	}

	alerts, err := s.Alerts().ListBySession(sessionID)
	if err != nil {
		t.Fatalf("list alerts error = %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Type != store.AlertSitConfirmed {
		t.Errorf("type = %q, want %q", alerts[0].Type, store.AlertSitConfirmed)
	}
}

// seedSession creates a session row for alert bookkeeping.
func seedSession(t *testing.T, s *store.Store) string {
	t.Helper()
	sessionID := "e2e-session-" + t.Name()
	err := s.Sessions().Create(&store.Session{ID: sessionID, CameraID: 0})
	if err != nil {
		t.Fatalf("create session error = %v", err)
	}
	return sessionID
}
