package app

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/thanawatkee/posewatch/internal/detector"
	"github.com/thanawatkee/posewatch/internal/plugin"
	"github.com/thanawatkee/posewatch/internal/posture"
	"github.com/thanawatkee/posewatch/internal/store"
)

// runPipeline is the main monitoring loop that processes frames from the camera.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On scene activity, switch to active mode (ActiveFPS)
// 3. Run pose detection on the frame
// 4. Classify the first person's landmarks; zero persons means no_person
// 5. Feed the label through the debouncer
// 6. Record alerts and fire responders on flag transitions
// 7. After 2s without activity, switch back to idle mode
//
// Frames are processed strictly one at a time on this goroutine: a tick
// arriving while the previous frame is still in flight is dropped by the
// ticker, never queued.
func (a *App) runPipeline() {
	activeMode := false
	lastActivity := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			// Skip processing if monitoring is disabled
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: presence gate
			active, _ := a.presence.Observe(frame)

			if active {
				lastActivity = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastActivity) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// Skip detection while idle
			if !activeMode || a.Detector() == nil {
				frame.Close()
				continue
			}

			// Step 2: pose detection
			persons, err := a.Detector().Detect(frame)
			frame.Close() // Done with the frame

			if err != nil {
				log.Printf("Error detecting pose: %v", err)
				continue
			}

			// Steps 3-6: classify, debounce, alert
			a.Ingest(persons, time.Now())
		}
	}
}

// Ingest runs one frame's detections through the classifier and the
// debouncer, updates the status snapshot, and raises alerts on flag
// transitions. It is the synchronous core of the pipeline, driven by
// explicit timestamps so alternative frame sources can feed it directly.
func (a *App) Ingest(persons []detector.Person, now time.Time) Status {
	label := posture.LabelNoPerson
	if len(persons) > 0 {
		label = posture.Classify(persons[0].Landmarks)
	}

	a.mu.Lock()

	events := a.debouncer.Update(label, now)

	var raised []store.AlertType
	if events.SitConfirmed && !a.lastEvents.SitConfirmed {
		raised = append(raised, store.AlertSitConfirmed)
	}
	if events.FallDetected && !a.lastEvents.FallDetected {
		raised = append(raised, store.AlertFallDetected)
	}
	a.lastEvents = events

	a.status = Status{
		Label:        label,
		SitConfirmed: events.SitConfirmed,
		FallDetected: events.FallDetected,
		UpdatedAt:    now,
	}
	status := a.status
	sessionID := a.sessionID

	a.mu.Unlock()

	for _, alertType := range raised {
		a.raiseAlert(alertType, label, sessionID, now)
	}

	return status
}

// raiseAlert records the alert and fans it out to bound responders.
func (a *App) raiseAlert(alertType store.AlertType, label posture.Label, sessionID string, now time.Time) {
	log.Printf("Alert raised: %s (label: %s)", alertType, label)

	alert := store.Alert{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		Type:       alertType,
		Label:      string(label),
		DetectedAt: now,
	}

	if a.config.Store != nil && sessionID != "" {
		if err := a.config.Store.Alerts().Create(&alert); err != nil {
			log.Printf("Failed to record alert: %v", err)
		}
	}

	a.mu.RLock()
	onAlert := a.onAlert
	a.mu.RUnlock()

	if onAlert != nil {
		onAlert(alert)
	}

	a.dispatchResponders(alert)
}

// dispatchResponders executes every enabled responder bound to the
// alert type. Responder failures are logged, never fatal to the pipeline.
func (a *App) dispatchResponders(alert store.Alert) {
	if a.config.Store == nil {
		return
	}

	responders, err := a.config.Store.Responders().ListEnabledByType(alert.Type)
	if err != nil {
		log.Printf("Failed to load responders: %v", err)
		return
	}

	for _, responder := range responders {
		p, err := a.pluginMgr.Get(responder.PluginName)
		if err != nil {
			log.Printf("Responder plugin %q not found", responder.PluginName)
			continue
		}

		req := &plugin.Request{
			Action:     responder.ActionName,
			AlertType:  string(alert.Type),
			Label:      alert.Label,
			DetectedAt: alert.DetectedAt.Format(time.RFC3339),
			Config:     responder.Config,
		}

		resp, err := a.pluginExec.Execute(p, req)
		if err != nil {
			log.Printf("Responder %s/%s failed: %v", responder.PluginName, responder.ActionName, err)
			continue
		}
		if !resp.Success {
			log.Printf("Responder %s/%s reported error: %s", responder.PluginName, responder.ActionName, resp.Error)
		}
	}
}
