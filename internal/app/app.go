// Package app provides the main application logic for the posewatch posture monitor.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thanawatkee/posewatch/internal/capture"
	"github.com/thanawatkee/posewatch/internal/detector"
	"github.com/thanawatkee/posewatch/internal/plugin"
	"github.com/thanawatkee/posewatch/internal/posture"
	"github.com/thanawatkee/posewatch/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while the scene is still.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a person is moving.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds without activity before
	// dropping back to idle mode.
	IdleTimeoutMs = 2000
	// responderTimeout bounds a single responder plugin invocation.
	responderTimeout = 5 * time.Second
)

// Config holds configuration options for the application.
type Config struct {
	Store           *store.Store
	PluginDir       string
	CameraID        int
	PresenceThresh  float64
	SitConfirmDelay time.Duration
	FallWindow      time.Duration
}

// Status is the presentation-facing snapshot of the monitor state.
type Status struct {
	Label        posture.Label `json:"label"`
	SitConfirmed bool          `json:"sit_confirmed"`
	FallDetected bool          `json:"fall_detected"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// App orchestrates the capture, detection, classification and alerting pipeline.
type App struct {
	config     Config
	camera     capture.Camera
	presence   *capture.PresenceGate
	detector   detector.Detector
	debouncer  *posture.Debouncer
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	onAlert    func(store.Alert)

	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
	sessionID  string
	status     Status
	lastEvents posture.Events
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	presenceThreshold := config.PresenceThresh
	if presenceThreshold <= 0 {
		presenceThreshold = capture.DefaultPresenceConfig().MinChangedPct
	}

	a := &App{
		config: config,
		camera: capture.NewCamera(config.CameraID),
		presence: capture.NewPresenceGate(capture.PresenceConfig{
			MinChangedPct: presenceThreshold,
		}),
		debouncer:  posture.NewDebouncerWithThresholds(config.SitConfirmDelay, config.FallWindow),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(responderTimeout),
		status:     Status{Label: posture.LabelNoPerson},
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe pose detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables posture monitoring.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether posture monitoring is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the pose detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetSession associates subsequent alerts with the given session.
// Start assigns a fresh session automatically; this is for callers
// that manage sessions themselves.
func (a *App) SetSession(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessionID = id
}

// OnAlert registers a callback invoked for every recorded alert.
func (a *App) OnAlert(fn func(store.Alert)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onAlert = fn
}

// DiscoverPlugins scans the plugin directory and loads available responders.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the monitoring pipeline and records a new session.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.sessionID = uuid.New().String()
	if a.config.Store != nil {
		err := a.config.Store.Sessions().Create(&store.Session{
			ID:       a.sessionID,
			CameraID: a.config.CameraID,
		})
		if err != nil {
			a.camera.Close()
			return err
		}
	}

	a.camera.SetFPS(IdleFPS)
	a.debouncer.Reset()
	a.lastEvents = posture.Events{}

	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Monitoring pipeline started")
	return nil
}

// Stop halts the monitoring pipeline, ends the session and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.config.Store != nil && a.sessionID != "" {
		if err := a.config.Store.Sessions().End(a.sessionID, time.Now()); err != nil {
			log.Printf("Error ending session: %v", err)
		}
	}
	a.sessionID = ""

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.presence.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Monitoring pipeline stopped")
}

// Status returns the latest presentation snapshot.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// PresenceGate returns the presence gate instance.
func (a *App) PresenceGate() *capture.PresenceGate {
	return a.presence
}

// PluginManager returns the responder plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the pose detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
