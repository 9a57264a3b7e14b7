// Package main provides a desktop notification plugin.
// It shows an alert notification via the platform's native mechanism.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action     string          `json:"action"`
	AlertType  string          `json:"alert_type"`
	Label      string          `json:"label"`
	DetectedAt string          `json:"detected_at"`
	Config     json.RawMessage `json:"config"`
	Params     json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// NotifyConfig defines configuration for the desktop action.
type NotifyConfig struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	switch req.Action {
	case "desktop":
		if err := handleDesktop(&req); err != nil {
			writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
			return
		}
	default:
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	writeSuccessResponse()
}

// handleDesktop shows a desktop notification describing the alert.
func handleDesktop(req *Request) error {
	var cfg NotifyConfig
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	title := cfg.Title
	if title == "" {
		title = "Posewatch"
	}

	message := cfg.Message
	if message == "" {
		message = defaultMessage(req.AlertType, req.DetectedAt)
	}

	return notify(title, message)
}

// defaultMessage builds a human-readable message for the alert type.
func defaultMessage(alertType, detectedAt string) string {
	switch alertType {
	case "fall_detected":
		return "Fall detected at " + detectedAt
	case "sit_confirmed":
		return "Prolonged sitting detected at " + detectedAt
	default:
		return "Alert: " + alertType
	}
}

// notify shows a notification using the platform's native tool.
func notify(title, message string) error {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q",
			escapeQuotes(message), escapeQuotes(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return exec.Command("notify-send", title, message).Run()
	}
}

// escapeQuotes escapes double quotes for AppleScript string literals.
func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(msg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: msg})
}
