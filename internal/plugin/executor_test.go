package plugin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// writeTestPlugin creates an executable shell script plugin and returns it.
func writeTestPlugin(t *testing.T, script string) *Plugin {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script plugins not supported on windows")
	}

	dir := t.TempDir()
	execPath := filepath.Join(dir, "run.sh")
	content := "#!/bin/sh\n" + script + "\n"
	if err := os.WriteFile(execPath, []byte(content), 0755); err != nil {
		t.Fatalf("failed to write plugin script: %v", err)
	}

	return &Plugin{
		Manifest:   Manifest{Name: "test", Executable: "run.sh"},
		Path:       dir,
		Executable: execPath,
	}
}

func TestExecutor_Success(t *testing.T) {
	p := writeTestPlugin(t, `echo '{"success": true}'`)
	e := NewExecutor(5 * time.Second)

	resp, err := e.Execute(p, &Request{
		Action:    "desktop",
		AlertType: "fall_detected",
		Label:     "fallen",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !resp.Success {
		t.Error("expected success response")
	}
}

func TestExecutor_PassesRequestOnStdin(t *testing.T) {
	// The plugin echoes its stdin back inside the data field.
	p := writeTestPlugin(t, `input=$(cat); printf '{"success": true, "data": %s}' "$input"`)
	e := NewExecutor(5 * time.Second)

	req := &Request{
		Action:    "post",
		AlertType: "sit_confirmed",
		Label:     "sitting",
		Config:    json.RawMessage(`{"url":"http://example.com"}`),
	}

	resp, err := e.Execute(p, req)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var echoed Request
	if err := json.Unmarshal(resp.Data, &echoed); err != nil {
		t.Fatalf("failed to parse echoed request: %v", err)
	}

	if echoed.Action != "post" || echoed.AlertType != "sit_confirmed" {
		t.Errorf("echoed request = %+v", echoed)
	}
}

func TestExecutor_PluginError(t *testing.T) {
	p := writeTestPlugin(t, `echo '{"success": false, "error": "no display"}'`)
	e := NewExecutor(5 * time.Second)

	resp, err := e.Execute(p, &Request{Action: "desktop"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if resp.Success {
		t.Error("expected failure response")
	}
	if resp.Error != "no display" {
		t.Errorf("Error = %q, want %q", resp.Error, "no display")
	}
}

func TestExecutor_NonZeroExit(t *testing.T) {
	p := writeTestPlugin(t, `echo "boom" >&2; exit 1`)
	e := NewExecutor(5 * time.Second)

	_, err := e.Execute(p, &Request{Action: "desktop"})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error should include stderr, got: %v", err)
	}
}

func TestExecutor_InvalidResponse(t *testing.T) {
	p := writeTestPlugin(t, `echo 'not json'`)
	e := NewExecutor(5 * time.Second)

	_, err := e.Execute(p, &Request{Action: "desktop"})
	if err == nil {
		t.Fatal("expected error for unparseable response")
	}
}

func TestExecutor_LingeringChild(t *testing.T) {
	// The plugin exits immediately but leaves a background child
	// holding the stdout pipe open. Execute must not wait for the
	// child to finish.
	p := writeTestPlugin(t, `sleep 5 & echo '{"success": true}'`)
	e := NewExecutor(100 * time.Millisecond)

	start := time.Now()
	e.Execute(p, &Request{Action: "desktop"})
	elapsed := time.Since(start)

	if elapsed > 2*time.Second {
		t.Errorf("Execute took %v waiting on an orphaned child, should be well under 2s", elapsed)
	}
}

func TestExecutor_Timeout(t *testing.T) {
	p := writeTestPlugin(t, `sleep 5; echo '{"success": true}'`)
	e := NewExecutor(100 * time.Millisecond)

	start := time.Now()
	_, err := e.Execute(p, &Request{Action: "desktop"})
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("error = %v, want a timeout", err)
	}
	if elapsed > 2*time.Second {
		t.Errorf("timeout took %v, should be well under 2s", elapsed)
	}
}
