package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()

	pluginDir := filepath.Join(dir, name)
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func TestManager_DiscoverMissingDirectory(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "does-not-exist"))

	if err := m.Discover(); err != nil {
		t.Errorf("Discover() on missing directory error = %v, want nil", err)
	}

	if len(m.List()) != 0 {
		t.Errorf("expected no plugins, got %d", len(m.List()))
	}
}

func TestManager_DiscoverLoadsManifests(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "notify", `{
		"name": "notify",
		"version": "1.0.0",
		"description": "Desktop notifications",
		"executable": "notify",
		"actions": ["desktop"]
	}`)
	writeManifest(t, dir, "webhook", `{
		"name": "webhook",
		"version": "1.0.0",
		"description": "HTTP webhooks",
		"executable": "webhook",
		"actions": ["post"]
	}`)

	m := NewManager(dir)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(m.List()) != 2 {
		t.Fatalf("expected 2 plugins, got %d", len(m.List()))
	}

	p, err := m.Get("notify")
	if err != nil {
		t.Fatalf("Get(notify) error = %v", err)
	}
	if p.Manifest.Description != "Desktop notifications" {
		t.Errorf("Description = %q", p.Manifest.Description)
	}
	wantExec := filepath.Join(dir, "notify", "notify")
	if p.Executable != wantExec {
		t.Errorf("Executable = %q, want %q", p.Executable, wantExec)
	}
}

func TestManager_DiscoverSkipsInvalidManifests(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "good", `{"name": "good", "executable": "good"}`)
	writeManifest(t, dir, "bad", `{not json`)

	// A directory without a manifest at all
	if err := os.MkdirAll(filepath.Join(dir, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	m := NewManager(dir)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(m.List()) != 1 {
		t.Errorf("expected 1 plugin, got %d", len(m.List()))
	}
	if _, err := m.Get("good"); err != nil {
		t.Errorf("Get(good) error = %v", err)
	}
}

func TestManager_GetUnknownPlugin(t *testing.T) {
	m := NewManager(t.TempDir())
	m.Discover()

	if _, err := m.Get("missing"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrPluginNotFound", err)
	}
}

func TestManager_RediscoverReplacesPlugins(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "notify", `{"name": "notify", "executable": "notify"}`)

	m := NewManager(dir)
	m.Discover()
	if len(m.List()) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(m.List()))
	}

	if err := os.RemoveAll(filepath.Join(dir, "notify")); err != nil {
		t.Fatal(err)
	}

	m.Discover()
	if len(m.List()) != 0 {
		t.Errorf("expected 0 plugins after rediscovery, got %d", len(m.List()))
	}
}
