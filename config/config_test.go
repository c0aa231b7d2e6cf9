package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/planetfall/parameter"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planetfall.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.TickRate != parameter.FrameUpdateInterval {
		t.Errorf("Expected tick rate %v, got %v", parameter.FrameUpdateInterval, cfg.TickRate)
	}
	if cfg.Remote.Timeout != parameter.LeaderboardRemoteTimeout {
		t.Errorf("Expected remote timeout %v, got %v", parameter.LeaderboardRemoteTimeout, cfg.Remote.Timeout)
	}
	if !cfg.Audio || cfg.Debug {
		t.Errorf("Expected audio on and debug off, got audio=%v debug=%v", cfg.Audio, cfg.Debug)
	}
	if cfg.Spectator.Address != "" || cfg.Remote.ProjectID != "" {
		t.Error("Expected spectator and remote disabled by default")
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("Expected missing file to be ignored, got %v", err)
	}
}

func TestLoadPrecedence(t *testing.T) {
	t.Chdir(t.TempDir())

	path := writeYAML(t, `
data_dir: /tmp/from-yaml
seed: 11
audio: false
tick_rate: 20ms
spectator:
  address: ":9000"
  broadcast_interval: 200ms
remote:
  project_id: yaml-project
  timeout: 3s
`)
	t.Setenv("PLANETFALL_SEED", "99")
	t.Setenv("PLANETFALL_REMOTE_PROJECT_ID", "env-project")
	t.Setenv("PLANETFALL_DEBUG", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.DataDir != "/tmp/from-yaml" {
		t.Errorf("Expected data_dir from yaml, got %s", cfg.DataDir)
	}
	if cfg.Seed != 99 {
		t.Errorf("Expected env seed 99 over yaml, got %d", cfg.Seed)
	}
	if cfg.Remote.ProjectID != "env-project" {
		t.Errorf("Expected env project, got %s", cfg.Remote.ProjectID)
	}
	if cfg.Remote.Timeout != 3*time.Second {
		t.Errorf("Expected yaml timeout 3s, got %v", cfg.Remote.Timeout)
	}
	if cfg.Audio {
		t.Error("Expected audio disabled from yaml")
	}
	if !cfg.Debug {
		t.Error("Expected debug enabled from env")
	}
	if cfg.TickRate != 20*time.Millisecond {
		t.Errorf("Expected tick rate 20ms, got %v", cfg.TickRate)
	}
	if cfg.Spectator.Address != ":9000" || cfg.Spectator.BroadcastInterval != 200*time.Millisecond {
		t.Errorf("Expected spectator :9000/200ms, got %s/%v", cfg.Spectator.Address, cfg.Spectator.BroadcastInterval)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PLANETFALL_SPECTATOR_ADDRESS=:7777\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("PLANETFALL_SPECTATOR_ADDRESS") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Spectator.Address != ":7777" {
		t.Errorf("Expected address from .env, got %q", cfg.Spectator.Address)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "bad yaml", yaml: "seed: [unclosed"},
		{name: "zero tick", yaml: "tick_rate: 0s"},
		{name: "bad env bool", env: map[string]string{"PLANETFALL_AUDIO": "loud"}},
		{name: "bad env duration", env: map[string]string{"PLANETFALL_REMOTE_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.yaml != "" {
				path = writeYAML(t, tt.yaml)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(path); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
