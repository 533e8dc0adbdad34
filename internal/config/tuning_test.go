package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/mmwave.report/internal/units"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadTuningConfig(t *testing.T) {
	path := writeConfig(t, `{
		"data_port": "/dev/ttyUSB1",
		"baud_rate": 921600,
		"listen_addr": ":9090",
		"velocity_units": "mph"
	}`)

	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("LoadTuningConfig failed: %v", err)
	}

	if got := cfg.GetDataPort("/dev/ttyUSB0"); got != "/dev/ttyUSB1" {
		t.Errorf("GetDataPort = %q, want /dev/ttyUSB1", got)
	}
	if got := cfg.GetListenAddr(":8080"); got != ":9090" {
		t.Errorf("GetListenAddr = %q, want :9090", got)
	}
	if got := cfg.GetVelocityUnits(); got != units.MPH {
		t.Errorf("GetVelocityUnits = %q, want mph", got)
	}
	if got := cfg.PortOptions().BaudRate; got != 921600 {
		t.Errorf("BaudRate = %d, want 921600", got)
	}
}

func TestLoadTuningConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("LoadTuningConfig failed: %v", err)
	}

	if got := cfg.GetDataPort("/dev/ttyUSB0"); got != "/dev/ttyUSB0" {
		t.Errorf("GetDataPort fallback = %q", got)
	}
	if got := cfg.GetDatabasePath("sensor_data.db"); got != "sensor_data.db" {
		t.Errorf("GetDatabasePath fallback = %q", got)
	}
	if got := cfg.GetVelocityUnits(); got != units.MPS {
		t.Errorf("GetVelocityUnits default = %q, want mps", got)
	}
}

func TestLoadTuningConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"bad units", `{"velocity_units": "knots"}`},
		{"bad parity", `{"parity": "Q"}`},
		{"bad json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.contents)
			if _, err := LoadTuningConfig(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTuningConfigRejectsNonJSONExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuningConfig(path); err == nil {
		t.Error("expected error for non-.json extension")
	}
}
