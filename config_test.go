package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lumifur/motion"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumifur.yml")
	data := `
client_id: ears1
mqtt:
  host: broker.local
  presence: false
servo:
  type: pwm
  right:
    min_pulse_us: 600
motion:
  tick: 20ms
  resting: 120
  reset_on_resume: true
telemetry:
  interval: 30s
indicator:
  led_line: 23
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.ClientID != "ears1" {
		t.Errorf("ClientID = %q", cfg.ClientID)
	}
	if cfg.MQTT.Host != "broker.local" || cfg.MQTT.UsePresence() {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}
	if cfg.Servo.Type != "pwm" || cfg.Servo.Right.MinPulseUS != 600 {
		t.Errorf("Servo = %+v", cfg.Servo)
	}
	if cfg.Motion.Tick != 20*time.Millisecond || cfg.Motion.Resting != 120 || !cfg.Motion.ResetOnResume {
		t.Errorf("Motion = %+v", cfg.Motion)
	}
	if cfg.Motion.MajorRange != motion.DefaultMajorRange || cfg.Motion.Smoothing != motion.DefaultSmoothing {
		t.Errorf("motion defaults not applied: %+v", cfg.Motion)
	}
	if cfg.Telemetry.Interval != 30*time.Second {
		t.Errorf("Telemetry = %+v", cfg.Telemetry)
	}
	if cfg.Indicator.LEDLine == nil || *cfg.Indicator.LEDLine != 23 {
		t.Errorf("Indicator = %+v", cfg.Indicator)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ClientID == "" {
		t.Error("ClientID should default to the hostname")
	}
	if cfg.Motion.Tick != motion.DefaultTick {
		t.Errorf("Tick = %v, want %v", cfg.Motion.Tick, motion.DefaultTick)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("motion: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadConfig_RejectsBadMotion(t *testing.T) {
	tests := []struct {
		name   string
		motion string
	}{
		{"negative asymmetry", "asymmetry: -3"},
		{"asymmetry above bound", "asymmetry: 9"},
		{"negative jitter", "interval_jitter: -1s"},
		{"jitter not below interval", "base_interval: 2s\n  interval_jitter: 2s"},
		{"negative tick", "tick: -15ms"},
		{"negative range", "major_range: -45"},
		{"resting out of range", "resting: 200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lumifur.yml")
			data := "client_id: ears1\nmotion:\n  " + tt.motion + "\n"
			if err := os.WriteFile(path, []byte(data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatalf("LoadConfig accepted %q", tt.motion)
			}
		})
	}
}
