package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"lumifur/eventpipe"
	"lumifur/indicator"
	"lumifur/motion"
	"lumifur/mqtt"
	"lumifur/servo"
	"lumifur/telemetry"
)

// Config is the main configuration structure for lumifur.
type Config struct {
	// MQTT control point settings
	MQTT mqtt.Config `yaml:"mqtt"`

	// Servo driver configuration
	Servo servo.Config `yaml:"servo"`

	// Mode indicator configuration
	Indicator indicator.Config `yaml:"indicator"`

	// Local control pipe for bench testing
	Events eventpipe.Config `yaml:"events"`

	// Telemetry publishing
	Telemetry telemetry.Config `yaml:"telemetry"`

	// Motion tunables; unset values use the built-in defaults
	Motion motion.Config `yaml:"motion"`

	// General settings
	ClientID string `yaml:"client_id"`
	LogLevel string `yaml:"log_level"`
}

// LoadConfig reads the YAML configuration at path. A missing file yields
// the defaults: no broker, no hardware, autonomous motion only.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("open config: %w", err)
	default:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if cfg.ClientID == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("client_id missing and no hostname: %w", err)
		}
		cfg.ClientID = host
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if err := cfg.Motion.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Motion = cfg.Motion.WithDefaults()

	return &cfg, nil
}
