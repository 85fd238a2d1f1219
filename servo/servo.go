// Package servo drives the ear servo pair.
package servo

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned by New for an unrecognized driver type.
var ErrUnknownType = errors.New("unknown servo driver type")

// Driver writes angles to the servo pair.
type Driver interface {
	// Write moves the left and right servos to the given angles in degrees.
	// Angles outside [0, 180] are clamped.
	Write(left, right int) error

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for servo driver implementations.
type Config struct {
	Type   string  `yaml:"type"`   // "pwm", "maestro", "none"
	Device string  `yaml:"device"` // serial device for "maestro"
	Baud   int     `yaml:"baud"`   // serial baud rate for "maestro"
	Left   Channel `yaml:"left"`
	Right  Channel `yaml:"right"`
}

// Channel is the wiring and calibration of one servo. Builds differ
// slightly, so each servo has its own pulse range.
type Channel struct {
	Pin        int `yaml:"pin"`          // GPIO for "pwm", channel for "maestro"
	MinPulseUS int `yaml:"min_pulse_us"` // pulse width at 0 degrees
	MaxPulseUS int `yaml:"max_pulse_us"` // pulse width at 180 degrees
}

// Default calibration of the two ears.
var (
	DefaultLeft  = Channel{Pin: 18, MinPulseUS: 500, MaxPulseUS: 2400}
	DefaultRight = Channel{Pin: 19, MinPulseUS: 544, MaxPulseUS: 2400}
)

// New creates a Driver based on the provided configuration.
func New(cfg Config) (Driver, error) {
	cfg.Left = cfg.Left.withDefaults(DefaultLeft)
	cfg.Right = cfg.Right.withDefaults(DefaultRight)

	switch cfg.Type {
	case "pwm":
		return NewPWM(cfg.Left, cfg.Right)
	case "maestro":
		return NewMaestro(cfg.Device, cfg.Baud, cfg.Left, cfg.Right)
	case "", "none":
		return &Noop{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, cfg.Type)
	}
}

func (c Channel) withDefaults(def Channel) Channel {
	if c.Pin == 0 {
		c.Pin = def.Pin
	}
	if c.MinPulseUS == 0 {
		c.MinPulseUS = def.MinPulseUS
	}
	if c.MaxPulseUS == 0 {
		c.MaxPulseUS = def.MaxPulseUS
	}
	return c
}

// Pulse converts angle to a pulse width in microseconds.
func (c Channel) Pulse(angle int) int {
	angle = clampAngle(angle)
	return c.MinPulseUS + (c.MaxPulseUS-c.MinPulseUS)*angle/180
}

func clampAngle(angle int) int {
	if angle < 0 {
		return 0
	}
	if angle > 180 {
		return 180
	}
	return angle
}
