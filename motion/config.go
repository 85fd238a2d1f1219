package motion

import (
	"fmt"
	"math/rand"
	"time"
)

// Default motion parameters.
const (
	DefaultResting          = 135.0
	DefaultMajorRange       = 45.0
	DefaultMicroRange       = 15.0
	DefaultTick             = 15 * time.Millisecond
	DefaultBaseInterval     = 5000 * time.Millisecond
	DefaultIntervalJitter   = 1000 * time.Millisecond
	DefaultSmoothing        = 0.15
	DefaultMicroCooldown    = 1000 * time.Millisecond
	DefaultMicroProbability = 10 // one in N per tick
	DefaultBias             = 1.5
	DefaultAsymmetry        = 5

	// MovingThreshold is the distance in degrees below which an actuator
	// is considered settled.
	MovingThreshold = 0.5
)

// Config holds the motion tunables. Zero values fall back to the defaults.
type Config struct {
	Resting          float64       `yaml:"resting"`
	MajorRange       float64       `yaml:"major_range"`
	MicroRange       float64       `yaml:"micro_range"`
	Tick             time.Duration `yaml:"tick"`
	BaseInterval     time.Duration `yaml:"base_interval"`
	IntervalJitter   time.Duration `yaml:"interval_jitter"`
	Smoothing        float64       `yaml:"smoothing"`
	MicroCooldown    time.Duration `yaml:"micro_cooldown"`
	MicroProbability int           `yaml:"micro_one_in"`
	Bias             float64       `yaml:"bias"`
	Asymmetry        int           `yaml:"asymmetry"`

	// ResetOnResume restarts the twitch timers when remote control ends.
	// Off by default, so a long remote session may be followed by an
	// immediate major twitch.
	ResetOnResume bool `yaml:"reset_on_resume"`

	// Rand overrides the random source. Used by tests.
	Rand *rand.Rand `yaml:"-"`
}

// Validate reports settings that would break the motion bounds. Zero values
// are valid and mean "use the default".
func (cfg Config) Validate() error {
	for name, v := range map[string]float64{
		"resting":     cfg.Resting,
		"major_range": cfg.MajorRange,
		"micro_range": cfg.MicroRange,
		"bias":        cfg.Bias,
	} {
		if v < 0 {
			return fmt.Errorf("motion %s: %v is negative", name, v)
		}
	}
	for name, d := range map[string]time.Duration{
		"tick":            cfg.Tick,
		"base_interval":   cfg.BaseInterval,
		"interval_jitter": cfg.IntervalJitter,
		"micro_cooldown":  cfg.MicroCooldown,
	} {
		if d < 0 {
			return fmt.Errorf("motion %s: %v is negative", name, d)
		}
	}
	if cfg.Resting > MaxAngle {
		return fmt.Errorf("motion resting: %v is above %v", cfg.Resting, MaxAngle)
	}
	if cfg.Asymmetry < 0 || cfg.Asymmetry > DefaultAsymmetry {
		return fmt.Errorf("motion asymmetry: %d is outside [0, %d]", cfg.Asymmetry, DefaultAsymmetry)
	}
	if cfg.MicroProbability < 0 {
		return fmt.Errorf("motion micro_one_in: %d is negative", cfg.MicroProbability)
	}

	base, jitter := cfg.BaseInterval, cfg.IntervalJitter
	if base == 0 {
		base = DefaultBaseInterval
	}
	if jitter == 0 {
		jitter = DefaultIntervalJitter
	}
	if jitter >= base {
		return fmt.Errorf("motion interval_jitter: %v must be below base_interval %v", jitter, base)
	}
	return nil
}

// WithDefaults returns a copy of cfg with unset fields filled in. Values
// Validate would reject are replaced too, so a Config that skipped
// validation still cannot stall or panic the loop.
func (cfg Config) WithDefaults() Config {
	if cfg.Resting <= 0 || cfg.Resting > MaxAngle {
		cfg.Resting = DefaultResting
	}
	if cfg.MajorRange <= 0 {
		cfg.MajorRange = DefaultMajorRange
	}
	if cfg.MicroRange <= 0 {
		cfg.MicroRange = DefaultMicroRange
	}
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.BaseInterval <= 0 {
		cfg.BaseInterval = DefaultBaseInterval
	}
	if cfg.IntervalJitter <= 0 {
		cfg.IntervalJitter = DefaultIntervalJitter
	}
	if cfg.IntervalJitter >= cfg.BaseInterval {
		cfg.IntervalJitter = cfg.BaseInterval / 2
	}
	if cfg.Smoothing <= 0 || cfg.Smoothing >= 1 {
		cfg.Smoothing = DefaultSmoothing
	}
	if cfg.MicroCooldown <= 0 {
		cfg.MicroCooldown = DefaultMicroCooldown
	}
	if cfg.MicroProbability <= 0 {
		cfg.MicroProbability = DefaultMicroProbability
	}
	if cfg.Bias <= 0 {
		cfg.Bias = DefaultBias
	}
	if cfg.Asymmetry <= 0 || cfg.Asymmetry > DefaultAsymmetry {
		cfg.Asymmetry = DefaultAsymmetry
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return cfg
}
