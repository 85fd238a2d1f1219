// Package indicator shows the motion mode on status outputs.
package indicator

import "errors"

// ErrNotSupported is returned for outputs this platform cannot drive.
var ErrNotSupported = errors.New("indicator not supported on this platform")

// Indicator is the interface for mode indicator implementations (LEDs,
// neopixels, status topics).
type Indicator interface {
	// Autonomous shows that the ears run their idle schedule.
	Autonomous()

	// Remote shows that a controller is driving the ears.
	Remote()

	// Shutdown sets the indicator to shutdown state.
	Shutdown()

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for indicator implementations.
type Config struct {
	// GPIO LED lit while remote controlled (nil = not configured)
	Chip    string `yaml:"chip"`
	LEDLine *int   `yaml:"led_line"`

	// Neopixel pipe path (empty = not configured)
	NeopixelPipe string `yaml:"neopixel_pipe"`
}

// New creates an Indicator based on the provided configuration. extra
// indicators (such as a status topic) are combined with the configured
// hardware ones.
func New(cfg Config, extra ...Indicator) (Indicator, error) {
	var indicators []Indicator

	if cfg.LEDLine != nil {
		led, err := NewGPIO(cfg.Chip, *cfg.LEDLine)
		if err != nil {
			return nil, err
		}
		indicators = append(indicators, led)
	}

	if cfg.NeopixelPipe != "" {
		neo, err := NewNeopixel(cfg.NeopixelPipe)
		if err != nil {
			for _, ind := range indicators {
				ind.Release()
			}
			return nil, err
		}
		indicators = append(indicators, neo)
	}

	for _, ind := range extra {
		if ind != nil {
			indicators = append(indicators, ind)
		}
	}

	if len(indicators) == 0 {
		return &Noop{}, nil
	}
	if len(indicators) == 1 {
		return indicators[0], nil
	}
	return &Multi{indicators: indicators}, nil
}
