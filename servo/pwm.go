package servo

import (
	"fmt"

	"github.com/hjkoskel/govattu"
)

// PWM clock divisor and range for 1us resolution at 50Hz.
const (
	pwmClockDiv = 19
	pwmRange    = 20000
)

// PWM implements Driver on the two BCM2835 hardware PWM channels. The left
// servo must be on a PWM0 pin (GPIO18) and the right one on PWM1 (GPIO19).
type PWM struct {
	hw    govattu.Vattu
	left  Channel
	right Channel
}

// NewPWM opens the GPIO registers and configures both PWM channels.
func NewPWM(left, right Channel) (*PWM, error) {
	if left.Pin != 18 {
		return nil, fmt.Errorf("left servo on GPIO%d: PWM0 requires GPIO18", left.Pin)
	}
	if right.Pin != 19 {
		return nil, fmt.Errorf("right servo on GPIO%d: PWM1 requires GPIO19", right.Pin)
	}

	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}
	return newPWM(hw, left, right), nil
}

func newPWM(hw govattu.Vattu, left, right Channel) *PWM {
	hw.PinMode(uint8(left.Pin), govattu.ALT5)  // ALT5 for GPIO18 is PWM0
	hw.PinMode(uint8(right.Pin), govattu.ALT5) // ALT5 for GPIO19 is PWM1
	hw.PwmSetMode(true, true, true, true)      // both channels enabled, mark-space
	hw.PwmSetClock(pwmClockDiv)
	hw.Pwm0SetRange(pwmRange)
	hw.Pwm1SetRange(pwmRange)

	return &PWM{hw: hw, left: left, right: right}
}

// Write implements Driver.Write.
func (p *PWM) Write(left, right int) error {
	p.hw.Pwm0Set(uint32(p.left.Pulse(left)))
	p.hw.Pwm1Set(uint32(p.right.Pulse(right)))
	return nil
}

// Release implements Driver.Release.
func (p *PWM) Release() error {
	p.hw.Pwm0Set(0)
	p.hw.Pwm1Set(0)
	return p.hw.Close()
}
