//go:build linux

package indicator

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIO implements Indicator with a single LED line, lit while a controller
// is driving the ears.
type GPIO struct {
	line *gpiocdev.Line
}

// NewGPIO requests offset on chip as an output, initially off.
func NewGPIO(chip string, offset int) (*GPIO, error) {
	if chip == "" {
		chip = "gpiochip0"
	}
	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsOutput(0),
		gpiocdev.WithConsumer("lumifur"))
	if err != nil {
		return nil, fmt.Errorf("request led line %d: %w", offset, err)
	}
	return &GPIO{line: line}, nil
}

// Autonomous implements Indicator.Autonomous.
func (g *GPIO) Autonomous() {
	g.line.SetValue(0)
}

// Remote implements Indicator.Remote.
func (g *GPIO) Remote() {
	g.line.SetValue(1)
}

// Shutdown implements Indicator.Shutdown.
func (g *GPIO) Shutdown() {
	g.line.SetValue(0)
}

// Release implements Indicator.Release.
func (g *GPIO) Release() error {
	return g.line.Close()
}
