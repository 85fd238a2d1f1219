//go:build !linux

package indicator

// GPIO is a stub for non-linux platforms.
type GPIO struct{}

// NewGPIO returns ErrNotSupported on non-linux platforms.
func NewGPIO(chip string, offset int) (*GPIO, error) {
	return nil, ErrNotSupported
}

func (g *GPIO) Autonomous()    {}
func (g *GPIO) Remote()        {}
func (g *GPIO) Shutdown()      {}
func (g *GPIO) Release() error { return nil }
