package indicator

// Noop implements Indicator but does nothing.
// Used when no indicators are configured.
type Noop struct{}

// Autonomous implements Indicator.Autonomous.
func (n *Noop) Autonomous() {}

// Remote implements Indicator.Remote.
func (n *Noop) Remote() {}

// Shutdown implements Indicator.Shutdown.
func (n *Noop) Shutdown() {}

// Release implements Indicator.Release.
func (n *Noop) Release() error {
	return nil
}
