package indicator

// Multi combines multiple Indicator implementations.
type Multi struct {
	indicators []Indicator
}

// Autonomous implements Indicator.Autonomous.
func (m *Multi) Autonomous() {
	for _, ind := range m.indicators {
		ind.Autonomous()
	}
}

// Remote implements Indicator.Remote.
func (m *Multi) Remote() {
	for _, ind := range m.indicators {
		ind.Remote()
	}
}

// Shutdown implements Indicator.Shutdown.
func (m *Multi) Shutdown() {
	for _, ind := range m.indicators {
		ind.Shutdown()
	}
}

// Release implements Indicator.Release.
func (m *Multi) Release() error {
	var lastErr error
	for _, ind := range m.indicators {
		if err := ind.Release(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
