package servo

// Noop implements Driver but does nothing.
// Used when no servo hardware is configured.
type Noop struct{}

// Write implements Driver.Write.
func (n *Noop) Write(left, right int) error {
	return nil
}

// Release implements Driver.Release.
func (n *Noop) Release() error {
	return nil
}
