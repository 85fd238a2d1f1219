// Package remote holds the connection state shared between the transport
// callbacks and the control loop.
package remote

import "sync/atomic"

// Command is a value written to the control point.
type Command string

// Recognized commands. Anything else is ignored by the control loop.
const (
	CommandRest    Command = "0"
	CommandAnimate Command = "1"
)

// String returns a readable name for logging.
func (c Command) String() string {
	switch c {
	case CommandRest:
		return "rest"
	case CommandAnimate:
		return "animate"
	default:
		return "unknown(" + string(c) + ")"
	}
}

// Link is the connection flag and the last command written by a remote
// controller. Transport callbacks write it from their own goroutines; the
// control loop only reads it through Snapshot. Only the latest command is
// kept.
type Link struct {
	connected atomic.Bool
	command   atomic.Value // Command
}

// NewLink returns a disconnected Link whose command reads as rest.
func NewLink() *Link {
	l := &Link{}
	l.command.Store(CommandRest)
	return l
}

// Connect marks a controller as connected.
func (l *Link) Connect() {
	l.connected.Store(true)
}

// Disconnect marks the controller as gone. The last command is kept.
func (l *Link) Disconnect() {
	l.connected.Store(false)
}

// Write stores payload as the latest command.
func (l *Link) Write(payload []byte) {
	l.command.Store(Command(payload))
}

// Connected reports whether a controller is connected.
func (l *Link) Connected() bool {
	return l.connected.Load()
}

// Command returns the last written command.
func (l *Link) Command() Command {
	return l.command.Load().(Command)
}

// Snapshot returns the connection flag and the last command.
func (l *Link) Snapshot() (bool, Command) {
	return l.Connected(), l.Command()
}
