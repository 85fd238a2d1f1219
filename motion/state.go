// Package motion generates the idle motion of the ear pair and arbitrates
// between autonomous twitching and remote commands.
package motion

import "math"

// Angle limits in degrees.
const (
	MinAngle = 0.0
	MaxAngle = 180.0
)

// State is the position of one actuator.
//
// The second actuator of the pair is mirrored: its angles are stored in the
// shared logical frame and complemented (180 - angle) when rendered, so both
// ears computed from the same frame move in physically opposite directions.
type State struct {
	Current  float64
	Target   float64
	Moving   bool
	Mirrored bool
}

// NewState returns a settled state at angle. A mirrored state stores the
// complement, so NewState(135, true) starts at 45.
func NewState(angle float64, mirrored bool) *State {
	if mirrored {
		angle = MaxAngle - angle
	}
	angle = Clamp(angle)
	return &State{
		Current:  angle,
		Target:   angle,
		Mirrored: mirrored,
	}
}

// SetTarget sets the target angle, clamped to [0, 180].
func (s *State) SetTarget(angle float64) {
	s.Target = Clamp(angle)
}

// Render returns the integer angle to write to the hardware.
func (s *State) Render() int {
	pos := int(math.Round(Clamp(s.Current)))
	if s.Mirrored {
		pos = int(MaxAngle) - pos
	}
	return pos
}

// Clamp limits angle to [0, 180].
func Clamp(angle float64) float64 {
	if math.IsNaN(angle) {
		return MinAngle
	}
	return math.Max(MinAngle, math.Min(MaxAngle, angle))
}
