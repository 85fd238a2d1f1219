package servo

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

const maestroSetTarget = 0x84

// Maestro implements Driver for a Pololu Maestro USB servo controller using
// the compact serial protocol.
type Maestro struct {
	port  io.WriteCloser
	left  Channel
	right Channel
	buf   [8]byte
}

// NewMaestro opens the controller's command port.
func NewMaestro(device string, baud int, left, right Channel) (*Maestro, error) {
	if device == "" {
		device = "/dev/ttyACM0"
	}
	if baud == 0 {
		baud = 115200
	}
	c := &serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: time.Second,
	}
	port, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}
	return &Maestro{port: port, left: left, right: right}, nil
}

// Write implements Driver.Write. Both targets go out in one write.
func (m *Maestro) Write(left, right int) error {
	encodeTarget(m.buf[0:4], m.left.Pin, m.left.Pulse(left))
	encodeTarget(m.buf[4:8], m.right.Pin, m.right.Pulse(right))
	if _, err := m.port.Write(m.buf[:]); err != nil {
		return fmt.Errorf("write maestro: %w", err)
	}
	return nil
}

// Release implements Driver.Release.
func (m *Maestro) Release() error {
	if m.port == nil {
		return nil
	}
	return m.port.Close()
}

// encodeTarget writes a Set Target command. The target is in quarter
// microseconds, split into two 7-bit bytes.
func encodeTarget(dst []byte, channel, pulseUS int) {
	target := pulseUS * 4
	dst[0] = maestroSetTarget
	dst[1] = byte(channel)
	dst[2] = byte(target & 0x7f)
	dst[3] = byte((target >> 7) & 0x7f)
}
