// Package eventpipe is a local control point on a named pipe, for driving
// the ears from a shell on the device without a broker:
//
//	echo connect > /tmp/lumifur-events
//	echo animate > /tmp/lumifur-events
package eventpipe

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Config holds configuration for the event pipe.
type Config struct {
	Path string `yaml:"path"` // Path to named pipe (e.g., "/tmp/lumifur-events")
}

// Link receives the lifecycle events and command writes.
type Link interface {
	Connect()
	Disconnect()
	Write(payload []byte)
}

// retryDelay is the pause before reopening a pipe that failed to open.
const retryDelay = time.Second

// EventPipe listens for control lines on a named pipe.
type EventPipe struct {
	path  string
	link  Link
	log   *zap.Logger
	retry time.Duration
}

// New creates the named pipe. Returns nil if path is empty.
func New(cfg Config, link Link, log *zap.Logger) (*EventPipe, error) {
	if cfg.Path == "" {
		return nil, nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	os.Remove(cfg.Path)
	if err := syscall.Mkfifo(cfg.Path, 0666); err != nil {
		return nil, fmt.Errorf("create named pipe %s: %w", cfg.Path, err)
	}

	return &EventPipe{path: cfg.Path, link: link, log: log, retry: retryDelay}, nil
}

// Run reads the pipe until ctx is done, reopening it whenever a writer
// closes. Opening blocks until a writer connects, so Run may only notice
// cancellation on the next writer.
func (ep *EventPipe) Run(ctx context.Context) {
	ep.log.Info("event pipe listening", zap.String("path", ep.path))

	for ctx.Err() == nil {
		file, err := os.OpenFile(ep.path, os.O_RDONLY, 0)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			ep.log.Warn("event pipe open", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(ep.retry):
			}
			continue
		}
		ep.consume(ctx, file)
		file.Close()
	}
}

// Close removes the pipe.
func (ep *EventPipe) Close() error {
	return os.Remove(ep.path)
}

func (ep *EventPipe) consume(ctx context.Context, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ep.apply(line); err != nil {
			ep.log.Warn("event pipe", zap.Error(err))
		}
	}
}

// apply executes one control line.
//
//	connect | disconnect     - controller lifecycle
//	rest | animate           - write "0" or "1"
//	write <value>            - write a raw control value
func (ep *EventPipe) apply(line string) error {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])

	switch cmd {
	case "connect":
		ep.link.Connect()
	case "disconnect":
		ep.link.Disconnect()
	case "rest":
		ep.link.Write([]byte("0"))
	case "animate":
		ep.link.Write([]byte("1"))
	case "write":
		if len(parts) < 2 {
			return fmt.Errorf("write requires a value")
		}
		ep.link.Write([]byte(parts[1]))
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
	ep.log.Debug("event pipe", zap.String("line", line))
	return nil
}
