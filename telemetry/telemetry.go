// Package telemetry publishes the read-only temperature and load points.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is how often telemetry is published.
const DefaultInterval = 10 * time.Second

// cpuPlaceholder is reported as the load metric. It is not measured.
const cpuPlaceholder = 10.0

// Config holds telemetry settings.
type Config struct {
	Interval time.Duration `yaml:"interval"`
	Thermal  string        `yaml:"thermal"` // sysfs thermal zone file
}

// Sensor reads the raw internal temperature, in Fahrenheit.
type Sensor interface {
	ReadRaw() (float64, error)
}

// Publisher publishes a retained value to a topic.
type Publisher interface {
	Publish(topic string, payload string)
}

// Celsius converts a raw sensor reading to degrees Celsius.
func Celsius(raw float64) float64 {
	return (raw - 32) / 1.8
}

// CPUUsage returns the load metric.
func CPUUsage() float64 {
	return cpuPlaceholder
}

// Thermal reads a Linux thermal zone, which reports millidegrees Celsius,
// and returns it as Fahrenheit like an on-die sensor register.
type Thermal struct {
	Path string
}

// DefaultThermalPath is the SoC thermal zone on a Raspberry Pi.
const DefaultThermalPath = "/sys/class/thermal/thermal_zone0/temp"

// ReadRaw implements Sensor.ReadRaw.
func (t Thermal) ReadRaw() (float64, error) {
	path := t.Path
	if path == "" {
		path = DefaultThermalPath
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read thermal zone: %w", err)
	}
	milli, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse thermal zone %s: %w", path, err)
	}
	return milli/1000*1.8 + 32, nil
}

// Reporter periodically publishes temperature and load.
type Reporter struct {
	sensor    Sensor
	pub       Publisher
	tempTopic string
	cpuTopic  string
	interval  time.Duration
	log       *zap.Logger

	mu          sync.Mutex
	sensorFails int
}

// NewReporter creates a Reporter publishing to the given topics.
func NewReporter(cfg Config, sensor Sensor, pub Publisher, tempTopic, cpuTopic string, log *zap.Logger) *Reporter {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{
		sensor:    sensor,
		pub:       pub,
		tempTopic: tempTopic,
		cpuTopic:  cpuTopic,
		interval:  cfg.Interval,
		log:       log,
	}
}

// Run publishes every interval until ctx is done. The first values go out
// when the broker session comes up, through Report.
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Report()
		}
	}
}

// Report publishes the current values. A failed temperature read skips the
// temperature point only. Safe to call from the broker's connect callback
// while Run is active.
func (r *Reporter) Report() {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := r.sensor.ReadRaw()
	if err != nil {
		r.sensorFails++
		if r.sensorFails == 1 {
			r.log.Warn("temperature read failed", zap.Error(err))
		}
	} else {
		r.sensorFails = 0
		r.pub.Publish(r.tempTopic, format(Celsius(raw)))
	}
	r.pub.Publish(r.cpuTopic, format(CPUUsage()))
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
