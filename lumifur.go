package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lumifur/eventpipe"
	"lumifur/indicator"
	"lumifur/motion"
	"lumifur/mqtt"
	"lumifur/remote"
	"lumifur/servo"
	"lumifur/telemetry"
)

var myBuild string

// App holds the application state and dependencies.
type App struct {
	cfg       *Config
	log       *zap.Logger
	link      *remote.Link
	mqtt      *mqtt.Client
	control   *mqtt.ControlPoint
	events    *eventpipe.EventPipe
	driver    servo.Driver
	indicator indicator.Indicator
	loop      *motion.Loop
	reporter  *telemetry.Reporter
}

func main() {
	cfgfile := flag.String("cfg", "lumifur.yml", "Config file")
	debug := flag.Bool("debug", false, "Debug logging")
	flag.Parse()

	cfg, err := LoadConfig(*cfgfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("lumifur starting", zap.String("build", myBuild), zap.String("client_id", cfg.ClientID))

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Fatal("init", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Error("run", zap.Error(err))
	}
	app.Close()
	log.Info("shutdown complete")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	if os.Getenv("GO_ENV") != "production" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// NewApp initializes hardware and transport from cfg.
func NewApp(cfg *Config, log *zap.Logger) (*App, error) {
	app := &App{
		cfg:  cfg,
		log:  log,
		link: remote.NewLink(),
	}

	var err error

	app.control = mqtt.NewControlPoint(app.link,
		mqtt.NewTopics(cfg.MQTT.Prefix, cfg.ClientID),
		cfg.MQTT.UsePresence(),
		log.Named("control"))

	app.mqtt, err = mqtt.New(cfg.MQTT, cfg.ClientID, log.Named("mqtt"), app.control.Handlers())
	if err != nil {
		return nil, fmt.Errorf("init mqtt: %w", err)
	}
	app.control.Bind(app.mqtt)
	topics := app.mqtt.Topics()

	var modeTopic indicator.Indicator
	if app.mqtt.IsEnabled() {
		topic := indicator.NewTopic(app.mqtt, topics.Mode)
		app.control.OnConnected(topic.Republish)
		modeTopic = topic
	}
	app.indicator, err = indicator.New(cfg.Indicator, modeTopic)
	if err != nil {
		return nil, fmt.Errorf("init indicator: %w", err)
	}

	app.driver, err = servo.New(cfg.Servo)
	if err != nil {
		app.indicator.Release()
		return nil, fmt.Errorf("init servo: %w", err)
	}

	app.events, err = eventpipe.New(cfg.Events, app.link, log.Named("events"))
	if err != nil {
		app.driver.Release()
		app.indicator.Release()
		return nil, fmt.Errorf("init event pipe: %w", err)
	}

	app.loop = motion.NewLoop(cfg.Motion, app.link, app.driver, log.Named("motion"), app.onModeChange)

	app.reporter = telemetry.NewReporter(cfg.Telemetry,
		telemetry.Thermal{Path: cfg.Telemetry.Thermal},
		app.mqtt, topics.Temperature, topics.CPU,
		log.Named("telemetry"))
	app.control.OnConnected(app.reporter.Report)

	return app, nil
}

// Run drives the ears until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	app.indicator.Autonomous()

	go func() {
		if err := app.mqtt.Connect(); err != nil {
			app.log.Error("MQTT connect", zap.Error(err))
		}
	}()
	if app.mqtt.IsEnabled() {
		go app.reporter.Run(ctx)
	}
	if app.events != nil {
		go app.events.Run(ctx)
	}

	err := app.loop.Run(ctx)
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

// Close returns the ears to rest and releases hardware and transport.
func (app *App) Close() {
	rest := int(app.cfg.Motion.Resting)
	if err := app.driver.Write(rest, rest); err != nil {
		app.log.Warn("park servos", zap.Error(err))
	}

	app.indicator.Shutdown()
	app.mqtt.Disconnect()
	if err := app.driver.Release(); err != nil {
		app.log.Warn("release servo", zap.Error(err))
	}
	if err := app.indicator.Release(); err != nil {
		app.log.Warn("release indicator", zap.Error(err))
	}
	if app.events != nil {
		app.events.Close()
	}
}

func (app *App) onModeChange(mode motion.Mode) {
	switch mode {
	case motion.RemoteControlled:
		app.indicator.Remote()
	default:
		app.indicator.Autonomous()
	}
}
