// Package mqtt is the remote control point of the ears. A controller writes
// commands to a device-scoped topic and reads retained telemetry topics.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Payloads of the status and presence topics.
const (
	Online  = "online"
	Offline = "offline"
)

// Client wraps the MQTT client with the device's topic layout.
type Client struct {
	client       paho.Client
	topics       Topics
	enabled      bool
	log          *zap.Logger
	onConnect    func()
	onDisconnect func()
	onMessage    func(topic string, payload []byte)
}

// Config holds MQTT connection settings.
type Config struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	CACert     string `yaml:"ca_cert"`
	ClientCert string `yaml:"client_cert"`
	ClientKey  string `yaml:"client_key"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`

	// Prefix is the first topic level, "lumifur" if empty.
	Prefix string `yaml:"prefix"`

	// Presence selects how a controller counts as connected. When true
	// (the default) it must announce itself on the presence topic; when
	// false the broker session alone counts.
	Presence *bool `yaml:"presence"`
}

// UsePresence reports whether controller presence gates the connection.
func (cfg Config) UsePresence() bool {
	return cfg.Presence == nil || *cfg.Presence
}

// Handlers holds callback functions for MQTT events.
type Handlers struct {
	OnConnect    func()
	OnDisconnect func()
	OnMessage    func(topic string, payload []byte)
}

// New creates a new MQTT client. Returns a disabled no-op client if host is empty.
func New(cfg Config, clientID string, log *zap.Logger, handlers Handlers) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		topics:       NewTopics(cfg.Prefix, clientID),
		log:          log,
		onConnect:    handlers.OnConnect,
		onDisconnect: handlers.OnDisconnect,
		onMessage:    handlers.OnMessage,
	}

	if cfg.Host == "" {
		c.enabled = false
		log.Info("MQTT disabled (no host configured)")
		return c, nil
	}

	c.enabled = true

	var broker string
	var tlsConfig *tls.Config

	hasTLS := cfg.CACert != "" || cfg.ClientCert != ""

	if hasTLS {
		if cfg.Port == 0 {
			cfg.Port = 8883
		}
		broker = fmt.Sprintf("ssl://%s:%d", cfg.Host, cfg.Port)

		var err error
		tlsConfig, err = buildTLSConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("build TLS config: %w", err)
		}
	} else {
		if cfg.Port == 0 {
			cfg.Port = 1883
		}
		broker = fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)
		log.Info("MQTT using non-TLS connection")
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetKeepAlive(60*time.Second).
		SetBinaryWill(c.topics.Status, []byte(Offline), 1, true).
		SetConnectionLostHandler(c.handleConnectionLost).
		SetOnConnectHandler(c.handleConnect).
		SetDefaultPublishHandler(c.handleMessage)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if tlsConfig != nil {
		opts.SetTLSConfig(tlsConfig)
	}

	c.client = paho.NewClient(opts)

	mlog := log.Named("paho")
	paho.ERROR = zap.NewStdLog(mlog)
	paho.CRITICAL = zap.NewStdLog(mlog)
	if w, err := zap.NewStdLogAt(mlog, zap.WarnLevel); err == nil {
		paho.WARN = w
	}

	return c, nil
}

func buildTLSConfig(cfg Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{}

	if cfg.CACert != "" {
		caCert, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("read CA cert: %w", err)
		}
		caPool := x509.NewCertPool()
		if !caPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("no certificates in %s", cfg.CACert)
		}
		tlsConfig.RootCAs = caPool
	}

	if cfg.ClientCert != "" && cfg.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// Topics returns the device's topic layout.
func (c *Client) Topics() Topics {
	return c.topics
}

// Connect connects to the MQTT broker. A disabled client returns at once
// without calling onConnect: with no broker there is no controller.
func (c *Client) Connect() error {
	if !c.enabled {
		return nil
	}

	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect: %w", token.Error())
	}
	return nil
}

// Disconnect marks the device offline and disconnects. No-op if disabled.
func (c *Client) Disconnect() {
	if !c.enabled || c.client == nil {
		return
	}
	if c.client.IsConnected() {
		c.client.Publish(c.topics.Status, 1, true, Offline).WaitTimeout(time.Second)
	}
	c.client.Disconnect(250)
}

// Subscribe subscribes to a topic. No-op if disabled.
func (c *Client) Subscribe(topic string) error {
	if !c.enabled {
		return nil
	}

	if token := c.client.Subscribe(topic, 1, nil); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", topic, token.Error())
	}
	return nil
}

// Publish publishes a retained message to a topic. No-op if disabled or
// not connected.
func (c *Client) Publish(topic string, payload string) {
	if !c.enabled || !c.client.IsConnected() {
		return
	}
	c.client.Publish(topic, 0, true, payload)
}

// IsEnabled returns whether MQTT is enabled.
func (c *Client) IsEnabled() bool {
	return c.enabled
}

func (c *Client) handleConnect(client paho.Client) {
	c.log.Info("MQTT connection established")
	client.Publish(c.topics.Status, 1, true, Online)
	if c.onConnect != nil {
		c.onConnect()
	}
}

func (c *Client) handleConnectionLost(client paho.Client, err error) {
	c.log.Warn("MQTT connection lost", zap.Error(err))
	if c.onDisconnect != nil {
		c.onDisconnect()
	}
}

func (c *Client) handleMessage(client paho.Client, msg paho.Message) {
	if c.onMessage != nil {
		c.onMessage(msg.Topic(), msg.Payload())
	}
}
