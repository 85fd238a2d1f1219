package mqtt

import (
	"sync"

	"go.uber.org/zap"
)

// Link receives the controller's lifecycle events and command writes.
type Link interface {
	Connect()
	Disconnect()
	Write(payload []byte)
}

// Subscriber subscribes to a topic.
type Subscriber interface {
	Subscribe(topic string) error
}

// ControlPoint maps broker events onto a Link. It is the only code that
// touches the Link from the MQTT goroutines.
type ControlPoint struct {
	link     Link
	topics   Topics
	presence bool
	sub      Subscriber
	log      *zap.Logger

	mu        sync.Mutex
	announces []func()
}

// NewControlPoint creates a ControlPoint for the device's topics.
func NewControlPoint(link Link, topics Topics, presence bool, log *zap.Logger) *ControlPoint {
	if log == nil {
		log = zap.NewNop()
	}
	return &ControlPoint{
		link:     link,
		topics:   topics,
		presence: presence,
		log:      log,
	}
}

// Bind sets the subscriber used on every (re)connect.
func (cp *ControlPoint) Bind(sub Subscriber) {
	cp.sub = sub
}

// OnConnected registers f to run after every (re)connect, once the control
// topics are subscribed.
func (cp *ControlPoint) OnConnected(f func()) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	cp.announces = append(cp.announces, f)
}

// Handlers returns the client callbacks for this control point.
func (cp *ControlPoint) Handlers() Handlers {
	return Handlers{
		OnConnect:    cp.OnConnect,
		OnDisconnect: cp.OnDisconnect,
		OnMessage:    cp.OnMessage,
	}
}

// OnConnect subscribes to the control topics and runs the OnConnected
// hooks. Without presence gating the broker session itself counts as a
// connected controller.
func (cp *ControlPoint) OnConnect() {
	if cp.sub != nil {
		for _, topic := range []string{cp.topics.Control, cp.topics.Presence} {
			if err := cp.sub.Subscribe(topic); err != nil {
				cp.log.Error("subscribe failed", zap.String("topic", topic), zap.Error(err))
			}
		}
	}
	if !cp.presence {
		cp.log.Info("controller connected")
		cp.link.Connect()
	}

	cp.mu.Lock()
	announces := append([]func(){}, cp.announces...)
	cp.mu.Unlock()
	for _, f := range announces {
		f()
	}
}

// OnDisconnect drops the controller when the broker session is lost.
func (cp *ControlPoint) OnDisconnect() {
	cp.log.Info("controller disconnected")
	cp.link.Disconnect()
}

// OnMessage handles command writes and presence announcements.
func (cp *ControlPoint) OnMessage(topic string, payload []byte) {
	switch topic {
	case cp.topics.Control:
		cp.log.Debug("command", zap.ByteString("value", payload))
		cp.link.Write(payload)

	case cp.topics.Presence:
		if !cp.presence {
			return
		}
		switch string(payload) {
		case Online:
			cp.log.Info("controller connected")
			cp.link.Connect()
		case Offline, "":
			cp.log.Info("controller disconnected")
			cp.link.Disconnect()
		default:
			cp.log.Warn("unknown presence payload", zap.ByteString("value", payload))
		}

	default:
		cp.log.Debug("ignoring message", zap.String("topic", topic))
	}
}
