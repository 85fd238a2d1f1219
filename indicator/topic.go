package indicator

import "sync"

// Publisher publishes a retained value to a topic.
type Publisher interface {
	Publish(topic string, payload string)
}

// Topic implements Indicator by publishing the mode name to a topic. It
// keeps the last value so it can be republished after a reconnect.
type Topic struct {
	pub   Publisher
	topic string

	mu   sync.Mutex
	last string
}

// NewTopic creates a Topic indicator.
func NewTopic(pub Publisher, topic string) *Topic {
	return &Topic{pub: pub, topic: topic}
}

// Autonomous implements Indicator.Autonomous.
func (t *Topic) Autonomous() {
	t.set("autonomous")
}

// Remote implements Indicator.Remote.
func (t *Topic) Remote() {
	t.set("remote")
}

// Shutdown implements Indicator.Shutdown.
func (t *Topic) Shutdown() {
	t.set("shutdown")
}

// Republish publishes the last mode again. No-op before the first mode.
func (t *Topic) Republish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last != "" {
		t.pub.Publish(t.topic, t.last)
	}
}

func (t *Topic) set(mode string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = mode
	t.pub.Publish(t.topic, mode)
}

// Release implements Indicator.Release.
func (t *Topic) Release() error {
	return nil
}
