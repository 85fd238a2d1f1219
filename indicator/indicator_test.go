package indicator

import (
	"bytes"
	"errors"
	"testing"
)

type recordingIndicator struct {
	calls   []string
	release error
}

func (r *recordingIndicator) Autonomous()    { r.calls = append(r.calls, "autonomous") }
func (r *recordingIndicator) Remote()        { r.calls = append(r.calls, "remote") }
func (r *recordingIndicator) Shutdown()      { r.calls = append(r.calls, "shutdown") }
func (r *recordingIndicator) Release() error { r.calls = append(r.calls, "release"); return r.release }

type recordingPublisher struct {
	topics   []string
	payloads []string
}

func (p *recordingPublisher) Publish(topic, payload string) {
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
}

type bufferPipe struct {
	bytes.Buffer
	closed bool
}

func (b *bufferPipe) Close() error {
	b.closed = true
	return nil
}

func TestNew_Noop(t *testing.T) {
	ind, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := ind.(*Noop); !ok {
		t.Errorf("New() = %T, want *Noop", ind)
	}
}

func TestNew_SingleExtra(t *testing.T) {
	rec := &recordingIndicator{}
	ind, err := New(Config{}, nil, rec)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ind != Indicator(rec) {
		t.Errorf("New() = %T, want the extra indicator itself", ind)
	}
}

func TestNew_NeopixelMissingPipe(t *testing.T) {
	_, err := New(Config{NeopixelPipe: t.TempDir() + "/missing"})
	if err == nil {
		t.Fatal("expected error for missing pipe")
	}
}

func TestMulti(t *testing.T) {
	a := &recordingIndicator{}
	b := &recordingIndicator{release: errors.New("busy")}
	ind, err := New(Config{}, a, b)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ind.Remote()
	ind.Autonomous()
	ind.Shutdown()
	if err := ind.Release(); err == nil {
		t.Error("Release should report the failing indicator")
	}

	want := []string{"remote", "autonomous", "shutdown", "release"}
	for _, rec := range []*recordingIndicator{a, b} {
		if len(rec.calls) != len(want) {
			t.Fatalf("calls = %v, want %v", rec.calls, want)
		}
		for i := range want {
			if rec.calls[i] != want[i] {
				t.Errorf("call %d = %q, want %q", i, rec.calls[i], want[i])
			}
		}
	}
}

func TestTopic(t *testing.T) {
	pub := &recordingPublisher{}
	ind := NewTopic(pub, "lumifur/ears1/mode")

	ind.Remote()
	ind.Autonomous()

	if len(pub.payloads) != 2 || pub.payloads[0] != "remote" || pub.payloads[1] != "autonomous" {
		t.Errorf("payloads = %v", pub.payloads)
	}
	if pub.topics[0] != "lumifur/ears1/mode" {
		t.Errorf("topic = %q", pub.topics[0])
	}
}

func TestNeopixel(t *testing.T) {
	pipe := &bufferPipe{}
	n := &Neopixel{pipe: pipe}

	n.Remote()
	n.Shutdown()

	want := neoRemote + "\n" + neoTerminated + "\n"
	if got := pipe.String(); got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
	if err := n.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if !pipe.closed {
		t.Error("pipe not closed")
	}
}

func TestTopic_Republish(t *testing.T) {
	pub := &recordingPublisher{}
	ind := NewTopic(pub, "lumifur/ears1/mode")

	ind.Republish()
	if len(pub.payloads) != 0 {
		t.Fatalf("republished %v before any mode was set", pub.payloads)
	}

	ind.Remote()
	ind.Autonomous()
	ind.Republish()

	if n := len(pub.payloads); n != 3 || pub.payloads[2] != "autonomous" {
		t.Errorf("payloads = %v, want the last mode republished", pub.payloads)
	}
}
