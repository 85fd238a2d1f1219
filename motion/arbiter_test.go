package motion

import (
	"testing"
	"time"

	"lumifur/remote"
)

func newTestArbiter(cfg Config, changes *[]Mode) (*Arbiter, *Scheduler) {
	cfg.Rand = newTestRand()
	cfg = cfg.WithDefaults()
	s := NewScheduler(cfg, t0)
	a := NewArbiter(cfg, s, nil, func(m Mode) {
		if changes != nil {
			*changes = append(*changes, m)
		}
	})
	return a, s
}

func TestArbiter_RemoteIgnoresSchedule(t *testing.T) {
	a, _ := newTestArbiter(Config{}, nil)
	left, right := newPair()

	// Well past both the major interval and micro cooldown, but connected
	// with an unrecognized command: nothing may move the targets.
	for i := 0; i < 2000; i++ {
		now := t0.Add(10*time.Second + time.Duration(i)*DefaultTick)
		a.Step(now, true, remote.Command("2"), left, right)
		if left.Target != DefaultResting || right.Target != MaxAngle-DefaultResting {
			t.Fatalf("tick %d: targets moved to %v/%v under remote control", i, left.Target, right.Target)
		}
	}
	if a.Mode() != RemoteControlled {
		t.Errorf("mode = %v, want remote", a.Mode())
	}
}

func TestArbiter_AnimateEveryTick(t *testing.T) {
	a, _ := newTestArbiter(Config{}, nil)
	left, right := newPair()

	type pair struct{ l, r float64 }
	seen := make(map[pair]bool)
	for i := 0; i < 3; i++ {
		a.Step(t0.Add(time.Duration(i)*DefaultTick), true, remote.CommandAnimate, left, right)
		seen[pair{left.Target, right.Target}] = true
	}
	if len(seen) != 3 {
		t.Errorf("3 animate ticks produced %d distinct targets, want 3", len(seen))
	}
}

func TestArbiter_RestEases(t *testing.T) {
	a, _ := newTestArbiter(Config{}, nil)
	left, right := newPair()
	left.Current, left.Target = 160, 160
	right.Current, right.Target = 20, 20

	a.Step(t0, true, remote.CommandRest, left, right)
	if left.Target != 135 || right.Target != 45 {
		t.Fatalf("targets = %v/%v, want 135/45", left.Target, right.Target)
	}
	if left.Current != 160 || right.Current != 20 {
		t.Fatal("rest moved current positions directly")
	}

	m := NewSmoother(DefaultSmoothing, newTestRand())
	m.Advance(left)
	if left.Current == 135 || left.Current >= 160 {
		t.Errorf("after one tick current = %v, want strictly between 135 and 160", left.Current)
	}
}

func TestArbiter_UnknownCommandKeepsTargets(t *testing.T) {
	a, _ := newTestArbiter(Config{}, nil)
	left, right := newPair()
	left.SetTarget(100)
	right.SetTarget(70)

	for _, cmd := range []remote.Command{"", "2", "animate", "1 "} {
		a.Step(t0, true, cmd, left, right)
		if left.Target != 100 || right.Target != 70 {
			t.Fatalf("command %q changed targets", string(cmd))
		}
	}
}

func TestArbiter_ModeTransitions(t *testing.T) {
	var changes []Mode
	a, _ := newTestArbiter(Config{}, &changes)
	left, right := newPair()

	a.Step(t0, false, remote.CommandRest, left, right)
	a.Step(t0, true, remote.CommandRest, left, right)
	a.Step(t0, true, remote.CommandRest, left, right)
	a.Step(t0, false, remote.CommandRest, left, right)

	if len(changes) != 2 || changes[0] != RemoteControlled || changes[1] != Autonomous {
		t.Errorf("changes = %v, want [remote autonomous]", changes)
	}
}

func TestArbiter_StaleTimerAfterRemote(t *testing.T) {
	a, _ := newTestArbiter(Config{}, nil)
	left, right := newPair()

	// A long remote session, then the controller leaves.
	a.Step(t0.Add(time.Second), true, remote.CommandRest, left, right)
	a.Step(t0.Add(30*time.Second), false, remote.CommandRest, left, right)
	if left.Target == DefaultResting {
		t.Error("expected an immediate major twitch on return to autonomous")
	}
}

func TestArbiter_ResetOnResume(t *testing.T) {
	a, _ := newTestArbiter(Config{ResetOnResume: true}, nil)
	left, right := newPair()

	a.Step(t0.Add(time.Second), true, remote.CommandRest, left, right)
	a.Step(t0.Add(30*time.Second), false, remote.CommandRest, left, right)
	if left.Target != DefaultResting || right.Target != MaxAngle-DefaultResting {
		t.Errorf("targets moved to %v/%v right after resume", left.Target, right.Target)
	}
}

func TestModeString(t *testing.T) {
	if Autonomous.String() != "autonomous" || RemoteControlled.String() != "remote" || Mode(7).String() != "unknown" {
		t.Error("unexpected mode names")
	}
}
