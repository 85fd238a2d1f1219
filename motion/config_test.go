package motion

import (
	"testing"
	"time"

	"lumifur/remote"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero", Config{}, false},
		{"full asymmetry", Config{Asymmetry: DefaultAsymmetry}, false},
		{"negative asymmetry", Config{Asymmetry: -3}, true},
		{"asymmetry above bound", Config{Asymmetry: DefaultAsymmetry + 1}, true},
		{"negative jitter", Config{IntervalJitter: -time.Second}, true},
		{"jitter above default interval", Config{IntervalJitter: 6 * time.Second}, true},
		{"jitter equals interval", Config{BaseInterval: time.Second, IntervalJitter: time.Second}, true},
		{"negative cooldown", Config{MicroCooldown: -time.Millisecond}, true},
		{"negative bias", Config{Bias: -1}, true},
		{"negative micro_one_in", Config{MicroProbability: -2}, true},
		{"resting above max", Config{Resting: 181}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithDefaults_ClampsInvalid(t *testing.T) {
	cfg := Config{
		Asymmetry:      -3,
		IntervalJitter: -time.Second,
		Tick:           -time.Millisecond,
		Resting:        -10,
	}.WithDefaults()

	if cfg.Asymmetry != DefaultAsymmetry {
		t.Errorf("Asymmetry = %d, want %d", cfg.Asymmetry, DefaultAsymmetry)
	}
	if cfg.IntervalJitter != DefaultIntervalJitter {
		t.Errorf("IntervalJitter = %v, want %v", cfg.IntervalJitter, DefaultIntervalJitter)
	}
	if cfg.Tick != DefaultTick {
		t.Errorf("Tick = %v, want %v", cfg.Tick, DefaultTick)
	}
	if cfg.Resting != DefaultResting {
		t.Errorf("Resting = %v, want %v", cfg.Resting, DefaultResting)
	}

	cfg = Config{Asymmetry: 40}.WithDefaults()
	if cfg.Asymmetry != DefaultAsymmetry {
		t.Errorf("Asymmetry = %d, want capped at %d", cfg.Asymmetry, DefaultAsymmetry)
	}

	cfg = Config{BaseInterval: time.Second, IntervalJitter: 3 * time.Second}.WithDefaults()
	if cfg.IntervalJitter >= cfg.BaseInterval {
		t.Errorf("IntervalJitter = %v, want below %v", cfg.IntervalJitter, cfg.BaseInterval)
	}
}

func TestLoop_BadConfigDoesNotPanic(t *testing.T) {
	for _, cfg := range []Config{
		{Asymmetry: -3},
		{Asymmetry: 50},
		{IntervalJitter: -time.Second},
	} {
		cfg.Rand = newTestRand()
		l := NewLoop(cfg, remote.NewLink(), &recordingDriver{}, nil, nil)

		now := time.Now()
		for i := 0; i < 50; i++ {
			l.tick(now.Add(10*time.Second + time.Duration(i)*DefaultTick))
		}
		if d := l.right.Target - (MaxAngle - l.left.Target); d < -DefaultAsymmetry || d > DefaultAsymmetry {
			t.Errorf("cfg %+v: asymmetry %v outside ±%d", cfg, d, DefaultAsymmetry)
		}
	}
}
