package sim

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func TestNewState(t *testing.T) {
	p := DefaultParams()
	s := NewState(p, &scriptedSource{vals: []float64{0.5, 0.5}})

	if s.Phase != Running {
		t.Errorf("expected running, got %v", s.Phase)
	}
	if s.Lives != 5 {
		t.Errorf("expected 5 lives, got %d", s.Lives)
	}
	if s.Score != 0 {
		t.Errorf("expected score 0, got %d", s.Score)
	}
	if len(s.Particles) != 1 {
		t.Fatalf("expected one particle at start, got %d", len(s.Particles))
	}
	if s.SpawnChance() != 0.3 {
		t.Errorf("expected spawn chance 0.3, got %v", s.SpawnChance())
	}
}

func TestStepCatchAwardsBonus(t *testing.T) {
	p := DefaultParams()
	s := stateWith(p, 235, Particle{Left: 235, Top: p.CatchLine() - 1, Speed: 1})

	next, out := Step(p, s, nil, 0, quiet())

	if out.Status != Continue {
		t.Errorf("expected continue, got %v", out.Status)
	}
	if next.Score != 1+p.CatchBonus {
		t.Errorf("expected score %d, got %d", 1+p.CatchBonus, next.Score)
	}
	if len(next.Particles) != 0 {
		t.Errorf("expected caught particle removed, %d left", len(next.Particles))
	}
	if next.Caught != 1 || next.Lives != 5 {
		t.Errorf("expected caught=1 lives=5, got caught=%d lives=%d", next.Caught, next.Lives)
	}
	if len(out.Events) != 1 || out.Events[0].Kind != EventCaught {
		t.Errorf("expected a single caught event, got %+v", out.Events)
	}
}

func TestStepMissCostsOneLife(t *testing.T) {
	p := DefaultParams()
	s := stateWith(p, 235,
		Particle{Left: 0, Top: p.MissLine() - 1, Speed: 1},
		Particle{Left: 400, Top: 10, Speed: 1},
	)

	next, out := Step(p, s, nil, 0, quiet())

	if next.Lives != 4 {
		t.Errorf("expected 4 lives, got %d", next.Lives)
	}
	if next.Missed != 1 {
		t.Errorf("expected missed=1, got %d", next.Missed)
	}
	if len(next.Particles) != 1 || next.Particles[0].Left != 400 {
		t.Errorf("expected only the high particle to remain, got %+v", next.Particles)
	}
	if out.Missed() != 1 {
		t.Errorf("expected one miss event, got %d", out.Missed())
	}
	if next.Score != s.Score+1 {
		t.Errorf("expected survival point only, got score %d", next.Score)
	}
}

func TestStepLastLifeHalts(t *testing.T) {
	p := DefaultParams()
	s := stateWith(p, 235,
		Particle{Left: 0, Top: p.MissLine() - 1, Speed: 1},
		Particle{Left: 0, Top: p.MissLine() - 1, Speed: 1},
	)
	s.Lives = 1

	next, out := Step(p, s, nil, 0, quiet())

	if out.Status != Halt {
		t.Fatalf("expected halt, got %v", out.Status)
	}
	if next.Phase != GameOver {
		t.Errorf("expected game over, got %v", next.Phase)
	}
	if next.Lives != 0 {
		t.Errorf("expected 0 lives, got %d", next.Lives)
	}
	if next.Missed != 1 {
		t.Errorf("expected judging to stop after the last life, missed=%d", next.Missed)
	}
	last := out.Events[len(out.Events)-1]
	if last.Kind != EventGameOver {
		t.Errorf("expected game-over as last event, got %v", last.Kind)
	}

	again, out := Step(p, next, []Command{{Kind: NudgeLeft}}, time.Second, quiet())
	if out.Status != Halt {
		t.Errorf("expected finished game to keep halting")
	}
	if again.Ticks != next.Ticks || again.Score != next.Score {
		t.Errorf("expected finished game to stay frozen")
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	p := DefaultParams()
	s := stateWith(p, 235, Particle{Left: 100, Top: 50, Speed: 2})

	next, _ := Step(p, s, []Command{{Kind: NudgeRight}}, 0, quiet())

	if s.Particles[0].Top != 50 {
		t.Errorf("expected input particle untouched, top=%v", s.Particles[0].Top)
	}
	if s.Paddle.Left != 235 || s.Paddle.Momentum != 0 {
		t.Errorf("expected input paddle untouched, got %+v", s.Paddle)
	}
	if next.Particles[0].Top != 52 {
		t.Errorf("expected next particle at 52, got %v", next.Particles[0].Top)
	}
	if next.Paddle.Left <= 235 {
		t.Errorf("expected nudge right to move the brush, got %v", next.Paddle.Left)
	}
}

func TestStepAppliesCommandsInOrder(t *testing.T) {
	p := DefaultParams()
	s := stateWith(p, 235)

	cmds := []Command{{Kind: HoldRight}, {Kind: ReleaseRight}, {Kind: HoldLeft}}
	next, _ := Step(p, s, cmds, 0, quiet())

	if next.Paddle.HoldRight {
		t.Errorf("expected right released")
	}
	if !next.Paddle.HoldLeft {
		t.Errorf("expected left held")
	}
	if next.Paddle.Left >= 235 {
		t.Errorf("expected brush to drift left, got %v", next.Paddle.Left)
	}
}

func TestSpawnBucket(t *testing.T) {
	p := DefaultParams()
	s := stateWith(p, 235)
	rng := &scriptedSource{vals: []float64{0.1, 0.5, 0.5}}

	var spawned []int
	for tick := 1; tick <= 3; tick++ {
		var out Outcome
		s, out = Step(p, s, nil, 500*time.Millisecond, rng)
		for _, e := range out.Events {
			if e.Kind == EventSpawned {
				spawned = append(spawned, tick)
			}
		}
	}

	if len(spawned) != 1 || spawned[0] != 3 {
		t.Fatalf("expected one spawn on tick 3, got %v", spawned)
	}
	if len(s.Particles) != 1 {
		t.Fatalf("expected one particle, got %d", len(s.Particles))
	}
	d := s.Particles[0]
	if d.Left != 220 || d.Speed != 3 || d.Top != 3 {
		t.Errorf("expected particle {220 3 3}, got left=%v top=%v speed=%v", d.Left, d.Top, d.Speed)
	}
}

func TestSpawnRoll(t *testing.T) {
	p := DefaultParams()
	s := stateWith(p, 235)

	_, out := Step(p, s, nil, 2*time.Second, &scriptedSource{vals: []float64{0.3}})
	if len(out.Events) != 0 {
		t.Errorf("expected draw equal to the chance to fail, got %+v", out.Events)
	}
}

func TestSpawnChanceRamp(t *testing.T) {
	tests := []struct {
		name      string
		maxChance float64
		ticks     int
		dt        time.Duration
		want      float64
	}{
		{name: "three ramps", ticks: 3, dt: 10 * time.Second, want: 0.3 * math.Pow(1.3, 3)},
		{name: "one long tick", ticks: 1, dt: 30 * time.Second, want: 0.3 * math.Pow(1.3, 3)},
		{name: "partial interval", ticks: 19, dt: 500 * time.Millisecond, want: 0.3},
		{name: "capped", maxChance: 0.5, ticks: 3, dt: 10 * time.Second, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.MaxSpawnChance = tt.maxChance
			s := stateWith(p, 235)
			for i := 0; i < tt.ticks; i++ {
				s, _ = Step(p, s, nil, tt.dt, quiet())
			}
			if math.Abs(s.SpawnChance()-tt.want) > 1e-9 {
				t.Errorf("expected chance %v, got %v", tt.want, s.SpawnChance())
			}
		})
	}

	if got := 0.3 * math.Pow(1.3, 3); math.Abs(got-0.659) > 0.001 {
		t.Errorf("expected roughly 0.659 after three ramps, got %v", got)
	}
}

func TestInvariantsHoldOverLongGames(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(42))
	s := NewState(p, rng)
	kinds := []CommandKind{NudgeLeft, NudgeRight, HoldLeft, ReleaseLeft, HoldRight, ReleaseRight}

	prevScore := 0
	halted := false
	for i := 0; i < 200000 && !halted; i++ {
		var cmds []Command
		if rng.Intn(10) == 0 {
			cmds = append(cmds, Command{Kind: kinds[rng.Intn(len(kinds))]})
		}
		var out Outcome
		s, out = Step(p, s, cmds, 100*time.Millisecond, rng)
		halted = out.Status == Halt

		if s.Lives < 0 {
			t.Fatalf("tick %d: negative lives %d", i, s.Lives)
		}
		if s.Score < prevScore {
			t.Fatalf("tick %d: score fell from %d to %d", i, prevScore, s.Score)
		}
		if s.Paddle.Left < 0 || s.Paddle.Left > p.MaxBrushLeft() {
			t.Fatalf("tick %d: brush out of bounds at %v", i, s.Paddle.Left)
		}
		for _, d := range s.Particles {
			if d.Removed {
				t.Fatalf("tick %d: removed particle survived the filter", i)
			}
		}
		prevScore = s.Score
	}

	if !halted {
		t.Fatalf("expected ramping difficulty to end the game")
	}
	if s.Lives != 0 {
		t.Errorf("expected 0 lives at the end, got %d", s.Lives)
	}
}
