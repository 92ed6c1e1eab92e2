package sim

import "time"

// Phase is the state of the game loop.
type Phase int

const (
	Running Phase = iota
	GameOver
)

func (ph Phase) String() string {
	if ph == GameOver {
		return "game-over"
	}
	return "running"
}

// Status tells the host whether to schedule another tick.
type Status int

const (
	Continue Status = iota
	Halt
)

// EventKind enumerates what can happen during a tick.
type EventKind int

const (
	EventSpawned EventKind = iota
	EventCaught
	EventMissed
	EventGameOver
)

// Event is emitted by Step in the order things happened.
type Event struct {
	Kind     EventKind
	Particle Particle
}

// Outcome is everything a host needs after a tick besides the new state.
type Outcome struct {
	Status Status
	Events []Event
}

// Missed counts miss events in the outcome.
func (o Outcome) Missed() int {
	n := 0
	for _, e := range o.Events {
		if e.Kind == EventMissed {
			n++
		}
	}
	return n
}

// State is a complete snapshot of a game.
type State struct {
	Phase     Phase
	Score     int
	Lives     int
	Caught    int
	Missed    int
	Ticks     int
	Paddle    Paddle
	Particles []Particle

	spawn spawner
}

// SpawnChance is the current per-bucket spawn probability.
func (s State) SpawnChance() float64 {
	return s.spawn.chance
}

// NewState starts a fresh game with one particle already falling.
func NewState(p Params, rng Source) State {
	return State{
		Phase:     Running,
		Lives:     p.Lives,
		Paddle:    NewPaddle(p),
		Particles: []Particle{NewParticle(p, rng)},
		spawn:     spawner{chance: p.SpawnChance},
	}
}

// Step runs one frame of the game. The input state is not modified; the
// returned state owns a fresh particle slice. Stepping a finished game is a
// no-op that returns Halt.
func Step(p Params, s State, cmds []Command, dt time.Duration, rng Source) (State, Outcome) {
	if s.Phase == GameOver {
		return s, Outcome{Status: Halt}
	}

	next := s
	var out Outcome

	for _, c := range cmds {
		c.apply(p, &next.Paddle)
	}
	next.Paddle.Integrate(p)

	next.Ticks++
	next.Score += p.SurvivalPoints

	particles := make([]Particle, len(s.Particles), len(s.Particles)+1)
	copy(particles, s.Particles)
	if next.spawn.advance(p, dt) {
		if d, ok := next.spawn.roll(p, rng); ok {
			particles = append(particles, d)
			out.Events = append(out.Events, Event{Kind: EventSpawned, Particle: d})
		}
	}

	for i := range particles {
		d := &particles[i]
		switch Judge(p, next.Paddle, d) {
		case Caught:
			next.Score += p.CatchBonus
			next.Caught++
			out.Events = append(out.Events, Event{Kind: EventCaught, Particle: *d})
		case Missed:
			next.Lives--
			next.Missed++
			out.Events = append(out.Events, Event{Kind: EventMissed, Particle: *d})
		}
		if next.Lives <= 0 {
			next.Lives = 0
			next.Phase = GameOver
			out.Events = append(out.Events, Event{Kind: EventGameOver})
			break
		}
	}

	kept := particles[:0]
	for _, d := range particles {
		if !d.Removed {
			kept = append(kept, d)
		}
	}
	next.Particles = kept

	if next.Phase == GameOver {
		out.Status = Halt
	}
	return next, out
}
