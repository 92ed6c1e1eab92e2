package sim

import (
	"log"
	"time"
)

// Cue is a sound sink for misses. The audio package provides one; a nil Cue
// plays nothing.
type Cue interface {
	PlayMiss()
}

// Session binds a game state to its parameters, randomness, input queue and
// sound cue. Hosts call Push from their input handling and Tick once per
// frame while Running reports true.
type Session struct {
	params Params
	rng    Source
	cue    Cue
	queue  Queue
	state  State
	games  int
}

// NewSession starts the first game.
func NewSession(p Params, rng Source, cue Cue) *Session {
	s := &Session{params: p, rng: rng, cue: cue}
	s.Restart()
	return s
}

// Params returns the parameters the session was created with.
func (s *Session) Params() Params { return s.params }

// State returns the current snapshot.
func (s *Session) State() State { return s.state }

// Running reports whether another tick should be scheduled.
func (s *Session) Running() bool { return s.state.Phase == Running }

// Push queues a command for the next tick.
func (s *Session) Push(c Command) {
	s.queue.Push(c)
}

// Tick drains the queue and advances the game by one frame.
func (s *Session) Tick(dt time.Duration) Outcome {
	next, out := Step(s.params, s.state, s.queue.Drain(), dt, s.rng)
	s.state = next

	for _, e := range out.Events {
		switch e.Kind {
		case EventMissed:
			if s.cue != nil {
				s.cue.PlayMiss()
			}
		case EventGameOver:
			log.Printf("[Session] game %d over: score=%d caught=%d missed=%d ticks=%d",
				s.games, next.Score, next.Caught, next.Missed, next.Ticks)
		}
	}
	return out
}

// Restart throws away the current game and starts a new one. Held buttons
// carry over, including presses and releases queued on the game-over
// screen; pending nudges are dropped.
func (s *Session) Restart() {
	held := s.state.Paddle
	if n := s.queue.Len(); n > 0 {
		log.Printf("[Session] restart with %d pending commands", n)
	}
	for _, c := range s.queue.Drain() {
		switch c.Kind {
		case HoldLeft, ReleaseLeft, HoldRight, ReleaseRight:
			c.apply(s.params, &held)
		}
	}
	s.state = NewState(s.params, s.rng)
	s.state.Paddle.HoldLeft = held.HoldLeft
	s.state.Paddle.HoldRight = held.HoldRight
	s.games++
	log.Printf("[Session] game %d started: lives=%d spawnChance=%.2f", s.games, s.state.Lives, s.state.SpawnChance())
}
