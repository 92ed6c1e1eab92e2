package sim

import (
	"math"
	"time"
)

// Source is the randomness the spawner draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Particle is one falling speck of dust.
type Particle struct {
	Left    float64
	Top     float64
	Speed   float64 // units per tick
	Removed bool
}

// Center returns the horizontal center of the particle.
func (d Particle) Center(p Params) float64 {
	return d.Left + p.DustSize/2
}

// NewParticle places a particle at the top of the field with a random
// column and fall speed.
func NewParticle(p Params, rng Source) Particle {
	left := math.Max(0, rng.Float64()*p.Width-p.DustSize)
	speed := p.MinSpeed + rng.Float64()*(p.MaxSpeed-p.MinSpeed)
	return Particle{Left: left, Top: 0, Speed: speed}
}

// spawner tracks the two clocks that drive dust generation.
type spawner struct {
	sinceSpawn time.Duration
	sinceRamp  time.Duration
	chance     float64
}

// advance moves both clocks forward by dt, applies every completed ramp
// interval and reports whether a spawn roll is due.
func (s *spawner) advance(p Params, dt time.Duration) bool {
	s.sinceRamp += dt
	if p.RampInterval > 0 {
		for s.sinceRamp >= p.RampInterval {
			s.sinceRamp -= p.RampInterval
			s.chance *= p.SpawnGrowth
		}
	}
	if p.MaxSpawnChance > 0 && s.chance > p.MaxSpawnChance {
		s.chance = p.MaxSpawnChance
	}

	s.sinceSpawn += dt
	if s.sinceSpawn <= p.SpawnInterval {
		return false
	}
	s.sinceSpawn = 0
	return true
}

// roll draws once against the current chance and returns a new particle on
// success.
func (s *spawner) roll(p Params, rng Source) (Particle, bool) {
	if rng.Float64() >= s.chance {
		return Particle{}, false
	}
	return NewParticle(p, rng), true
}
