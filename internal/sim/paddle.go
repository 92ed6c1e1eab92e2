package sim

import "math"

// Paddle is the vacuum brush. Left is clamped to [0, Width-BrushSize].
type Paddle struct {
	Left      float64
	Momentum  float64
	HoldLeft  bool
	HoldRight bool
}

// NewPaddle returns a paddle resting at the middle of the field.
func NewPaddle(p Params) Paddle {
	return Paddle{Left: math.Min(p.Width/2, p.MaxBrushLeft())}
}

// Center returns the horizontal center of the brush.
func (b Paddle) Center(p Params) float64 {
	return b.Left + p.BrushSize/2
}

// Impulse adds x to the momentum and amplifies the result, so repeated
// pushes in one direction accelerate the brush.
func (b *Paddle) Impulse(p Params, x float64) {
	b.Momentum += x
	b.Momentum *= p.MomentumGain
}

// Integrate applies the held impulses for this tick, moves the brush by its
// momentum and then decays the momentum.
func (b *Paddle) Integrate(p Params) {
	if b.HoldLeft {
		b.Impulse(p, -p.HoldImpulse)
	}
	if b.HoldRight {
		b.Impulse(p, p.HoldImpulse)
	}
	b.Left = clamp(b.Left+b.Momentum, 0, p.MaxBrushLeft())
	b.Momentum *= p.Friction
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(hi, math.Max(lo, v))
}
