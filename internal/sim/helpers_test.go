package sim

// scriptedSource replays fixed values and then keeps returning 0.999 so
// that no further spawn roll succeeds.
type scriptedSource struct {
	vals []float64
	i    int
}

func (s *scriptedSource) Float64() float64 {
	if s.i >= len(s.vals) {
		return 0.999
	}
	v := s.vals[s.i]
	s.i++
	return v
}

func quiet() *scriptedSource { return &scriptedSource{} }

// stateWith builds a running game with the brush and particles placed by hand.
func stateWith(p Params, brushLeft float64, particles ...Particle) State {
	s := NewState(p, quiet())
	s.Paddle = Paddle{Left: brushLeft}
	s.Particles = particles
	return s
}
