package sim

import "math"

// Verdict is the result of judging one particle on one tick.
type Verdict int

const (
	Falling Verdict = iota
	Caught
	Missed
)

// Judge advances d by its speed and decides whether it was caught, missed or
// is still falling. The catch test always runs before the miss test, so a
// particle sitting on both lines is given the chance to be caught.
func Judge(p Params, brush Paddle, d *Particle) Verdict {
	d.Top += d.Speed
	if d.Top < p.CatchLine() {
		return Falling
	}
	if math.Abs(d.Center(p)-brush.Center(p)) <= p.BrushRange {
		d.Removed = true
		return Caught
	}
	if d.Top >= p.MissLine() {
		d.Removed = true
		return Missed
	}
	return Falling
}
