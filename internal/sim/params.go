// Package sim holds the dustbuster simulation: falling dust, the vacuum
// brush and the per-tick bookkeeping of score and lives.
//
// Nothing in this package knows about screens, keys or speakers. Hosts push
// Commands, call Step (or Session.Tick) once per frame and draw the State
// they get back.
package sim

import "time"

// Params are the tunables of a game. All distances are in playfield units.
type Params struct {
	Width      float64
	Height     float64
	DustSize   float64
	BrushSize  float64
	BrushRange float64

	Lives          int
	CatchBonus     int
	SurvivalPoints int

	SpawnInterval  time.Duration
	RampInterval   time.Duration
	SpawnChance    float64
	SpawnGrowth    float64
	MaxSpawnChance float64 // 0 means unbounded
	MinSpeed       float64
	MaxSpeed       float64

	KeyImpulse   float64
	HoldImpulse  float64
	MomentumGain float64
	Friction     float64
}

// DefaultParams returns the classic 500x500 tuning.
func DefaultParams() Params {
	return Params{
		Width:      500,
		Height:     500,
		DustSize:   30,
		BrushSize:  30,
		BrushRange: 40,

		Lives:          5,
		CatchBonus:     1000,
		SurvivalPoints: 1,

		SpawnInterval: time.Second,
		RampInterval:  10 * time.Second,
		SpawnChance:   0.3,
		SpawnGrowth:   1.3,
		MinSpeed:      1,
		MaxSpeed:      5,

		KeyImpulse:   2,
		HoldImpulse:  0.45,
		MomentumGain: 1.1,
		Friction:     0.9,
	}
}

// CatchLine is the Top at which a particle enters the catch zone.
func (p Params) CatchLine() float64 {
	return p.Height - 3*p.DustSize
}

// MissLine is the Top at which an uncaught particle counts as a miss.
func (p Params) MissLine() float64 {
	return p.Height - p.DustSize
}

// MaxBrushLeft is the right-most position of the brush's left edge.
func (p Params) MaxBrushLeft() float64 {
	return p.Width - p.BrushSize
}
