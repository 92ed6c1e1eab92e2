// Package audio plays the dustbuster sound cues through beep.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	missDuration = 700 * time.Millisecond
)

// SoundManager owns the speaker and mixes cues into it.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a sound manager. volume is linear, 0.0 ~ 1.0.
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker. A failure leaves the manager silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops everything that is still playing.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlayMiss plays the sonar ping for a dropped speck of dust.
func (sm *SoundManager) PlayMiss() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(MissStreamer(sampleRate, sm.volume))
	speaker.Unlock()
}

// MissStreamer returns the miss cue at the given linear volume.
func MissStreamer(sr beep.SampleRate, volume float64) beep.Streamer {
	return &effects.Volume{
		Streamer: NewSonarGenerator(sr, missDuration),
		Base:     2,
		Volume:   math.Log2(math.Max(volume, 1e-6)),
		Silent:   volume <= 0,
	}
}

// SonarGenerator generates a submarine-style ping: a decaying sine with a
// quieter echo trailing behind it.
type SonarGenerator struct {
	sr    beep.SampleRate
	pos   int
	total int
}

// NewSonarGenerator creates a ping lasting d.
func NewSonarGenerator(sr beep.SampleRate, d time.Duration) *SonarGenerator {
	return &SonarGenerator{sr: sr, total: sr.N(d)}
}

func (g *SonarGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	const (
		freq      = 1150.0
		echoDelay = 0.22 // seconds
	)
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)

		attack := math.Min(t/0.005, 1)
		sample := 0.35 * attack * math.Exp(-t*9) * math.Sin(2*math.Pi*freq*t)
		if et := t - echoDelay; et > 0 {
			sample += 0.12 * math.Exp(-et*7) * math.Sin(2*math.Pi*freq*0.98*et)
		}

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SonarGenerator) Err() error {
	return nil
}
