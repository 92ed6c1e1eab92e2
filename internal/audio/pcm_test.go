package audio

import (
	"encoding/binary"
	"testing"

	"github.com/gopxl/beep"
)

type constStreamer struct {
	left, right float64
	n           int
}

func (c *constStreamer) Stream(samples [][2]float64) (int, bool) {
	if c.n == 0 {
		return 0, false
	}
	k := 0
	for k < len(samples) && c.n > 0 {
		samples[k] = [2]float64{c.left, c.right}
		k++
		c.n--
	}
	return k, true
}

func (c *constStreamer) Err() error { return nil }

func TestEncodePCM16(t *testing.T) {
	tests := []struct {
		name        string
		left, right float64
		wantL       int16
		wantR       int16
	}{
		{name: "silence", wantL: 0, wantR: 0},
		{name: "full scale", left: 1, right: -1, wantL: 32767, wantR: -32767},
		{name: "clipped", left: 3, right: -3, wantL: 32767, wantR: -32767},
		{name: "half", left: 0.5, right: 0.25, wantL: 16383, wantR: 8191},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcm := EncodePCM16(&constStreamer{left: tt.left, right: tt.right, n: 3})
			if len(pcm) != 3*4 {
				t.Fatalf("expected 12 bytes, got %d", len(pcm))
			}
			l := int16(binary.LittleEndian.Uint16(pcm[8:10]))
			r := int16(binary.LittleEndian.Uint16(pcm[10:12]))
			if l != tt.wantL || r != tt.wantR {
				t.Errorf("expected (%d, %d), got (%d, %d)", tt.wantL, tt.wantR, l, r)
			}
		})
	}
}

func TestEncodeMissCue(t *testing.T) {
	sr := beep.SampleRate(8000)
	pcm := EncodePCM16(MissStreamer(sr, 1))
	if want := sr.N(missDuration) * 4; len(pcm) != want {
		t.Errorf("expected %d bytes of cue, got %d", want, len(pcm))
	}
}
