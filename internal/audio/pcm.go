package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// EncodePCM16 drains a finite streamer into interleaved stereo signed 16-bit
// little-endian PCM, the layout ebiten's audio context plays from bytes.
func EncodePCM16(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			for ch := 0; ch < 2; ch++ {
				v := int16(math.Max(-1, math.Min(1, smp[ch])) * math.MaxInt16)
				out = append(out, byte(v), byte(v>>8))
			}
		}
		if !ok {
			return out
		}
	}
}
