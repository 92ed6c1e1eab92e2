// Command dustbuster-web is the graphical host. It runs as a desktop window
// or, built for GOOS=js GOARCH=wasm, in a browser with touch buttons.
package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"dustbuster/internal/audio"
	"dustbuster/internal/config"
	"dustbuster/internal/sim"
)

const sampleRate = 44100

func main() {
	configPath := flag.String("config", "", "path to a YAML or TOML tuning file")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	mute := flag.Bool("mute", false, "disable the miss sound")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	var cue sim.Cue
	if cfg.Audio.Enabled && !*mute {
		ctx := ebitenaudio.NewContext(sampleRate)
		pcm := audio.EncodePCM16(audio.MissStreamer(beep.SampleRate(sampleRate), cfg.Audio.Volume))
		cue = missCue{player: ctx.NewPlayerFromBytes(pcm)}
	}

	session := sim.NewSession(cfg.Params(), rand.New(rand.NewSource(*seed)), cue)
	game := NewGame(session)

	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Dustbuster")
	ebiten.SetTPS(cfg.Display.TickRate)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
