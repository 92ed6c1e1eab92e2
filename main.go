package main

import (
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"dustbuster/internal/audio"
	"dustbuster/internal/config"
	"dustbuster/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML or TOML tuning file")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	mute := flag.Bool("mute", false, "disable the miss sound")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	// tcell owns the terminal, so logs go to a file or nowhere
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("[Main] seed=%d tickRate=%d", *seed, cfg.Display.TickRate)

	var cue sim.Cue
	if cfg.Audio.Enabled && !*mute {
		sm := audio.NewSoundManager(cfg.Audio.Volume)
		if err := sm.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			log.Printf("[Audio] initialization failed: %v", err)
		} else {
			defer sm.Cleanup()
			cue = sm
		}
	}

	// Initialize screen
	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("failed to initialize screen: %v", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorDefault).
		Foreground(tcell.ColorWhite))
	screen.EnableMouse()
	screen.Clear()

	// Create and run game
	session := sim.NewSession(cfg.Params(), rand.New(rand.NewSource(*seed)), cue)
	game := NewGame(screen, session, cfg.FrameDuration())
	game.run()
}
