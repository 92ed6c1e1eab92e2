package main

import (
	"fmt"
	"image/color"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dustbuster/internal/sim"
)

var (
	backgroundColor = color.RGBA{R: 0xf4, G: 0xee, B: 0xe0, A: 0xff}
	dustColor       = color.RGBA{R: 0x8a, G: 0x7f, B: 0x72, A: 0xff}
	brushColor      = color.RGBA{R: 0xd9, G: 0x3b, B: 0x2b, A: 0xff}
	buttonColor     = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	pressedColor    = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	missColor       = color.RGBA{R: 0xf4, G: 0xc8, B: 0xb8, A: 0xff}
)

const (
	brushHeight    = 12
	missFlashTicks = 20
)

// missCue plays the sonar ping through ebiten's audio context.
type missCue struct {
	player *audio.Player
}

func (c missCue) PlayMiss() {
	// Playback can be refused before the first user gesture in browsers.
	_ = c.player.Rewind()
	c.player.Play()
}

// Game implements ebiten.Game around a simulation session.
type Game struct {
	session   *sim.Session
	holdLeft  bool
	holdRight bool
	touches   []ebiten.TouchID
	missFlash int
}

func NewGame(session *sim.Session) *Game {
	return &Game{session: session}
}

// Update runs one simulation tick per ebiten tick.
func (g *Game) Update() error {
	if runtime.GOOS != "js" && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.missFlash > 0 {
		g.missFlash--
	}

	p := g.session.Params()
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	g.setHolds(pressedButtons(p, g.touches))

	if !g.session.Running() {
		if restartPressed(p) {
			g.session.Restart()
		}
		return nil
	}

	for _, c := range keyCommands() {
		g.session.Push(c)
	}
	if out := g.session.Tick(time.Second / time.Duration(ebiten.TPS())); out.Missed() > 0 {
		g.missFlash = missFlashTicks
	}
	return nil
}

// setHolds queues the commands that bring the session's held buttons in line
// with the buttons currently pressed, in either phase.
func (g *Game) setHolds(left, right bool) {
	for _, c := range holdCommands(g.holdLeft, g.holdRight, left, right) {
		g.session.Push(c)
	}
	g.holdLeft, g.holdRight = left, right
}

// Draw renders the field, the dust, the brush and the button bar.
func (g *Game) Draw(screen *ebiten.Image) {
	p := g.session.Params()
	st := g.session.State()
	if g.missFlash > 0 {
		screen.Fill(missColor)
	} else {
		screen.Fill(backgroundColor)
	}

	for _, d := range st.Particles {
		vector.DrawFilledRect(screen, float32(d.Left), float32(d.Top), float32(p.DustSize), float32(p.DustSize), dustColor, false)
	}
	vector.DrawFilledRect(screen, float32(st.Paddle.Left), float32(p.MissLine()), float32(p.BrushSize), brushHeight, brushColor, false)

	g.drawButton(screen, 0, g.holdLeft, "<")
	g.drawButton(screen, float32(p.Width/2), g.holdRight, ">")

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", st.Score), 8, 8)
	lives := fmt.Sprintf("Lives: %d", st.Lives)
	if st.Phase == sim.GameOver {
		lives = "Lives: THE END"
		msg := fmt.Sprintf("THE END  caught %d, missed %d  - tap or ENTER to restart", st.Caught, st.Missed)
		ebitenutil.DebugPrintAt(screen, msg, 8, int(p.Height/2))
	}
	ebitenutil.DebugPrintAt(screen, lives, int(p.Width)-8-6*len(lives), 8)
}

func (g *Game) drawButton(screen *ebiten.Image, x float32, pressed bool, label string) {
	p := g.session.Params()
	clr := buttonColor
	if pressed {
		clr = pressedColor
	}
	w := float32(p.Width / 2)
	y := float32(p.Height)
	vector.DrawFilledRect(screen, x+2, y+2, w-4, buttonHeight-4, clr, false)
	ebitenutil.DebugPrintAt(screen, label, int(x+w/2)-3, int(y)+buttonHeight/2-8)
}

// Layout keeps the logical playfield size regardless of the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	p := g.session.Params()
	return int(p.Width), int(p.Height) + buttonHeight
}
