package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"dustbuster/internal/sim"
)

const (
	hudRows    = 1 // score and lives
	footerRows = 2 // floor line and touch buttons

	minCols = 32
	minRows = 10

	missFlashFrames = 20

	leftButton  = "[ < ]"
	rightButton = "[ > ]"
)

// Game is the terminal host: it maps tcell input to commands, drives the
// session at a fixed frame rate and draws the playfield scaled to the
// terminal.
type Game struct {
	screen    tcell.Screen
	session   *sim.Session
	frame     time.Duration
	width     int
	height    int
	mouseHold int // -1 left button, 1 right button, 0 none
	missFlash int // frames left to highlight the lives display
	lastFrame time.Time
}

func NewGame(screen tcell.Screen, session *sim.Session, frame time.Duration) *Game {
	width, height := screen.Size()
	return &Game{
		screen:    screen,
		session:   session,
		frame:     frame,
		width:     width,
		height:    height,
		lastFrame: time.Now(),
	}
}

// field returns the terminal rectangle the playfield is scaled into.
func (g *Game) field() (top, rows int) {
	return hudRows, g.height - hudRows - footerRows
}

func (g *Game) toCol(x float64) int {
	p := g.session.Params()
	return int(x / p.Width * float64(g.width))
}

func (g *Game) toRow(y float64) int {
	p := g.session.Params()
	top, rows := g.field()
	row := int(y / p.Height * float64(rows))
	if row >= rows {
		row = rows - 1
	}
	return top + row
}

// span converts a playfield length to a cell count of at least one.
func (g *Game) span(size float64) int {
	p := g.session.Params()
	n := int(size/p.Width*float64(g.width) + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

func (g *Game) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (g *Game) drawCentered(y int, style tcell.Style, text string) {
	g.drawText((g.width-len([]rune(text)))/2, y, style, text)
}

// fitScore formats the score into at most room columns, dropping the label
// first and then the leading digits.
func fitScore(score, room int) string {
	text := fmt.Sprintf("Score: %d", score)
	if len(text) <= room {
		return text
	}
	text = fmt.Sprintf("%d", score)
	if len(text) > room {
		text = text[len(text)-room:]
	}
	return text
}

func (g *Game) drawHUD() {
	st := g.session.State()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	lives := fmt.Sprintf("Lives: %d", st.Lives)
	livesStyle := style
	switch {
	case st.Phase == sim.GameOver:
		lives = "Lives: THE END"
		livesStyle = style.Foreground(tcell.ColorRed).Bold(true)
	case g.missFlash > 0:
		livesStyle = style.Foreground(tcell.ColorRed)
	}
	g.drawText(g.width-len(lives), 0, livesStyle, lives)
	g.drawText(0, 0, style, fitScore(st.Score, g.width-len(lives)-1))
}

func (g *Game) drawDust(d sim.Particle) {
	style := tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	x := g.toCol(d.Left)
	y := g.toRow(d.Top)
	for i := 0; i < g.span(g.session.Params().DustSize); i++ {
		g.screen.SetContent(x+i, y, '░', nil, style)
	}
}

func (g *Game) drawBrush() {
	p := g.session.Params()
	st := g.session.State()
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	x := g.toCol(st.Paddle.Left)
	y := g.toRow(p.MissLine())
	n := g.span(p.BrushSize)
	for i := 0; i < n; i++ {
		r := '▄'
		switch {
		case n > 2 && i == 0:
			r = '\\'
		case n > 2 && i == n-1:
			r = '/'
		}
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (g *Game) drawFloor() {
	floorChar := '━'
	darkGray := tcell.Color(240)
	style := tcell.StyleDefault.Foreground(darkGray)
	y := g.height - footerRows
	for x := 0; x < g.width; x++ {
		g.screen.SetContent(x, y, floorChar, nil, style)
	}
}

func (g *Game) drawButtons() {
	y := g.height - 1
	pressed := tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorBlack)
	idle := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	style := idle
	if g.mouseHold < 0 {
		style = pressed
	}
	g.drawText(0, y, style, leftButton)

	style = idle
	if g.mouseHold > 0 {
		style = pressed
	}
	g.drawText(g.width-len([]rune(rightButton)), y, style, rightButton)
}

func (g *Game) drawGameOver() {
	st := g.session.State()
	_, rows := g.field()
	y := hudRows + rows/2 - 2

	g.drawCentered(y, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true), "THE END")
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	g.drawCentered(y+2, style, fmt.Sprintf("Caught %d, missed %d", st.Caught, st.Missed))
	g.drawCentered(y+3, style, "Press ENTER to restart")
	g.drawCentered(y+4, style, "Press ESC to exit")
}

// buttonAt reports which on-screen button covers a cell.
func (g *Game) buttonAt(x, y int) int {
	if y != g.height-1 {
		return 0
	}
	if x < len([]rune(leftButton)) {
		return -1
	}
	if x >= g.width-len([]rune(rightButton)) {
		return 1
	}
	return 0
}

// setMouseHold moves the held button, releasing the previous one first.
func (g *Game) setMouseHold(side int) {
	if side == g.mouseHold {
		return
	}
	switch g.mouseHold {
	case -1:
		g.session.Push(sim.Command{Kind: sim.ReleaseLeft})
	case 1:
		g.session.Push(sim.Command{Kind: sim.ReleaseRight})
	}
	switch side {
	case -1:
		g.session.Push(sim.Command{Kind: sim.HoldLeft})
	case 1:
		g.session.Push(sim.Command{Kind: sim.HoldRight})
	}
	g.mouseHold = side
}

func (g *Game) handleInput(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !g.session.Running() {
			if ev.Key() == tcell.KeyEnter {
				g.session.Restart()
			}
			return
		}
		switch ev.Key() {
		case tcell.KeyLeft:
			g.session.Push(sim.Command{Kind: sim.NudgeLeft})
		case tcell.KeyRight:
			g.session.Push(sim.Command{Kind: sim.NudgeRight})
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			g.setMouseHold(0)
			return
		}
		x, y := ev.Position()
		g.setMouseHold(g.buttonAt(x, y))
	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
	}
}

// update advances the session by one frame while the game is running.
func (g *Game) update(deltaTime time.Duration) {
	if g.missFlash > 0 {
		g.missFlash--
	}
	if !g.session.Running() {
		return
	}
	if out := g.session.Tick(deltaTime); out.Missed() > 0 {
		g.missFlash = missFlashFrames
	}
}

func (g *Game) render() {
	g.screen.Clear()

	if g.width < minCols || g.height < minRows {
		g.drawText(0, 0, tcell.StyleDefault, "Terminal too small")
		g.screen.Show()
		return
	}

	for _, d := range g.session.State().Particles {
		g.drawDust(d)
	}
	g.drawBrush()
	g.drawFloor()
	g.drawButtons()
	g.drawHUD()
	if !g.session.Running() {
		g.drawGameOver()
	}

	g.screen.Show()
}

// isQuit reports whether a key event ends the program.
func isQuit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	return key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC ||
		(key.Key() == tcell.KeyRune && key.Rune() == 'q')
}

func (g *Game) run() {
	// Start input handling goroutine
	inputChan := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(inputChan)
				return
			}
			inputChan <- ev
		}
	}()

	ticker := time.NewTicker(g.frame)
	defer ticker.Stop()

	for {
		now := time.Now()
		deltaTime := now.Sub(g.lastFrame)
		g.lastFrame = now

		// Cap delta time to prevent large jumps
		if deltaTime > 100*time.Millisecond {
			deltaTime = 100 * time.Millisecond
		}

		// Drain every pending event into the command queue before the tick
	drain:
		for {
			select {
			case ev, ok := <-inputChan:
				if !ok || isQuit(ev) {
					return
				}
				g.handleInput(ev)
			default:
				break drain
			}
		}

		g.update(deltaTime)
		g.render()

		<-ticker.C
	}
}
