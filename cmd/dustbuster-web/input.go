package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"dustbuster/internal/sim"
)

const (
	buttonHeight = 60

	// Browser-like key autorepeat, in ticks.
	keyRepeatDelay    = 24
	keyRepeatInterval = 3
)

// repeats reports whether a key held for d ticks fires an impulse this tick.
func repeats(d int) bool {
	if d == 1 {
		return true
	}
	return d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}

// buttonAt reports which on-screen button covers a point: -1 for the left
// half of the button bar, 1 for the right half, 0 outside it.
func buttonAt(p sim.Params, x, y int) int {
	if float64(y) < p.Height || float64(y) >= p.Height+buttonHeight {
		return 0
	}
	if float64(x) < p.Width/2 {
		return -1
	}
	return 1
}

// holdCommands returns the commands that move the held buttons from
// (prevLeft, prevRight) to (left, right).
func holdCommands(prevLeft, prevRight, left, right bool) []sim.Command {
	var cmds []sim.Command
	if left != prevLeft {
		if left {
			cmds = append(cmds, sim.Command{Kind: sim.HoldLeft})
		} else {
			cmds = append(cmds, sim.Command{Kind: sim.ReleaseLeft})
		}
	}
	if right != prevRight {
		if right {
			cmds = append(cmds, sim.Command{Kind: sim.HoldRight})
		} else {
			cmds = append(cmds, sim.Command{Kind: sim.ReleaseRight})
		}
	}
	return cmds
}

// pressedButtons scans every active touch and the left mouse button.
func pressedButtons(p sim.Params, touches []ebiten.TouchID) (left, right bool) {
	press := func(x, y int) {
		switch buttonAt(p, x, y) {
		case -1:
			left = true
		case 1:
			right = true
		}
	}
	for _, id := range touches {
		press(ebiten.TouchPosition(id))
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		press(ebiten.CursorPosition())
	}
	return left, right
}

// keyCommands turns arrow key state into nudges.
func keyCommands() []sim.Command {
	var cmds []sim.Command
	if repeats(inpututil.KeyPressDuration(ebiten.KeyArrowLeft)) {
		cmds = append(cmds, sim.Command{Kind: sim.NudgeLeft})
	}
	if repeats(inpututil.KeyPressDuration(ebiten.KeyArrowRight)) {
		cmds = append(cmds, sim.Command{Kind: sim.NudgeRight})
	}
	return cmds
}

// restartPressed reports a request for a new game after game over.
func restartPressed(p sim.Params) bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		if _, y := ebiten.TouchPosition(id); float64(y) < p.Height {
			return true
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		_, y := ebiten.CursorPosition()
		return float64(y) < p.Height
	}
	return false
}
