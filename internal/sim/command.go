package sim

// CommandKind identifies a player input.
type CommandKind int

const (
	// NudgeLeft and NudgeRight are discrete key impulses.
	NudgeLeft CommandKind = iota
	NudgeRight
	// Hold/Release pairs bracket a continuous press on an on-screen button.
	HoldLeft
	ReleaseLeft
	HoldRight
	ReleaseRight
)

func (k CommandKind) String() string {
	switch k {
	case NudgeLeft:
		return "nudge-left"
	case NudgeRight:
		return "nudge-right"
	case HoldLeft:
		return "hold-left"
	case ReleaseLeft:
		return "release-left"
	case HoldRight:
		return "hold-right"
	case ReleaseRight:
		return "release-right"
	default:
		return "unknown"
	}
}

// Command is a single input event waiting for the next tick.
type Command struct {
	Kind CommandKind
}

// apply feeds a command into the paddle.
func (c Command) apply(p Params, b *Paddle) {
	switch c.Kind {
	case NudgeLeft:
		b.Impulse(p, -p.KeyImpulse)
	case NudgeRight:
		b.Impulse(p, p.KeyImpulse)
	case HoldLeft:
		b.HoldLeft = true
	case ReleaseLeft:
		b.HoldLeft = false
	case HoldRight:
		b.HoldRight = true
	case ReleaseRight:
		b.HoldRight = false
	}
}

// Queue collects commands between ticks in arrival order. It is owned by
// the host loop and is not safe for concurrent use.
type Queue struct {
	cmds []Command
}

// Push appends a command.
func (q *Queue) Push(c Command) {
	q.cmds = append(q.cmds, c)
}

// Len reports the number of pending commands.
func (q *Queue) Len() int {
	return len(q.cmds)
}

// Drain returns the pending commands and empties the queue.
func (q *Queue) Drain() []Command {
	out := q.cmds
	q.cmds = nil
	return out
}
