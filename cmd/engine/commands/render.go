package commands

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/session"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	snakeColor   = termbox.ColorGreen
	headColor    = termbox.ColorYellow
	foodColor    = termbox.ColorRed
	powerUpColor = termbox.ColorMagenta

	left = 2
	top  = 2
)

var pauseMessages = map[string]string{
	"pause-pc":    "Paused - press space to resume",
	"pause-phone": "Paused - tap to resume",
}

// cellOf maps a board point to a terminal cell, one character per grid cell.
func cellOf(p pb.Point, cellSize int32) (int, int) {
	if cellSize <= 0 {
		cellSize = 1
	}
	return left + int(p.X/cellSize), top + 1 + int(p.Y/cellSize)
}

func boardCells(f *pb.Frame) (int, int) {
	if f.CellSize <= 0 {
		return 0, 0
	}
	return int(f.Width / f.CellSize), int(f.Height / f.CellSize)
}

func statusLine(f *pb.Frame) string {
	return fmt.Sprintf("Snakefield - Score %d - Turn %d - %dms", f.Score, f.Turn, f.TickIntervalMS)
}

// banner is the message shown under the board, if any.
func banner(f *pb.Frame) string {
	switch f.Phase {
	case pb.PhaseGameOver:
		cause := ""
		if f.Death != nil {
			cause = " (" + f.Death.Cause + ")"
		}
		return fmt.Sprintf("Game Over%s - score %d - press r to play again", cause, f.Score)
	case pb.PhaseWaiting:
		return "Board too small - resize to start"
	case pb.PhasePaused:
		if msg, ok := pauseMessages[f.PauseMessage]; ok {
			return msg
		}
		return "Paused"
	}
	return f.MultiplierMessage()
}

func render(frame *pb.Frame) error {
	if frame == nil {
		return errors.New("received nil frame")
	}
	err := termbox.Clear(defaultColor, defaultColor)
	if err != nil {
		return err
	}

	w, h := boardCells(frame)
	tbprint(left, top-1, defaultColor, defaultColor, statusLine(frame))
	renderBoard(w, h)

	for i, p := range frame.Snake {
		color := snakeColor
		if i == 0 {
			color = headColor
		}
		x, y := cellOf(p, frame.CellSize)
		termbox.SetCell(x, y, ' ', color, color)
	}
	if frame.Food != nil {
		x, y := cellOf(*frame.Food, frame.CellSize)
		termbox.SetCell(x, y, '●', foodColor, bgColor)
	}
	if frame.PowerUp != nil {
		x, y := cellOf(*frame.PowerUp, frame.CellSize)
		termbox.SetCell(x, y, '★', powerUpColor, bgColor)
	}

	tbprint(left, top+h+2, defaultColor, defaultColor, banner(frame))
	return termbox.Flush()
}

func renderBoard(w, h int) {
	bottom := top + h + 1
	for i := top + 1; i < bottom; i++ {
		termbox.SetCell(left-1, i, '│', defaultColor, bgColor)
		termbox.SetCell(left+w, i, '│', defaultColor, bgColor)
	}

	termbox.SetCell(left-1, top, '┌', defaultColor, bgColor)
	termbox.SetCell(left-1, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(left+w, top, '┐', defaultColor, bgColor)
	termbox.SetCell(left+w, bottom, '┘', defaultColor, bgColor)

	fill(left, top, w, 1, termbox.Cell{Ch: '─'})
	fill(left, bottom, w, 1, termbox.Cell{Ch: '─'})
}

func fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			termbox.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}

// keyIntent maps a key press to an intent. esc is handled by the caller.
func keyIntent(ev termbox.Event) (session.Intent, bool) {
	if ev.Type != termbox.EventKey {
		return session.Intent{}, false
	}
	switch ev.Key {
	case termbox.KeyArrowUp:
		return session.Intent{Type: session.IntentDirection, Direction: pb.DirectionUp}, true
	case termbox.KeyArrowDown:
		return session.Intent{Type: session.IntentDirection, Direction: pb.DirectionDown}, true
	case termbox.KeyArrowLeft:
		return session.Intent{Type: session.IntentDirection, Direction: pb.DirectionLeft}, true
	case termbox.KeyArrowRight:
		return session.Intent{Type: session.IntentDirection, Direction: pb.DirectionRight}, true
	case termbox.KeySpace:
		return session.Intent{Type: session.IntentPause}, true
	}
	switch ev.Ch {
	case 'r', 'R':
		return session.Intent{Type: session.IntentRestart}, true
	case 'p', 'P':
		return session.Intent{Type: session.IntentPause}, true
	}
	return session.Intent{}, false
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			ev <- termbox.PollEvent()
		}
	}(eventQueue)
	return eventQueue
}
