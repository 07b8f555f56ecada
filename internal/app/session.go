package app

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/termkeys/internal/input/tcellkey"
)

var (
	styleHeader = tcell.StyleDefault.Bold(true)
	styleDim    = tcell.StyleDefault.Dim(true)
	styleNone   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// SetScreen attaches the screen used by Run.
func (a *App) SetScreen(s tcell.Screen) error {
	if a.running.Load() {
		return ErrAlreadyRunning
	}
	a.screen = s
	return nil
}

// Run shows every key press and the bytes it translates to until Ctrl+C
// or Shutdown. It returns ErrQuit on a normal exit.
func (a *App) Run() error {
	if a.screen == nil {
		return ErrNoScreen
	}
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.screen.Init(); err != nil {
		return NewComponentError("screen", "init", err)
	}
	defer a.screen.Fini()

	return a.loop()
}

// loop processes screen events on an initialized screen.
func (a *App) loop() error {
	a.draw()
	for {
		switch ev := a.screen.PollEvent().(type) {
		case nil:
			return ErrQuit
		case *tcell.EventInterrupt:
			return ErrQuit
		case *tcell.EventKey:
			if isQuit(ev) {
				return ErrQuit
			}
			a.handleKey(ev)
		case *tcell.EventResize:
			a.screen.Sync()
		}
		a.draw()
	}
}

// isQuit reports whether ev is Ctrl+C, in either of the forms tcell
// delivers it.
func isQuit(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 &&
		(ev.Rune() == 'c' || ev.Rune() == 'C')
}

// handleKey translates a terminal key event. Text input is recorded
// without output.
func (a *App) handleKey(ev *tcell.EventKey) {
	kev, ok := tcellkey.Convert(ev)
	if ok {
		a.Translate(kev)
		return
	}

	input := ev.Name()
	if ev.Key() == tcell.KeyRune {
		input = strconv.QuoteRune(ev.Rune())
	}
	a.mu.Lock()
	a.record(Entry{Input: input})
	a.mu.Unlock()
}

// statusLine describes the stream state.
func (a *App) statusLine() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := a.translator
	modes := t.Modes()
	gestures := "off"
	if t.Gestures() {
		gestures = fmt.Sprintf("on (%s, state %s)", t.Debounce(), t.GestureState())
	}
	script := "none"
	if a.remapper != nil {
		script = a.remapper.Path()
	}
	return fmt.Sprintf("cursor_app=%v keypad_app=%v gestures=%s script=%s",
		modes.CursorKeysApplication, modes.KeypadApplication, gestures, script)
}

func (a *App) draw() {
	s := a.screen
	s.Clear()
	_, height := s.Size()

	drawText(s, 0, 0, styleHeader, "termkeys stream "+a.translator.ID().String())
	drawText(s, 0, 1, styleDim, a.statusLine())
	drawText(s, 0, 2, styleDim, "press keys to see their escape sequences, Ctrl+C quits")

	history := a.History()
	y := 4
	for i := len(history) - 1; i >= 0 && y < height; i-- {
		e := history[i]
		x := drawText(s, 0, y, tcell.StyleDefault, fmt.Sprintf("%-22s", e.Input))
		if e.OK {
			drawText(s, x, y, tcell.StyleDefault, strconv.Quote(e.Output))
		} else {
			drawText(s, x, y, styleNone, "-")
		}
		y++
	}
	s.Show()
}

// drawText writes text at (x, y) and returns the column after it.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}
