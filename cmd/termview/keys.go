package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"raycaster/internal/sim"
)

// holdWindow keeps a key active after its last event. Terminals report
// presses and auto-repeats but never releases.
const holdWindow = 180 * time.Millisecond

type action int

const (
	turnLeft action = iota
	turnRight
	walkForward
	walkBack
	numActions
)

// keyLatch converts key events into held intents.
type keyLatch struct {
	lastSeen [numActions]time.Time
	quit     bool
}

func actionFor(ev *tcell.EventKey) (action, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return turnLeft, true
	case tcell.KeyRight:
		return turnRight, true
	case tcell.KeyUp:
		return walkForward, true
	case tcell.KeyDown:
		return walkBack, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return turnLeft, true
		case 'd', 'D':
			return turnRight, true
		case 'w', 'W':
			return walkForward, true
		case 's', 'S':
			return walkBack, true
		}
	}
	return 0, false
}

// Observe records one key event.
func (l *keyLatch) Observe(ev *tcell.EventKey, now time.Time) {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
		l.quit = true
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
		l.quit = true
	default:
		if a, ok := actionFor(ev); ok {
			l.lastSeen[a] = now
		}
	}
}

func (l *keyLatch) held(a action, now time.Time) bool {
	t := l.lastSeen[a]
	return !t.IsZero() && now.Sub(t) <= holdWindow
}

// Intents returns the intents active at now.
func (l *keyLatch) Intents(now time.Time) sim.Intents {
	var in sim.Intents
	if l.held(turnLeft, now) {
		in.Turn--
	}
	if l.held(turnRight, now) {
		in.Turn++
	}
	if l.held(walkForward, now) {
		in.Walk++
	}
	if l.held(walkBack, now) {
		in.Walk--
	}
	in.Quit = l.quit
	return in
}
