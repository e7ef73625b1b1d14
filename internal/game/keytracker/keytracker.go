// Package keytracker turns held-key polling into single-press edges.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker tracks the previous state of one key.
type KeyStateTracker struct {
	key         ebiten.Key
	prevPressed bool
}

// New creates a tracker for key.
func New(key ebiten.Key) *KeyStateTracker {
	return &KeyStateTracker{key: key}
}

// IsKeyJustPressed returns true if the key was not pressed last frame but is pressed this frame.
func (k *KeyStateTracker) IsKeyJustPressed() bool {
	return k.Observe(ebiten.IsKeyPressed(k.key))
}

// Observe feeds the current pressed state and reports a rising edge.
func (k *KeyStateTracker) Observe(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}
