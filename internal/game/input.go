package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"raycaster/internal/game/keytracker"
	"raycaster/internal/sim"
)

// KeyState reports whether a key is held.
type KeyState func(ebiten.Key) bool

// InputHandler maps keyboard state to frame intents and view toggles.
type InputHandler struct {
	minimapKey *keytracker.KeyStateTracker
	hudKey     *keytracker.KeyStateTracker
}

// NewInputHandler creates a new input handler
func NewInputHandler() *InputHandler {
	return &InputHandler{
		minimapKey: keytracker.New(ebiten.KeyM),
		hudKey:     keytracker.New(ebiten.KeyF3),
	}
}

// Toggles are the single-press view switches of one frame.
type Toggles struct {
	Minimap bool
	HUD     bool
}

// Poll samples the keyboard.
func (ih *InputHandler) Poll() (sim.Intents, Toggles) {
	return ih.Read(ebiten.IsKeyPressed)
}

// Read derives intents and toggles from pressed.
func (ih *InputHandler) Read(pressed KeyState) (sim.Intents, Toggles) {
	return IntentsFromKeys(pressed), Toggles{
		Minimap: ih.minimapKey.Observe(pressed(ebiten.KeyM)),
		HUD:     ih.hudKey.Observe(pressed(ebiten.KeyF3)),
	}
}

// IntentsFromKeys maps arrows and WASD to turn/walk intents and Escape to quit.
// Opposing keys cancel out.
func IntentsFromKeys(pressed KeyState) sim.Intents {
	var in sim.Intents
	if pressed(ebiten.KeyLeft) || pressed(ebiten.KeyA) {
		in.Turn--
	}
	if pressed(ebiten.KeyRight) || pressed(ebiten.KeyD) {
		in.Turn++
	}
	if pressed(ebiten.KeyUp) || pressed(ebiten.KeyW) {
		in.Walk++
	}
	if pressed(ebiten.KeyDown) || pressed(ebiten.KeyS) {
		in.Walk--
	}
	in.Quit = pressed(ebiten.KeyEscape)
	return in
}
