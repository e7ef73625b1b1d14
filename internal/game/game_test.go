package game

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"raycaster/internal/player"
	"raycaster/internal/sim"
	"raycaster/internal/threading/monitoring"
)

func keys(held ...ebiten.Key) KeyState {
	set := make(map[ebiten.Key]bool, len(held))
	for _, k := range held {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestIntentsFromKeys(t *testing.T) {
	tests := []struct {
		name string
		held []ebiten.Key
		want sim.Intents
	}{
		{"idle", nil, sim.Intents{}},
		{"forward arrow", []ebiten.Key{ebiten.KeyUp}, sim.Intents{Walk: 1}},
		{"back wasd", []ebiten.Key{ebiten.KeyS}, sim.Intents{Walk: -1}},
		{"turn left", []ebiten.Key{ebiten.KeyA}, sim.Intents{Turn: -1}},
		{"turn right", []ebiten.Key{ebiten.KeyRight}, sim.Intents{Turn: 1}},
		{"opposing cancel", []ebiten.Key{ebiten.KeyLeft, ebiten.KeyD, ebiten.KeyW, ebiten.KeyDown}, sim.Intents{}},
		{"arrow and letter together", []ebiten.Key{ebiten.KeyUp, ebiten.KeyW}, sim.Intents{Walk: 1}},
		{"quit", []ebiten.Key{ebiten.KeyEscape, ebiten.KeyUp}, sim.Intents{Walk: 1, Quit: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntentsFromKeys(keys(tt.held...)); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInputHandler_TogglesOnPress(t *testing.T) {
	ih := NewInputHandler()

	_, tg := ih.Read(keys(ebiten.KeyM))
	if !tg.Minimap || tg.HUD {
		t.Fatalf("first press: %+v", tg)
	}
	_, tg = ih.Read(keys(ebiten.KeyM))
	if tg.Minimap {
		t.Error("held key must not toggle again")
	}
	_, tg = ih.Read(keys(ebiten.KeyF3))
	if !tg.HUD || tg.Minimap {
		t.Errorf("F3 press: %+v", tg)
	}
}

func TestHUDLines(t *testing.T) {
	m := monitoring.FrameMetrics{
		FramesPerSecond:   29.5,
		AvgFrameTime:      33 * time.Millisecond,
		AvgRaycastTime:    1500 * time.Microsecond,
		AvgProjectionTime: 2 * time.Millisecond,
	}
	lines := hudLines(m, 30, player.Player{X: 640, Y: 416, Angle: math.Pi / 2})
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	for _, want := range []string{"FPS 29.5 / 30", "cast 1.50ms", "heading 90°", "pos (640, 416)"} {
		if !strings.Contains(strings.Join(lines, "\n"), want) {
			t.Errorf("HUD %q missing %q", lines, want)
		}
	}
}

func TestMinimapScale(t *testing.T) {
	m := NewMinimap(0.2, true)
	if got := m.toScreen(640); got != 128 {
		t.Errorf("toScreen(640) = %v, want 128", got)
	}
}
