package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"raycaster/internal/config"
	"raycaster/internal/sim"
	"raycaster/internal/world"
)

func TestNew_Defaults(t *testing.T) {
	cfg := config.Default()
	cfg.Graphics.TextureSize = 8

	a, err := New(cfg, 80, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Shutdown()

	if a.Map.Grid.Cols() != 20 || a.Map.Grid.Rows() != 13 {
		t.Errorf("default map is %dx%d", a.Map.Grid.Cols(), a.Map.Grid.Rows())
	}
	if b := a.Sim.Buffer(); b.Width != 80 || b.Height != 50 {
		t.Errorf("buffer %dx%d", b.Width, b.Height)
	}
	if p := a.Sim.Player(); p.X != 640 || p.Y != 416 {
		t.Errorf("start = (%v, %v), want world centre", p.X, p.Y)
	}
	if err := a.Sim.Step(sim.Intents{Walk: 1}, 0.1); err != nil {
		t.Fatal(err)
	}
}

func TestNew_DerivesScreenFromMap(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "room.map")
	if err := os.WriteFile(mapPath, []byte("# tiny\n1111\n1+01\n1111\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.World.MapFile = mapPath
	cfg.World.TileSize = 16
	cfg.Graphics.TextureSize = 4

	a, err := New(cfg, 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Shutdown()

	if b := a.Sim.Buffer(); b.Width != 64 || b.Height != 48 {
		t.Errorf("buffer %dx%d, want 64x48", b.Width, b.Height)
	}
	if p := a.Sim.Player(); p.X != 24 || p.Y != 24 {
		t.Errorf("start = (%v, %v), want (24, 24)", p.X, p.Y)
	}
}

func TestNew_RejectsOpenMap(t *testing.T) {
	mapPath := filepath.Join(t.TempDir(), "open.map")
	if err := os.WriteFile(mapPath, []byte("111\n101\n100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.World.MapFile = mapPath

	_, err := New(cfg, 10, 10)
	if !errors.Is(err, world.ErrNotEnclosed) {
		t.Fatalf("expected ErrNotEnclosed, got %v", err)
	}
}

func TestNew_StatsServer(t *testing.T) {
	cfg := config.Default()
	cfg.Graphics.TextureSize = 4
	cfg.Debug.StatsAddr = "127.0.0.1:0"

	a, err := New(cfg, 20, 10)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Shutdown()
	if a.Stats == nil {
		t.Fatal("stats server not started")
	}

	if err := a.Sim.Step(sim.Intents{}, 0.1); err != nil {
		t.Fatal(err)
	}
	a.Publish(a.Sim.Snapshot())

	rec := httptestGet(t, a, "/debug/pose")
	var snap sim.Snapshot
	if err := json.Unmarshal(rec, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Frame != 1 {
		t.Errorf("frame = %d, want 1", snap.Frame)
	}
}

func httptestGet(t *testing.T, a *App, path string) []byte {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Stats.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s = %d", path, rec.Code)
	}
	return rec.Body.Bytes()
}
