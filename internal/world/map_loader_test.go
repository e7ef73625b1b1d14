package world

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMapLoader_ParseMap(t *testing.T) {
	src := strings.Join([]string{
		"# test room",
		"11111",
		"10+01",
		"",
		"10021",
		"11111",
	}, "\n")

	md, err := NewMapLoader(64, 2).ParseMap(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	if md.Grid.Rows() != 4 || md.Grid.Cols() != 5 {
		t.Errorf("expected 4x5 grid, got %dx%d", md.Grid.Rows(), md.Grid.Cols())
	}
	if md.StartX != 2 || md.StartY != 1 {
		t.Errorf("expected start (2,1), got (%d,%d)", md.StartX, md.StartY)
	}
	if v, _ := md.Grid.TileAt(2, 1); v != 0 {
		t.Errorf("start cell should be empty, got %d", v)
	}
	x, y := md.StartPosition()
	if x != 160 || y != 96 {
		t.Errorf("StartPosition = (%v,%v), want (160,96)", x, y)
	}
}

func TestMapLoader_ParseMapErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"open border", "111\n001\n111\n", ErrNotEnclosed},
		{"ragged", "111\n11\n111\n", ErrRaggedGrid},
		{"material range", "111\n151\n111\n", ErrMaterialRange},
		{"no rows", "# only comments\n", ErrEmptyGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMapLoader(64, 4).ParseMap(strings.NewReader(tt.src))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	for _, src := range []string{"111\n1x1\n111\n", "111\n1++1\n111\n"} {
		if _, err := NewMapLoader(64, 4).ParseMap(strings.NewReader(src)); err == nil {
			t.Errorf("expected parse error for %q", src)
		}
	}
}

func TestMapLoader_LoadMapFile(t *testing.T) {
	mapPath := filepath.Join(t.TempDir(), "room.map")
	if err := os.WriteFile(mapPath, []byte("1111\n1001\n1111\n"), 0o644); err != nil {
		t.Fatalf("write map: %v", err)
	}

	md, err := NewMapLoader(64, 1).LoadMap(mapPath)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	// no start marker: centre of the world extent
	x, y := md.StartPosition()
	if x != 128 || y != 96 {
		t.Errorf("StartPosition = (%v,%v), want (128,96)", x, y)
	}

	if _, err := NewMapLoader(64, 1).LoadMap(filepath.Join(t.TempDir(), "missing.map")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultMapData(t *testing.T) {
	md, err := DefaultMapData(64, 8)
	if err != nil {
		t.Fatalf("DefaultMapData: %v", err)
	}
	if md.Grid.Rows() != 13 || md.Grid.Cols() != 20 {
		t.Errorf("expected 13x20, got %dx%d", md.Grid.Rows(), md.Grid.Cols())
	}
	if !md.Grid.IsEnclosed() {
		t.Error("default map must be enclosed")
	}
	x, y := md.StartPosition()
	if md.Grid.IsTileBlocking(int(x/64), int(y/64)) {
		t.Error("default start position is inside a wall")
	}

	if _, err := DefaultMapData(64, 5); !errors.Is(err, ErrMaterialRange) {
		t.Errorf("expected ErrMaterialRange with only 5 textures, got %v", err)
	}
}

func TestMapLoader_ShippedMap(t *testing.T) {
	md, err := NewMapLoader(64, 8).LoadMap(filepath.Join("..", "..", "assets", "maps", "default.map"))
	if err != nil {
		t.Fatalf("shipped map invalid: %v", err)
	}
	if md.Grid.Cols() != 20 || md.Grid.Rows() != 13 {
		t.Errorf("shipped map is %dx%d", md.Grid.Cols(), md.Grid.Rows())
	}
	x, y := md.StartPosition()
	if v, _ := md.Grid.TileAt(int(x/64), int(y/64)); v != 0 {
		t.Errorf("start (%v, %v) is inside material %d", x, y, v)
	}
}
