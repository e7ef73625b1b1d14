package graphics

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNewTexture_Validation(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		pixels int
		ok     bool
	}{
		{"square", 4, 4, 16, true},
		{"short", 4, 4, 15, false},
		{"not square", 4, 2, 8, false},
		{"empty", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTexture(tt.name, tt.w, tt.h, make([]uint32, tt.pixels))
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrTextureShape) {
				t.Fatalf("expected ErrTextureShape, got %v", err)
			}
		})
	}
}

func TestTextureAt_Clamps(t *testing.T) {
	tex, err := NewTexture("t", 2, 2, []uint32{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if got := tex.At(-5, 0); got != 1 {
		t.Errorf("At(-5,0) = %d, want 1", got)
	}
	if got := tex.At(9, 9); got != 4 {
		t.Errorf("At(9,9) = %d, want 4", got)
	}
	if got := tex.At(1, 0); got != 2 {
		t.Errorf("At(1,0) = %d, want 2", got)
	}
}

func TestPackUnpackAndShade(t *testing.T) {
	c := PackARGB(0x11, 0x22, 0x33, 0xFF)
	if c != 0xFF112233 {
		t.Fatalf("PackARGB = %#x", c)
	}
	r, g, b, a := UnpackARGB(c)
	if r != 0x11 || g != 0x22 || b != 0x33 || a != 0xFF {
		t.Errorf("UnpackARGB = %x %x %x %x", r, g, b, a)
	}
	if got := Shade(PackARGB(200, 100, 50, 0xFF), 0.5); got != PackARGB(100, 50, 25, 0xFF) {
		t.Errorf("Shade = %#x", got)
	}
	if got := Shade(c, 1); got != c {
		t.Errorf("Shade by 1 changed colour: %#x", got)
	}
}

func TestTextureTable_Lookup(t *testing.T) {
	table, err := DefaultTextureTable(16)
	if err != nil {
		t.Fatal(err)
	}
	if table.Count() != len(DefaultTextureNames) {
		t.Fatalf("Count = %d, want %d", table.Count(), len(DefaultTextureNames))
	}
	for id := 1; id <= table.Count(); id++ {
		tex := table.Texture(id)
		if tex == nil || tex.Name != DefaultTextureNames[id-1] {
			t.Errorf("material %d: got %+v", id, tex)
		}
		if tex.Width != 16 || len(tex.Pixels) != 256 {
			t.Errorf("material %d: bad shape %dx%d", id, tex.Width, tex.Height)
		}
	}
	if table.Texture(0) != nil || table.Texture(table.Count()+1) != nil {
		t.Error("out-of-range material ids should return nil")
	}
}

func TestNewTextureTable_Rejects(t *testing.T) {
	if _, err := NewTextureTable(nil); !errors.Is(err, ErrMissingTexture) {
		t.Errorf("empty table: got %v", err)
	}
	if _, err := NewTextureTable([]*Texture{nil}); !errors.Is(err, ErrMissingTexture) {
		t.Errorf("nil entry: got %v", err)
	}
	bad := &Texture{Name: "bad", Width: 2, Height: 2, Pixels: make([]uint32, 3)}
	if _, err := NewTextureTable([]*Texture{bad}); !errors.Is(err, ErrTextureShape) {
		t.Errorf("bad shape: got %v", err)
	}
}

func TestProceduralTexture_Deterministic(t *testing.T) {
	a, err := ProceduralTexture("redbrick", 32)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := ProceduralTexture("redbrick", 32)
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("pixel %d differs", i)
		}
		if a.Pixels[i]>>24 != 0xFF {
			t.Fatalf("pixel %d is not opaque: %#x", i, a.Pixels[i])
		}
	}
	unknown, err := ProceduralTexture("nope", 4)
	if err != nil {
		t.Fatal(err)
	}
	if unknown.Pixels[0] != PackARGB(128, 128, 128, 0xFF) {
		t.Errorf("placeholder colour = %#x", unknown.Pixels[0])
	}
}

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestTextureManager_LoadTable(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "red.png"), 8, 8, color.RGBA{255, 0, 0, 255})

	manifest := `
textures:
  - id: 2
    name: wood
    file: missing.png
  - id: 1
    name: red
    file: red.png
  - id: 3
    name: custom
    pattern: bluestone
`
	path := filepath.Join(dir, "textures.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	tm := NewTextureManager(16, dir)
	table, err := tm.LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if table.Count() != 3 {
		t.Fatalf("Count = %d, want 3", table.Count())
	}
	red := table.Texture(1)
	if red.Width != 16 || red.At(5, 5) != PackARGB(255, 0, 0, 255) {
		t.Errorf("PNG texture not resampled correctly: %dx%d %#x", red.Width, red.Height, red.At(5, 5))
	}
	wood, _ := ProceduralTexture("wood", 16)
	if table.Texture(2).Pixels[17] != wood.Pixels[17] {
		t.Error("missing file should fall back to the pattern matching its name")
	}
	blue, _ := ProceduralTexture("bluestone", 16)
	if table.Texture(3).Pixels[40] != blue.Pixels[40] {
		t.Error("explicit pattern not used")
	}
}

func TestTextureManager_RejectsGapsInIDs(t *testing.T) {
	tm := NewTextureManager(8, "")
	_, err := tm.BuildTable(&Manifest{Textures: []ManifestEntry{{ID: 1, Name: "wood"}, {ID: 3, Name: "eagle"}}})
	if !errors.Is(err, ErrMissingTexture) {
		t.Fatalf("expected ErrMissingTexture, got %v", err)
	}
}

func TestTextureManager_EmptyPathUsesDefaults(t *testing.T) {
	table, err := NewTextureManager(8, "").LoadTable("")
	if err != nil {
		t.Fatal(err)
	}
	if table.Count() != len(DefaultTextureNames) {
		t.Errorf("Count = %d", table.Count())
	}
}
