package main

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"raycaster/internal/graphics"
	"raycaster/internal/world"
)

func TestAverageColor(t *testing.T) {
	tex, err := graphics.NewTexture("t", 2, 2, []uint32{
		graphics.PackARGB(0, 0, 0, 255),
		graphics.PackARGB(100, 0, 40, 255),
		graphics.PackARGB(200, 40, 0, 255),
		graphics.PackARGB(100, 0, 0, 255),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := averageColor(tex); got != (color.RGBA{100, 10, 10, 255}) {
		t.Errorf("averageColor = %v", got)
	}
}

func TestLegendAndStats(t *testing.T) {
	table, err := graphics.DefaultTextureTable(4)
	if err != nil {
		t.Fatal(err)
	}
	lines := buildLegendLines(table)
	if len(lines) != 2+table.Count() || !strings.Contains(lines[2], "redbrick") {
		t.Errorf("legend = %q", lines)
	}
	if len(buildSwatches(table)) != table.Count() {
		t.Error("one swatch per material expected")
	}

	md, err := world.DefaultMapData(64, table.Count())
	if err != nil {
		t.Fatal(err)
	}
	stats := strings.Join(mapStats(mapInfo{Path: "builtin", Data: md}, 0, 2), "\n")
	for _, want := range []string{"Map 1 of 2", "Tiles: 20x13", "Materials used: 1", "centre of level", "valid"} {
		if !strings.Contains(stats, want) {
			t.Errorf("stats missing %q:\n%s", want, stats)
		}
	}

	bad := strings.Join(mapStats(mapInfo{Path: "x.map", Err: errors.New("boom")}, 1, 2), "\n")
	if !strings.Contains(bad, "invalid") {
		t.Errorf("stats for failed map:\n%s", bad)
	}
}
