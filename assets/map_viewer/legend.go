package main

import (
	"fmt"
	"image/color"

	"raycaster/internal/graphics"
)

// averageColor is the mean texel of tex, used as the tile swatch.
func averageColor(tex *graphics.Texture) color.RGBA {
	var r, g, b uint64
	for _, c := range tex.Pixels {
		cr, cg, cb, _ := graphics.UnpackARGB(c)
		r += uint64(cr)
		g += uint64(cg)
		b += uint64(cb)
	}
	n := uint64(len(tex.Pixels))
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255}
}

func buildSwatches(table *graphics.TextureTable) []color.RGBA {
	swatches := make([]color.RGBA, table.Count())
	for id := 1; id <= table.Count(); id++ {
		swatches[id-1] = averageColor(table.Texture(id))
	}
	return swatches
}

func buildLegendLines(table *graphics.TextureTable) []string {
	lines := []string{"Materials:", "  0  open floor"}
	for id := 1; id <= table.Count(); id++ {
		tex := table.Texture(id)
		lines = append(lines, fmt.Sprintf("  %d  %s (%dx%d)", id, tex.Name, tex.Width, tex.Height))
	}
	return lines
}

// mapStats summarises one map for the info tab.
func mapStats(m mapInfo, index, total int) []string {
	lines := []string{
		fmt.Sprintf("Map %d of %d", index+1, total),
		fmt.Sprintf("File: %s", m.Path),
	}
	if m.Err != nil {
		return append(lines, "Status: invalid")
	}
	grid := m.Data.Grid
	walls := 0
	used := map[int]bool{}
	for _, row := range grid.Cells() {
		for _, v := range row {
			if v != 0 {
				walls++
				used[v] = true
			}
		}
	}
	start := "centre of level"
	if m.Data.StartX >= 0 {
		start = fmt.Sprintf("tile (%d, %d)", m.Data.StartX, m.Data.StartY)
	}
	return append(lines,
		fmt.Sprintf("Tiles: %dx%d", grid.Cols(), grid.Rows()),
		fmt.Sprintf("Wall cells: %d", walls),
		fmt.Sprintf("Materials used: %d", len(used)),
		fmt.Sprintf("Start: %s", start),
		"Status: valid",
	)
}
