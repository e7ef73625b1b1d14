package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"raycaster/internal/logger"

	"github.com/sirupsen/logrus"
)

// startMarker marks the player start cell in a map file. The cell itself is empty.
const startMarker = '+'

// MapData contains the loaded map information
type MapData struct {
	Grid   *Grid
	StartX int // start tile column, -1 when the file has no start marker
	StartY int
}

// StartPosition returns the player start in world units: the centre of the start tile,
// or the centre of the world extent when no start tile is set.
func (md *MapData) StartPosition() (x, y float64) {
	ts := md.Grid.TileSize()
	if md.StartX < 0 || md.StartY < 0 {
		return md.Grid.Width() / 2, md.Grid.Height() / 2
	}
	return float64(md.StartX)*ts + ts/2, float64(md.StartY)*ts + ts/2
}

// MapLoader handles loading world maps from files
type MapLoader struct {
	tileSize    float64
	maxMaterial int
}

// NewMapLoader creates a loader for maps with the given tile size and material count.
func NewMapLoader(tileSize float64, maxMaterial int) *MapLoader {
	return &MapLoader{
		tileSize:    tileSize,
		maxMaterial: maxMaterial,
	}
}

// LoadMap loads a map from the specified file path
func (ml *MapLoader) LoadMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	md, err := ml.ParseMap(file)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", mapPath, err)
	}
	logger.For("world").WithFields(logrus.Fields{
		"file": mapPath,
		"rows": md.Grid.Rows(),
		"cols": md.Grid.Cols(),
	}).Debug("map loaded")
	return md, nil
}

// ParseMap reads a map: one row per line, one digit per cell, '#' comment lines
// and '+' for the start cell. The border must be fully enclosed.
func (ml *MapLoader) ParseMap(r io.Reader) (*MapData, error) {
	var cells [][]int
	md := &MapData{StartX: -1, StartY: -1}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		// Skip empty lines and comment lines (lines starting with #)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		row := make([]int, 0, len(line))
		for col, ch := range line {
			switch {
			case ch == startMarker:
				if md.StartX >= 0 {
					return nil, fmt.Errorf("line %d: second start marker", lineNo)
				}
				md.StartX, md.StartY = col, len(cells)
				row = append(row, 0)
			case ch >= '0' && ch <= '9':
				row = append(row, int(ch-'0'))
			default:
				return nil, fmt.Errorf("line %d, column %d: unexpected character %q", lineNo, col+1, ch)
			}
		}
		cells = append(cells, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map: %w", err)
	}

	grid, err := NewGrid(cells, ml.tileSize, ml.maxMaterial)
	if err != nil {
		return nil, err
	}
	if err := grid.ValidateEnclosed(); err != nil {
		return nil, err
	}
	md.Grid = grid
	return md, nil
}
