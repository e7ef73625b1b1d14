package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/logger"
	"raycaster/internal/threading/core"
	"raycaster/internal/world"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

type mapInfo struct {
	Key  string
	Path string
	Data *world.MapData
	Err  error
}

type viewer struct {
	maps         []mapInfo
	mapIndex     int
	legendLines  []string
	legendScroll int
	sidebarTab   int
	swatches     []color.RGBA // index material-1
	lastErr      string
}

const (
	tabInfo = iota
	tabLegend
)

func main() {
	ensureRuntimeCWD()
	log := logger.For("map_viewer")

	cfg := config.MustLoadConfig("config.yaml")

	tm := graphics.NewTextureManager(cfg.Graphics.TextureSize, filepath.Dir(cfg.Graphics.TextureManifest))
	textures, err := tm.LoadTable(cfg.Graphics.TextureManifest)
	if err != nil {
		log.WithError(err).Fatal("failed to load textures")
	}

	maps, err := loadMaps(cfg, textures.Count())
	if err != nil {
		log.WithError(err).Warn("map discovery failed")
	}

	v := &viewer{
		maps:        maps,
		legendLines: buildLegendLines(textures),
		sidebarTab:  tabInfo,
		swatches:    buildSwatches(textures),
	}
	if len(maps) == 0 {
		v.lastErr = "no maps found in assets/maps"
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Raycaster Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil && err != ebiten.Termination {
		log.WithError(err).Fatal("viewer stopped")
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		if len(v.maps) > 0 {
			v.mapIndex = (v.mapIndex + 1) % len(v.maps)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		if len(v.maps) > 0 {
			v.mapIndex = (v.mapIndex - 1 + len(v.maps)) % len(v.maps)
		}
	}

	if v.sidebarTab == tabLegend {
		if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
			v.legendScroll++
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
			v.legendScroll--
		}
		v.legendScroll = max(0, min(v.legendScroll, len(v.legendLines)-1))
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.maps) == 0 {
		ebitenutil.DebugPrintAt(screen, v.lastErr, 16, 16)
		return
	}

	m := v.maps[v.mapIndex]
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()

	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	sidebarX := padding + mapAreaW + padding

	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s failed to load:", m.Key), padding, padding)
		ebitenutil.DebugPrintAt(screen, m.Err.Error(), padding, padding+16)
	} else {
		drawMapPanel(screen, m, padding, padding, mapAreaW, mapAreaH, v.swatches)
	}
	drawSidebar(screen, m, sidebarX, padding, sidebarWidth, mapAreaH, v.sidebarTab, v.legendLines, v.legendScroll, v.mapIndex, len(v.maps))
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func drawMapPanel(screen *ebiten.Image, m mapInfo, x, y, w, h int, swatches []color.RGBA) {
	grid := m.Data.Grid
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  (%dx%d)", m.Key, grid.Cols(), grid.Rows()), x, y)
	y += 20
	h -= 20

	tileSize := max(1, min(w/grid.Cols(), h/grid.Rows()))
	floor := color.RGBA{35, 35, 45, 255}

	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			v, _ := grid.TileAt(col, row)
			c := floor
			if v > 0 && v <= len(swatches) {
				c = swatches[v-1]
			}
			drawFilledRect(screen, x+col*tileSize, y+row*tileSize, tileSize-1, tileSize-1, c)
		}
	}

	if m.Data.StartX >= 0 {
		cx := float32(x + m.Data.StartX*tileSize + tileSize/2)
		cy := float32(y + m.Data.StartY*tileSize + tileSize/2)
		vector.DrawFilledCircle(screen, cx, cy, float32(tileSize)/3, color.RGBA{0, 220, 220, 255}, true)
	}
}

func drawSidebar(screen *ebiten.Image, m mapInfo, x, y, w, h int, tab int, legendLines []string, scroll, index, total int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, tab)
	row := y + tabHeight + 12

	if tab == tabLegend {
		for _, line := range legendLines[min(scroll, len(legendLines)):] {
			if row > y+h-16 {
				break
			}
			ebitenutil.DebugPrintAt(screen, line, x+12, row)
			row += 16
		}
		return
	}

	for _, line := range mapStats(m, index, total) {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
	row += 8
	ebitenutil.DebugPrintAt(screen, "Left/Right: map  Tab: legend", x+12, row)
	row += 16
	ebitenutil.DebugPrintAt(screen, "Cyan: start marker", x+12, row)
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)
}

// loadMaps parses every .map file under assets/maps concurrently.
func loadMaps(cfg *config.Config, materials int) ([]mapInfo, error) {
	paths, err := filepath.Glob(filepath.Join("assets", "maps", "*.map"))
	if err != nil {
		return nil, fmt.Errorf("failed to list maps: %w", err)
	}
	sort.Strings(paths)

	loader := world.NewMapLoader(cfg.GetTileSize(), materials)
	return core.ParallelMap(paths, func(path string) mapInfo {
		data, err := loader.LoadMap(path)
		return mapInfo{
			Key:  filepath.Base(path),
			Path: path,
			Data: data,
			Err:  err,
		}
	}), nil
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	drawFilledRect(screen, x, y, w, thickness, clr)
	drawFilledRect(screen, x, y+h-thickness, w, thickness, clr)
	drawFilledRect(screen, x, y, thickness, h, clr)
	drawFilledRect(screen, x+w-thickness, y, thickness, h, clr)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
