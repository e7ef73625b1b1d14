package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"raycaster/internal/mathutil"
	"raycaster/internal/player"
	"raycaster/internal/threading/monitoring"
)

const hudPadding = 4

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// hudLines formats the overlay text.
func hudLines(m monitoring.FrameMetrics, targetFPS int, p player.Player) []string {
	return []string{
		fmt.Sprintf("FPS %.1f / %d", m.FramesPerSecond, targetFPS),
		fmt.Sprintf("frame %.2fms  cast %.2fms  project %.2fms", ms(m.AvgFrameTime), ms(m.AvgRaycastTime), ms(m.AvgProjectionTime)),
		fmt.Sprintf("pos (%.0f, %.0f)  heading %.0f°", p.X, p.Y, mathutil.RadiansToDegrees(p.Angle)),
	}
}

// drawHUD prints the lines in the top-right corner over a translucent panel.
func drawHUD(screen *ebiten.Image, lines []string) {
	face := basicfont.Face7x13
	lineH := face.Height + 2

	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l).Round())
	}
	x := screen.Bounds().Dx() - width - 2*hudPadding
	panelH := len(lines)*lineH + 2*hudPadding
	vector.DrawFilledRect(screen, float32(x), 0, float32(width+2*hudPadding), float32(panelH), color.RGBA{0, 0, 0, 160}, false)

	for i, l := range lines {
		baseline := hudPadding + i*lineH + face.Ascent
		ebitext.Draw(screen, l, face, x+hudPadding, baseline, color.White)
	}
}
