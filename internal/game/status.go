package game

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"taproom/internal/graphics"
)

var (
	hudTop      = color.NRGBA{R: 0x41, G: 0x69, B: 0xE1, A: 0xFF}
	hudBottom   = color.NRGBA{R: 0x1E, G: 0x3A, B: 0x8A, A: 0xFF}
	hudLine     = color.NRGBA{R: 0x00, G: 0x00, B: 0x80, A: 0xFF}
	textWhite   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	textWarn    = color.NRGBA{R: 0xFF, G: 0x44, B: 0x44, A: 255}
	textLowAmmo = color.NRGBA{R: 0xFF, G: 0xAA, B: 0x44, A: 255}
	textTitle   = color.NRGBA{R: 0xFF, G: 0x6B, B: 0x35, A: 255}
	textAccent  = color.NRGBA{R: 0xFF, G: 0xA5, B: 0x00, A: 255}
	textDim     = color.NRGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 255}
)

const (
	hudSections  = 5
	lowAmmoWarn  = 10
	hudLowHealth = 25
)

var hudFace font.Face = basicfont.Face7x13

// drawText draws s centered on cx with its baseline at y.
func drawText(screen *ebiten.Image, s string, cx, y float64, clr color.Color) {
	w := font.MeasureString(hudFace, s).Ceil()
	ebitext.Draw(screen, s, hudFace, int(cx)-w/2, int(y), clr)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.session
	p := s.Player
	w := float32(g.cfg.GetScreenWidth())
	h := float32(g.cfg.Display.HUDHeight)
	top := float32(g.cfg.GetViewHeight())
	if h <= 0 {
		return
	}

	vector.DrawFilledRect(screen, 0, top, w, h/2, hudTop, false)
	vector.DrawFilledRect(screen, 0, top+h/2, w, h-h/2, hudBottom, false)
	vector.StrokeRect(screen, 1, top+1, w-2, h-2, 2, hudLine, false)

	section := w / hudSections
	for i := 1; i < hudSections; i++ {
		x := section * float32(i)
		vector.StrokeLine(screen, x, top, x, top+h, 1, hudLine, false)
	}

	col := func(i float64) float64 { return float64(section) * (i + 0.5) }
	y0 := float64(top)

	drawText(screen, "SCORE", col(0), y0+18, textWhite)
	drawText(screen, fmt.Sprint(s.Stats.Score), col(0), y0+50, textWhite)

	drawText(screen, "LIVES", col(1), y0+18, textWhite)
	drawText(screen, fmt.Sprint(p.Lives), col(1), y0+50, textWhite)
	if p.Keys() > 0 {
		drawText(screen, "KEY", col(1), y0+70, textAccent)
	}

	g.drawFace(screen, col(2), y0+2, float64(h)-4)

	hp := int(math.Round(p.HealthPercent()))
	hpColor := textWhite
	if hp < hudLowHealth {
		hpColor = textWarn
	}
	drawText(screen, "HEALTH", col(3), y0+18, textWhite)
	drawText(screen, fmt.Sprintf("%d%%", hp), col(3), y0+50, hpColor)

	ammoColor := textWhite
	if p.Ammo < lowAmmoWarn {
		ammoColor = textLowAmmo
	}
	drawText(screen, strings.ToUpper(s.Arsenal.Current().Name), col(4), y0+16, textWhite)
	drawText(screen, "AMMO", col(4), y0+32, textWhite)
	drawText(screen, fmt.Sprint(p.Ammo), col(4), y0+58, ammoColor)
}

// faceTexture picks the face for the health band and animation frame.
func faceTexture(healthPercent float64, frame int) int {
	var state int
	switch {
	case healthPercent <= 0:
		state = 4
	case healthPercent <= 25:
		state = 3
	case healthPercent <= 50:
		state = 2
	case healthPercent <= 75:
		state = 1
	}
	return graphics.FaceTextureBase + state*graphics.FaceFrames + frame
}

func (g *Game) drawFace(screen *ebiten.Image, cx, y, size float64) {
	img := g.textures.Image(faceTexture(g.session.Player.HealthPercent(), g.session.FaceFrame()))
	if img == nil || size <= 0 {
		return
	}
	scale := size / float64(img.Bounds().Dx())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-size/2, y)
	screen.DrawImage(img, op)
}

func (g *Game) drawMessage(screen *ebiten.Image) {
	text, _ := g.session.Message()
	if text == "" {
		return
	}
	alpha := g.session.MessageAlpha()
	cx := float64(g.cfg.GetScreenWidth()) / 2
	cy := float64(g.cfg.GetScreenHeight()) / 2

	vector.DrawFilledRect(screen, float32(cx-150), float32(cy-80), 300, 50,
		color.NRGBA{A: uint8(alpha * 0.8 * 255)}, false)
	drawText(screen, text, cx, cy-60, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(alpha * 255)})
}

func (g *Game) drawStateOverlay(screen *ebiten.Image) {
	s := g.session
	w := float32(g.cfg.GetScreenWidth())
	fullH := float32(g.cfg.GetScreenHeight())
	viewH := float32(g.cfg.GetViewHeight())
	cx := float64(w) / 2
	cy := float64(fullH) / 2

	switch s.State {
	case StateDeath:
		vector.DrawFilledRect(screen, 0, 0, w, viewH, color.NRGBA{R: 139, A: 230}, false)
		drawText(screen, "YOU DIED", cx, cy-60, textWarn)
		drawText(screen, fmt.Sprintf("Lives Remaining: %d", s.Player.Lives), cx, cy-20, color.NRGBA{R: 255, G: 0xAA, B: 0xAA, A: 255})
		drawText(screen, "Press SPACE to respawn", cx, cy+20, textWhite)

	case StateVictory:
		vector.DrawFilledRect(screen, 0, 0, w, viewH, color.NRGBA{A: 204}, false)
		drawText(screen, "VICTORY!", cx, cy-60, color.NRGBA{G: 255, A: 255})
		drawText(screen, fmt.Sprintf("Enemies Killed: %d", s.Stats.Kills), cx, cy-20, textWhite)
		drawText(screen, fmt.Sprintf("Accuracy: %.0f%%", s.Stats.Accuracy()), cx, cy, textWhite)
		g.drawRank(screen, cx, cy+20)
		drawText(screen, "Press F5 to play again", cx, cy+40, textWhite)

	case StateGameOver:
		vector.DrawFilledRect(screen, 0, 0, w, fullH, color.NRGBA{R: 100, A: 204}, false)
		drawText(screen, "GAME OVER", cx, cy-40, textWhite)
		drawText(screen, fmt.Sprintf("Final Score: %d", s.Stats.Score), cx, cy+20, textWhite)
		g.drawRank(screen, cx, cy+50)
		drawText(screen, "Press F5 to restart", cx, cy+80, textWhite)

	case StatePaused:
		vector.DrawFilledRect(screen, 0, 0, w, fullH, color.NRGBA{A: 178}, false)
		drawText(screen, "PAUSED", cx, cy, textWhite)
	}
}

func (g *Game) drawRank(screen *ebiten.Image, cx, y float64) {
	if g.lastRank > 0 {
		drawText(screen, fmt.Sprintf("New high score! Rank #%d", g.lastRank), cx, y, textAccent)
	}
}

var titleControls = []string{
	"WASD - Move",
	"Arrow Keys - Look around",
	"Mouse/Spacebar - Fire weapon",
	"1/2 - Switch weapons (Pistol/Shotgun)",
	"E - Use doors and pick up items",
}

var titleTips = []string{
	"Start with pistol and 10 ammo",
	"Find shotgun pickup in Room 2",
	"Collect health packs and ammo boxes",
	"More enemies spawn when entering Room 2",
}

func (g *Game) drawTitle(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x1A, G: 0x1A, B: 0x2E, A: 255})
	cx := float64(g.cfg.GetScreenWidth()) / 2

	drawText(screen, strings.ToUpper(g.cfg.Display.WindowTitle), cx, 80, textTitle)
	drawText(screen, "3D Shooter", cx, 110, textAccent)
	drawText(screen, "OBJECTIVE", cx, 145, textWhite)
	drawText(screen, "Eliminate all enemies to win!", cx, 165, textDim)

	drawText(screen, "CONTROLS", cx, 195, textWhite)
	y := 215.0
	for _, line := range titleControls {
		drawText(screen, line, cx, y, textDim)
		y += 18
	}

	drawText(screen, "TIPS", cx, y+15, textWhite)
	y += 35
	for _, line := range titleTips {
		drawText(screen, line, cx, y, textAccent)
		y += 16
	}

	if top := g.scores.Top(2); len(top) > 0 {
		y += 10
		drawText(screen, "HIGH SCORES", cx, y, textWhite)
		for i, e := range top {
			y += 16
			drawText(screen, fmt.Sprintf("%d. %d  (%d kills, %s)", i+1, e.Score, e.Kills, e.PlayTime), cx, y, textDim)
		}
	}

	pulse := math.Sin(float64(time.Now().UnixMilli())*0.005)*0.3 + 0.7
	drawText(screen, "PRESS SPACE TO BEGIN", cx, float64(g.cfg.GetScreenHeight())-12,
		color.NRGBA{R: textTitle.R, G: textTitle.G, B: textTitle.B, A: uint8(pulse * 255)})
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	s := g.session
	p := s.Player
	pb, eb := s.Projectiles()
	snap := g.monitor.Snapshot()
	lines := []string{
		fmt.Sprintf("FPS: %.0f  TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		fmt.Sprintf("Frame: %.2f ms", snap.AvgFrameMs),
		fmt.Sprintf("Position: %.0f, %.0f", p.X, p.Y),
		fmt.Sprintf("Direction: %.2f, %.2f", p.DirX, p.DirY),
		fmt.Sprintf("Enemies Alive: %d", s.AliveEnemies()),
		fmt.Sprintf("Projectiles: P:%d E:%d", pb, eb),
		fmt.Sprintf("Particles: %d", s.Particles.Len()),
	}
	vector.DrawFilledRect(screen, 10, 10, 300, float32(len(lines)*15+10), color.NRGBA{A: 178}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 15, 14+i*15)
	}
}
