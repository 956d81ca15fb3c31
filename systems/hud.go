package systems

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/automoto/gradius/fonts"
	"github.com/automoto/gradius/shared/leaderboard"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/automoto/gradius/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

// DrawHUD renders score, stage, weapon, lives and the boss health bar.
func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	game, ok := GetGame(ecs)
	if !ok || game.Store.Phase() == tuning.PhaseMenu {
		return
	}
	store := game.Store
	h := cfg.HUD
	face := fonts.Normal.Get()
	width := float64(screen.Bounds().Dx())

	y := int(h.Margin + h.LineHeight)
	text.Draw(screen, "SCORE "+leaderboard.FormatScore(store.Score()), face, int(h.Margin), y, h.TextColor)

	stage := fmt.Sprintf("STAGE %d", store.Stage())
	text.Draw(screen, stage, face, int(width-h.Margin)-textWidth(face, stage), y, h.TextColor)

	weapon := "WEAPON " + strings.ToUpper(store.WeaponLevel().String())
	text.Draw(screen, weapon, fonts.Small.Get(), int(h.Margin), y+int(h.LineHeight), h.AccentColor)

	drawLives(screen, store.Lives(), h.Margin, float64(y)+h.LineHeight*1.5)

	if boss := store.Boss(); boss.Active {
		drawBossBar(screen, boss.HealthRatio(), width)
	}
}

// drawLives draws one small ship marker per remaining life.
func drawLives(screen *ebiten.Image, lives int, x, y float64) {
	h := cfg.HUD
	for i := range lives {
		lx := float32(x + float64(i)*(h.LifeIconSize+h.LifeIconGap))
		vector.FillRect(screen, lx, float32(y), float32(h.LifeIconSize), float32(h.LifeIconSize/2), cfg.Render.PlayerColor, false)
	}
}

func drawBossBar(screen *ebiten.Image, ratio, width float64) {
	h := cfg.HUD
	x := float32((width - h.BossBarWidth) / 2)
	y := float32(h.Margin)
	vector.FillRect(screen, x, y, float32(h.BossBarWidth), float32(h.BossBarHeight), h.BossBarBgColor, false)
	vector.FillRect(screen, x, y, float32(h.BossBarWidth*ratio), float32(h.BossBarHeight), h.BossBarFgColor, false)
	vector.StrokeRect(screen, x, y, float32(h.BossBarWidth), float32(h.BossBarHeight), 1, cfg.White, false)
}

// DrawBanners renders the sliding stage and warning banners.
func DrawBanners(ecs *ecs.ECS, screen *ebiten.Image) {
	face := fonts.Title.Get()
	y := screen.Bounds().Dy() / 2
	tags.Banner.Each(ecs.World, func(e *donburi.Entry) {
		b := components.Banner.Get(e)
		text.Draw(screen, b.Text, face, int(b.X)-textWidth(face, b.Text)/2, y, b.Color)
	})
}

// textWidth measures s in pixels.
func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawCentered draws s horizontally centred on the screen with its baseline at y.
func drawCentered(screen *ebiten.Image, s string, face font.Face, y int, clr color.Color) {
	x := (screen.Bounds().Dx() - textWidth(face, s)) / 2
	text.Draw(screen, s, face, x, y, clr)
}

// drawMenu draws a vertical list of options, highlighting the selected one.
func drawMenu(screen *ebiten.Image, options []string, selected int, startY, itemHeight, gap float64, normal, highlight color.Color) {
	face := fonts.Bold.Get()
	for i, option := range options {
		y := startY + float64(i)*(itemHeight+gap)
		clr := normal
		label := option
		if i == selected {
			clr = highlight
			label = "> " + option + " <"
		}
		drawCentered(screen, label, face, int(y+itemHeight), clr)
	}
}
