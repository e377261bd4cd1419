package scenes

import (
	"fmt"
	"log"
	"sort"

	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// HUDOverlay 实现 game.HUD，保存最新的显示值并用调试文字绘制
type HUDOverlay struct {
	score      string
	lives      int
	bombs      int
	speed      int
	power      int
	multiplier string
	hi         string

	bonus   map[string]string
	banners map[string]bool
}

// NewHUDOverlay 创建 HUD
func NewHUDOverlay() *HUDOverlay {
	return &HUDOverlay{
		score:      "000000",
		multiplier: "x1",
		hi:         "000000",
		bonus:      make(map[string]string),
		banners:    make(map[string]bool),
	}
}

func (h *HUDOverlay) UpdateScoreDisplay(text string)      { h.score = text }
func (h *HUDOverlay) UpdateLivesDisplay(n int)            { h.lives = n }
func (h *HUDOverlay) UpdateBombsDisplay(n int)            { h.bombs = n }
func (h *HUDOverlay) UpdateSpeedDisplay(n int)            { h.speed = n }
func (h *HUDOverlay) UpdatePowerDisplay(n int)            { h.power = n }
func (h *HUDOverlay) UpdateMultiplierDisplay(text string) { h.multiplier = text }
func (h *HUDOverlay) UpdateHighScoreDisplay(text string)  { h.hi = text }

func (h *HUDOverlay) UpdateBonusDisplay(name, text string) { h.bonus[name] = text }

func (h *HUDOverlay) SetBannerVisible(name string, on bool) {
	h.banners[name] = on
}

// bannerText 横幅的显示文字
var bannerText = map[string]string{
	game.BannerPaused:       "PAUSED",
	game.BannerStageClear:   "STAGE CLEAR",
	game.BannerPerfectAim:   "PERFECT AIM +10000",
	game.BannerNoMiss:       "NO MISS +10000",
	game.BannerNoBombs:      "NO BOMBS +10000",
	game.BannerGameOver:     "GAME OVER",
	game.BannerGameComplete: "CONGRATULATIONS",
	game.BannerWarning:      "WARNING",
}

// Draw 绘制状态栏、结算数值和当前打开的横幅
func (h *HUDOverlay) Draw(screen *ebiten.Image, phase string) {
	status := fmt.Sprintf("HI %s  SCORE %s  %s  LIVES %d  BOMBS %d  POWER %d  SPEED %d",
		h.hi, h.score, h.multiplier, h.lives, h.bombs, h.power, h.speed)
	ebitenutil.DebugPrintAt(screen, status, 8, 4)
	ebitenutil.DebugPrintAt(screen, phase, config.ScreenWidth-100, 4)

	y := config.ScreenHeight/2 - 40
	for _, name := range []string{game.BonusClear, game.BonusAccuracy, game.BonusDamage} {
		if v, ok := h.bonus[name]; ok {
			label := name
			if name == game.BonusAccuracy {
				label = fmt.Sprintf("%s %s", name, h.bonus[game.BonusAccuracyRate])
			}
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-16s %8s", label, v), config.ScreenWidth/2-90, y)
			y += 16
		}
	}

	names := make([]string, 0, len(h.banners))
	for name, on := range h.banners {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	y = config.ScreenHeight/2 + 30
	for _, name := range names {
		ebitenutil.DebugPrintAt(screen, bannerText[name], config.ScreenWidth/2-50, y)
		y += 16
	}
}

// EffectOverlay 实现 game.Presentation
//
// 闪白状态直接影响调试绘制；动画触发器和精灵档位只记录日志。
type EffectOverlay struct {
	flashing map[ecs.EntityID]bool
	tiers    map[ecs.EntityID]int
}

// NewEffectOverlay 创建表现层
func NewEffectOverlay() *EffectOverlay {
	return &EffectOverlay{
		flashing: make(map[ecs.EntityID]bool),
		tiers:    make(map[ecs.EntityID]int),
	}
}

func (e *EffectOverlay) PlayAnimationTrigger(id ecs.EntityID, trigger string) {
	log.Printf("[Presentation] entity %d trigger %s", id, trigger)
}

func (e *EffectOverlay) SetSpriteTier(id ecs.EntityID, tier int) {
	e.tiers[id] = tier
	log.Printf("[Presentation] entity %d tier %d", id, tier)
}

func (e *EffectOverlay) SetShaderFlash(id ecs.EntityID, on bool) {
	if on {
		e.flashing[id] = true
		return
	}
	delete(e.flashing, id)
}

// Flashing 实体当前是否闪白
func (e *EffectOverlay) Flashing(id ecs.EntityID) bool {
	return e.flashing[id]
}

// Update 限制记录表的大小：实体 ID 不复用，定期清空旧的档位记录
func (e *EffectOverlay) Update(dt float64) {
	if len(e.tiers) > 256 {
		e.tiers = make(map[ecs.EntityID]int)
	}
}
