package scenes

import (
	"image/color"
	"math"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 调试绘制的颜色
var (
	colorStar         = color.RGBA{R: 90, G: 90, B: 130, A: 255}
	colorPlayer       = color.RGBA{R: 80, G: 220, B: 120, A: 255}
	colorPlayerBullet = color.RGBA{R: 250, G: 230, B: 90, A: 255}
	colorEnemyBullet  = color.RGBA{R: 255, G: 110, B: 60, A: 255}
	colorEnemy        = color.RGBA{R: 200, G: 80, B: 200, A: 255}
	colorImmune       = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	colorWall         = color.RGBA{R: 150, G: 110, B: 70, A: 255}
	colorItem         = color.RGBA{R: 80, G: 220, B: 240, A: 255}
	colorExplosion    = color.RGBA{R: 255, G: 170, B: 40, A: 200}
	colorFlash        = color.White
)

// starSpacing 背景星点的间距
const starSpacing = 64.0

// drawBackground 按卷轴偏移绘制两层星点（远层半速）
func (s *GameScene) drawBackground(screen *ebiten.Image) {
	offset := s.session.Background.Offset
	for layer, factor := range []float64{0.5, 1} {
		shift := math.Mod(offset*factor, starSpacing)
		for x := -shift; x < config.ScreenWidth; x += starSpacing {
			for row := 0; row*int(starSpacing) < config.ScreenHeight; row++ {
				y := float64(row)*starSpacing + float64(layer)*starSpacing/2
				vector.DrawFilledRect(screen, float32(x), float32(y), 1+float32(layer), 1+float32(layer), colorStar, false)
			}
		}
	}
}

// drawEntities 以碰撞形状绘制所有角色
func (s *GameScene) drawEntities(screen *ebiten.Image) {
	em := s.session.World.EM

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.ExplosionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		exp, _ := ecs.GetComponent[*components.ExplosionComponent](em, id)
		r := float32(10)
		if exp.Large {
			r *= config.ExplosionLargeScale
		}
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), r, colorExplosion, true)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.CollisionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		clr := s.colorOf(em, id)
		if s.fx.Flashing(id) {
			clr = colorFlash
		}
		drawShape(screen, pos, col, clr)
	}
}

func (s *GameScene) colorOf(em *ecs.EntityManager, id ecs.EntityID) color.Color {
	if _, ok := ecs.GetComponent[*components.ItemComponent](em, id); ok {
		return colorItem
	}
	if _, ok := ecs.GetComponent[*components.PlayerComponent](em, id); ok {
		return colorPlayer
	}
	if proj, ok := ecs.GetComponent[*components.ProjectileComponent](em, id); ok {
		if proj.Owner == components.FactionPlayer {
			return colorPlayerBullet
		}
		return colorEnemyBullet
	}
	if e, ok := ecs.GetComponent[*components.EnemyComponent](em, id); ok && e.Wall {
		return colorWall
	}
	if h, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok && h.Immune {
		return colorImmune
	}
	return colorEnemy
}

func drawShape(screen *ebiten.Image, pos *components.PositionComponent, col *components.CollisionComponent, clr color.Color) {
	x := float32(pos.X + col.OffsetX)
	y := float32(pos.Y + col.OffsetY)
	switch col.Shape {
	case components.ShapeBox:
		w, h := float32(col.Width), float32(col.Height)
		vector.DrawFilledRect(screen, x-w/2, y-h/2, w, h, clr, false)
	default:
		vector.DrawFilledCircle(screen, x, y, float32(col.Radius), clr, true)
	}
}
