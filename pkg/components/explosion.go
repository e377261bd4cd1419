package components

// ExplosionComponent 爆炸效果标记
type ExplosionComponent struct {
	Large bool
}
