package components

// LifetimeComponent 点击粒子的独立寿命
// 时间基于动画时钟（FieldTiming.Elapsed），暂停期间不流逝
type LifetimeComponent struct {
	SpawnedAt float64 // 生成时刻（动画秒）
	Duration  float64 // 寿命（秒）
}

// ExpiresAt 过期时刻
func (l *LifetimeComponent) ExpiresAt() float64 {
	return l.SpawnedAt + l.Duration
}

// Remaining 剩余寿命占比，1 = 刚生成，0 = 已过期
func (l *LifetimeComponent) Remaining(now float64) float64 {
	if l.Duration <= 0 {
		return 1
	}
	r := (l.ExpiresAt() - now) / l.Duration
	return max(0, min(1, r))
}
