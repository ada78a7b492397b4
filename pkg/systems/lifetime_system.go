package systems

import (
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
)

// LifetimeSystem 删除寿命已到的粒子（可早于所属批次的截止时间）
type LifetimeSystem struct {
	state *game.FieldState
}

// NewLifetimeSystem 创建寿命系统
func NewLifetimeSystem(state *game.FieldState) *LifetimeSystem {
	return &LifetimeSystem{state: state}
}

// Update 按动画时钟检查寿命
func (s *LifetimeSystem) Update(_ float64) {
	now := s.state.Timing.Elapsed
	em := s.state.Entities
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](em) {
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
		// 标记删除，在 RemoveMarkedEntities 时真正移除
		if now >= lifetime.ExpiresAt() {
			em.DestroyEntity(id)
		}
	}
}
