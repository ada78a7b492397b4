package systems

import (
	"math"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
)

// PointerForceSystem 指针对实体的排斥/吸引力
//
// continuous 模式每个 tick 对半径 R 内的实体施力；impulse 模式只在指针移动事件时
// 通过 ApplyImpulse 施加一次，tick 中不做任何事。
type PointerForceSystem struct {
	state *game.FieldState
}

// NewPointerForceSystem 创建指针力系统
func NewPointerForceSystem(state *game.FieldState) *PointerForceSystem {
	return &PointerForceSystem{state: state}
}

// Update 对 continuous 模式施加一个 tick 的力
//
// 参数：
//   - dt: 本 tick 时间步长（秒），力按 dt*60 缩放
func (s *PointerForceSystem) Update(dt float64) {
	cfg := s.state.Variant.Pointer
	if cfg.Mode != config.PointerContinuous || !s.state.Pointer.Engaged {
		return
	}
	s.apply(s.state.Pointer.X, s.state.Pointer.Y, dt*60)
}

// ApplyImpulse 指针移动事件时施加一次冲量（不按时间缩放）
func (s *PointerForceSystem) ApplyImpulse(x, y float64) {
	if s.state.Variant.Pointer.Mode != config.PointerImpulse {
		return
	}
	s.apply(x, y, 1)
}

func (s *PointerForceSystem) apply(px, py, scale float64) {
	cfg := s.state.Variant.Pointer
	em := s.state.Entities
	for _, id := range ecs.GetEntitiesWith1[*components.PointComponent](em) {
		p, _ := ecs.GetComponent[*components.PointComponent](em, id)
		fx, fy := PointerForce(p.X, p.Y, px, py, cfg)
		p.VX += fx * scale
		p.VY += fy * scale
	}
}

// PointerForce 计算指针在 (x, y) 处产生的速度增量
//
// d < R 时大小为 (R-d)/R*strength，方向沿指针指向实体（排斥）或相反（吸引）。
// d == 0 时方向未定义，不施力。
func PointerForce(x, y, px, py float64, cfg config.PointerConfig) (float64, float64) {
	dx, dy := x-px, y-py
	d := math.Hypot(dx, dy)
	if d == 0 || d >= cfg.Radius {
		return 0, 0
	}
	force := (cfg.Radius - d) / cfg.Radius * cfg.Strength
	if cfg.Attract {
		force = -force
	}
	return dx / d * force, dy / d * force
}
