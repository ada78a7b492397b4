package systems

import (
	"math"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
)

// MotionSystem 实体运动：基准速度回拉、阻尼、积分、边界处理、低速重置
//
// 所有系数都以 1/60 秒为一个 tick 定义，实际步长按 k = dt*60 换算：
// 阻尼为 d^k，回拉为 1-(1-b)^k，位移为 v*k。帧率变化时运动速度保持一致。
type MotionSystem struct {
	state *game.FieldState
}

// NewMotionSystem 创建运动系统
func NewMotionSystem(state *game.FieldState) *MotionSystem {
	return &MotionSystem{state: state}
}

// Update 推进所有实体一个时间步
func (s *MotionSystem) Update(dt float64) {
	k := dt * 60
	if k <= 0 {
		return
	}

	v := s.state.Variant
	damping := math.Pow(v.Damping, k)
	pull := 0.0
	if v.Baseline > 0 {
		pull = 1 - math.Pow(1-v.Baseline, k)
	}

	em := s.state.Entities
	for _, id := range ecs.GetEntitiesWith1[*components.PointComponent](em) {
		p, _ := ecs.GetComponent[*components.PointComponent](em, id)

		p.VX += (p.BaseVX - p.VX) * pull
		p.VY += (p.BaseVY - p.VY) * pull

		p.VX *= damping
		p.VY *= damping

		p.X += p.VX * k
		p.Y += p.VY * k

		switch v.Boundary.Policy {
		case config.BoundaryReflect:
			bounce(p, s.state.Bounds)
		default:
			margin := v.Boundary.Margin
			if v.Boundary.MarginFromSize {
				margin = p.Size()
			}
			wrap(p, s.state.Bounds, margin)
		}

		if v.Reseed.Threshold > 0 && math.Hypot(p.VX, p.VY) < v.Reseed.Threshold {
			p.VX, p.VY = s.state.RandomVelocity(v.Reseed.Speed)
			p.BaseVX, p.BaseVY = p.VX, p.VY
		}
	}
}

// wrap 越过 [-m, W+m] 的实体从对侧重新进入
func wrap(p *components.PointComponent, b game.Bounds, m float64) {
	if p.X < -m {
		p.X = b.W + m
	} else if p.X > b.W+m {
		p.X = -m
	}
	if p.Y < -m {
		p.Y = b.H + m
	} else if p.Y > b.H+m {
		p.Y = -m
	}
}

// bounce 碰到边界的实体反转该轴速度并夹紧到 [0,W]×[0,H]
func bounce(p *components.PointComponent, b game.Bounds) {
	if p.X < 0 || p.X > b.W {
		p.VX = -p.VX
		p.BaseVX = -p.BaseVX
		p.X = math.Max(0, math.Min(b.W, p.X))
	}
	if p.Y < 0 || p.Y > b.H {
		p.VY = -p.VY
		p.BaseVY = -p.BaseVY
		p.Y = math.Max(0, math.Min(b.H, p.Y))
	}
}
