package game

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
)

// Bounds 画面尺寸（像素）
type Bounds struct {
	W, H float64
}

// Contains 判断点是否在 [0,W]×[0,H] 内
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.W && y >= 0 && y <= b.H
}

// Pointer 指针状态
// Engaged 为 false 时指针不施力、不绘制光晕
type Pointer struct {
	X, Y    float64
	Engaged bool
}

// FieldState 一个动画场实例的全部状态
//
// 实体、指针、尺寸和时钟集中在这里，按指针传给各个更新系统和绘制系统，
// 更新逻辑不依赖任何绘制表面，可以直接在单元测试中驱动。
// FieldState 只被一个场景拥有，所有修改发生在同一个游戏循环中。
type FieldState struct {
	Entities *ecs.EntityManager
	Pointer  Pointer
	Bounds   Bounds
	Timing   FieldTiming
	Variant  *config.FieldVariant
	Rand     *rand.Rand

	// targetCount 当前环境实体数量（自适应质量只会减少它）
	targetCount int
}

// NewFieldState 创建动画场状态，实体在 Init 时生成
func NewFieldState(variant *config.FieldVariant, rng *rand.Rand) *FieldState {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &FieldState{
		Entities:    ecs.NewEntityManager(),
		Variant:     variant,
		Rand:        rng,
		targetCount: variant.Count,
	}
}

// TargetCount 当前环境实体目标数量
func (s *FieldState) TargetCount() int {
	return s.targetCount
}

// SetTargetCount 修改环境实体数量并重新初始化
func (s *FieldState) SetTargetCount(n int) {
	if n < 0 {
		n = 0
	}
	s.targetCount = n
	s.Init(s.Bounds.W, s.Bounds.H)
}

// SetVariant 替换配置（热更新）并重新初始化
func (s *FieldState) SetVariant(v *config.FieldVariant) {
	s.Variant = v
	s.targetCount = v.Count
	s.Init(s.Bounds.W, s.Bounds.H)
}

// Init 设置尺寸并生成全部环境实体，已有实体（包括点击批次）全部丢弃
func (s *FieldState) Init(w, h float64) {
	s.Bounds = Bounds{W: w, H: h}
	s.Entities.DestroyAll()
	for i := 0; i < s.targetCount; i++ {
		s.SpawnAmbient()
	}
}

// Resize 尺寸变化
//
// ResizeReinit 变体重新生成实体；ResizeRescale 变体按比例缩放已有位置并夹紧到新边界。
// 两种方式完成后所有实体都在 [0,w]×[0,h] 内。
func (s *FieldState) Resize(w, h float64) {
	if w == s.Bounds.W && h == s.Bounds.H {
		return
	}
	old := s.Bounds
	logging.Named("FieldState").Debugf("Resize %s: %.0fx%.0f -> %.0fx%.0f", s.Variant.Name, old.W, old.H, w, h)

	if s.Variant.Resize == config.ResizeReinit || old.W <= 0 || old.H <= 0 {
		s.Init(w, h)
		return
	}

	s.Bounds = Bounds{W: w, H: h}
	sx, sy := w/old.W, h/old.H
	for _, id := range ecs.GetEntitiesWith1[*components.PointComponent](s.Entities) {
		p, _ := ecs.GetComponent[*components.PointComponent](s.Entities, id)
		p.X = clamp(p.X*sx, 0, w)
		p.Y = clamp(p.Y*sy, 0, h)
	}
}

// SpawnAmbient 生成一个随机位置、随机速度的环境实体
func (s *FieldState) SpawnAmbient() ecs.EntityID {
	v := s.Variant
	var vx, vy float64
	switch v.Velocity.Mode {
	case config.VelocityPolar:
		vx, vy = s.polar(v.Velocity.Speed)
	default:
		vx = (s.Rand.Float64() - 0.5) * v.Velocity.Spread
		vy = (s.Rand.Float64() - 0.5) * v.Velocity.Spread
	}

	p := &components.PointComponent{
		X:       s.Rand.Float64() * s.Bounds.W,
		Y:       s.Rand.Float64() * s.Bounds.H,
		VX:      vx,
		VY:      vy,
		BaseVX:  vx,
		BaseVY:  vy,
		Radius:  v.Radius.Lerp(s.Rand.Float64()),
		Length:  v.Length.Lerp(s.Rand.Float64()),
		Opacity: s.opacity(v.Opacity),
	}

	id := s.Entities.CreateEntity()
	ecs.AddComponent(s.Entities, id, p)
	return id
}

// SpawnBatch 在 (x, y) 生成一批点击实体
//
// 批次带唯一 ID 和截止时间，截止后由 BatchExpirySystem 按 ID 移除。
// 配置了 Lifetime 的变体还会给每个实体附加 LifetimeComponent。
func (s *FieldState) SpawnBatch(x, y float64) (uuid.UUID, []ecs.EntityID) {
	click := s.Variant.Click
	if !click.Enabled {
		return uuid.Nil, nil
	}

	batch := uuid.New()
	deadline := s.Timing.Elapsed + click.Delay.Seconds()
	ids := make([]ecs.EntityID, 0, click.Count)

	for i := 0; i < click.Count; i++ {
		vx, vy := s.polar(click.Speed)
		p := &components.PointComponent{
			X:       x,
			Y:       y,
			VX:      vx,
			VY:      vy,
			BaseVX:  vx,
			BaseVY:  vy,
			Radius:  click.Radius.Lerp(s.Rand.Float64()),
			Length:  click.Length.Lerp(s.Rand.Float64()),
			Opacity: s.opacity(click.Opacity),
		}

		id := s.Entities.CreateEntity()
		ecs.AddComponent(s.Entities, id, p)
		ecs.AddComponent(s.Entities, id, &components.BatchComponent{ID: batch, Deadline: deadline})
		if click.Lifetime > 0 {
			ecs.AddComponent(s.Entities, id, &components.LifetimeComponent{SpawnedAt: s.Timing.Elapsed, Duration: click.Lifetime.Seconds()})
		}
		ids = append(ids, id)
	}
	return batch, ids
}

// MovePointer 记录指针位置并标记为 engaged
func (s *FieldState) MovePointer(x, y float64) {
	s.Pointer = Pointer{X: x, Y: y, Engaged: true}
}

// LeavePointer 指针离开画面
func (s *FieldState) LeavePointer() {
	s.Pointer.Engaged = false
}

// RandomVelocity 在速率区间内生成随机方向的速度
func (s *FieldState) RandomVelocity(speed config.Range) (float64, float64) {
	return s.polar(speed)
}

func (s *FieldState) polar(speed config.Range) (float64, float64) {
	angle := s.Rand.Float64() * 2 * math.Pi
	mag := speed.Lerp(s.Rand.Float64())
	return math.Cos(angle) * mag, math.Sin(angle) * mag
}

func (s *FieldState) opacity(r config.Range) float64 {
	if r.IsZero() {
		return 1
	}
	return r.Lerp(s.Rand.Float64())
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
