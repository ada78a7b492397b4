package systems

import (
	"time"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
)

// FieldPipeline 按固定顺序驱动一个动画场的全部更新系统
//
// 顺序：指针力 → 运动 → 寿命 → 批次过期 → 自适应质量，最后统一删除标记的实体。
type FieldPipeline struct {
	State *game.FieldState

	Pointer  *PointerForceSystem
	Motion   *MotionSystem
	Lifetime *LifetimeSystem
	Batches  *BatchExpirySystem
	Adaptive *AdaptiveQualitySystem

	closed bool
}

// NewFieldPipeline 为动画场创建全部系统
func NewFieldPipeline(state *game.FieldState) *FieldPipeline {
	return &FieldPipeline{
		State:    state,
		Pointer:  NewPointerForceSystem(state),
		Motion:   NewMotionSystem(state),
		Lifetime: NewLifetimeSystem(state),
		Batches:  NewBatchExpirySystem(state),
		Adaptive: NewAdaptiveQualitySystem(state),
	}
}

// Tick 读取时钟并推进一个时间步；暂停时不修改任何状态
//
// 返回：
//   - bool: 本次是否实际推进
func (p *FieldPipeline) Tick(now time.Time) bool {
	if p.closed {
		return false
	}
	dt, ok := p.State.Timing.Tick(now)
	if !ok {
		return false
	}
	p.Step(dt)
	return true
}

// Step 以给定步长运行全部系统（测试中直接调用）
func (p *FieldPipeline) Step(dt float64) {
	p.Pointer.Update(dt)
	p.Motion.Update(dt)
	p.Lifetime.Update(dt)
	p.Batches.Update(dt)
	p.Adaptive.Update(dt)
	p.State.Entities.RemoveMarkedEntities()
}

// PointerMoved 指针移动事件：记录位置，impulse 模式施加冲量
func (p *FieldPipeline) PointerMoved(x, y float64) {
	p.State.MovePointer(x, y)
	p.Pointer.ApplyImpulse(x, y)
}

// PointerLeft 指针离开画面
func (p *FieldPipeline) PointerLeft() {
	p.State.LeavePointer()
}

// Click 在 (x, y) 生成一个点击批次
func (p *FieldPipeline) Click(x, y float64) {
	if p.closed {
		return
	}
	p.State.SpawnBatch(x, y)
}

// Closed 是否已关闭
func (p *FieldPipeline) Closed() bool {
	return p.closed
}

// Pause 暂停（不可见）
func (p *FieldPipeline) Pause() {
	p.State.Timing.Pause()
	p.Adaptive.Reset()
}

// Resume 恢复并重新同步时钟
func (p *FieldPipeline) Resume(now time.Time) {
	if p.closed {
		return
	}
	p.State.Timing.Resume(now)
	p.Adaptive.Reset()
}

// Close 停止动画并释放全部实体，之后 Tick 和 Resume 不再生效
func (p *FieldPipeline) Close() {
	p.closed = true
	p.State.Timing.Pause()
	p.State.Entities.DestroyAll()
}
