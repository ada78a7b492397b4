package scenes

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/surface"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/systems"
)

// FieldScene 全屏粒子场分区（首页 hero）
//
// 拥有一个 FieldState，更新由 FieldPipeline 完成，绘制由 FieldRenderSystem 完成。
// 分区离开视口或窗口失去焦点时暂停，重新可见时重新同步时钟。
type FieldScene struct {
	id       string
	state    *game.FieldState
	pipeline *systems.FieldPipeline
	renderer *systems.FieldRenderSystem
	surf     *surface.EbitenSurface

	// now 时钟，测试中可替换
	now         func() time.Time
	initialized bool
}

// NewFieldScene 创建粒子场分区
//
// 参数：
//   - id: 分区标识
//   - variant: 场变体配置
//   - rng: 随机源，nil 时使用随机种子
func NewFieldScene(id string, variant *config.FieldVariant, rng *rand.Rand) *FieldScene {
	state := game.NewFieldState(variant, rng)
	return &FieldScene{
		id:       id,
		state:    state,
		pipeline: systems.NewFieldPipeline(state),
		renderer: systems.NewFieldRenderSystem(state),
		surf:     surface.NewEbitenSurface(nil),
		now:      time.Now,
	}
}

// ID 分区标识
func (s *FieldScene) ID() string { return s.id }

// Height 粒子场占满一个视口
func (s *FieldScene) Height(_, viewH float64) float64 { return viewH }

// State 动画场状态
func (s *FieldScene) State() *game.FieldState { return s.state }

// Pipeline 更新管线
func (s *FieldScene) Pipeline() *systems.FieldPipeline { return s.pipeline }

// Resize 第一次调用时生成实体，之后按变体的 resize 策略处理
func (s *FieldScene) Resize(w, h float64) {
	if !s.initialized {
		s.initialized = true
		s.state.Init(w, h)
		return
	}
	s.state.Resize(w, h)
}

// SetVisible 不可见时暂停，可见时恢复
func (s *FieldScene) SetVisible(visible bool) {
	if visible {
		s.pipeline.Resume(s.now())
		return
	}
	s.pipeline.Pause()
}

// SetVariant 热更新变体配置
func (s *FieldScene) SetVariant(v *config.FieldVariant) {
	logging.Named("FieldScene").Infof("%s: variant %s reloaded", s.id, v.Name)
	s.state.SetVariant(v)
}

// Update 推进一个 tick（时间步长由场自己的时钟测量）
func (s *FieldScene) Update(_ float64) {
	s.pipeline.Tick(s.now())
}

// Draw 绘制到分区图像
func (s *FieldScene) Draw(screen *ebiten.Image) {
	s.surf.Reset(screen)
	s.renderer.Draw(s.surf)
}

// PointerMoved 指针移动
func (s *FieldScene) PointerMoved(x, y float64) {
	s.pipeline.PointerMoved(x, y)
}

// PointerLeft 指针离开分区
func (s *FieldScene) PointerLeft() {
	s.pipeline.PointerLeft()
}

// Clicked 点击生成一个批次
func (s *FieldScene) Clicked(x, y float64) {
	s.pipeline.Click(x, y)
}

// Close 停止动画并释放实体
func (s *FieldScene) Close() {
	s.pipeline.Close()
}
