package systems

import (
	"math"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
)

// ReferenceFPS MinFPS 所针对的帧率（窗口模式的显示刷新率）
const ReferenceFPS = 60.0

// AdaptiveQualitySystem 帧率过低时减少环境实体数量
//
// 每个 tick 对应一帧（窗口以 SyncWithFPS 方式驱动 Update）。
// 累计满一个采样窗口后计算帧率，低于阈值且当前数量大于 Floor 时，
// 数量变为 ⌊count*Factor⌋ 并重新初始化。数量只减不增。
type AdaptiveQualitySystem struct {
	state *game.FieldState

	frames  int
	elapsed float64

	// TargetFPS 宿主有意限定的帧率（例如终端的固定节拍），0 表示不限定
	// 低于 ReferenceFPS 时阈值按比例降低：MinFPS*TargetFPS/ReferenceFPS
	TargetFPS float64

	// LastFPS 最近一个采样窗口的帧率
	LastFPS float64
}

// NewAdaptiveQualitySystem 创建自适应质量系统
func NewAdaptiveQualitySystem(state *game.FieldState) *AdaptiveQualitySystem {
	return &AdaptiveQualitySystem{state: state}
}

// Update 记录一帧
func (s *AdaptiveQualitySystem) Update(dt float64) {
	cfg := s.state.Variant.Adaptive
	if !cfg.Enabled || dt <= 0 {
		return
	}

	s.frames++
	s.elapsed += dt
	if s.elapsed < cfg.Window.Seconds() {
		return
	}

	s.LastFPS = float64(s.frames) / s.elapsed
	s.Reset()

	count := s.state.TargetCount()
	minFPS := s.Threshold()
	if s.LastFPS >= minFPS || count <= cfg.Floor {
		return
	}
	// 微小偏移避免 80*0.7 之类的乘积因浮点误差落到整数之下
	reduced := int(math.Floor(float64(count)*cfg.Factor + 1e-9))
	logging.Named("AdaptiveQuality").Infof("FPS %.1f below %.0f, reducing %s from %d to %d",
		s.LastFPS, minFPS, s.state.Variant.Name, count, reduced)
	s.state.SetTargetCount(reduced)
}

// Threshold 触发减少的帧率阈值
func (s *AdaptiveQualitySystem) Threshold() float64 {
	minFPS := s.state.Variant.Adaptive.MinFPS
	if s.TargetFPS <= 0 || s.TargetFPS >= ReferenceFPS {
		return minFPS
	}
	return minFPS * s.TargetFPS / ReferenceFPS
}

// Reset 丢弃当前采样窗口（暂停、恢复、切换配置时调用）
func (s *AdaptiveQualitySystem) Reset() {
	s.frames = 0
	s.elapsed = 0
}
