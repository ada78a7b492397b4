package game

import "time"

// MaxTickSeconds 单次 tick 允许的最大时间步长
// 窗口拖动、断点调试等造成的长时间停顿会被截断，避免实体一次跳出很远
const MaxTickSeconds = 0.1

// FieldTiming 动画场的时钟
//
// Elapsed 只在运行（可见）期间前进；暂停期间 Tick 不返回时间步长，
// 恢复时重新同步 last，避免恢复后出现巨大的时间跳变。
type FieldTiming struct {
	Elapsed float64 // 动画秒
	Paused  bool

	last time.Time
}

// Tick 根据当前时间计算本次时间步长（秒）
//
// 返回：
//   - float64: 时间步长，已截断到 [0, MaxTickSeconds]
//   - bool: 暂停时返回 false，调用方不得修改任何实体状态
func (t *FieldTiming) Tick(now time.Time) (float64, bool) {
	if t.Paused {
		return 0, false
	}
	if t.last.IsZero() {
		// 第一帧按一个标准 tick 处理
		t.last = now
		t.Elapsed += 1.0 / 60.0
		return 1.0 / 60.0, true
	}

	dt := now.Sub(t.last).Seconds()
	t.last = now
	if dt < 0 {
		dt = 0
	}
	if dt > MaxTickSeconds {
		dt = MaxTickSeconds
	}
	t.Elapsed += dt
	return dt, true
}

// Pause 暂停时钟
func (t *FieldTiming) Pause() {
	t.Paused = true
}

// Resume 恢复时钟并重新同步
func (t *FieldTiming) Resume(now time.Time) {
	t.Paused = false
	t.last = now
}
