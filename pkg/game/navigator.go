package game

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
)

// 滚动弹簧参数：临界阻尼，约 0.5 秒到位
const (
	scrollSpringFrequency = 8.0
	scrollSpringDamping   = 1.0
	scrollSnapDistance    = 0.5
)

// SectionBounds 页面分区在页面坐标中的位置
type SectionBounds struct {
	ID     string
	Top    float64
	Height float64
}

// Navigator 页面滚动与分区导航
//
// 滚动偏移量以弹簧动画跟随目标值，ScrollTo 把目标设为分区顶部。
// 预览弹窗打开时滚动被锁定。
type Navigator struct {
	sections  []SectionBounds
	viewportH float64

	offset   float64
	velocity float64
	target   float64
	spring   harmonica.Spring
	springDT float64

	locked bool
}

// NewNavigator 创建导航器
//
// 参数：
//   - fps: Update 的调用频率
func NewNavigator(fps int) *Navigator {
	dt := harmonica.FPS(fps)
	return &Navigator{
		spring:   harmonica.NewSpring(dt, scrollSpringFrequency, scrollSpringDamping),
		springDT: dt,
	}
}

// SetSections 更新分区布局（窗口尺寸变化后调用），目标和当前偏移量夹紧到新的页面范围
func (n *Navigator) SetSections(sections []SectionBounds, viewportH float64) {
	n.sections = append(n.sections[:0], sections...)
	n.viewportH = viewportH
	n.target = n.clamp(n.target)
	n.offset = n.clamp(n.offset)
}

// Sections 当前分区布局
func (n *Navigator) Sections() []SectionBounds {
	return n.sections
}

// PageHeight 页面总高度
func (n *Navigator) PageHeight() float64 {
	h := 0.0
	for _, s := range n.sections {
		h = math.Max(h, s.Top+s.Height)
	}
	return h
}

// MaxOffset 最大滚动偏移量
func (n *Navigator) MaxOffset() float64 {
	return math.Max(0, n.PageHeight()-n.viewportH)
}

// ScrollTo 平滑滚动到分区顶部
//
// 返回：
//   - bool: 分区不存在或滚动被锁定时返回 false
func (n *Navigator) ScrollTo(id string) bool {
	if n.locked {
		return false
	}
	s, ok := n.Section(id)
	if !ok {
		logging.Named("Navigator").Warnf("Unknown section %q", id)
		return false
	}
	n.target = n.clamp(s.Top)
	logging.Named("Navigator").Debugf("Scroll to %s (%.0f)", id, n.target)
	return true
}

// ScrollBy 滚轮滚动，直接移动目标
func (n *Navigator) ScrollBy(dy float64) {
	if n.locked {
		return
	}
	n.target = n.clamp(n.target + dy)
}

// Section 按 ID 查找分区
func (n *Navigator) Section(id string) (SectionBounds, bool) {
	for _, s := range n.sections {
		if s.ID == id {
			return s, true
		}
	}
	return SectionBounds{}, false
}

// Lock 锁定页面滚动
func (n *Navigator) Lock() { n.locked = true }

// Unlock 解除滚动锁定
func (n *Navigator) Unlock() { n.locked = false }

// Locked 滚动是否被锁定
func (n *Navigator) Locked() bool { return n.locked }

// Update 推进一帧弹簧动画
func (n *Navigator) Update() {
	n.offset, n.velocity = n.spring.Update(n.offset, n.velocity, n.target)
	if math.Abs(n.target-n.offset) < scrollSnapDistance && math.Abs(n.velocity) < scrollSnapDistance {
		n.offset, n.velocity = n.target, 0
	}
}

// Advance 以实际帧间隔推进弹簧动画（帧率不固定时使用）
func (n *Navigator) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	if dt != n.springDT {
		n.spring = harmonica.NewSpring(dt, scrollSpringFrequency, scrollSpringDamping)
		n.springDT = dt
	}
	n.Update()
}

// Offset 当前滚动偏移量
func (n *Navigator) Offset() float64 { return n.offset }

// Target 滚动目标
func (n *Navigator) Target() float64 { return n.target }

// JumpTo 立即跳到分区（恢复上次位置时使用，不播放动画）
func (n *Navigator) JumpTo(id string) bool {
	s, ok := n.Section(id)
	if !ok {
		return false
	}
	n.target = n.clamp(s.Top)
	n.offset, n.velocity = n.target, 0
	return true
}

// Visible 分区是否与视口相交
func (n *Navigator) Visible(id string) bool {
	s, ok := n.Section(id)
	if !ok {
		return false
	}
	return s.Top < n.offset+n.viewportH && s.Top+s.Height > n.offset
}

// Current 视口上三分之一处所在的分区，用于导航栏高亮
func (n *Navigator) Current() string {
	probe := n.offset + n.viewportH/3
	for _, s := range n.sections {
		if probe >= s.Top && probe < s.Top+s.Height {
			return s.ID
		}
	}
	if len(n.sections) > 0 {
		return n.sections[len(n.sections)-1].ID
	}
	return ""
}

func (n *Navigator) clamp(y float64) float64 {
	return math.Max(0, math.Min(n.MaxOffset(), y))
}
