package config

// 布局配置常量
// 本文件定义窗口尺寸、页面分区和导航栏等布局参数

const (
	// DefaultWindowWidth/Height 初始窗口尺寸，窗口可自由缩放
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720

	// NavBarHeight 顶部导航栏高度（像素）
	NavBarHeight = 48.0

	// PreviewLoadTimeoutMs 嵌入播放器未报告加载完成时显示"Open Video"链接的延迟
	PreviewLoadTimeoutMs = 2000

	// WheelScrollStep 滚轮一格对应的页面滚动距离（像素）
	WheelScrollStep = 48.0

	// PinHitRadius 地图图钉的悬停/点击判定半径（像素）
	PinHitRadius = 12.0
)

// Section 页面分区标识
const (
	SectionHero     = "hero"
	SectionShowcase = "showcase"
	SectionClients  = "clients"
)

// SectionOrder 分区自上而下的顺序，也是导航栏按钮顺序
var SectionOrder = []string{SectionHero, SectionShowcase, SectionClients}

// SectionTitles 导航栏显示名
var SectionTitles = map[string]string{
	SectionHero:     "Home",
	SectionShowcase: "Showcase",
	SectionClients:  "Clients",
}
