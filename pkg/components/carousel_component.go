package components

import "github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"

// CarouselComponent 作品轮播的状态
//
// 作品列表在轨道上连续排列两遍，Offset 为轨道的水平滚动量（像素）。
// 逻辑由 CarouselSystem 处理。
type CarouselComponent struct {
	Items []config.ShowcaseItem

	CardWidth  float64
	CardHeight float64
	Gap        float64
	Padding    float64 // 轨道左右内边距

	Speed    float64 // 每次步进的像素数
	Interval float64 // 步进间隔（秒）

	Offset        float64
	ViewportWidth float64
	Accumulator   float64

	// Hovered 指针悬停在轨道上时暂停滚动
	Hovered    bool
	HoverIndex int // 悬停的卡片序号（轨道上的位置），-1 为无
}

// CardCount 轨道上的卡片数（作品数的两倍）
func (c *CarouselComponent) CardCount() int {
	return len(c.Items) * 2
}
