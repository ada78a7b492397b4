package systems

import (
	"math"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
)

// CarouselTrackPadding 轨道左右内边距（像素）
const CarouselTrackPadding = 24.0

// CarouselSystem 作品轮播自动滚动
//
// 每隔 Interval 秒前进 Speed 像素；到达 contentWidth - viewportWidth 时回到 0。
// 悬停时暂停。
type CarouselSystem struct {
	entityManager *ecs.EntityManager
}

// NewCarouselSystem 创建轮播系统
func NewCarouselSystem(em *ecs.EntityManager) *CarouselSystem {
	return &CarouselSystem{entityManager: em}
}

// NewCarouselEntity 根据配置创建轮播实体
func NewCarouselEntity(em *ecs.EntityManager, cfg *config.ShowcaseConfig, viewportWidth float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.CarouselComponent{
		Items:         cfg.Items,
		CardWidth:     cfg.CardWidth,
		CardHeight:    cfg.CardHeight,
		Gap:           cfg.Gap,
		Padding:       CarouselTrackPadding,
		Speed:         cfg.Speed,
		Interval:      float64(cfg.IntervalMs) / 1000,
		ViewportWidth: viewportWidth,
		HoverIndex:    -1,
	})
	return id
}

// Update 推进所有轮播
func (s *CarouselSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CarouselComponent](s.entityManager) {
		c, _ := ecs.GetComponent[*components.CarouselComponent](s.entityManager, id)
		AdvanceCarousel(c, deltaTime)
	}
}

// AdvanceCarousel 按经过的时间推进一个轮播
func AdvanceCarousel(c *components.CarouselComponent, deltaTime float64) {
	if c.Hovered || c.Interval <= 0 {
		return
	}
	c.Accumulator += deltaTime
	for c.Accumulator >= c.Interval {
		c.Accumulator -= c.Interval
		c.Offset += c.Speed
		if c.Offset >= CarouselMaxOffset(c) {
			c.Offset = 0
		}
	}
}

// CarouselContentWidth 轨道总宽度
func CarouselContentWidth(c *components.CarouselComponent) float64 {
	n := c.CardCount()
	if n == 0 {
		return 2 * c.Padding
	}
	return 2*c.Padding + float64(n)*c.CardWidth + float64(n-1)*c.Gap
}

// CarouselMaxOffset 最大滚动量
func CarouselMaxOffset(c *components.CarouselComponent) float64 {
	return math.Max(0, CarouselContentWidth(c)-c.ViewportWidth)
}

// CarouselCardX 第 i 张卡片在视口中的左边缘
func CarouselCardX(c *components.CarouselComponent, i int) float64 {
	return c.Padding + float64(i)*(c.CardWidth+c.Gap) - c.Offset
}

// CarouselCardAt 视口坐标处的卡片
//
// 返回：
//   - int: 轨道上的卡片序号（0 到 CardCount-1）
//   - bool: 是否命中卡片（卡片间隙和内边距不算）
func CarouselCardAt(c *components.CarouselComponent, x, y float64) (int, bool) {
	if y < 0 || y > c.CardHeight || c.CardWidth <= 0 {
		return -1, false
	}
	track := x + c.Offset - c.Padding
	if track < 0 {
		return -1, false
	}
	stride := c.CardWidth + c.Gap
	i := int(track / stride)
	if i >= c.CardCount() || track-float64(i)*stride > c.CardWidth {
		return -1, false
	}
	return i, true
}

// CarouselItem 轨道序号对应的作品
func CarouselItem(c *components.CarouselComponent, index int) config.ShowcaseItem {
	return c.Items[index%len(c.Items)]
}
