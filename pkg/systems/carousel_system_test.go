package systems

import (
	"testing"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
)

func newTestCarousel(viewport float64) (*ecs.EntityManager, *components.CarouselComponent) {
	cfg := &config.ShowcaseConfig{
		CardWidth:  100,
		CardHeight: 200,
		Gap:        10,
		Speed:      0.5,
		IntervalMs: 30,
		Items: []config.ShowcaseItem{
			{ID: 1, Title: "A", URL: "https://example.com/a.mp4"},
			{ID: 2, Title: "B", URL: "https://example.com/b.mp4"},
		},
	}
	em := ecs.NewEntityManager()
	id := NewCarouselEntity(em, cfg, viewport)
	c, _ := ecs.GetComponent[*components.CarouselComponent](em, id)
	return em, c
}

func TestCarousel_ContentWidth(t *testing.T) {
	_, c := newTestCarousel(300)

	// 4 张卡片 + 3 个间隙 + 左右内边距
	want := 2*CarouselTrackPadding + 4*100 + 3*10
	if got := CarouselContentWidth(c); got != want {
		t.Errorf("content width: got %v, want %v", got, want)
	}
	if got := CarouselMaxOffset(c); got != want-300 {
		t.Errorf("max offset: got %v, want %v", got, want-300)
	}
}

// TestCarousel_Advance 每 30ms 前进 0.5px
func TestCarousel_Advance(t *testing.T) {
	em, c := newTestCarousel(300)
	system := NewCarouselSystem(em)

	system.Update(0.029)
	if c.Offset != 0 {
		t.Errorf("should not advance before interval, offset=%v", c.Offset)
	}
	system.Update(0.002)
	if c.Offset != 0.5 {
		t.Errorf("expected offset 0.5, got %v", c.Offset)
	}
	system.Update(0.090)
	if c.Offset != 2 {
		t.Errorf("expected offset 2 after 3 more steps, got %v", c.Offset)
	}
}

func TestCarousel_ResetsAtEnd(t *testing.T) {
	_, c := newTestCarousel(300)
	c.Offset = CarouselMaxOffset(c) - 0.5

	AdvanceCarousel(c, c.Interval)
	if c.Offset != 0 {
		t.Errorf("expected reset to 0 at max offset, got %v", c.Offset)
	}
}

func TestCarousel_PausesOnHover(t *testing.T) {
	_, c := newTestCarousel(300)
	c.Hovered = true
	AdvanceCarousel(c, 1)
	if c.Offset != 0 {
		t.Errorf("hovered carousel should not move, offset=%v", c.Offset)
	}
}

func TestCarousel_CardAt(t *testing.T) {
	_, c := newTestCarousel(300)

	tests := []struct {
		name   string
		x, y   float64
		offset float64
		want   int
		ok     bool
	}{
		{"left padding", 10, 50, 0, -1, false},
		{"first card", CarouselTrackPadding + 50, 50, 0, 0, true},
		{"gap", CarouselTrackPadding + 105, 50, 0, -1, false},
		{"second card", CarouselTrackPadding + 115, 50, 0, 1, true},
		{"scrolled to third card", CarouselTrackPadding + 10, 50, 220, 2, true},
		{"below cards", CarouselTrackPadding + 50, 250, 0, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.Offset = tt.offset
			got, ok := CarouselCardAt(c, tt.x, tt.y)
			if got != tt.want || ok != tt.ok {
				t.Errorf("got (%d, %v), want (%d, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}

	// 第二遍中的卡片对应同一个作品
	if item := CarouselItem(c, 3); item.ID != 2 {
		t.Errorf("card 3 should map to item 2, got %d", item.ID)
	}
}
