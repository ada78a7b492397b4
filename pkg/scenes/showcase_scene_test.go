package scenes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/preview"
)

var testItems = []config.ShowcaseItem{
	{ID: 2, Title: "UGC Ad", URL: "https://example.com/ugc.mp4", Kind: config.ShowcaseVideo},
	{ID: 3, Title: "Podcast Ad", URL: "https://example.com/podcast", Kind: config.ShowcaseEmbed},
	{ID: 4, Title: "Founder Ad", URL: "https://example.com/founder.mp4", Kind: config.ShowcaseVideo},
}

type showcaseFixture struct {
	scene  *ShowcaseScene
	nav    *game.Navigator
	cancel context.CancelFunc

	mu     sync.Mutex
	opened []string
}

func (f *showcaseFixture) openedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.opened...)
}

// newShowcaseFixture 800x600 分区：轨道顶部 y=216，第一张卡片 x∈[24,324]
func newShowcaseFixture(t *testing.T, probe func(config.ShowcaseItem) error) *showcaseFixture {
	t.Helper()
	ignore := goleak.IgnoreCurrent()
	ctx, cancel := context.WithCancel(context.Background())
	f := &showcaseFixture{nav: game.NewNavigator(60), cancel: cancel}
	f.scene = NewShowcaseScene(ctx, ShowcaseOptions{
		Variant: testVariant(t),
		Showcase: &config.ShowcaseConfig{
			CardWidth: 300, CardHeight: 200, Gap: 10,
			Speed: 0.5, IntervalMs: 30,
			Items: testItems,
		},
		Prober: preview.ProberFunc(func(ctx context.Context, item config.ShowcaseItem) error {
			return probe(item)
		}),
		Locker: f.nav,
		OpenURL: func(url string) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.opened = append(f.opened, url)
			return nil
		},
		Rand: testRand(),
	})
	f.scene.Resize(800, 600)
	f.scene.SetWindowSize(800, 600)
	t.Cleanup(func() {
		f.scene.Close()
		f.cancel()
		f.scene.Preview().Wait()
		goleak.VerifyNone(t, ignore)
	})
	return f
}

// TestShowcaseHoverPausesCarousel 悬停卡片时轮播暂停
func TestShowcaseHoverPausesCarousel(t *testing.T) {
	f := newShowcaseFixture(t, func(config.ShowcaseItem) error { return nil })
	c := f.scene.Carousel()

	f.scene.Update(0.3)
	moved := c.Offset
	assert.Greater(t, moved, 0.0, "carousel should advance when not hovered")

	f.scene.PointerMoved(50, 300)
	assert.True(t, c.Hovered)
	assert.Equal(t, 0, c.HoverIndex)

	f.scene.Update(0.3)
	assert.Equal(t, moved, c.Offset, "hovered carousel should not advance")

	f.scene.PointerLeft()
	assert.False(t, c.Hovered)
	assert.Equal(t, -1, c.HoverIndex)
}

// TestShowcaseClickOpensPreview 点击卡片打开预览并锁定页面滚动，点击背景关闭
func TestShowcaseClickOpensPreview(t *testing.T) {
	f := newShowcaseFixture(t, func(config.ShowcaseItem) error { return nil })

	f.scene.Clicked(50, 300)
	require.True(t, f.scene.OverlayActive())
	assert.True(t, f.nav.Locked(), "page scroll should be locked while the preview is open")
	assert.Equal(t, "UGC Ad", f.scene.Preview().View().Item.Title)
	require.Eventually(t, func() bool { return f.scene.Preview().State() == preview.StateReady }, time.Second, time.Millisecond)

	f.scene.OverlayClicked(5, 5)
	assert.False(t, f.scene.OverlayActive())
	assert.False(t, f.nav.Locked())
}

// TestShowcaseVideoFailureShowsError 视频探测失败进入错误状态，Esc 关闭
func TestShowcaseVideoFailureShowsError(t *testing.T) {
	f := newShowcaseFixture(t, func(config.ShowcaseItem) error { return errors.New("404") })

	f.scene.OpenPreview(testItems[0])
	require.Eventually(t, func() bool { return f.scene.Preview().State() == preview.StateError }, time.Second, time.Millisecond)

	// 弹窗内部点击不关闭
	f.scene.OverlayClicked(400, 300)
	assert.True(t, f.scene.OverlayActive())

	assert.True(t, f.scene.KeyPressed(ebiten.KeyEscape))
	assert.False(t, f.scene.OverlayActive())
	assert.False(t, f.scene.KeyPressed(ebiten.KeyEscape), "escape without a preview is not handled")
}

// TestShowcaseEmbedFallbackLink 嵌入式作品加载失败时提供外部链接
func TestShowcaseEmbedFallbackLink(t *testing.T) {
	f := newShowcaseFixture(t, func(config.ShowcaseItem) error { return errors.New("blocked") })

	f.scene.OpenPreview(testItems[1])
	require.Eventually(t, func() bool { return f.scene.Preview().State() == preview.StateFallback }, time.Second, time.Millisecond)

	// 800x600 窗口：弹窗 (80,120) 640x360，按钮中心 (400,346)
	f.scene.OverlayClicked(400, 346)
	assert.Equal(t, []string{testItems[1].URL}, f.openedURLs())
	assert.True(t, f.scene.OverlayActive(), "opening the link keeps the preview open")

	// 关闭按钮 (684,76) 36x36
	f.scene.OverlayClicked(702, 94)
	assert.False(t, f.scene.OverlayActive())
}

// TestShowcaseClickBackgroundSpawnsStreaks 点击卡片以外的位置生成流光
func TestShowcaseClickBackgroundSpawnsStreaks(t *testing.T) {
	f := newShowcaseFixture(t, func(config.ShowcaseItem) error { return nil })
	em := f.scene.Field().State().Entities

	before := pointCount(em)
	f.scene.Clicked(400, 50)
	assert.Equal(t, before+3, pointCount(em))
	assert.False(t, f.scene.OverlayActive())
}

// TestShowcasePrefetchMarksUnavailable 启动探测失败的作品被标记为不可用
func TestShowcasePrefetchMarksUnavailable(t *testing.T) {
	f := newShowcaseFixture(t, func(item config.ShowcaseItem) error {
		if item.ID == 3 {
			return errors.New("gone")
		}
		return nil
	})

	f.scene.StartPrefetch()
	require.Eventually(t, func() bool {
		f.scene.Update(0)
		return f.scene.Unavailable(3)
	}, time.Second, time.Millisecond)
	assert.False(t, f.scene.Unavailable(2))
	assert.False(t, f.scene.Unavailable(4))
}

// TestShowcaseHeight 分区至少能放下标题和卡片
func TestShowcaseHeight(t *testing.T) {
	f := newShowcaseFixture(t, func(config.ShowcaseItem) error { return nil })
	assert.Equal(t, 600.0, f.scene.Height(800, 600))
	assert.Equal(t, 96.0+200+64, f.scene.Height(800, 100))
}
