package scenes

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/preview"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/systems"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/utils"
)

// 作品分区布局
const (
	showcaseTitle       = "Our Work"
	showcaseTitleHeight = 96.0
	showcaseBottomSpace = 64.0

	modalMaxWidth   = 960.0
	modalCloseSize  = 36.0
	modalFadeIn     = 0.25 // 秒
	fallbackButtonW = 180.0
	fallbackButtonH = 44.0
)

// ShowcaseScene 作品分区：流光背景、自动滚动的作品轮播和预览弹窗
type ShowcaseScene struct {
	field *FieldScene

	entityManager  *ecs.EntityManager
	carouselSystem *systems.CarouselSystem
	carouselID     ecs.EntityID

	preview *preview.Controller
	prober  preview.Prober
	ctx     context.Context
	openURL func(string) error

	// unavailable 启动时探测失败的作品（按作品 ID）
	unavailable map[int]error
	prefetched  chan map[int]error

	w, h     float64
	trackY   float64
	windowW  float64
	windowH  float64
	openedAt time.Time
}

// ShowcaseOptions 作品分区依赖
type ShowcaseOptions struct {
	Variant  *config.FieldVariant
	Showcase *config.ShowcaseConfig
	Prober   preview.Prober
	// Locker 弹窗打开时锁定页面滚动（通常是 Navigator）
	Locker preview.ScrollLocker
	// OpenURL 打开外部链接，nil 时使用系统浏览器
	OpenURL func(string) error
	Rand    *rand.Rand
}

// NewShowcaseScene 创建作品分区
//
// 参数：
//   - ctx: 预览探测使用的上下文，取消后所有探测停止
//   - opts: 依赖
func NewShowcaseScene(ctx context.Context, opts ShowcaseOptions) *ShowcaseScene {
	em := ecs.NewEntityManager()
	s := &ShowcaseScene{
		field:          NewFieldScene(config.SectionShowcase, opts.Variant, opts.Rand),
		entityManager:  em,
		carouselSystem: systems.NewCarouselSystem(em),
		carouselID:     systems.NewCarouselEntity(em, opts.Showcase, 0),
		preview:        preview.NewController(opts.Prober, opts.Locker, config.PreviewLoadTimeoutMs*time.Millisecond),
		prober:         opts.Prober,
		ctx:            ctx,
		openURL:        opts.OpenURL,
		unavailable:    make(map[int]error),
		prefetched:     make(chan map[int]error, 1),
	}
	if s.openURL == nil {
		s.openURL = preview.OpenExternal
	}
	return s
}

// ID 分区标识
func (s *ShowcaseScene) ID() string { return config.SectionShowcase }

// Height 至少一个视口，并能放下卡片和标题
func (s *ShowcaseScene) Height(_, viewH float64) float64 {
	c := s.carousel()
	return math.Max(viewH, showcaseTitleHeight+c.CardHeight+showcaseBottomSpace)
}

// Resize 分区尺寸变化
func (s *ShowcaseScene) Resize(w, h float64) {
	s.w, s.h = w, h
	s.field.Resize(w, h)
	c := s.carousel()
	c.ViewportWidth = w
	if c.Offset > systems.CarouselMaxOffset(c) {
		c.Offset = 0
	}
	s.trackY = showcaseTitleHeight + math.Max(0, (h-showcaseTitleHeight-showcaseBottomSpace-c.CardHeight)/2)
}

// SetVisible 背景流光随分区暂停/恢复
func (s *ShowcaseScene) SetVisible(visible bool) {
	s.field.SetVisible(visible)
}

// SetVariant 热更新背景变体
func (s *ShowcaseScene) SetVariant(v *config.FieldVariant) {
	s.field.SetVariant(v)
}

// Field 背景粒子场
func (s *ShowcaseScene) Field() *FieldScene { return s.field }

// Preview 预览控制器
func (s *ShowcaseScene) Preview() *preview.Controller { return s.preview }

// Carousel 轮播状态
func (s *ShowcaseScene) Carousel() *components.CarouselComponent { return s.carousel() }

func (s *ShowcaseScene) carousel() *components.CarouselComponent {
	c, _ := ecs.GetComponent[*components.CarouselComponent](s.entityManager, s.carouselID)
	return c
}

// StartPrefetch 后台探测全部作品，结果在下一次 Update 中生效
func (s *ShowcaseScene) StartPrefetch() {
	items := s.carousel().Items
	go func() {
		failures := preview.PrefetchAll(s.ctx, s.prober, items, preview.DefaultPrefetchLimit)
		select {
		case s.prefetched <- failures:
		case <-s.ctx.Done():
		}
	}()
}

// Unavailable 作品是否在启动探测中失败
func (s *ShowcaseScene) Unavailable(id int) bool {
	_, ok := s.unavailable[id]
	return ok
}

// Update 推进背景和轮播
func (s *ShowcaseScene) Update(deltaTime float64) {
	select {
	case failures := <-s.prefetched:
		s.unavailable = failures
	default:
	}
	s.field.Update(deltaTime)
	s.carouselSystem.Update(deltaTime)
}

// trackLocal 分区坐标转换为轨道坐标
func (s *ShowcaseScene) trackLocal(x, y float64) (float64, float64) {
	return x, y - s.trackY
}

// PointerMoved 更新悬停卡片，同时驱动背景流光
func (s *ShowcaseScene) PointerMoved(x, y float64) {
	s.field.PointerMoved(x, y)
	c := s.carousel()
	tx, ty := s.trackLocal(x, y)
	c.Hovered = ty >= 0 && ty <= c.CardHeight
	c.HoverIndex = -1
	if i, ok := systems.CarouselCardAt(c, tx, ty); ok {
		c.HoverIndex = i
	}
}

// PointerLeft 指针离开分区，轮播恢复滚动
func (s *ShowcaseScene) PointerLeft() {
	s.field.PointerLeft()
	c := s.carousel()
	c.Hovered = false
	c.HoverIndex = -1
}

// Clicked 点击卡片打开预览，点击空白处生成流光
func (s *ShowcaseScene) Clicked(x, y float64) {
	c := s.carousel()
	tx, ty := s.trackLocal(x, y)
	if i, ok := systems.CarouselCardAt(c, tx, ty); ok {
		s.OpenPreview(systems.CarouselItem(c, i))
		return
	}
	s.field.Clicked(x, y)
}

// OpenPreview 打开作品预览
func (s *ShowcaseScene) OpenPreview(item config.ShowcaseItem) {
	s.openedAt = time.Now()
	s.preview.Open(s.ctx, item)
}

// ClosePreview 关闭作品预览
func (s *ShowcaseScene) ClosePreview() {
	s.preview.Close()
}

// KeyPressed Esc 关闭预览
func (s *ShowcaseScene) KeyPressed(key ebiten.Key) bool {
	if key == ebiten.KeyEscape && s.preview.IsOpen() {
		s.ClosePreview()
		return true
	}
	return false
}

// OverlayActive 预览弹窗是否打开
func (s *ShowcaseScene) OverlayActive() bool {
	return s.preview.IsOpen()
}

// modalRect 弹窗在窗口中的位置（16:9）
func modalRect(windowW, windowH float64) (x, y, w, h float64) {
	w = math.Min(modalMaxWidth, windowW*0.8)
	h = w * 9 / 16
	if h > windowH*0.8 {
		h = windowH * 0.8
		w = h * 16 / 9
	}
	return (windowW - w) / 2, (windowH - h) / 2, w, h
}

// closeButtonRect 弹窗右上角关闭按钮
func closeButtonRect(mx, my, mw float64) (x, y, w, h float64) {
	return mx + mw - modalCloseSize, my - modalCloseSize - 8, modalCloseSize, modalCloseSize
}

// fallbackButtonRect "Open Video" 按钮
func fallbackButtonRect(mx, my, mw, mh float64) (x, y, w, h float64) {
	return mx + (mw-fallbackButtonW)/2, my + mh/2 + 24, fallbackButtonW, fallbackButtonH
}

// OverlayClicked 弹窗点击：关闭按钮和背景关闭，"Open Video" 打开外部链接
func (s *ShowcaseScene) OverlayClicked(x, y float64) {
	mx, my, mw, mh := modalRect(s.windowW, s.windowH)

	if bx, by, bw, bh := closeButtonRect(mx, my, mw); pointInRect(x, y, bx, by, bw, bh) {
		s.ClosePreview()
		return
	}
	if !pointInRect(x, y, mx, my, mw, mh) {
		s.ClosePreview()
		return
	}

	view := s.preview.View()
	if view.Link == "" {
		return
	}
	if bx, by, bw, bh := fallbackButtonRect(mx, my, mw, mh); pointInRect(x, y, bx, by, bw, bh) {
		if err := s.openURL(view.Link); err != nil {
			logging.Named("Showcase").Warnf("Failed to open %s: %v", view.Link, err)
		}
	}
}

// SetWindowSize 覆盖层使用的窗口尺寸
func (s *ShowcaseScene) SetWindowSize(w, h float64) {
	s.windowW, s.windowH = w, h
}

// Close 关闭预览并停止背景动画
func (s *ShowcaseScene) Close() {
	s.preview.Close()
	s.field.Close()
	s.entityManager.DestroyAll()
}

// Draw 绘制背景、标题和轮播
func (s *ShowcaseScene) Draw(screen *ebiten.Image) {
	s.field.Draw(screen)

	title := utils.MustUIFace(36)
	utils.DrawTextCentered(screen, showcaseTitle, title, s.w/2, showcaseTitleHeight/2, colorText)

	c := s.carousel()
	if c == nil || len(c.Items) == 0 {
		return
	}
	label := utils.MustUIFace(18)
	for i := 0; i < c.CardCount(); i++ {
		x := systems.CarouselCardX(c, i)
		if x+c.CardWidth < 0 || x > s.w {
			continue
		}
		item := systems.CarouselItem(c, i)
		s.drawCard(screen, label, item, i, x, s.trackY, c.CardWidth, c.CardHeight, i == c.HoverIndex)
	}
}

func (s *ShowcaseScene) drawCard(screen *ebiten.Image, face *text.GoTextFace, item config.ShowcaseItem, i int, x, y, w, h float64, hovered bool) {
	fillRect(screen, x, y, w, h, cardColor(i%len(s.carousel().Items)))

	// 播放图标
	cx, cy := float32(x+w/2), float32(y+h/2)
	vector.DrawFilledCircle(screen, cx, cy, 32, withAlpha(colorText, 0.2), true)
	vector.StrokeLine(screen, cx-10, cy-16, cx+18, cy, 3, colorText, true)
	vector.StrokeLine(screen, cx+18, cy, cx-10, cy+16, 3, colorText, true)
	vector.StrokeLine(screen, cx-10, cy+16, cx-10, cy-16, 3, colorText, true)

	utils.DrawText(screen, item.Title, face, x+16, y+h-40, colorText)

	if s.Unavailable(item.ID) {
		fillRect(screen, x, y, w, h, withAlpha(colorBlack, 0.6))
		utils.DrawTextCentered(screen, "Unavailable", face, x+w/2, y+h/2+56, colorError)
	}
	if hovered {
		strokeRect(screen, x, y, w, h, 3, colorAccent)
	}
}

// DrawOverlay 绘制预览弹窗
func (s *ShowcaseScene) DrawOverlay(screen *ebiten.Image) {
	b := screen.Bounds()
	s.SetWindowSize(float64(b.Dx()), float64(b.Dy()))
	view := s.preview.View()

	fade := utils.EaseOutCubic(time.Since(s.openedAt).Seconds() / modalFadeIn)
	fillRect(screen, 0, 0, s.windowW, s.windowH, withAlpha(colorBlack, 0.8*fade))

	mx, my, mw, mh := modalRect(s.windowW, s.windowH)
	fillRect(screen, mx, my, mw, mh, withAlpha(colorModal, fade))

	bx, by, bw, bh := closeButtonRect(mx, my, mw)
	strokeRect(screen, bx, by, bw, bh, 2, withAlpha(colorText, fade))
	vector.StrokeLine(screen, float32(bx+10), float32(by+10), float32(bx+bw-10), float32(by+bh-10), 2, colorText, true)
	vector.StrokeLine(screen, float32(bx+bw-10), float32(by+10), float32(bx+10), float32(by+bh-10), 2, colorText, true)

	title := utils.MustUIFace(28)
	body := utils.MustUIFace(18)
	cx, cy := mx+mw/2, my+mh/2

	switch view.State {
	case preview.StateLoading:
		drawSpinner(screen, cx, cy-24, time.Since(s.openedAt).Seconds())
		utils.DrawTextCentered(screen, "Loading...", body, cx, cy+32, colorTextMuted)
	case preview.StateReady:
		utils.DrawTextCentered(screen, view.Item.Title, title, cx, cy-16, colorText)
		utils.DrawTextCentered(screen, string(view.Item.Kind), body, cx, cy+24, colorTextMuted)
	case preview.StateError:
		utils.DrawTextCentered(screen, preview.ErrorTitle, title, cx, cy-16, colorError)
		utils.DrawTextCentered(screen, preview.ErrorHint, body, cx, cy+24, colorTextMuted)
	case preview.StateFallback:
		utils.DrawTextCentered(screen, view.Item.Title, title, cx, cy-32, colorText)
		fx, fy, fw, fh := fallbackButtonRect(mx, my, mw, mh)
		fillRect(screen, fx, fy, fw, fh, colorAccent)
		utils.DrawTextCentered(screen, preview.FallbackLabel, body, fx+fw/2, fy+fh/2, colorBlack)
	}
}

// drawSpinner 加载指示：八个圆点依次变亮
func drawSpinner(screen *ebiten.Image, cx, cy, t float64) {
	const dots = 8
	head := int(t*dots) % dots
	for i := 0; i < dots; i++ {
		a := float64(i) / dots * 2 * math.Pi
		alpha := 0.25
		if (head-i+dots)%dots < 3 {
			alpha = 1 - float64((head-i+dots)%dots)*0.3
		}
		x := cx + math.Cos(a)*18
		y := cy + math.Sin(a)*18
		vector.DrawFilledCircle(screen, float32(x), float32(y), 4, withAlpha(colorText, alpha), true)
	}
}
