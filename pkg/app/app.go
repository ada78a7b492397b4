// Package app 提供页面应用的核心包装器
//
// 该包把窗口应用（ebiten.Game）和终端渲染器的初始化逻辑从 main 包提取出来。
// 窗口版通过 NewApp() 创建，终端版通过 RunTerminal() 运行。
package app

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/preview"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/scenes"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/utils"
)

// 内置配置路径
const (
	ShowcaseConfigPath = "data/showcase.yaml"
	ClientsConfigPath  = "data/clients.yaml"

	// AppName gdata 存储目录名
	AppName = "crawfordmediaworks"

	// ShowcaseVariant 作品分区背景使用的变体
	ShowcaseVariant = "streaks"

	scrollFPS    = 60
	probeTimeout = 5 * time.Second
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Variant 首屏动画场变体，为空则使用上次保存的设置
	Variant string
	// Overrides 变体覆盖目录，非空时加载并监听热更新
	Overrides string
	// Prober 预览探测器，nil 时使用 HTTP HEAD
	Prober preview.Prober
}

// App 是页面应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	variants     *config.FieldConfigManager
	watcher      *config.FieldWatcher

	hero     *scenes.FieldScene
	showcase *scenes.ShowcaseScene
	clients  *scenes.ClientsScene
	heroName string

	navBar  *NavBar
	router  *inputRouter
	tracker *utils.PointerTracker
	keys    []ebiten.Key

	ctx    context.Context
	cancel context.CancelFunc

	width, height int
	lastUpdate    time.Time
	verbose       bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化页面应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	log := logging.Named("App")

	variants, err := config.NewFieldConfigManager(config.DefaultFieldDir)
	if err != nil {
		return nil, fmt.Errorf("field variants: %w", err)
	}
	if cfg.Overrides != "" {
		n, err := variants.LoadOverrideDir(cfg.Overrides)
		if err != nil {
			return nil, fmt.Errorf("field overrides: %w", err)
		}
		log.Infof("Loaded %d variant overrides from %s", n, cfg.Overrides)
	}

	settings := game.OpenSettings(AppName)

	// 首屏变体：命令行 > 上次设置 > 默认
	heroName := cfg.Variant
	if heroName == "" {
		heroName = settings.GetSettings().HeroVariant
	}
	if _, ok := variants.Get(heroName); !ok {
		if cfg.Variant != "" {
			return nil, fmt.Errorf("unknown field variant %q (available: %v)", cfg.Variant, variants.Names())
		}
		log.Warnf("Saved variant %q no longer exists, using %s", heroName, config.SectionHero)
		heroName = config.SectionHero
	}
	heroVariant, ok := variants.Get(heroName)
	if !ok {
		return nil, fmt.Errorf("field variant %q not found", heroName)
	}
	streaks, ok := variants.Get(ShowcaseVariant)
	if !ok {
		return nil, fmt.Errorf("field variant %q not found", ShowcaseVariant)
	}
	settings.SetHeroVariant(heroName)

	showcaseCfg, err := config.LoadShowcaseConfig(ShowcaseConfigPath)
	if err != nil {
		return nil, err
	}
	clientsCfg, err := config.LoadClientsConfig(ClientsConfigPath)
	if err != nil {
		return nil, err
	}

	prober := cfg.Prober
	if prober == nil {
		prober = preview.NewHTTPProber(probeTimeout)
	}

	ctx, cancel := context.WithCancel(context.Background())
	navigator := game.NewNavigator(scrollFPS)
	sceneManager := game.NewSceneManager(navigator, config.NavBarHeight)

	a := &App{
		sceneManager: sceneManager,
		settings:     settings,
		variants:     variants,
		heroName:     heroName,
		navBar:       NewNavBar(),
		tracker:      utils.NewPointerTracker(),
		ctx:          ctx,
		cancel:       cancel,
		verbose:      cfg.Verbose,
	}
	a.router = newInputRouter(sceneManager, a.navBar)

	a.hero = scenes.NewFieldScene(config.SectionHero, heroVariant, nil)
	a.showcase = scenes.NewShowcaseScene(ctx, scenes.ShowcaseOptions{
		Variant:  streaks,
		Showcase: showcaseCfg,
		Prober:   prober,
		Locker:   navigator,
	})
	a.clients = scenes.NewClientsScene(clientsCfg, settings)
	sceneManager.Add(a.hero)
	sceneManager.Add(a.showcase)
	sceneManager.Add(a.clients)

	if cfg.Overrides != "" {
		watcher, err := config.NewFieldWatcher(variants, cfg.Overrides)
		if err != nil {
			log.Warnf("Hot reload disabled: %v", err)
		} else if err := watcher.Start(ctx); err != nil {
			log.Warnf("Hot reload disabled: %v", err)
		} else {
			a.watcher = watcher
		}
	}

	a.showcase.StartPrefetch()
	if ebiten.IsFullscreen() != settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(settings.GetSettings().Fullscreen)
	}

	log.Infof("Started with hero variant %s, %d showcase items, %d client pins",
		heroName, len(showcaseCfg.Items), len(clientsCfg.Locations))
	return a, nil
}

// Update 更新页面逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.updateWindow()

	a.sceneManager.SetFocused(ebiten.IsFocused())
	a.applyReloads()

	sample := utils.ReadPointerSample(a.width, a.height)
	for _, ev := range a.tracker.Update(sample) {
		a.router.Dispatch(ev)
	}
	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, k := range a.keys {
		if k == ebiten.KeyF11 {
			continue
		}
		a.router.KeyPressed(k)
	}

	now := time.Now()
	deltaTime := 1.0 / 60.0
	if !a.lastUpdate.IsZero() {
		deltaTime = min(now.Sub(a.lastUpdate).Seconds(), game.MaxTickSeconds)
	}
	a.lastUpdate = now
	a.sceneManager.Update(deltaTime)
	return nil
}

// updateWindow F11 切换全屏
func (a *App) updateWindow() {
	log := logging.Named("App")

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
			log.Debugf("Delayed SetWindowSize(%d, %d)", config.DefaultWindowWidth, config.DefaultWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
		log.Debugf("Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
		a.settings.SetFullscreen(true)
	}
}

// applyReloads 应用热更新后的变体（非阻塞）
func (a *App) applyReloads() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case v := <-a.watcher.Updates():
			a.applyVariant(v)
		default:
			return
		}
	}
}

// applyVariant 把变体替换到使用它的分区（两个分区可以使用同一个变体）
func (a *App) applyVariant(v *config.FieldVariant) {
	if v.Name == a.heroName {
		a.hero.SetVariant(v)
	}
	if v.Name == ShowcaseVariant {
		// 每个分区持有独立副本
		if cp, ok := a.variants.Get(v.Name); ok {
			a.showcase.SetVariant(cp)
		}
	}
}

// Draw 绘制页面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	a.sceneManager.DrawSections(screen)
	a.navBar.Draw(screen, a.sceneManager.Navigator().Current())
	a.sceneManager.DrawOverlay(screen)
}

// Layout 逻辑尺寸跟随窗口，尺寸变化时重新布局分区
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.navBar.Resize(float64(outsideWidth))
		a.sceneManager.Layout(float64(outsideWidth), float64(outsideHeight))
		if a.lastUpdate.IsZero() {
			// 第一次布局：恢复上次所在分区
			a.sceneManager.Navigator().JumpTo(a.settings.GetSettings().LastSection)
		}
	}
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Close 保存设置并停止所有后台任务
func (a *App) Close() error {
	a.settings.SetLastSection(a.sceneManager.Navigator().Current())
	err := a.settings.Save()

	a.sceneManager.Close()
	a.cancel()
	if a.watcher != nil {
		a.watcher.Wait()
	}
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
