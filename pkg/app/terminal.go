package app

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/surface"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/systems"
)

// DefaultTerminalFPS 终端渲染帧率
const DefaultTerminalFPS = 30

// TerminalRunner 在终端里运行一个动画场
//
// 事件由单独的 goroutine 从 tcell 读取并通过 channel 交给主循环，
// 所有状态修改都在主循环中进行。
type TerminalRunner struct {
	screen tcell.Screen
	fps    int
	now    func() time.Time

	state    *game.FieldState
	pipeline *systems.FieldPipeline
	renderer *systems.FieldRenderSystem
	surf     *surface.TerminalSurface

	buttonDown bool

	events chan tcell.Event
	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once
}

// NewTerminalRunner 创建终端运行器
//
// 参数：
//   - screen: tcell 屏幕（尚未 Init）
//   - variant: 动画场变体
//   - rng: 随机源，nil 时使用随机种子
func NewTerminalRunner(screen tcell.Screen, variant *config.FieldVariant, rng *rand.Rand) *TerminalRunner {
	state := game.NewFieldState(variant, rng)
	pipeline := systems.NewFieldPipeline(state)
	// 终端按固定节拍刷新，自适应质量以该节拍为准，而不是窗口刷新率
	pipeline.Adaptive.TargetFPS = DefaultTerminalFPS
	return &TerminalRunner{
		screen:   screen,
		fps:      DefaultTerminalFPS,
		now:      time.Now,
		state:    state,
		pipeline: pipeline,
		renderer: systems.NewFieldRenderSystem(state),
	}
}

// State 动画场状态
func (r *TerminalRunner) State() *game.FieldState { return r.state }

// Surface 终端表面（Start 之前为 nil）
func (r *TerminalRunner) Surface() *surface.TerminalSurface { return r.surf }

// RunTerminal 在当前终端运行动画场，直到 ctx 取消或按下 q / Esc / Ctrl-C
//
// 终端不可用时只记录日志并返回 nil。
func RunTerminal(ctx context.Context, variant *config.FieldVariant) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		logging.Named("Terminal").Warnf("Terminal unavailable: %v", err)
		return nil
	}
	return NewTerminalRunner(screen, variant, nil).Run(ctx)
}

// Start 初始化屏幕、生成实体并启动事件 goroutine
//
// 返回：
//   - bool: 屏幕初始化失败时返回 false（已记录日志）
func (r *TerminalRunner) Start() bool {
	log := logging.Named("Terminal")
	if err := r.screen.Init(); err != nil {
		log.Warnf("Failed to initialize terminal: %v", err)
		return false
	}
	r.screen.EnableMouse(tcell.MouseMotionEvents)
	r.screen.EnableFocus()
	r.screen.HideCursor()

	cols, rows := r.screen.Size()
	r.surf = surface.NewTerminalSurface(r.screen, cols, rows)
	w, h := r.surf.Size()
	r.state.Init(float64(w), float64(h))
	r.pipeline.Resume(r.now())
	log.Infof("Terminal %dx%d cells, field %s with %d entities", cols, rows, r.state.Variant.Name, r.state.TargetCount())

	r.events = make(chan tcell.Event, 64)
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	go r.poll()
	return true
}

// poll 读取 tcell 事件直到 Stop
func (r *TerminalRunner) poll() {
	defer close(r.doneCh)
	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case r.events <- ev:
		case <-r.stopCh:
			return
		}
	}
}

// Stop 停止动画、注销事件 goroutine 并恢复终端
func (r *TerminalRunner) Stop() {
	r.once.Do(func() {
		r.pipeline.Close()
		if r.stopCh == nil {
			return
		}
		close(r.stopCh)
		// 合成一个中断事件，唤醒阻塞在 PollEvent 上的 goroutine
		_ = r.screen.PostEvent(tcell.NewEventInterrupt(nil))
		<-r.doneCh
		r.screen.Fini()
	})
}

// Run 启动并运行主循环
func (r *TerminalRunner) Run(ctx context.Context) error {
	if !r.Start() {
		return nil
	}
	defer r.Stop()
	return r.loop(ctx)
}

// loop 主循环：事件与渲染都在这里串行处理
func (r *TerminalRunner) loop(ctx context.Context) error {
	interval := time.Second / time.Duration(max(1, r.fps))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-r.events:
			if !r.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			r.Frame()
		}
	}
}

// Frame 推进一个 tick 并输出到终端
func (r *TerminalRunner) Frame() {
	r.pipeline.Tick(r.now())
	r.renderer.Draw(r.surf)
	r.surf.Present()
}

// cellCenter 单元格中心的逻辑像素坐标
func (r *TerminalRunner) cellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * float64(r.surf.CellW), (float64(row) + 0.5) * float64(r.surf.CellH)
}

// HandleEvent 处理一个终端事件
//
// 返回：
//   - bool: false 表示退出
func (r *TerminalRunner) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'r':
				r.state.Init(r.state.Bounds.W, r.state.Bounds.H)
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := r.cellCenter(col, row)
		if !r.state.Bounds.Contains(x, y) {
			r.pipeline.PointerLeft()
			return true
		}
		r.pipeline.PointerMoved(x, y)
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !r.buttonDown {
			r.pipeline.Click(x, y)
		}
		r.buttonDown = down

	case *tcell.EventResize:
		cols, rows := ev.Size()
		r.surf.Resize(cols, rows)
		w, h := r.surf.Size()
		r.state.Resize(float64(w), float64(h))
		r.screen.Sync()

	case *tcell.EventFocus:
		if ev.Focused {
			r.pipeline.Resume(r.now())
		} else {
			r.pipeline.PointerLeft()
			r.pipeline.Pause()
		}
	}
	return true
}
