package preview

import (
	"context"
	"sync"
	"time"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
)

// ScrollLocker 弹窗打开期间锁定页面滚动
type ScrollLocker interface {
	Lock()
	Unlock()
}

// View 弹窗当前应显示的内容
type View struct {
	State State
	Item  config.ShowcaseItem
	// Link Fallback 状态下的外部打开链接
	Link string
}

// Controller 预览弹窗控制器
//
// Open/Close 在游戏循环中调用；探测在后台 goroutine 中进行，结果带代次编号，
// 关闭或重新打开后旧的结果被丢弃。
type Controller struct {
	prober  Prober
	locker  ScrollLocker
	timeout time.Duration

	mu     sync.Mutex
	state  State
	item   config.ShowcaseItem
	gen    uint64
	cancel context.CancelFunc

	wg sync.WaitGroup
}

// NewController 创建预览控制器
//
// 参数：
//   - prober: 作品探测器
//   - locker: 页面滚动锁，可为 nil
//   - timeout: 嵌入式作品显示外部链接前的等待时间
func NewController(prober Prober, locker ScrollLocker, timeout time.Duration) *Controller {
	return &Controller{
		prober:  prober,
		locker:  locker,
		timeout: timeout,
	}
}

// Open 打开作品预览，已有预览会先被关闭
func (c *Controller) Open(ctx context.Context, item config.ShowcaseItem) {
	c.Close()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.state = StateLoading
	c.item = item
	probeCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	if c.locker != nil {
		c.locker.Lock()
	}

	logging.Named("Preview").Infof("Open %s (%s)", item.Title, item.Kind)
	c.wg.Add(1)
	go c.run(probeCtx, c.gen, item)
}

// run 等待探测结果或超时
func (c *Controller) run(ctx context.Context, gen uint64, item config.ShowcaseItem) {
	defer c.wg.Done()

	result := make(chan error, 1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		result <- c.prober.Probe(ctx, item)
	}()

	var timeout <-chan time.Time
	if hasFallbackLink(item) {
		timer := time.NewTimer(c.timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case err := <-result:
			c.finish(gen, item, err)
			return
		case <-timeout:
			// 嵌入式播放器未报告加载完成，提供外部链接；之后的探测结果不再收回链接
			c.transition(gen, StateLoading, StateFallback)
			timeout = nil
		case <-ctx.Done():
			return
		}
	}
}

func (c *Controller) finish(gen uint64, item config.ShowcaseItem, err error) {
	log := logging.Named("Preview")
	switch {
	case err == nil:
		c.transition(gen, StateLoading, StateReady)
	case hasFallbackLink(item):
		log.Warnf("Embed %s failed to load: %v", item.Title, err)
		c.transition(gen, StateLoading, StateFallback)
	default:
		log.Warnf("Video %s failed to load: %v", item.Title, err)
		c.transition(gen, StateLoading, StateError)
	}
}

// hasFallbackLink 嵌入式作品且有可在外部打开的地址
// 只有嵌入代码的作品没有链接可提供，加载失败时显示错误
func hasFallbackLink(item config.ShowcaseItem) bool {
	return item.Kind == config.ShowcaseEmbed && item.URL != ""
}

// transition 仅当代次匹配且当前状态为 from 时切换
func (c *Controller) transition(gen uint64, from, to State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen || c.state != from {
		return
	}
	c.state = to
	logging.Named("Preview").Debugf("%s: %s -> %s", c.item.Title, from, to)
}

// Close 关闭预览，取消探测并解除滚动锁定
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateClosed {
		return
	}
	c.gen++
	c.state = StateClosed
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.locker != nil {
		c.locker.Unlock()
	}
	logging.Named("Preview").Debugf("Closed %s", c.item.Title)
}

// State 当前状态
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsOpen 弹窗是否打开
func (c *Controller) IsOpen() bool {
	return c.State() != StateClosed
}

// View 当前显示内容
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := View{State: c.state, Item: c.item}
	if c.state == StateFallback {
		v.Link = c.item.URL
	}
	return v
}

// Wait 等待所有后台探测结束（关闭后调用）
func (c *Controller) Wait() {
	c.wg.Wait()
}
