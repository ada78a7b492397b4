package app

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/utils"
)

// inputRouter 把指针事件和按键分发给导航栏和页面分区
//
// 优先级：预览弹窗等覆盖层 > 导航栏 > 指针所在分区（按键为当前分区）> 全局导航键。
type inputRouter struct {
	sm  *game.SceneManager
	nav *NavBar
}

func newInputRouter(sm *game.SceneManager, nav *NavBar) *inputRouter {
	return &inputRouter{sm: sm, nav: nav}
}

// Dispatch 分发一个指针事件
func (r *inputRouter) Dispatch(ev utils.PointerEvent) {
	overlay := r.sm.ActiveOverlay() != nil

	switch ev.Kind {
	case utils.PointerMove, utils.PointerDragMove:
		if ev.Kind == utils.PointerDragMove {
			r.sm.DragMove(ev.X, ev.Y)
		}
		if !overlay && r.nav.Contains(ev.X, ev.Y) {
			r.nav.SetHover(ev.X, ev.Y)
			r.sm.PointerLeft()
			return
		}
		r.nav.ClearHover()
		r.sm.PointerMoved(ev.X, ev.Y)

	case utils.PointerLeave:
		r.nav.ClearHover()
		r.sm.PointerLeft()

	case utils.PointerClick:
		if !overlay {
			if id, ok := r.nav.HitTest(ev.X, ev.Y); ok {
				r.sm.Navigator().ScrollTo(id)
				return
			}
			if r.nav.Contains(ev.X, ev.Y) {
				return
			}
		}
		r.sm.Clicked(ev.X, ev.Y)

	case utils.PointerDragStart:
		r.sm.DragStart(ev.X, ev.Y)

	case utils.PointerDragEnd:
		r.sm.DragEnd()

	case utils.PointerWheel:
		// ebiten 滚轮向上为正，页面坐标向下为正
		r.sm.Wheel(ev.X, ev.Y, -ev.DY*config.WheelScrollStep)
	}
}

// KeyPressed 分发一次按键
func (r *inputRouter) KeyPressed(key ebiten.Key) bool {
	if o := r.sm.ActiveOverlay(); o != nil {
		if h, ok := o.(game.KeyHandler); ok {
			h.KeyPressed(key)
		}
		// 覆盖层显示时其他按键全部忽略
		return true
	}

	nav := r.sm.Navigator()
	if h, ok := r.sm.Get(nav.Current()).(game.KeyHandler); ok && h.KeyPressed(key) {
		return true
	}

	switch key {
	case ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3:
		i := int(key - ebiten.KeyDigit1)
		if i < len(config.SectionOrder) {
			return nav.ScrollTo(config.SectionOrder[i])
		}
	case ebiten.KeyPageDown, ebiten.KeySpace, ebiten.KeyArrowDown:
		return r.step(1)
	case ebiten.KeyPageUp, ebiten.KeyArrowUp:
		return r.step(-1)
	case ebiten.KeyHome:
		return nav.ScrollTo(config.SectionOrder[0])
	case ebiten.KeyEnd:
		return nav.ScrollTo(config.SectionOrder[len(config.SectionOrder)-1])
	}
	return false
}

// step 滚动到相邻分区
func (r *inputRouter) step(delta int) bool {
	nav := r.sm.Navigator()
	i := slices.Index(config.SectionOrder, nav.Current()) + delta
	if i < 0 || i >= len(config.SectionOrder) {
		return false
	}
	return nav.ScrollTo(config.SectionOrder[i])
}
