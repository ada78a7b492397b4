package app

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/utils"
)

// 导航栏布局
const (
	navBrand        = "Crawford Media Works"
	navButtonWidth  = 120.0
	navPaddingX     = 16.0
	navFontSize     = 16.0
	navBrandSize    = 18.0
	navUnderlineGap = 8.0
)

var (
	navBackground = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	navText       = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	navActive     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	navHover      = color.RGBA{R: 255, G: 255, B: 255, A: 24}
	navAccent     = color.RGBA{R: 99, G: 179, B: 237, A: 255}
)

// NavBar 顶部导航栏：左侧品牌名，右侧分区按钮
type NavBar struct {
	width   float64
	height  float64
	hovered string
}

// NewNavBar 创建导航栏
func NewNavBar() *NavBar {
	return &NavBar{height: config.NavBarHeight}
}

// Resize 窗口宽度变化
func (n *NavBar) Resize(w float64) {
	n.width = w
}

// buttonX 第 i 个按钮的左边界，按钮整体靠右
func (n *NavBar) buttonX(i int) float64 {
	count := len(config.SectionOrder)
	return n.width - navPaddingX - float64(count-i)*navButtonWidth
}

// HitTest 返回 (x, y) 处按钮对应的分区
func (n *NavBar) HitTest(x, y float64) (string, bool) {
	if y < 0 || y >= n.height {
		return "", false
	}
	for i, id := range config.SectionOrder {
		bx := n.buttonX(i)
		if x >= bx && x < bx+navButtonWidth {
			return id, true
		}
	}
	return "", false
}

// Contains 点是否落在导航栏内
func (n *NavBar) Contains(x, y float64) bool {
	return y >= 0 && y < n.height && x >= 0 && x < n.width
}

// SetHover 更新悬停按钮
func (n *NavBar) SetHover(x, y float64) {
	n.hovered, _ = n.HitTest(x, y)
}

// ClearHover 清除悬停
func (n *NavBar) ClearHover() {
	n.hovered = ""
}

// Hovered 当前悬停的分区按钮
func (n *NavBar) Hovered() string {
	return n.hovered
}

// Draw 绘制导航栏，current 为当前所在分区
func (n *NavBar) Draw(screen *ebiten.Image, current string) {
	vector.DrawFilledRect(screen, 0, 0, float32(n.width), float32(n.height), navBackground, false)

	brand := utils.MustUIFace(navBrandSize)
	utils.DrawText(screen, navBrand, brand, navPaddingX, (n.height-navBrandSize)/2, navActive)

	face := utils.MustUIFace(navFontSize)
	for i, id := range config.SectionOrder {
		bx := n.buttonX(i)
		if id == n.hovered {
			vector.DrawFilledRect(screen, float32(bx), 0, navButtonWidth, float32(n.height), navHover, false)
		}
		clr := navText
		if id == current {
			clr = navActive
			y := float32(n.height - navUnderlineGap)
			vector.StrokeLine(screen, float32(bx+navPaddingX), y, float32(bx+navButtonWidth-navPaddingX), y, 2, navAccent, true)
		}
		utils.DrawTextCentered(screen, config.SectionTitles[id], face, bx+navButtonWidth/2, n.height/2, clr)
	}
}
