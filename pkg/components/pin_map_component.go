package components

import "github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"

// PinMapReadoutHint 未放置图钉时的提示文字
const PinMapReadoutHint = "Tap anywhere on the map to position the selected pin."

// PinMapComponent 客户世界地图的状态
//
// 地图在视口内按宽高比居中放置（BaseX/BaseY/BaseW/BaseH），
// Zoom 与 PanX/PanY 决定实际显示区域。图钉位置为地图宽高的百分比。
type PinMapComponent struct {
	Pins        []config.ClientLocation
	AspectRatio float64

	ViewW, ViewH float64

	BaseX, BaseY float64
	BaseW, BaseH float64

	Zoom       float64 // 1-4
	PanX, PanY float64 // 相对 BaseX/BaseY 的偏移，始终 <= 0

	Hovered  int // 悬停图钉序号，-1 为无
	Selected int // 放置工具当前选中的图钉

	ToolVisible bool
	Readout     string

	Dragging             bool
	DragLastX, DragLastY float64

	Pulse float64 // 图钉脉冲动画相位 [0,1)
}
