// Package preview 作品预览弹窗的状态机
//
// 打开预览后进入 Loading，同时探测作品地址；探测成功进入 Ready，失败进入 Error。
// 嵌入式作品在超时前未完成加载时进入 Fallback，提供外部打开链接。
package preview

// State 预览弹窗状态
type State int

const (
	StateClosed State = iota
	StateLoading
	StateReady
	StateError
	StateFallback
)

// 弹窗文字
const (
	ErrorTitle    = "Unable to load video"
	ErrorHint     = "Please try again later"
	FallbackLabel = "Open Video"
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	case StateFallback:
		return "fallback"
	default:
		return "unknown"
	}
}
