package components

// PointComponent 动画场中的一个实体（粒子、光斑或光带）
//
// 坐标为画面局部像素坐标，速度单位为 像素/tick（1 tick = 1/60 秒）。
// 这是纯数据组件，运动逻辑由 MotionSystem 负责。
type PointComponent struct {
	X, Y   float64
	VX, VY float64

	// BaseVX/BaseVY 基准速度，Baseline > 0 的变体会把速度拉回这里
	BaseVX, BaseVY float64

	Radius  float64 // 圆点/光斑半径
	Length  float64 // 光带长度
	Opacity float64 // 0-1
}

// Size 返回实体的视觉尺寸（环绕边距使用）
func (p *PointComponent) Size() float64 {
	if p.Length > p.Radius {
		return p.Length
	}
	return p.Radius
}
