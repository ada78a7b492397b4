package config

import (
	"fmt"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ClearMode 每个 tick 开始时如何清理画面
type ClearMode string

const (
	ClearFull        ClearMode = "full"        // 用背景色完全填充
	ClearFade        ClearMode = "fade"        // 低透明度填充，保留运动拖尾
	ClearTransparent ClearMode = "transparent" // 清空为透明（叠加在其他内容上）
)

// PointerMode 指针对实体施力的方式
type PointerMode string

const (
	PointerNone       PointerMode = "none"
	PointerContinuous PointerMode = "continuous" // 每个 tick 施力
	PointerImpulse    PointerMode = "impulse"    // 仅在指针移动事件时施加一次冲量
)

// BoundaryPolicy 越界处理策略，每个变体固定一种
type BoundaryPolicy string

const (
	BoundaryWrap    BoundaryPolicy = "wrap"
	BoundaryReflect BoundaryPolicy = "reflect"
)

// Shape 实体的绘制形状
type Shape string

const (
	ShapeDot    Shape = "dot"
	ShapeBlob   Shape = "blob"
	ShapeStreak Shape = "streak"
)

// ResizeMode 画面尺寸变化时如何处理已有实体
type ResizeMode string

const (
	ResizeReinit  ResizeMode = "reinit"
	ResizeRescale ResizeMode = "rescale"
)

// VelocityMode 初始速度的随机分布
type VelocityMode string

const (
	VelocityUniform VelocityMode = "uniform" // vx, vy 各自取 (rand-0.5)*spread
	VelocityPolar   VelocityMode = "polar"   // 随机方向 + [min,max] 速率
)

// Range 闭区间 [Min, Max]
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Lerp 按 t∈[0,1] 在区间内插值，配合 rand.Float64() 得到均匀分布
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// IsZero 区间是否未配置
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// HexColor 以 "#rrggbb" 形式出现在 YAML 中的颜色
type HexColor struct {
	colorful.Color
}

// UnmarshalYAML 解析十六进制颜色字符串
func (c *HexColor) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := colorful.Hex(value.Value)
	if err != nil {
		return fmt.Errorf("invalid color %q at line %d: %w", value.Value, value.Line, err)
	}
	c.Color = parsed
	return nil
}

// MarshalYAML 输出十六进制颜色字符串
func (c HexColor) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// WithAlpha 返回带透明度的非预乘颜色
func (c HexColor) WithAlpha(alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(alpha)}
}

// MustHex 解析常量颜色，只用于默认值
func MustHex(s string) HexColor {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return HexColor{Color: c}
}

func alphaByte(alpha float64) uint8 {
	switch {
	case alpha <= 0:
		return 0
	case alpha >= 1:
		return 255
	default:
		return uint8(alpha*255 + 0.5)
	}
}

// GradientStop 径向渐变的一个色标
type GradientStop struct {
	Offset float64  `yaml:"offset"` // 0 = 中心, 1 = 边缘
	Color  HexColor `yaml:"color"`
	Alpha  float64  `yaml:"alpha"`
}

// BackgroundConfig 画面清理配置
type BackgroundConfig struct {
	Clear     ClearMode `yaml:"clear"`
	Color     HexColor  `yaml:"color"`
	FadeAlpha float64   `yaml:"fadeAlpha"` // 仅 ClearFade 使用
}

// VelocityConfig 环境实体的初始速度分布
type VelocityConfig struct {
	Mode   VelocityMode `yaml:"mode"`
	Spread float64      `yaml:"spread"` // uniform: 每轴速度 ∈ [-spread/2, spread/2]
	Speed  Range        `yaml:"speed"`  // polar: 速率范围
}

// GlowConfig 指针处的径向光晕
type GlowConfig struct {
	Enabled bool `yaml:"enabled"`
	// RadiusFactor 光晕半径 = max(宽, 高) * RadiusFactor
	RadiusFactor float64        `yaml:"radiusFactor"`
	Stops        []GradientStop `yaml:"stops"`
}

// PointerConfig 指针交互配置
type PointerConfig struct {
	Mode     PointerMode `yaml:"mode"`
	Radius   float64     `yaml:"radius"`   // 交互半径 R
	Strength float64     `yaml:"strength"` // 力 = (R-d)/R * Strength
	Attract  bool        `yaml:"attract"`  // false 为排斥
	Glow     GlowConfig  `yaml:"glow"`
}

// BoundaryConfig 边界策略
type BoundaryConfig struct {
	Policy BoundaryPolicy `yaml:"policy"`
	// Margin 环绕时的固定边距；MarginFromSize 为 true 时改用实体自身半径/长度
	Margin         float64 `yaml:"margin"`
	MarginFromSize bool    `yaml:"marginFromSize"`
}

// ReseedConfig 速度接近 0 时重新随机速度，避免实体静止
type ReseedConfig struct {
	Threshold float64 `yaml:"threshold"` // 0 = 关闭
	Speed     Range   `yaml:"speed"`
}

// LinkConfig 实体间连线
type LinkConfig struct {
	Distance float64  `yaml:"distance"` // 阈值 T，0 = 关闭
	Opacity  float64  `yaml:"opacity"`  // d=0 时的最大透明度
	Width    float64  `yaml:"width"`
	Color    HexColor `yaml:"color"`
}

// RenderConfig 实体绘制配置
type RenderConfig struct {
	Shape Shape    `yaml:"shape"`
	Color HexColor `yaml:"color"`
	// Alpha 圆点的固定透明度；blob/streak 使用实体自身的 Opacity
	Alpha float64 `yaml:"alpha"`
	Width float64 `yaml:"width"` // streak 线宽
}

// ClickConfig 点击生成批次
type ClickConfig struct {
	Enabled bool          `yaml:"enabled"`
	Count   int           `yaml:"count"` // 每次点击生成 K 个
	Delay   time.Duration `yaml:"delay"` // 批次移除延迟
	Speed   Range         `yaml:"speed"`
	Radius  Range         `yaml:"radius"`
	Length  Range         `yaml:"length"`
	Opacity Range         `yaml:"opacity"`
	// Lifetime 每个粒子的独立寿命，0 = 只受批次截止时间控制
	Lifetime time.Duration `yaml:"lifetime"`
}

// AdaptiveConfig 自适应质量：帧率过低时按比例减少实体数量（只减不增）
type AdaptiveConfig struct {
	Enabled bool          `yaml:"enabled"`
	MinFPS  float64       `yaml:"minFPS"`
	Floor   int           `yaml:"floor"`
	Factor  float64       `yaml:"factor"`
	Window  time.Duration `yaml:"window"`
}

// FieldVariant 一个粒子/光带动画场的完整配置
type FieldVariant struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Count       int              `yaml:"count"`
	Resize      ResizeMode       `yaml:"resize"`
	Background  BackgroundConfig `yaml:"background"`
	Velocity    VelocityConfig   `yaml:"velocity"`
	Radius      Range            `yaml:"radius"`
	Length      Range            `yaml:"length"`
	Opacity     Range            `yaml:"opacity"`
	// Baseline 向基准速度回拉的系数（0 = 无锚定）
	Baseline float64        `yaml:"baseline"`
	Damping  float64        `yaml:"damping"`
	Pointer  PointerConfig  `yaml:"pointer"`
	Boundary BoundaryConfig `yaml:"boundary"`
	Reseed   ReseedConfig   `yaml:"reseed"`
	Links    LinkConfig     `yaml:"links"`
	Render   RenderConfig   `yaml:"render"`
	Click    ClickConfig    `yaml:"click"`
	Adaptive AdaptiveConfig `yaml:"adaptive"`
}

// ApplyDefaults 为未配置的字段填充默认值
func (v *FieldVariant) ApplyDefaults() {
	if v.Resize == "" {
		v.Resize = ResizeReinit
	}
	if v.Background.Clear == "" {
		v.Background.Clear = ClearFull
	}
	if v.Background.Clear == ClearFade && v.Background.FadeAlpha == 0 {
		v.Background.FadeAlpha = 0.1
	}
	if v.Velocity.Mode == "" {
		v.Velocity.Mode = VelocityUniform
	}
	if v.Damping == 0 {
		v.Damping = 0.98
	}
	if v.Pointer.Mode == "" {
		v.Pointer.Mode = PointerNone
	}
	if v.Pointer.Glow.Enabled && v.Pointer.Glow.RadiusFactor == 0 {
		v.Pointer.Glow.RadiusFactor = 0.5
	}
	if v.Boundary.Policy == "" {
		v.Boundary.Policy = BoundaryWrap
	}
	if v.Render.Shape == "" {
		v.Render.Shape = ShapeDot
	}
	if v.Render.Width == 0 {
		v.Render.Width = 1
	}
	if v.Links.Width == 0 {
		v.Links.Width = 1
	}
	if v.Adaptive.Enabled {
		if v.Adaptive.MinFPS == 0 {
			v.Adaptive.MinFPS = 50
		}
		if v.Adaptive.Floor == 0 {
			v.Adaptive.Floor = 40
		}
		if v.Adaptive.Factor == 0 {
			v.Adaptive.Factor = 0.7
		}
		if v.Adaptive.Window == 0 {
			v.Adaptive.Window = time.Second
		}
	}
}

// Validate 检查配置是否合法
func (v *FieldVariant) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("field variant: name is required")
	}
	if v.Count < 0 {
		return fmt.Errorf("field variant %s: count must be >= 0, got %d", v.Name, v.Count)
	}
	if v.Damping <= 0 || v.Damping > 1 {
		return fmt.Errorf("field variant %s: damping must be in (0, 1], got %v", v.Name, v.Damping)
	}
	if v.Baseline < 0 || v.Baseline >= 1 {
		return fmt.Errorf("field variant %s: baseline must be in [0, 1), got %v", v.Name, v.Baseline)
	}

	switch v.Background.Clear {
	case ClearFull, ClearFade, ClearTransparent:
	default:
		return fmt.Errorf("field variant %s: unknown clear mode %q", v.Name, v.Background.Clear)
	}
	switch v.Velocity.Mode {
	case VelocityUniform, VelocityPolar:
	default:
		return fmt.Errorf("field variant %s: unknown velocity mode %q", v.Name, v.Velocity.Mode)
	}
	switch v.Pointer.Mode {
	case PointerNone:
	case PointerContinuous, PointerImpulse:
		if v.Pointer.Radius <= 0 {
			return fmt.Errorf("field variant %s: pointer radius must be > 0", v.Name)
		}
	default:
		return fmt.Errorf("field variant %s: unknown pointer mode %q", v.Name, v.Pointer.Mode)
	}
	switch v.Boundary.Policy {
	case BoundaryWrap, BoundaryReflect:
	default:
		return fmt.Errorf("field variant %s: unknown boundary policy %q", v.Name, v.Boundary.Policy)
	}
	switch v.Render.Shape {
	case ShapeDot, ShapeBlob, ShapeStreak:
	default:
		return fmt.Errorf("field variant %s: unknown shape %q", v.Name, v.Render.Shape)
	}
	switch v.Resize {
	case ResizeReinit, ResizeRescale:
	default:
		return fmt.Errorf("field variant %s: unknown resize mode %q", v.Name, v.Resize)
	}

	if v.Links.Distance < 0 || v.Links.Opacity < 0 || v.Links.Opacity > 1 {
		return fmt.Errorf("field variant %s: links need distance >= 0 and opacity in [0, 1]", v.Name)
	}
	if v.Click.Enabled {
		if v.Click.Count <= 0 {
			return fmt.Errorf("field variant %s: click count must be > 0", v.Name)
		}
		if v.Click.Delay <= 0 {
			return fmt.Errorf("field variant %s: click delay must be > 0", v.Name)
		}
	}
	if v.Adaptive.Enabled && (v.Adaptive.Factor <= 0 || v.Adaptive.Factor >= 1) {
		return fmt.Errorf("field variant %s: adaptive factor must be in (0, 1), got %v", v.Name, v.Adaptive.Factor)
	}
	return nil
}

// ParseFieldVariant 解析 YAML 并应用默认值与校验
func ParseFieldVariant(data []byte) (*FieldVariant, error) {
	var v FieldVariant
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse field variant: %w", err)
	}
	v.ApplyDefaults()
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}
