package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
)

// PinPosition 放置工具保存的图钉位置（地图百分比）
type PinPosition struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PageSettings 用户设置
type PageSettings struct {
	// LastSection 上次退出时所在的分区，启动时直接跳过去
	LastSection string `yaml:"lastSection"`
	// Fullscreen 启动时是否全屏
	Fullscreen bool `yaml:"fullscreen"`
	// HeroVariant 首屏动画场使用的变体
	HeroVariant string `yaml:"heroVariant"`
	// Pins 按客户名保存的图钉位置，覆盖内置配置
	Pins map[string]PinPosition `yaml:"pins,omitempty"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *PageSettings {
	return &PageSettings{
		LastSection: "hero",
		Fullscreen:  false,
		HeroVariant: "hero",
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *PageSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "page"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方判断，加载失败不影响创建
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		logging.Named("SettingsManager").Warnf("Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// OpenSettings 打开应用数据目录并创建设置管理器
// 存储不可用时退化为仅内存设置
func OpenSettings(appName string) *SettingsManager {
	log := logging.Named("SettingsManager")
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warnf("Persistent storage unavailable: %v", err)
		manager = nil
	}
	sm, _ := NewSettingsManager(manager)
	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	logging.Named("SettingsManager").Debugf("Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	logging.Named("SettingsManager").Debugf("Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *PageSettings {
	return sm.settings
}

// SetLastSection 记录当前分区
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetLastSection(id string) {
	sm.settings.LastSection = id
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetHeroVariant 设置首屏变体
func (sm *SettingsManager) SetHeroVariant(name string) {
	sm.settings.HeroVariant = name
}

// SetPin 记录图钉位置
func (sm *SettingsManager) SetPin(label string, x, y float64) {
	if sm.settings.Pins == nil {
		sm.settings.Pins = make(map[string]PinPosition)
	}
	sm.settings.Pins[label] = PinPosition{X: x, Y: y}
}

// Pin 查询保存的图钉位置
func (sm *SettingsManager) Pin(label string) (PinPosition, bool) {
	p, ok := sm.settings.Pins[label]
	return p, ok
}

// ResetPins 清除所有保存的图钉位置
func (sm *SettingsManager) ResetPins() {
	sm.settings.Pins = nil
}
