package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/embedded"
)

// DefaultFieldDir 嵌入的变体配置目录
const DefaultFieldDir = "data/fields"

// FieldConfigManager 动画场变体配置管理器
// 负责加载嵌入的 YAML 变体，并接受磁盘覆盖文件的热更新
type FieldConfigManager struct {
	mu       sync.RWMutex
	variants map[string]*FieldVariant
}

// NewFieldConfigManager 从嵌入目录加载所有变体
//
// 参数：
//   - dir: 嵌入目录（如 "data/fields"）
//
// 返回：
//   - *FieldConfigManager: 配置管理器实例
//   - error: 读取或解析失败
func NewFieldConfigManager(dir string) (*FieldConfigManager, error) {
	files, err := embedded.Glob(path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list field variants in %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no field variants found in %s", dir)
	}

	m := &FieldConfigManager{variants: make(map[string]*FieldVariant, len(files))}
	for _, file := range files {
		data, err := embedded.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		v, err := ParseFieldVariant(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		m.variants[v.Name] = v
	}

	logging.Named("Config").Infof("Loaded %d field variants from %s", len(m.variants), dir)
	return m, nil
}

// Get 按名称获取变体，返回副本，调用方可以随意修改
func (m *FieldConfigManager) Get(name string) (*FieldVariant, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.variants[name]
	if !ok {
		return nil, false
	}
	cp := *v
	cp.Pointer.Glow.Stops = slices.Clone(v.Pointer.Glow.Stops)
	return &cp, true
}

// Names 返回所有变体名称（按字母序）
func (m *FieldConfigManager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.variants))
	for name := range m.variants {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Put 注册或替换一个变体（热更新使用）
func (m *FieldConfigManager) Put(v *FieldVariant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.variants[v.Name] = v
}

// LoadOverrideFile 从磁盘读取覆盖文件并注册
func (m *FieldConfigManager) LoadOverrideFile(file string) (*FieldVariant, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read override %s: %w", file, err)
	}
	v, err := ParseFieldVariant(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	m.Put(v)
	return v, nil
}

// LoadOverrideDir 加载目录下所有 *.yaml 覆盖文件
//
// 单个文件解析失败只记录警告，不影响其他文件
func (m *FieldConfigManager) LoadOverrideDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read override dir %s: %w", dir, err)
	}
	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		if _, err := m.LoadOverrideFile(filepath.Join(dir, e.Name())); err != nil {
			logging.Named("Config").Warnf("Skipping override: %v", err)
			continue
		}
		loaded++
	}
	return loaded, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
