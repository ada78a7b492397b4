package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/embedded"
)

// ClientLocation 世界地图上的客户位置
// XPercent/YPercent 相对地图图片宽高的百分比（0-100）
type ClientLocation struct {
	Label    string  `yaml:"label"`
	Country  string  `yaml:"country"`
	XPercent float64 `yaml:"x"`
	YPercent float64 `yaml:"y"`
}

// ClientsConfig 地图配置
type ClientsConfig struct {
	// AspectRatio 地图宽高比（宽/高）
	AspectRatio float64          `yaml:"aspectRatio"`
	Locations   []ClientLocation `yaml:"locations"`
}

// LoadClientsConfig 加载客户位置配置
func LoadClientsConfig(path string) (*ClientsConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clients config %s: %w", path, err)
	}

	var cfg ClientsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse clients config %s: %w", path, err)
	}
	if cfg.AspectRatio <= 0 {
		cfg.AspectRatio = 2
	}
	for _, loc := range cfg.Locations {
		if loc.XPercent < 0 || loc.XPercent > 100 || loc.YPercent < 0 || loc.YPercent > 100 {
			return nil, fmt.Errorf("client %s: position (%v, %v) out of range", loc.Label, loc.XPercent, loc.YPercent)
		}
	}
	return &cfg, nil
}
