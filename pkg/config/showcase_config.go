package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/embedded"
)

// ShowcaseKind 作品的播放方式
type ShowcaseKind string

const (
	ShowcaseVideo ShowcaseKind = "video" // 直接播放的视频文件
	ShowcaseEmbed ShowcaseKind = "embed" // 第三方播放器嵌入
	ShowcaseImage ShowcaseKind = "image" // 静态预览图
)

// ShowcaseItem 作品轮播中的一项
type ShowcaseItem struct {
	ID        int          `yaml:"id"`
	Title     string       `yaml:"title"`
	Thumbnail string       `yaml:"thumbnail"`
	URL       string       `yaml:"url"`
	Kind      ShowcaseKind `yaml:"kind"`
	// Markup 原始嵌入代码，只作为不透明字符串传递
	Markup string `yaml:"markup,omitempty"`
}

// ShowcaseConfig 轮播配置
type ShowcaseConfig struct {
	// CardWidth/CardHeight/Gap 卡片布局（像素）
	CardWidth  float64 `yaml:"cardWidth"`
	CardHeight float64 `yaml:"cardHeight"`
	Gap        float64 `yaml:"gap"`
	// Speed 每次步进的像素数，Interval 为步进间隔（毫秒）
	Speed      float64        `yaml:"speed"`
	IntervalMs int            `yaml:"intervalMs"`
	Items      []ShowcaseItem `yaml:"items"`
}

// LoadShowcaseConfig 加载作品轮播配置
func LoadShowcaseConfig(path string) (*ShowcaseConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read showcase config %s: %w", path, err)
	}

	var cfg ShowcaseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse showcase config %s: %w", path, err)
	}

	if cfg.CardWidth <= 0 || cfg.CardHeight <= 0 {
		return nil, fmt.Errorf("showcase config %s: card size must be positive", path)
	}
	if cfg.IntervalMs <= 0 {
		cfg.IntervalMs = 30
	}
	for i, item := range cfg.Items {
		if item.URL == "" && item.Markup == "" {
			return nil, fmt.Errorf("showcase item %d (%s): url or markup required", i, item.Title)
		}
		if item.Kind == "" {
			cfg.Items[i].Kind = ShowcaseVideo
		}
	}
	return &cfg, nil
}
