package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
)

// ErrNoURL 作品没有可探测的地址（只有嵌入代码）
var ErrNoURL = errors.New("preview: item has no url")

// Prober 检查作品是否可以加载
type Prober interface {
	Probe(ctx context.Context, item config.ShowcaseItem) error
}

// ProberFunc 把函数适配为 Prober
type ProberFunc func(ctx context.Context, item config.ShowcaseItem) error

func (f ProberFunc) Probe(ctx context.Context, item config.ShowcaseItem) error {
	return f(ctx, item)
}

// HTTPProber 用 HEAD 请求探测作品地址
// 服务器不支持 HEAD（405）时改用 GET，只读取响应头
type HTTPProber struct {
	Client *http.Client
}

// NewHTTPProber 创建带超时的 HTTP 探测器
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{Client: &http.Client{Timeout: timeout}}
}

func (p *HTTPProber) Probe(ctx context.Context, item config.ShowcaseItem) error {
	if item.URL == "" {
		return ErrNoURL
	}

	status, err := p.do(ctx, http.MethodHead, item.URL)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, err = p.do(ctx, http.MethodGet, item.URL)
	}
	if err != nil {
		return fmt.Errorf("probe %s: %w", item.Title, err)
	}
	if status >= http.StatusBadRequest {
		return fmt.Errorf("probe %s: unexpected status %d", item.Title, status)
	}
	return nil
}

func (p *HTTPProber) do(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
	return resp.StatusCode, nil
}
