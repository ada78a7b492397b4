package preview

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
)

// DefaultPrefetchLimit 并发探测数上限
const DefaultPrefetchLimit = 4

// PrefetchAll 并发探测所有作品，返回不可用作品的错误（按作品 ID）
//
// 单个作品失败不会中断其他探测；ctx 取消时未完成的探测返回 ctx 错误。
func PrefetchAll(ctx context.Context, prober Prober, items []config.ShowcaseItem, limit int) map[int]error {
	if limit <= 0 {
		limit = DefaultPrefetchLimit
	}

	var (
		mu       sync.Mutex
		failures = make(map[int]error)
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for _, item := range items {
		eg.Go(func() error {
			if err := prober.Probe(egCtx, item); err != nil {
				mu.Lock()
				failures[item.ID] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()

	logging.Named("Preview").Infof("Prefetched %d items, %d unavailable", len(items), len(failures))
	return failures
}
