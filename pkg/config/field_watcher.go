package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
)

// FieldWatcher 监听磁盘覆盖目录，变体文件保存后重新解析并投递到 Updates()
//
// 解析和投递在 watcher 自己的 goroutine 中进行；游戏循环在 Update 中非阻塞地
// 读取 Updates()，从而保证动画状态只在主循环里被修改。
type FieldWatcher struct {
	manager  *FieldConfigManager
	dir      string
	watcher  *fsnotify.Watcher
	updates  chan *FieldVariant
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
	running bool
	done    chan struct{}
}

// NewFieldWatcher 创建覆盖目录监听器
func NewFieldWatcher(manager *FieldConfigManager, dir string) (*FieldWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FieldWatcher{
		manager:  manager,
		dir:      dir,
		watcher:  w,
		updates:  make(chan *FieldVariant, 8),
		debounce: 200 * time.Millisecond, // 编辑器保存时会连续触发多次写事件
		pending:  make(map[string]time.Time),
		done:     make(chan struct{}),
	}, nil
}

// Updates 返回重新加载后的变体
func (fw *FieldWatcher) Updates() <-chan *FieldVariant {
	return fw.updates
}

// Start 开始监听（非阻塞），ctx 取消后 goroutine 退出并关闭 fsnotify watcher
func (fw *FieldWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	fw.running = true
	fw.mu.Unlock()

	if err := fw.watcher.Add(fw.dir); err != nil {
		fw.watcher.Close()
		close(fw.done)
		return err
	}
	logging.Named("FieldWatcher").Infof("Watching %s for variant overrides", fw.dir)

	go fw.run(ctx)
	return nil
}

// Wait 等待监听 goroutine 退出
func (fw *FieldWatcher) Wait() {
	<-fw.done
}

func (fw *FieldWatcher) run(ctx context.Context) {
	defer close(fw.done)
	defer fw.watcher.Close()

	log := logging.Named("FieldWatcher")
	ticker := time.NewTicker(fw.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !isYAML(event.Name) || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			fw.mu.Lock()
			fw.pending[event.Name] = time.Now()
			fw.mu.Unlock()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("Watch error: %v", err)

		case now := <-ticker.C:
			for _, file := range fw.due(now) {
				v, err := fw.manager.LoadOverrideFile(file)
				if err != nil {
					log.Warnf("Reload failed: %v", err)
					continue
				}
				log.Infof("Reloaded variant %s from %s", v.Name, filepath.Base(file))
				select {
				case fw.updates <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// due 返回已经超过去抖时间的文件
func (fw *FieldWatcher) due(now time.Time) []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	var files []string
	for file, at := range fw.pending {
		if now.Sub(at) >= fw.debounce {
			files = append(files, file)
			delete(fw.pending, file)
		}
	}
	return files
}
