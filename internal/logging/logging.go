// Package logging 提供按组件命名的日志记录器
//
// 默认情况下日志被丢弃（与桌面发行版一致），传入 --verbose 后切换为开发模式输出。
// 组件通过 Named("FieldScene") 获取自己的 logger，输出中以 [FieldScene] 风格的名字区分来源。
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init 根据 verbose 配置全局 logger
//
// verbose=false 时使用 Nop logger，所有日志被丢弃。
func Init(verbose bool) error {
	if !verbose {
		set(zap.NewNop())
		return nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	set(l)
	return nil
}

// Use 替换全局 logger（测试中注入 observer）
func Use(l *zap.Logger) {
	set(l)
}

func set(l *zap.Logger) {
	mu.Lock()
	old := logger
	logger = l
	mu.Unlock()
	_ = old.Sync()
}

// Named 返回指定组件名的 SugaredLogger
func Named(component string) *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Named(component).Sugar()
}

// Sync 刷新缓冲的日志
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = logger.Sync()
}
