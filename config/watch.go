package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig 热更新配置
type WatchConfig struct {
	Enabled      bool          // 是否启用热更新
	CooldownTime time.Duration // 冷却时间，避免频繁更新
}

// DefaultWatchConfig 默认热更新配置
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Enabled:      true,
		CooldownTime: 5 * time.Second,
	}
}

// Watcher 监听配置文件变化，成功解析并通过验证后回调新配置。
type Watcher struct {
	config     WatchConfig
	configPath string
	watcher    *fsnotify.Watcher
	onUpdate   func(AppConfig)
	onError    func(error)
	lastReload time.Time
	mu         sync.Mutex
	stopChan   chan struct{}
	doneChan   chan struct{}
}

// NewWatcher 创建配置监听器
func NewWatcher(configPath string, cfg WatchConfig, onUpdate func(AppConfig)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		config:     cfg,
		configPath: configPath,
		watcher:    fsw,
		onUpdate:   onUpdate,
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}, nil
}

// SetErrorHandler 设置错误回调；默认静默忽略。
func (w *Watcher) SetErrorHandler(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = fn
}

// Start 启动监听
func (w *Watcher) Start(ctx context.Context) error {
	if !w.config.Enabled {
		return nil
	}
	if err := w.watcher.Add(w.configPath); err != nil {
		return fmt.Errorf("watch config file: %w", err)
	}
	go w.watch(ctx)
	return nil
}

// Stop 停止监听
func (w *Watcher) Stop() error {
	select {
	case <-w.stopChan:
		// 已经停止
	default:
		close(w.stopChan)
	}

	if w.config.Enabled {
		select {
		case <-w.doneChan:
		case <-time.After(1 * time.Second):
			// watch goroutine 可能尚未启动
		}
	}
	return w.watcher.Close()
}

func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneChan)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// 只处理写入和创建事件
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				w.handleChange()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(fmt.Errorf("watcher: %w", err))
		}
	}
}

func (w *Watcher) handleChange() {
	w.mu.Lock()
	if time.Since(w.lastReload) < w.config.CooldownTime {
		w.mu.Unlock()
		return
	}
	w.lastReload = time.Now()
	w.mu.Unlock()

	cfg, err := LoadWithEnvOverrides(w.configPath)
	if err != nil {
		// 解析或验证失败时保留旧配置
		w.reportError(fmt.Errorf("reload config: %w", err))
		return
	}
	if w.onUpdate != nil {
		w.onUpdate(cfg)
	}
}

func (w *Watcher) reportError(err error) {
	w.mu.Lock()
	fn := w.onError
	w.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// LastReloadTime 获取最后重载时间
func (w *Watcher) LastReloadTime() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastReload
}
