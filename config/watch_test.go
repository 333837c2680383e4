package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)

	updates := make(chan AppConfig, 1)
	w, err := NewWatcher(path, WatchConfig{Enabled: true, CooldownTime: 0}, func(cfg AppConfig) {
		select {
		case updates <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	changed := sampleYAML + "\n# touched\n"
	if err := os.WriteFile(path, []byte(changed), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case cfg := <-updates:
		if cfg.Env != "test" {
			t.Errorf("reloaded env = %q, want test", cfg.Env)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed after config write")
	}
}

func TestWatcherKeepsOldConfigOnBadWrite(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)

	updates := make(chan AppConfig, 1)
	errs := make(chan error, 1)
	w, err := NewWatcher(path, WatchConfig{Enabled: true, CooldownTime: 0}, func(cfg AppConfig) {
		select {
		case updates <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Stop()
	w.SetErrorHandler(func(e error) {
		select {
		case errs <- e:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("env: ''\n"), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case <-errs:
		// 坏配置触发错误回调，不触发更新
	case cfg := <-updates:
		t.Fatalf("unexpected update with invalid config: %+v", cfg)
	case <-time.After(3 * time.Second):
		t.Fatal("neither error nor update observed")
	}
}

func TestWatcherDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	w, err := NewWatcher(path, WatchConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	// 禁用时 Start 不应尝试监听不存在的文件
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start with disabled watcher failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}
