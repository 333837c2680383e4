// Package gateway 连接行情网关：订阅 tick/成交流，解析后投递给引擎。
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"mm-quote-engine/market"
)

const (
	defaultReadTimeout  = 30 * time.Second
	defaultReconnectMax = 30 * time.Second
	reconnectBase       = 500 * time.Millisecond
)

// Handler 接收解析后的行情事件。
type Handler interface {
	OnTick(market.Tick)
	OnTrade(market.Trade)
}

// FeedConfig 行情连接配置
type FeedConfig struct {
	URL          string
	ReadTimeout  time.Duration
	ReconnectMax time.Duration // 重连退避上限
}

// Feed 行情 WebSocket 客户端：断线自动重连，指数退避。
type Feed struct {
	cfg     FeedConfig
	dialer  *websocket.Dialer
	handler Handler
	log     *zap.Logger

	onConnect    func()
	onDisconnect func()
}

// NewFeed 创建行情客户端
func NewFeed(cfg FeedConfig, handler Handler, log *zap.Logger) (*Feed, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("feed url required")
	}
	if handler == nil {
		return nil, fmt.Errorf("feed handler required")
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.ReconnectMax <= 0 {
		cfg.ReconnectMax = defaultReconnectMax
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{
		cfg:     cfg,
		dialer:  websocket.DefaultDialer,
		handler: handler,
		log:     log,
	}, nil
}

// SetConnectionHooks 设置连接/断开回调，用于指标上报。
func (f *Feed) SetConnectionHooks(onConnect, onDisconnect func()) {
	f.onConnect = onConnect
	f.onDisconnect = onDisconnect
}

// Run 连接并持续读取，直到 ctx 取消。连接失败按指数退避重试。
func (f *Feed) Run(ctx context.Context) error {
	backoff := reconnectBase
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := f.runOnce(ctx)
		if err == nil || ctx.Err() != nil {
			return ctx.Err()
		}
		f.log.Warn("feed disconnected",
			zap.String("url", f.cfg.URL),
			zap.Duration("retry_in", backoff),
			zap.Error(err))
		if f.onDisconnect != nil {
			f.onDisconnect()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > f.cfg.ReconnectMax {
			backoff = f.cfg.ReconnectMax
		}
	}
}

func (f *Feed) runOnce(ctx context.Context) error {
	conn, _, err := f.dialer.DialContext(ctx, f.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("dial feed: %w", err)
	}
	defer conn.Close()

	f.log.Info("feed connected", zap.String("url", f.cfg.URL))
	if f.onConnect != nil {
		f.onConnect()
	}

	// ctx 取消时主动断开，解除 ReadMessage 阻塞
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(f.cfg.ReadTimeout))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read feed: %w", err)
		}
		f.dispatch(raw)
	}
}

// dispatch 解析消息并路由；坏消息记日志后跳过，不断开连接。
func (f *Feed) dispatch(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		f.log.Warn("feed message unparseable", zap.Error(err))
		return
	}
	switch env.Type {
	case "tick":
		tick, err := ParseTick(env.Data)
		if err != nil {
			f.log.Warn("bad tick message", zap.Error(err))
			return
		}
		f.handler.OnTick(tick)
	case "trade":
		trade, err := ParseTrade(env.Data)
		if err != nil {
			f.log.Warn("bad trade message", zap.Error(err))
			return
		}
		f.handler.OnTrade(trade)
	default:
		f.log.Debug("feed message ignored", zap.String("type", env.Type))
	}
}
