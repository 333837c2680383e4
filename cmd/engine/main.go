// 报价引擎入口：加载配置，连接行情，按品种启动报价主循环。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mm-quote-engine/config"
	"mm-quote-engine/gateway"
	"mm-quote-engine/infrastructure/alert"
	"mm-quote-engine/infrastructure/logger"
	"mm-quote-engine/internal/engine"
	"mm-quote-engine/internal/store"
	"mm-quote-engine/inventory"
	"mm-quote-engine/market"
	"mm-quote-engine/metrics"
	"mm-quote-engine/quote"
	"mm-quote-engine/risk"
	"mm-quote-engine/spread"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	instrument := flag.String("instrument", "", "只运行指定品种，留空则运行全部")
	metricsAddr := flag.String("metricsAddr", "", "覆盖配置中的 metrics 监听地址")
	quoteRate := flag.Float64("quoteRate", 20, "报价发布限速：每秒令牌数")
	quoteBurst := flag.Int("quoteBurst", 5, "报价发布限速：最大突发令牌数")
	flag.Parse()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
		cfg.Metrics.Enabled = true
	}

	logCfg := cfg.Logging
	if logCfg.Level == "" {
		logCfg = logger.DefaultConfig()
	}
	logg, err := logger.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logg.Close()

	throttle := time.Duration(cfg.Alerting.ThrottleSeconds) * time.Second
	if throttle <= 0 {
		throttle = time.Minute
	}
	alerts := alert.NewManager([]alert.Channel{
		alert.NewLogChannel("stdout", os.Stdout),
	}, throttle)

	monitor := metrics.New(metrics.DefaultConfig())
	if cfg.Metrics.Enabled {
		metrics.StartMetricsServer(cfg.Metrics.Addr, monitor)
		logg.Info("Metrics server listening", zap.String("addr", cfg.Metrics.Addr))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engines, err := buildEngines(cfg, *instrument, logg, alerts, monitor, *quoteRate, *quoteBurst)
	if err != nil {
		logg.Error("Engine setup failed", zap.Error(err))
		os.Exit(1)
	}
	for _, e := range engines {
		if err := e.Start(ctx); err != nil {
			logg.Error("Engine start failed", zap.Error(err))
			os.Exit(1)
		}
	}

	feed, err := gateway.NewFeed(gateway.FeedConfig{
		URL:          cfg.Feed.URL,
		ReadTimeout:  time.Duration(cfg.Feed.ReadTimeoutMs) * time.Millisecond,
		ReconnectMax: time.Duration(cfg.Feed.ReconnectMaxMs) * time.Millisecond,
	}, fanout(engines), logg.Logger)
	if err != nil {
		logg.Error("Feed setup failed", zap.Error(err))
		os.Exit(1)
	}
	feed.SetConnectionHooks(monitor.RecordWSConnection, monitor.RecordWSDisconnect)
	go func() {
		if err := feed.Run(ctx); err != nil && ctx.Err() == nil {
			logg.Error("Feed terminated", zap.Error(err))
		}
	}()

	watcher, err := config.NewWatcher(*cfgPath, config.DefaultWatchConfig(), func(next config.AppConfig) {
		// 运行中的引擎参数不动态替换，提示重启生效
		logg.Info("Config file reloaded; restart to apply instrument changes",
			zap.Int("instruments", len(next.Instruments)))
	})
	if err != nil {
		logg.Warn("Config watcher unavailable", zap.Error(err))
	} else {
		watcher.SetErrorHandler(func(err error) {
			logg.Warn("Config reload rejected", zap.Error(err))
		})
		if err := watcher.Start(ctx); err != nil {
			logg.Warn("Config watcher start failed", zap.Error(err))
		}
		defer watcher.Stop()
	}

	logg.Info("Quote engine running",
		zap.Int("engines", len(engines)),
		zap.String("feed", cfg.Feed.URL))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Shutdown signal received")
	cancel()
	for _, e := range engines {
		if err := e.Stop(); err != nil {
			logg.Warn("Engine stop failed", zap.Error(err))
		}
	}
	logg.Info("Quote engine exited")
}

// buildEngines 按配置组装每个品种的引擎。
func buildEngines(cfg config.AppConfig, only string, logg *logger.Logger,
	alerts *alert.Manager, monitor *metrics.Monitor, rate float64, burst int) ([]*engine.Engine, error) {

	var engines []*engine.Engine
	for id, ic := range cfg.Instruments {
		if only != "" && id != only {
			continue
		}

		st := store.New(id, store.Config{}, nil, func(event string, fields map[string]interface{}) {
			logg.LogError(fmt.Errorf("store %s: %s", id, event), fields)
		})
		ledger := inventory.NewLedger(id,
			decimal.NewFromFloat(ic.Inventory.TargetPosition),
			decimal.NewFromFloat(ic.Inventory.MaxPosition))

		ttl := time.Duration(ic.Quote.TTLMs) * time.Millisecond
		if ttl <= 0 {
			ttl = quote.DefaultTTL
		}

		ecfg := engine.Config{
			InstrumentID:     id,
			BaseSpreadBps:    decimal.NewFromFloat(ic.Quote.BaseSpreadBps),
			BidSize:          decimal.NewFromFloat(ic.Quote.BidSize),
			AskSize:          decimal.NewFromFloat(ic.Quote.AskSize),
			MoveThresholdBps: decimal.NewFromFloat(ic.Quote.MoveThresholdBps),
			MaxDeviationBps:  decimal.NewFromFloat(ic.Quote.MaxDeviationBps),
			TTL:              ttl,
			TargetPosition:   decimal.NewFromFloat(ic.Inventory.TargetPosition),
			MaxPosition:      decimal.NewFromFloat(ic.Inventory.MaxPosition),
			RiskAversion:     decimal.NewFromFloat(ic.Inventory.RiskAversion),
			Limits: risk.Limits{
				MaxPosition:      decimal.NewFromFloat(ic.Inventory.MaxPosition),
				MaxValue:         decimal.NewFromFloat(ic.Risk.MaxPositionValue),
				MaxConcentration: decimal.NewFromFloat(ic.Risk.MaxConcentration),
			},
			VaRConfidence:  decimal.NewFromFloat(ic.Risk.VaRConfidence),
			VaRHorizonDays: decimal.NewFromFloat(ic.Risk.VaRHorizonDays),
			ShockPct:       decimal.NewFromFloat(ic.Risk.ShockPct),
			Session:        buildSession(ic.Spread),
			Obligation: quote.Obligation{
				MaxSpreadBps: decimal.NewFromFloat(ic.Obligation.MaxSpreadBps),
				MinQuoteSize: decimal.NewFromFloat(ic.Obligation.MinQuoteSize),
				MinUptimePct: decimal.NewFromFloat(ic.Obligation.MinQuoteTimePct),
			},
		}

		e, err := engine.New(ecfg, engine.Components{
			Store:     st,
			Ledger:    ledger,
			Publisher: &logPublisher{log: logg, instrument: id},
			Alerts:    alerts,
			Logger:    logg,
			Monitor:   monitor,
			Limiter:   gateway.NewTokenBucketLimiter(rate, burst),
		})
		if err != nil {
			return nil, fmt.Errorf("instrument %s: %w", id, err)
		}
		engines = append(engines, e)
	}
	if len(engines) == 0 {
		return nil, fmt.Errorf("no instrument matched %q", only)
	}
	return engines, nil
}

// buildSession 解析 HH:MM 交易时段；未启用时返回零值（24 小时连续交易）。
func buildSession(sp config.SpreadParams) spread.Session {
	if !sp.TimeOfDayAware {
		return spread.Session{}
	}
	open, err1 := time.Parse("15:04", sp.SessionOpen)
	clos, err2 := time.Parse("15:04", sp.SessionClose)
	if err1 != nil || err2 != nil {
		return spread.Session{}
	}
	return spread.Session{Open: open, Close: clos}
}

// fanoutHandler 将行情事件分发给全部引擎；
// 引擎自行按品种过滤。
type fanoutHandler struct {
	engines []*engine.Engine
}

func fanout(engines []*engine.Engine) *fanoutHandler {
	return &fanoutHandler{engines: engines}
}

func (f *fanoutHandler) OnTick(t market.Tick) {
	for _, e := range f.engines {
		e.OnTick(t)
	}
}

func (f *fanoutHandler) OnTrade(t market.Trade) {
	for _, e := range f.engines {
		e.OnTrade(t)
	}
}

// logPublisher 将报价写入结构化日志；
// 对接真实交易所网关时替换该实现。
type logPublisher struct {
	log        *logger.Logger
	instrument string
}

func (p *logPublisher) Publish(q quote.Quote) error {
	p.log.LogQuote("published", q.ID, map[string]interface{}{
		"instrument": p.instrument,
		"bid":        q.BidPrice.String(),
		"bid_size":   q.BidSize.String(),
		"ask":        q.AskPrice.String(),
		"ask_size":   q.AskSize.String(),
	})
	return nil
}

func (p *logPublisher) Cancel(quoteID string) error {
	p.log.LogQuote("canceled", quoteID, map[string]interface{}{
		"instrument": p.instrument,
	})
	return nil
}
