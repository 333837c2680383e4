// Package metrics provides Prometheus metrics for the quoting engine
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor Prometheus监控指标收集器
type Monitor struct {
	registry *prometheus.Registry

	// 报价指标
	quotesGenerated *prometheus.CounterVec
	quoteRejects    *prometheus.CounterVec
	quoteUpdates    *prometheus.CounterVec
	spreadBps       *prometheus.GaugeVec
	midPrice        *prometheus.GaugeVec

	// 成交指标
	fillsTotal   *prometheus.CounterVec
	filledVolume *prometheus.CounterVec

	// 库存指标
	position      *prometheus.GaugeVec
	positionRatio *prometheus.GaugeVec
	unrealizedPnL *prometheus.GaugeVec
	inventoryRisk *prometheus.GaugeVec

	// 风控指标
	valueAtRisk   *prometheus.GaugeVec
	concentration prometheus.Gauge
	limitBreaches *prometheus.CounterVec

	// 异常检测指标
	anomalyScore   *prometheus.GaugeVec
	anomalyActions *prometheus.CounterVec

	// 义务指标
	obligationViolations *prometheus.CounterVec

	// 系统指标
	wsConnections prometheus.Counter
	wsDisconnects prometheus.Counter
	tickLatency   prometheus.Histogram
}

// Config 监控配置
type Config struct {
	Namespace string
	Subsystem string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Namespace: "mm",
		Subsystem: "quoting",
	}
}

// New 创建新的Monitor实例
func New(cfg Config) *Monitor {
	reg := prometheus.NewRegistry()

	factory := promauto.With(reg)

	m := &Monitor{
		registry: reg,

		// 报价指标
		quotesGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "quotes_generated_total",
				Help:      "生成报价总数",
			},
			[]string{"instrument"},
		),
		quoteRejects: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "quote_rejects_total",
				Help:      "报价校验拒绝总数",
			},
			[]string{"instrument", "reason"},
		),
		quoteUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "quote_updates_total",
				Help:      "报价更新决策总数",
			},
			[]string{"instrument", "reason"},
		),
		spreadBps: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "spread_bps",
				Help:      "当前报价价差（基点）",
			},
			[]string{"instrument"},
		),
		midPrice: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "mid_price",
				Help:      "当前中间价",
			},
			[]string{"instrument"},
		),

		// 成交指标
		fillsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "fills_total",
				Help:      "成交笔数总数",
			},
			[]string{"instrument", "side"},
		),
		filledVolume: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "filled_volume_total",
				Help:      "累计成交量",
			},
			[]string{"instrument"},
		),

		// 库存指标
		position: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "position",
				Help:      "当前净仓位",
			},
			[]string{"instrument"},
		),
		positionRatio: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "position_ratio",
				Help:      "仓位占上限比例",
			},
			[]string{"instrument"},
		),
		unrealizedPnL: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "unrealized_pnl",
				Help:      "未实现盈亏",
			},
			[]string{"instrument"},
		),
		inventoryRisk: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "inventory_risk_level",
				Help:      "库存风险级别(0=低,1=中,2=高,3=危急)",
			},
			[]string{"instrument"},
		),

		// 风控指标
		valueAtRisk: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "value_at_risk",
				Help:      "参数法 VaR（负值表示潜在损失）",
			},
			[]string{"instrument"},
		),
		concentration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "portfolio_concentration",
			Help:      "组合集中度 HHI",
		}),
		limitBreaches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "limit_breaches_total",
				Help:      "限额突破总数",
			},
			[]string{"instrument", "limit"},
		),

		// 异常检测指标
		anomalyScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "anomaly_score",
				Help:      "异常检测评分",
			},
			[]string{"instrument", "detector"},
		),
		anomalyActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "anomaly_actions_total",
				Help:      "异常处置动作总数",
			},
			[]string{"instrument", "action"},
		),

		// 义务指标
		obligationViolations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "obligation_violations_total",
				Help:      "做市义务违规总数",
			},
			[]string{"instrument", "type"},
		),

		// 系统指标
		wsConnections: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "ws_connections_total",
			Help:      "WebSocket连接次数",
		}),
		wsDisconnects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "ws_disconnects_total",
			Help:      "WebSocket断开次数",
		}),
		tickLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "tick_latency_seconds",
			Help:      "行情处理延迟分布（秒）",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}

	return m
}

// 报价相关方法
func (m *Monitor) RecordQuoteGenerated(instrument string) {
	m.quotesGenerated.WithLabelValues(instrument).Inc()
}

func (m *Monitor) RecordQuoteReject(instrument, reason string) {
	m.quoteRejects.WithLabelValues(instrument, reason).Inc()
}

func (m *Monitor) RecordQuoteUpdate(instrument, reason string) {
	m.quoteUpdates.WithLabelValues(instrument, reason).Inc()
}

func (m *Monitor) UpdateSpread(instrument string, bps float64) {
	m.spreadBps.WithLabelValues(instrument).Set(bps)
}

func (m *Monitor) UpdateMidPrice(instrument string, value float64) {
	m.midPrice.WithLabelValues(instrument).Set(value)
}

// 成交相关方法
func (m *Monitor) RecordFill(instrument, side string, volume float64) {
	m.fillsTotal.WithLabelValues(instrument, side).Inc()
	m.filledVolume.WithLabelValues(instrument).Add(volume)
}

// 库存相关方法
func (m *Monitor) UpdateInventory(instrument string, position, ratio, unrealized float64, riskLevel int) {
	m.position.WithLabelValues(instrument).Set(position)
	m.positionRatio.WithLabelValues(instrument).Set(ratio)
	m.unrealizedPnL.WithLabelValues(instrument).Set(unrealized)
	m.inventoryRisk.WithLabelValues(instrument).Set(float64(riskLevel))
}

// 风控相关方法
func (m *Monitor) UpdateVaR(instrument string, value float64) {
	m.valueAtRisk.WithLabelValues(instrument).Set(value)
}

func (m *Monitor) UpdateConcentration(hhi float64) {
	m.concentration.Set(hhi)
}

func (m *Monitor) RecordLimitBreach(instrument, limit string) {
	m.limitBreaches.WithLabelValues(instrument, limit).Inc()
}

// 异常检测相关方法
func (m *Monitor) UpdateAnomalyScore(instrument, detector string, score float64) {
	m.anomalyScore.WithLabelValues(instrument, detector).Set(score)
}

func (m *Monitor) RecordAnomalyAction(instrument, action string) {
	m.anomalyActions.WithLabelValues(instrument, action).Inc()
}

// 义务相关方法
func (m *Monitor) RecordObligationViolation(instrument, violationType string) {
	m.obligationViolations.WithLabelValues(instrument, violationType).Inc()
}

// 系统相关方法
func (m *Monitor) RecordWSConnection() {
	m.wsConnections.Inc()
}

func (m *Monitor) RecordWSDisconnect() {
	m.wsDisconnects.Inc()
}

func (m *Monitor) RecordTickLatency(seconds float64) {
	m.tickLatency.Observe(seconds)
}

// Handler 返回HTTP handler用于暴露指标
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry 返回prometheus registry
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

// StartMetricsServer 启动Prometheus指标服务器
func StartMetricsServer(addr string, m *Monitor) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
