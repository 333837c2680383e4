// Package engine 串联行情、价差优化、报价生成、库存与风控，
// 构成单品种报价主循环。
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mm-quote-engine/anomaly"
	"mm-quote-engine/gateway"
	"mm-quote-engine/infrastructure/alert"
	"mm-quote-engine/infrastructure/logger"
	"mm-quote-engine/internal/store"
	"mm-quote-engine/inventory"
	"mm-quote-engine/market"
	"mm-quote-engine/metrics"
	"mm-quote-engine/quote"
	"mm-quote-engine/risk"
	"mm-quote-engine/spread"
)

// State 引擎状态
type State int

const (
	// StateIdle 空闲状态
	StateIdle State = iota
	// StateRunning 运行状态
	StateRunning
	// StatePaused 暂停状态
	StatePaused
	// StateStopped 停止状态
	StateStopped
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StatePaused:
		return "PAUSED"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Publisher 对外发布/撤销报价。
type Publisher interface {
	Publish(q quote.Quote) error
	Cancel(quoteID string) error
}

// Config 引擎配置
type Config struct {
	InstrumentID string

	BaseSpreadBps    decimal.Decimal
	BidSize          decimal.Decimal
	AskSize          decimal.Decimal
	MoveThresholdBps decimal.Decimal
	MaxDeviationBps  decimal.Decimal
	TTL              time.Duration

	TargetPosition decimal.Decimal
	MaxPosition    decimal.Decimal
	RiskAversion   decimal.Decimal

	Limits         risk.Limits
	VaRConfidence  decimal.Decimal
	VaRHorizonDays decimal.Decimal
	ShockPct       decimal.Decimal

	Session spread.Session

	Obligation quote.Obligation // 零值关闭义务检查

	RiskInterval   time.Duration // 周期性风险评估间隔
	StuffingWindow time.Duration // 灌单检测窗口
}

// Components 引擎依赖组件
type Components struct {
	Store     *store.Store
	Ledger    *inventory.Ledger
	Publisher Publisher
	Alerts    *alert.Manager
	Logger    *logger.Logger
	Monitor   *metrics.Monitor
	Limiter   gateway.RateLimiter
	Clock     risk.Clock // 缺省为系统时钟
}

// Engine 单品种报价引擎：行情与成交事件串行处理，
// 同一品种只有一个写者。
type Engine struct {
	config Config

	store   *store.Store
	ledger  *inventory.Ledger
	pub     Publisher
	alerts  *alert.Manager
	logger  *logger.Logger
	monitor *metrics.Monitor
	limiter gateway.RateLimiter
	clock   risk.Clock

	state State
	mu    sync.RWMutex

	tickChan  chan market.Tick
	tradeChan chan market.Trade
	stopChan  chan struct{}
	doneChan  chan struct{}

	active   *quote.Quote // 当前在场报价
	quoteSeq int64

	// 在场时间统计，供义务在线率检查
	runStart    time.Time
	activeSince time.Time
	activeAccum time.Duration

	obligation quote.Obligation

	stats   Statistics
	statsMu sync.RWMutex
}

// Statistics 引擎统计信息
type Statistics struct {
	StartTime     time.Time
	TotalTicks    int64
	TotalQuotes   int64
	TotalFills    int64
	TotalErrors   int64
	LastTickTime  time.Time
	LastQuoteTime time.Time
}

// New 创建报价引擎
func New(cfg Config, components Components) (*Engine, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := validateComponents(components); err != nil {
		return nil, fmt.Errorf("invalid components: %w", err)
	}

	if cfg.TTL <= 0 {
		cfg.TTL = quote.DefaultTTL
	}
	if cfg.RiskInterval <= 0 {
		cfg.RiskInterval = 10 * time.Second
	}
	if cfg.StuffingWindow <= 0 {
		cfg.StuffingWindow = time.Minute
	}
	if components.Clock == nil {
		components.Clock = risk.NowUTC
	}

	return &Engine{
		config:     cfg,
		store:      components.Store,
		ledger:     components.Ledger,
		pub:        components.Publisher,
		alerts:     components.Alerts,
		logger:     components.Logger,
		monitor:    components.Monitor,
		limiter:    components.Limiter,
		clock:      components.Clock,
		state:      StateIdle,
		obligation: cfg.Obligation,
		tickChan:   make(chan market.Tick, 256),
		tradeChan:  make(chan market.Trade, 64),
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}, nil
}

// OnTick 实现 gateway.Handler；通道满时丢弃最旧行情。
func (e *Engine) OnTick(tick market.Tick) {
	if tick.InstrumentID != e.config.InstrumentID {
		return
	}
	for {
		select {
		case e.tickChan <- tick:
			return
		default:
			select {
			case <-e.tickChan:
			default:
			}
		}
	}
}

// OnTrade 实现 gateway.Handler；成交不允许丢弃。
func (e *Engine) OnTrade(trade market.Trade) {
	if trade.InstrumentID != e.config.InstrumentID {
		return
	}
	e.tradeChan <- trade
}

// Start 启动引擎
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateIdle && e.state != StateStopped {
		e.mu.Unlock()
		return fmt.Errorf("engine already started (state: %s)", e.state)
	}
	if e.state == StateStopped {
		e.stopChan = make(chan struct{})
		e.doneChan = make(chan struct{})
	}
	e.state = StateRunning
	e.runStart = e.clock.Now()
	e.activeAccum = 0
	e.activeSince = time.Time{}
	e.mu.Unlock()

	e.statsMu.Lock()
	e.stats.StartTime = e.clock.Now()
	e.statsMu.Unlock()

	e.logger.Info("Quote engine starting",
		zap.String("instrument", e.config.InstrumentID),
		zap.String("base_spread_bps", e.config.BaseSpreadBps.String()),
		zap.Duration("ttl", e.config.TTL))

	go e.run(ctx)

	return nil
}

// Stop 停止引擎
func (e *Engine) Stop() error {
	e.mu.Lock()
	if e.state != StateRunning && e.state != StatePaused {
		e.mu.Unlock()
		return fmt.Errorf("engine not running (state: %s)", e.state)
	}
	e.mu.Unlock()

	select {
	case <-e.stopChan:
	default:
		close(e.stopChan)
	}

	select {
	case <-e.doneChan:
	case <-time.After(10 * time.Second):
		e.logger.Warn("Timeout waiting for engine to stop")
	}

	e.withdrawActive(e.clock.Now().UTC(), "engine stop")

	e.mu.Lock()
	e.state = StateStopped
	e.mu.Unlock()

	e.logger.Info("Quote engine stopped", zap.String("instrument", e.config.InstrumentID))
	return nil
}

// Pause 暂停报价；已在场的报价会被撤回。
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateRunning {
		return fmt.Errorf("engine not running (state: %s)", e.state)
	}
	e.state = StatePaused
	e.logger.Info("Quote engine paused", zap.String("instrument", e.config.InstrumentID))
	return nil
}

// Resume 恢复报价
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StatePaused {
		return fmt.Errorf("engine not paused (state: %s)", e.state)
	}
	e.state = StateRunning
	e.logger.Info("Quote engine resumed", zap.String("instrument", e.config.InstrumentID))
	return nil
}

// run 主事件循环：行情、成交、周期风险评估、TTL 过期检查。
func (e *Engine) run(ctx context.Context) {
	defer close(e.doneChan)

	riskTicker := time.NewTicker(e.config.RiskInterval)
	defer riskTicker.Stop()

	expiry := e.config.TTL / 2
	if expiry < 100*time.Millisecond {
		expiry = 100 * time.Millisecond
	}
	expiryTicker := time.NewTicker(expiry)
	defer expiryTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stopChan:
			return
		case tick := <-e.tickChan:
			e.onTick(tick)
		case trade := <-e.tradeChan:
			e.onTrade(trade)
		case <-riskTicker.C:
			e.onRiskCheck()
		case <-expiryTicker.C:
			e.onExpiryCheck()
		}
	}
}

// onTick 行情驱动的报价决策。
func (e *Engine) onTick(tick market.Tick) {
	started := time.Now()
	e.store.OnTick(tick)

	e.statsMu.Lock()
	e.stats.TotalTicks++
	e.stats.LastTickTime = tick.Ts
	e.statsMu.Unlock()

	mid := tick.Mid
	if !mid.IsPositive() {
		return
	}
	if e.monitor != nil {
		e.monitor.UpdateMidPrice(e.config.InstrumentID, mid.InexactFloat64())
		defer func() {
			e.monitor.RecordTickLatency(time.Since(started).Seconds())
		}()
	}

	if e.GetState() == StatePaused {
		return
	}

	now := tick.Ts
	inv := e.ledger.MarkPrice(mid)

	// 异常检测先行：BLOCK / PAUSE_QUOTING 直接离场
	res := anomaly.Evaluate(e.store.Fills(), e.store.QuoteEvents(),
		len(e.store.Trades()), e.config.StuffingWindow, now)
	if e.monitor != nil {
		e.monitor.UpdateAnomalyScore(e.config.InstrumentID, "quote_stuffing", float64(res.Stuffing.Score))
		e.monitor.UpdateAnomalyScore(e.config.InstrumentID, "adverse_selection", res.Adverse.AdverseRatio.InexactFloat64())
	}
	if res.Stuffing.Action == anomaly.StuffingBlock || res.Adverse.Action == anomaly.ActionPauseQuoting {
		e.handleAnomalyStop(res, now)
		return
	}

	vol := e.store.RealizedVol()
	drift := decimal.Zero
	if e.config.MaxPosition.IsPositive() {
		drift = inv.Position.Sub(e.config.TargetPosition).Div(e.config.MaxPosition)
	}

	opt := spread.Optimal(spread.Inputs{
		BaseBps:              e.config.BaseSpreadBps,
		Volatility:           vol,
		InventoryRatio:       drift,
		CompetitorSpreadBps:  e.config.BaseSpreadBps, // 无竞争数据时不产生牵引
		AdverseSelectionRate: res.Adverse.AdverseRatio,
		Now:                  now,
		Session:              e.config.Session,
	})

	spreadBps := opt.SpreadBps
	bidSize, askSize := e.config.BidSize, e.config.AskSize
	switch res.Adverse.Action {
	case anomaly.ActionReduceSize:
		half := decimal.NewFromFloat(0.5)
		bidSize = bidSize.Mul(half)
		askSize = askSize.Mul(half)
	case anomaly.ActionWidenSpread:
		spreadBps = spreadBps.Mul(decimal.NewFromFloat(1.5))
	}

	// 已有在场报价时，先判定是否需要更新
	if cur := e.activeQuote(); cur != nil {
		decision := quote.DetermineUpdate(quote.UpdateInput{
			Current:        *cur,
			MarketMid:      mid,
			InventoryRatio: inv.PositionRatio(),
			ThresholdBps:   e.config.MoveThresholdBps,
			TTL:            e.config.TTL,
			Now:            now,
		})
		if !decision.ShouldUpdate {
			return
		}
		// 非紧急更新受发布限速约束；灌单 THROTTLE 下同样丢弃
		if decision.Urgency != quote.UrgencyHigh || res.Stuffing.Action == anomaly.StuffingThrottle {
			if e.limiter != nil && !e.limiter.Allow() {
				return
			}
		}
		if e.monitor != nil {
			e.monitor.RecordQuoteUpdate(e.config.InstrumentID, string(decision.Reason))
		}
	} else if e.limiter != nil && !e.limiter.Allow() {
		return
	}

	skew := inventory.CalcSkew(inv, vol, e.config.RiskAversion)

	e.quoteSeq++
	q, err := quote.Generate(quote.Params{
		ID:           fmt.Sprintf("%s-%d", e.config.InstrumentID, e.quoteSeq),
		InstrumentID: e.config.InstrumentID,
		Mid:          mid,
		SpreadBps:    spreadBps,
		BidSize:      bidSize,
		AskSize:      askSize,
		Skew:         skew.PriceShift(mid),
		Source:       "engine",
		Now:          now,
	})
	if err != nil {
		e.recordError()
		e.logger.Error("Quote generation failed",
			zap.String("instrument", e.config.InstrumentID),
			zap.String("mid", mid.String()),
			zap.Error(err))
		return
	}

	nbbo := market.NBBO{BestBid: tick.BestBid, BestAsk: tick.BestAsk}
	if err := quote.ValidateAgainstNBBO(q, nbbo, e.config.MaxDeviationBps); err != nil {
		e.recordError()
		var nv *quote.NBBOViolationError
		reason := "INVALID"
		if errors.As(err, &nv) {
			reason = string(nv.Kind)
		}
		if e.monitor != nil {
			e.monitor.RecordQuoteReject(e.config.InstrumentID, reason)
		}
		e.logger.Warn("Quote rejected by NBBO check",
			zap.String("quote_id", q.ID),
			zap.String("reason", reason),
			zap.Error(err))
		return
	}

	e.withdrawActive(now, "requote")
	if err := e.pub.Publish(q); err != nil {
		e.recordError()
		e.logger.Error("Quote publish failed", zap.String("quote_id", q.ID), zap.Error(err))
		return
	}
	e.setActive(&q)
	e.store.OnQuotePlaced(q.ID, now)
	e.checkObligation(q, now)

	e.statsMu.Lock()
	e.stats.TotalQuotes++
	e.stats.LastQuoteTime = now
	e.statsMu.Unlock()

	if e.monitor != nil {
		e.monitor.RecordQuoteGenerated(e.config.InstrumentID)
		e.monitor.UpdateSpread(e.config.InstrumentID, q.SpreadBps.InexactFloat64())
	}
	e.logger.LogQuote("generated", q.ID, map[string]interface{}{
		"instrument": q.InstrumentID,
		"bid":        q.BidPrice.String(),
		"ask":        q.AskPrice.String(),
		"spread_bps": q.SpreadBps.String(),
		"skew":       q.Skew.String(),
	})
}

// onTrade 成交回报：更新库存与历史。
func (e *Engine) onTrade(trade market.Trade) {
	if trade.Mid.IsZero() {
		trade.Mid = e.store.LastMid()
	}
	e.store.OnTrade(trade)

	mark := trade.Mid
	if !mark.IsPositive() {
		mark = trade.Price
	}
	inv := e.ledger.ApplyFill(trade, mark)

	e.statsMu.Lock()
	e.stats.TotalFills++
	e.statsMu.Unlock()

	if e.monitor != nil {
		e.monitor.RecordFill(e.config.InstrumentID, string(trade.Side), trade.Qty.InexactFloat64())
		e.monitor.UpdateInventory(e.config.InstrumentID,
			inv.Position.InexactFloat64(),
			inv.PositionRatio().InexactFloat64(),
			inv.UnrealizedPnL.InexactFloat64(),
			int(inv.RiskLevel))
	}
	e.logger.LogFill("fill", map[string]interface{}{
		"instrument": trade.InstrumentID,
		"quote_id":   trade.QuoteID,
		"side":       string(trade.Side),
		"price":      trade.Price.String(),
		"qty":        trade.Qty.String(),
		"position":   inv.Position.String(),
		"risk_level": inv.RiskLevel.String(),
	})

	if inv.RiskLevel == inventory.RiskCritical && e.alerts != nil {
		_ = e.alerts.RiskBreach(e.config.InstrumentID, "inventory risk critical", map[string]interface{}{
			"position":       inv.Position.String(),
			"position_ratio": inv.PositionRatio().String(),
		})
	}
}

// onRiskCheck 周期性风险评估
func (e *Engine) onRiskCheck() {
	inv := e.ledger.Snapshot()
	report := risk.Evaluate(risk.EvaluateParams{
		Inventory:    inv,
		Portfolio:    []inventory.Inventory{inv},
		Returns:      e.store.Returns(),
		Confidence:   e.config.VaRConfidence,
		HorizonDays:  e.config.VaRHorizonDays,
		CurrentPrice: e.store.LastMid(),
		ShockPct:     e.config.ShockPct,
		Limits:       e.config.Limits,
	})

	if e.monitor != nil {
		e.monitor.UpdateVaR(e.config.InstrumentID, report.VaR.InexactFloat64())
		e.monitor.UpdateConcentration(report.Concentration.HHI.InexactFloat64())
	}
	e.logger.LogRisk("evaluation", map[string]interface{}{
		"instrument": e.config.InstrumentID,
		"var":        report.VaR.String(),
		"hhi":        report.Concentration.HHI.String(),
		"breaches":   len(report.Breaches),
	})

	for _, breach := range report.Breaches {
		if e.monitor != nil {
			e.monitor.RecordLimitBreach(e.config.InstrumentID, breach.Kind)
		}
		if e.alerts != nil {
			_ = e.alerts.RiskBreach(e.config.InstrumentID, breach.Error(), map[string]interface{}{
				"kind":  breach.Kind,
				"value": breach.Value.String(),
				"limit": breach.Limit.String(),
			})
		}
	}

	e.checkUptimeObligation(e.clock.Now().UTC())
}

// onExpiryCheck 行情静默时按 TTL 过期在场报价。
func (e *Engine) onExpiryCheck() {
	cur := e.activeQuote()
	if cur == nil {
		return
	}
	now := e.clock.Now().UTC()
	if cur.Age(now) <= e.config.TTL {
		return
	}
	expired, err := cur.Expire(now)
	if err != nil {
		return
	}
	_ = e.pub.Cancel(expired.ID)
	e.store.OnQuoteCanceled(expired.ID, now)
	e.setActive(nil)
	e.checkObligation(expired, now)
	e.logger.LogQuote("expired", expired.ID, map[string]interface{}{
		"age": cur.Age(now).String(),
	})
}

// handleAnomalyStop 异常处置：撤回报价并告警。
func (e *Engine) handleAnomalyStop(res anomaly.Result, now time.Time) {
	e.withdrawActive(now, "anomaly")

	action := string(res.Stuffing.Action)
	detail := map[string]interface{}{
		"stuffing_score": res.Stuffing.Score,
		"adverse_ratio":  res.Adverse.AdverseRatio.String(),
	}
	if res.Adverse.Action == anomaly.ActionPauseQuoting {
		action = string(res.Adverse.Action)
	}
	if e.monitor != nil {
		e.monitor.RecordAnomalyAction(e.config.InstrumentID, action)
	}
	e.logger.LogAnomaly(action, detail)
	if e.alerts != nil {
		_ = e.alerts.AnomalyDetected(e.config.InstrumentID, action, detail)
	}
}

// checkObligation 将报价对照义务检查并上报新增违规。
func (e *Engine) checkObligation(q quote.Quote, now time.Time) {
	if !e.obligationEnabled() {
		return
	}
	e.statsMu.Lock()
	before := len(e.obligation.Violations)
	e.obligation = e.obligation.Check(q, now)
	fresh := append([]quote.Violation(nil), e.obligation.Violations[before:]...)
	e.statsMu.Unlock()
	e.reportViolations(fresh)
}

// checkUptimeObligation 周期性的在线率义务检查。
func (e *Engine) checkUptimeObligation(now time.Time) {
	if !e.obligationEnabled() {
		return
	}
	up := e.uptimeRatio()
	e.statsMu.Lock()
	before := len(e.obligation.Violations)
	e.obligation = e.obligation.CheckUptime(up, now)
	fresh := append([]quote.Violation(nil), e.obligation.Violations[before:]...)
	e.statsMu.Unlock()
	e.reportViolations(fresh)
}

func (e *Engine) obligationEnabled() bool {
	e.statsMu.RLock()
	defer e.statsMu.RUnlock()
	return e.obligation.Enabled()
}

func (e *Engine) reportViolations(violations []quote.Violation) {
	for _, v := range violations {
		if e.monitor != nil {
			e.monitor.RecordObligationViolation(e.config.InstrumentID, v.Kind)
		}
		e.logger.Warn("Quote obligation violated",
			zap.String("instrument", e.config.InstrumentID),
			zap.String("quote_id", v.QuoteID),
			zap.String("kind", v.Kind),
			zap.String("detail", v.Detail))
		if e.alerts != nil {
			_ = e.alerts.Send(alert.Alert{
				Level:        alert.LevelWarning,
				Message:      "quote obligation violated: " + v.Kind,
				InstrumentID: e.config.InstrumentID,
				Fields: map[string]interface{}{
					"quote_id": v.QuoteID,
					"detail":   v.Detail,
				},
			})
		}
	}
}

// withdrawActive 撤回在场报价；reason 仅用于日志。
func (e *Engine) withdrawActive(now time.Time, reason string) {
	cur := e.activeQuote()
	if cur == nil {
		return
	}
	withdrawn, err := cur.Withdraw(now)
	if err != nil {
		return
	}
	_ = e.pub.Cancel(withdrawn.ID)
	e.store.OnQuoteCanceled(withdrawn.ID, now)
	e.setActive(nil)
	e.checkObligation(withdrawn, now)
	e.logger.LogQuote("withdrawn", withdrawn.ID, map[string]interface{}{
		"reason": reason,
	})
}

func (e *Engine) activeQuote() *quote.Quote {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active
}

func (e *Engine) setActive(q *quote.Quote) {
	e.mu.Lock()
	now := e.clock.Now()
	if e.active != nil && q == nil && !e.activeSince.IsZero() {
		e.activeAccum += now.Sub(e.activeSince)
		e.activeSince = time.Time{}
	}
	if e.active == nil && q != nil {
		e.activeSince = now
	}
	e.active = q
	e.mu.Unlock()
}

// uptimeRatio 自启动以来在场报价时间占比，[0,1]。
func (e *Engine) uptimeRatio() decimal.Decimal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.runStart.IsZero() {
		return decimal.Zero
	}
	now := e.clock.Now()
	elapsed := now.Sub(e.runStart)
	if elapsed <= 0 {
		return decimal.Zero
	}
	live := e.activeAccum
	if !e.activeSince.IsZero() {
		live += now.Sub(e.activeSince)
	}
	return decimal.NewFromFloat(live.Seconds() / elapsed.Seconds())
}

func (e *Engine) recordError() {
	e.statsMu.Lock()
	e.stats.TotalErrors++
	e.statsMu.Unlock()
}

// GetState 获取引擎状态
func (e *Engine) GetState() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// GetStatistics 获取统计信息
func (e *Engine) GetStatistics() Statistics {
	e.statsMu.RLock()
	defer e.statsMu.RUnlock()
	return e.stats
}

// GetInventory 获取当前库存快照
func (e *Engine) GetInventory() inventory.Inventory {
	return e.ledger.Snapshot()
}

// GetObligation 获取当前义务快照（含违规日志副本）。
func (e *Engine) GetObligation() quote.Obligation {
	e.statsMu.RLock()
	defer e.statsMu.RUnlock()
	ob := e.obligation
	ob.Violations = append([]quote.Violation(nil), e.obligation.Violations...)
	return ob
}

// validateConfig 验证配置
func validateConfig(cfg Config) error {
	if cfg.InstrumentID == "" {
		return errors.New("instrument_id is required")
	}
	if !cfg.BaseSpreadBps.IsPositive() {
		return errors.New("base_spread_bps must be > 0")
	}
	if !cfg.BidSize.IsPositive() || !cfg.AskSize.IsPositive() {
		return errors.New("quote sizes must be > 0")
	}
	if !cfg.MoveThresholdBps.IsPositive() {
		return errors.New("move_threshold_bps must be > 0")
	}
	if !cfg.MaxDeviationBps.IsPositive() {
		return errors.New("max_deviation_bps must be > 0")
	}
	if !cfg.MaxPosition.IsPositive() {
		return errors.New("max_position must be > 0")
	}
	return nil
}

// validateComponents 验证组件
func validateComponents(comp Components) error {
	if comp.Store == nil {
		return errors.New("store is required")
	}
	if comp.Ledger == nil {
		return errors.New("ledger is required")
	}
	if comp.Publisher == nil {
		return errors.New("publisher is required")
	}
	if comp.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}
