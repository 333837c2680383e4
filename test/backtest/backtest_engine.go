// Package backtest 在历史行情上回放报价管线：
// 价差优化 → 报价生成 → 成交模拟 → 库存与归因。
package backtest

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mm-quote-engine/inventory"
	"mm-quote-engine/market"
	"mm-quote-engine/performance"
	"mm-quote-engine/quote"
	"mm-quote-engine/spread"
)

// Config 回测配置
type Config struct {
	InstrumentID   string
	BaseSpreadBps  decimal.Decimal
	BidSize        decimal.Decimal
	AskSize        decimal.Decimal
	TargetPosition decimal.Decimal
	MaxPosition    decimal.Decimal
	RiskAversion   decimal.Decimal
	FeeBps         decimal.Decimal // 每笔成交按名义金额收取
}

// Result 回测结果
type Result struct {
	StartTime time.Time
	EndTime   time.Time

	TotalQuotes int
	TotalFills  int
	WinRate     decimal.Decimal

	FinalPosition decimal.Decimal
	TotalPnL      decimal.Decimal
	MaxDrawdown   decimal.Decimal

	Snapshot    performance.Snapshot
	EquityCurve []decimal.Decimal
}

// Engine 回测引擎：单品种、逐 tick 回放。
type Engine struct {
	cfg    Config
	ledger *inventory.Ledger
	window *market.MidWindow

	cash   decimal.Decimal
	trades []market.Trade
	quotes []performance.QuoteStats

	equity []decimal.Decimal
	peak   decimal.Decimal
	maxDD  decimal.Decimal

	seq int64
}

// New 创建回测引擎
func New(cfg Config) (*Engine, error) {
	if cfg.InstrumentID == "" {
		return nil, fmt.Errorf("instrument_id is required")
	}
	if !cfg.BaseSpreadBps.IsPositive() {
		return nil, fmt.Errorf("base_spread_bps must be > 0")
	}
	if !cfg.BidSize.IsPositive() || !cfg.AskSize.IsPositive() {
		return nil, fmt.Errorf("quote sizes must be > 0")
	}
	if !cfg.MaxPosition.IsPositive() {
		return nil, fmt.Errorf("max_position must be > 0")
	}
	return &Engine{
		cfg:    cfg,
		ledger: inventory.NewLedger(cfg.InstrumentID, cfg.TargetPosition, cfg.MaxPosition),
		window: market.NewMidWindow(900),
	}, nil
}

// Run 回放行情序列。每个 tick 生成一笔报价，用下一个 tick 的
// mid 判定成交：mid 跌破 bid 视为买入成交，升破 ask 视为卖出成交。
func (e *Engine) Run(ticks []market.Tick) (Result, error) {
	if len(ticks) < 2 {
		return Result{}, fmt.Errorf("need at least 2 ticks, got %d", len(ticks))
	}

	for i := 0; i < len(ticks)-1; i++ {
		tick := ticks[i]
		next := ticks[i+1]
		if !tick.Mid.IsPositive() {
			continue
		}
		e.window.Add(tick.Mid, tick.Ts)

		q, ok := e.quoteAt(tick)
		if !ok {
			continue
		}

		if next.Mid.Cmp(q.BidPrice) <= 0 {
			e.fill(market.Buy, q, next)
		}
		if next.Mid.Cmp(q.AskPrice) >= 0 {
			e.fill(market.Sell, q, next)
		}
		e.markEquity(next.Mid)
	}

	return e.result(ticks), nil
}

// quoteAt 跑一遍价差优化与报价生成。
func (e *Engine) quoteAt(tick market.Tick) (quote.Quote, bool) {
	inv := e.ledger.MarkPrice(tick.Mid)
	vol := e.window.RealizedVol()

	drift := decimal.Zero
	if e.cfg.MaxPosition.IsPositive() {
		drift = inv.Position.Sub(e.cfg.TargetPosition).Div(e.cfg.MaxPosition)
	}
	opt := spread.Optimal(spread.Inputs{
		BaseBps:             e.cfg.BaseSpreadBps,
		Volatility:          vol,
		InventoryRatio:      drift,
		CompetitorSpreadBps: e.cfg.BaseSpreadBps,
		Now:                 tick.Ts,
	})
	skew := inventory.CalcSkew(inv, vol, e.cfg.RiskAversion)

	e.seq++
	q, err := quote.Generate(quote.Params{
		ID:           fmt.Sprintf("bt-%d", e.seq),
		InstrumentID: e.cfg.InstrumentID,
		Mid:          tick.Mid,
		SpreadBps:    opt.SpreadBps,
		BidSize:      e.cfg.BidSize,
		AskSize:      e.cfg.AskSize,
		Skew:         skew.PriceShift(tick.Mid),
		Source:       "backtest",
		Now:          tick.Ts,
	})
	if err != nil {
		return quote.Quote{}, false
	}
	e.quotes = append(e.quotes, performance.QuoteStats{
		SpreadBps: q.SpreadBps,
		BidSize:   q.BidSize,
		AskSize:   q.AskSize,
	})
	return q, true
}

// fill 记录一笔成交并更新现金与库存。
func (e *Engine) fill(side market.Side, q quote.Quote, next market.Tick) {
	price, qty := q.BidPrice, q.BidSize
	if side == market.Sell {
		price, qty = q.AskPrice, q.AskSize
	}
	notional := price.Mul(qty)
	fee := notional.Mul(e.cfg.FeeBps).Div(decimal.NewFromInt(10000))

	trade := market.Trade{
		ID:           fmt.Sprintf("bt-fill-%d", len(e.trades)+1),
		InstrumentID: e.cfg.InstrumentID,
		QuoteID:      q.ID,
		Side:         side,
		Price:        price,
		Qty:          qty,
		Mid:          q.MidPrice,
		Ts:           next.Ts,
	}
	e.trades = append(e.trades, trade)
	e.ledger.ApplyFill(trade, next.Mid)

	if side == market.Buy {
		e.cash = e.cash.Sub(notional)
	} else {
		e.cash = e.cash.Add(notional)
	}
	e.cash = e.cash.Sub(fee)
}

// markEquity 用持仓市值加现金刻画权益曲线，更新最大回撤。
func (e *Engine) markEquity(mid decimal.Decimal) {
	inv := e.ledger.MarkPrice(mid)
	equity := e.cash.Add(inv.Position.Mul(mid))
	e.equity = append(e.equity, equity)

	if equity.Cmp(e.peak) > 0 {
		e.peak = equity
	}
	if dd := e.peak.Sub(equity); dd.Cmp(e.maxDD) > 0 {
		e.maxDD = dd
	}
}

func (e *Engine) result(ticks []market.Tick) Result {
	start, end := ticks[0].Ts, ticks[len(ticks)-1].Ts
	snap := performance.BuildSnapshot(start, end, e.quotes, e.trades,
		decimal.Zero, decimal.Zero, decimal.NewFromInt(1), performance.AttributionOptions{})

	wins := 0
	for _, t := range e.trades {
		// 买在 mid 之下、卖在 mid 之上即为有利成交
		if t.Mid.Sub(t.Price).Mul(t.Side.Sign()).IsPositive() {
			wins++
		}
	}
	winRate := decimal.Zero
	if len(e.trades) > 0 {
		winRate = decimal.NewFromInt(int64(wins)).Div(decimal.NewFromInt(int64(len(e.trades))))
	}

	var total decimal.Decimal
	if len(e.equity) > 0 {
		total = e.equity[len(e.equity)-1]
	}

	return Result{
		StartTime:     start,
		EndTime:       end,
		TotalQuotes:   len(e.quotes),
		TotalFills:    len(e.trades),
		WinRate:       winRate,
		FinalPosition: e.ledger.Snapshot().Position,
		TotalPnL:      total,
		MaxDrawdown:   e.maxDD,
		Snapshot:      snap,
		EquityCurve:   e.equity,
	}
}
