package anomaly

import (
	"time"

	"github.com/shopspring/decimal"

	"mm-quote-engine/market"
)

// StuffingAction 报价灌单处置动作。
type StuffingAction string

const (
	StuffingNone     StuffingAction = "NONE"
	StuffingWarn     StuffingAction = "WARN"
	StuffingThrottle StuffingAction = "THROTTLE"
	StuffingBlock    StuffingAction = "BLOCK"
)

// QuoteStuffingSnapshot 一次灌单评估的完整结果。
type QuoteStuffingSnapshot struct {
	QuoteRate         decimal.Decimal // 每秒报价数
	CancelRate        decimal.Decimal // 每秒撤单数
	QuoteToTradeRatio decimal.Decimal
	AvgQuoteLifetime  time.Duration
	Score             int
	IsStuffing        bool
	Action            StuffingAction
}

// EvaluateQuoteStuffing 在固定时间窗内累加评分：
// 报价速率 >100/s +30、>50/s +15；撤单速率 >50/s +30、>25/s +15；
// 报价成交比 >100 +25、>50 +12；平均寿命 <100ms +15、<500ms +7。
// 总分 ≥80 BLOCK、≥60 THROTTLE、≥40 WARN；≥50 判定为灌单。
func EvaluateQuoteStuffing(events []market.QuoteEvent, trades int, window time.Duration, now time.Time) QuoteStuffingSnapshot {
	snap := QuoteStuffingSnapshot{Action: StuffingNone}
	if len(events) == 0 || window <= 0 {
		return snap
	}

	secs := decimal.NewFromFloat(window.Seconds())
	windowStart := now.Add(-window)
	placed := 0
	cancels := 0
	var lifetimeSum time.Duration
	for _, e := range events {
		// 撤单可以晚于下单窗口，分别按事件时刻归属
		if e.PlacedAt.After(windowStart) {
			placed++
		}
		if !e.CanceledAt.IsZero() && e.CanceledAt.After(windowStart) {
			cancels++
		}
		lifetimeSum += e.Lifetime(now)
	}

	snap.QuoteRate = decimal.NewFromInt(int64(placed)).Div(secs)
	snap.CancelRate = decimal.NewFromInt(int64(cancels)).Div(secs)
	if trades > 0 {
		snap.QuoteToTradeRatio = decimal.NewFromInt(int64(placed)).Div(decimal.NewFromInt(int64(trades)))
	} else {
		snap.QuoteToTradeRatio = decimal.NewFromInt(int64(placed))
	}
	snap.AvgQuoteLifetime = lifetimeSum / time.Duration(len(events))

	score := 0
	switch {
	case snap.QuoteRate.Cmp(decimal.NewFromInt(100)) > 0:
		score += 30
	case snap.QuoteRate.Cmp(decimal.NewFromInt(50)) > 0:
		score += 15
	}
	switch {
	case snap.CancelRate.Cmp(decimal.NewFromInt(50)) > 0:
		score += 30
	case snap.CancelRate.Cmp(decimal.NewFromInt(25)) > 0:
		score += 15
	}
	switch {
	case snap.QuoteToTradeRatio.Cmp(decimal.NewFromInt(100)) > 0:
		score += 25
	case snap.QuoteToTradeRatio.Cmp(decimal.NewFromInt(50)) > 0:
		score += 12
	}
	switch {
	case snap.AvgQuoteLifetime < 100*time.Millisecond:
		score += 15
	case snap.AvgQuoteLifetime < 500*time.Millisecond:
		score += 7
	}

	snap.Score = score
	snap.IsStuffing = score >= 50
	switch {
	case score >= 80:
		snap.Action = StuffingBlock
	case score >= 60:
		snap.Action = StuffingThrottle
	case score >= 40:
		snap.Action = StuffingWarn
	}
	return snap
}

// Result 两类检测的合并结果，供 evaluate_anomalies 一次性返回。
type Result struct {
	Adverse  AdverseSelectionSnapshot
	Stuffing QuoteStuffingSnapshot
}

// Evaluate 在同一调用里跑完两类检测。
func Evaluate(fills []market.FillMark, events []market.QuoteEvent, trades int, window time.Duration, now time.Time) Result {
	return Result{
		Adverse:  EvaluateAdverseSelection(fills),
		Stuffing: EvaluateQuoteStuffing(events, trades, window, now),
	}
}
