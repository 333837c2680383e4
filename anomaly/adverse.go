// Package anomaly 实现两类无状态异常检测：逆向选择与报价灌单。
// 检测器不维护任何计数器，滑动窗口由调用方持有并整窗传入，
// 相同窗口必然得到相同结论。
package anomaly

import (
	"github.com/shopspring/decimal"

	"mm-quote-engine/market"
	"mm-quote-engine/numeric"
)

// AdverseAction 逆向选择建议动作。
type AdverseAction string

const (
	ActionContinue     AdverseAction = "CONTINUE"
	ActionWidenSpread  AdverseAction = "WIDEN_SPREAD"
	ActionReduceSize   AdverseAction = "REDUCE_SIZE"
	ActionPauseQuoting AdverseAction = "PAUSE_QUOTING"
)

// AdverseSelectionSnapshot 一次逆向选择评估的完整结果。
type AdverseSelectionSnapshot struct {
	Trades         int
	AdverseCount   int
	AdverseRatio   decimal.Decimal
	WinRate        decimal.Decimal
	AvgAdverseMove decimal.Decimal
	IsHighRisk     bool
	Action         AdverseAction
}

// EvaluateAdverseSelection 逐笔判定事后价格是否对做市商不利：
// 买入后价格下行、卖出后价格上行视为 adverse。
// 阈值：>0.6 PAUSE_QUOTING，>0.5 REDUCE_SIZE，>0.4 WIDEN_SPREAD。
func EvaluateAdverseSelection(fills []market.FillMark) AdverseSelectionSnapshot {
	snap := AdverseSelectionSnapshot{Action: ActionContinue}
	if len(fills) == 0 {
		return snap
	}

	adverseMoveSum := numeric.Zero
	for _, f := range fills {
		move := f.PriceAfter.Sub(f.Price)
		// 做市商视角：买入后跌、卖出后涨都是被逆向选择
		against := move.Mul(f.Side.Sign()).IsNegative()
		if against {
			snap.AdverseCount++
			adverseMoveSum = adverseMoveSum.Add(move.Abs())
		}
	}
	snap.Trades = len(fills)
	n := decimal.NewFromInt(int64(len(fills)))
	snap.AdverseRatio = decimal.NewFromInt(int64(snap.AdverseCount)).Div(n)
	snap.WinRate = numeric.One.Sub(snap.AdverseRatio)
	if snap.AdverseCount > 0 {
		snap.AvgAdverseMove = adverseMoveSum.Div(decimal.NewFromInt(int64(snap.AdverseCount)))
	}

	switch {
	case snap.AdverseRatio.Cmp(decimal.NewFromFloat(0.6)) > 0:
		snap.Action = ActionPauseQuoting
	case snap.AdverseRatio.Cmp(decimal.NewFromFloat(0.5)) > 0:
		snap.Action = ActionReduceSize
	case snap.AdverseRatio.Cmp(decimal.NewFromFloat(0.4)) > 0:
		snap.Action = ActionWidenSpread
	}
	snap.IsHighRisk = snap.AdverseRatio.Cmp(decimal.NewFromFloat(0.4)) > 0
	return snap
}
