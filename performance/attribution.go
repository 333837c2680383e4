// Package performance 负责 P&L 归因、报价质量评分与策略建议。
// 所有结果都是派生快照，可以随时从报价/成交/返佣历史重算。
package performance

import (
	"time"

	"github.com/shopspring/decimal"

	"mm-quote-engine/market"
	"mm-quote-engine/numeric"
)

// Attribution P&L 分项归因。
type Attribution struct {
	SpreadCapture        decimal.Decimal
	InventoryPnL         decimal.Decimal
	Rebates              decimal.Decimal
	AdverseSelectionLoss decimal.Decimal
	HedgingCost          decimal.Decimal
	TotalPnL             decimal.Decimal
}

// AttributionOptions 归因可选参数。
type AttributionOptions struct {
	// AdverseRatio 可选：接入逆向选择检测器的实时比率。
	// 为 nil 时退回固定 15% 折减（与源口径一致）。
	AdverseRatio *decimal.Decimal
}

var defaultAdverseHaircut = decimal.NewFromFloat(0.15)

// CalcAttribution 计算做市 P&L 归因：
// 价差捕获 = Σ (mid−成交价)·方向·数量；库存盈亏按相邻反向成交
// 配对近似；逆向选择损失默认按价差捕获的 15% 折减估计。
func CalcAttribution(trades []market.Trade, rebates, hedgingCost decimal.Decimal, opts AttributionOptions) Attribution {
	a := Attribution{Rebates: rebates, HedgingCost: hedgingCost}

	for _, t := range trades {
		capture := t.Mid.Sub(t.Price).Mul(t.Side.Sign()).Mul(t.Qty)
		a.SpreadCapture = a.SpreadCapture.Add(capture)
	}

	// 相邻反向成交配成一轮：卖价-买价 乘以较小数量
	for i := 1; i < len(trades); i++ {
		prev, cur := trades[i-1], trades[i]
		if prev.Side == cur.Side {
			continue
		}
		buy, sell := prev, cur
		if prev.Side == market.Sell {
			buy, sell = cur, prev
		}
		qty := numeric.Min(buy.Qty, sell.Qty)
		a.InventoryPnL = a.InventoryPnL.Add(sell.Price.Sub(buy.Price).Mul(qty))
	}

	haircut := defaultAdverseHaircut
	if opts.AdverseRatio != nil {
		haircut = *opts.AdverseRatio
	}
	a.AdverseSelectionLoss = a.SpreadCapture.Mul(haircut).Neg()

	a.TotalPnL = a.SpreadCapture.
		Add(a.InventoryPnL).
		Add(a.Rebates).
		Add(a.AdverseSelectionLoss).
		Sub(a.HedgingCost)
	return a
}

// Snapshot 按时间段汇总的绩效快照。派生数据，不作为权威记录。
type Snapshot struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Attribution Attribution
	Quality     QualityScore
	TradeCount  int
}

// BuildSnapshot 汇总一个时间段的归因与质量分。
func BuildSnapshot(start, end time.Time, quotes []QuoteStats, trades []market.Trade, rebates, hedgingCost, uptime decimal.Decimal, opts AttributionOptions) Snapshot {
	return Snapshot{
		PeriodStart: start,
		PeriodEnd:   end,
		Attribution: CalcAttribution(trades, rebates, hedgingCost, opts),
		Quality:     AnalyzeQuoteQuality(quotes, uptime),
		TradeCount:  len(trades),
	}
}
