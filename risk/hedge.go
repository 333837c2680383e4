package risk

import (
	"github.com/shopspring/decimal"

	"mm-quote-engine/inventory"
	"mm-quote-engine/market"
	"mm-quote-engine/numeric"
)

// HedgeCandidate 可用对冲工具的快照。
type HedgeCandidate struct {
	InstrumentID string
	Delta        decimal.Decimal // 每单位对冲工具的 delta
	Cost         decimal.Decimal // 预估对冲成本
	Liquidity    decimal.Decimal
}

// HedgeRecommendation 对冲建议。
type HedgeRecommendation struct {
	InstrumentID string
	Size         decimal.Decimal
	Side         market.Side
	Cost         decimal.Decimal
	// Efficiency = 1 - cost/|inventory value|，原样报告，由调用方裁剪。
	Efficiency decimal.Decimal
}

// HedgeSlice 对冲计划中的一刀。
type HedgeSlice struct {
	Size decimal.Decimal
	Side market.Side
}

// HedgePlan 有序切片清单，生成后不可变。
type HedgePlan struct {
	Slices []HedgeSlice
	Total  decimal.Decimal
}

var minHedgeDelta = decimal.NewFromFloat(0.1)

// OptimalHedge 选择性价比最高的对冲工具。
// |delta| < 0.1 视为无需对冲返回 (nil, nil)；按 liquidity/(cost+1)
// 打分取最大者，规模为 |delta|/候选工具 delta。
func OptimalHedge(inv inventory.Inventory, candidates []HedgeCandidate) (*HedgeRecommendation, error) {
	delta := inv.Delta
	if delta.Abs().Cmp(minHedgeDelta) < 0 {
		return nil, nil
	}
	var best *HedgeCandidate
	bestScore := numeric.Zero
	for i := range candidates {
		c := candidates[i]
		if !c.Delta.IsPositive() {
			continue
		}
		score := c.Liquidity.Div(c.Cost.Add(numeric.One))
		if best == nil || score.Cmp(bestScore) > 0 {
			best = &candidates[i]
			bestScore = score
		}
	}
	if best == nil {
		return nil, ErrNoHedgeCandidate
	}

	side := market.Sell // 多头用卖出对冲
	if delta.IsNegative() {
		side = market.Buy
	}
	eff := numeric.One
	if !inv.Value.IsZero() {
		eff = numeric.One.Sub(best.Cost.Div(inv.Value.Abs()))
	}
	return &HedgeRecommendation{
		InstrumentID: best.InstrumentID,
		Size:         delta.Abs().Div(best.Delta),
		Side:         side,
		Cost:         best.Cost,
		Efficiency:   eff,
	}, nil
}

// BuildHedgePlan 把对冲需求拆成不超过 maxSlice 的有序切片。
// 切片之和在 sizeFloor 精度内等于目标数量；不足一刀的零头并入末刀。
func BuildHedgePlan(rec HedgeRecommendation, maxSlice, sizeFloor decimal.Decimal) HedgePlan {
	plan := HedgePlan{}
	if !rec.Size.IsPositive() || !maxSlice.IsPositive() {
		return plan
	}
	remaining := rec.Size
	for remaining.Cmp(maxSlice) > 0 {
		plan.Slices = append(plan.Slices, HedgeSlice{Size: maxSlice, Side: rec.Side})
		plan.Total = plan.Total.Add(maxSlice)
		remaining = remaining.Sub(maxSlice)
	}
	if remaining.Cmp(sizeFloor) >= 0 {
		plan.Slices = append(plan.Slices, HedgeSlice{Size: remaining, Side: rec.Side})
		plan.Total = plan.Total.Add(remaining)
	}
	return plan
}
