// Package inventory 维护做市商分品种的持仓账本：
// 成交驱动的仓位更新、风险分级、对冲需求与报价偏移计算。
package inventory

import (
	"github.com/shopspring/decimal"

	"mm-quote-engine/market"
	"mm-quote-engine/numeric"
)

// RiskLevel 四档持仓风险。
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskCritical
)

// String 返回风险档位名称。
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Inventory 单品种持仓快照。只读值对象，所有变更产生新快照。
type Inventory struct {
	InstrumentID         string
	Position             decimal.Decimal // 带符号净仓位
	TargetPosition       decimal.Decimal
	MaxPosition          decimal.Decimal
	AvgCost              decimal.Decimal
	Value                decimal.Decimal
	UnrealizedPnL        decimal.Decimal
	Delta                decimal.Decimal
	RiskLevel            RiskLevel
	NeedsHedging         bool
	RecommendedHedgeSize decimal.Decimal
}

// PositionRatio 返回 |position|/maxPosition；max 为 0 返回 0。
func (inv Inventory) PositionRatio() decimal.Decimal {
	return numeric.Ratio(inv.Position.Abs(), inv.MaxPosition)
}

// riskTier 按仓位占比分档：<0.3 LOW，<0.6 MEDIUM，<0.9 HIGH，否则 CRITICAL。
func riskTier(ratio decimal.Decimal) RiskLevel {
	switch {
	case ratio.Cmp(decimal.NewFromFloat(0.3)) < 0:
		return RiskLow
	case ratio.Cmp(decimal.NewFromFloat(0.6)) < 0:
		return RiskMedium
	case ratio.Cmp(decimal.NewFromFloat(0.9)) < 0:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// ApplyFill 将一笔成交并入持仓并整体重算衍生字段，返回新快照。
// 加仓（同向）按加权平均成本记账；减仓不动成本，已实现盈亏由
// 上层持仓管理负责。穿仓时剩余反向仓位按成交价重置成本。
// 超限不拒绝：成交是交易所确认的事实，只会抬升风险档位。
func ApplyFill(inv Inventory, trade market.Trade, currentPrice decimal.Decimal) Inventory {
	next := inv
	signedQty := trade.Qty.Mul(trade.Side.Sign())
	oldPos := inv.Position
	newPos := oldPos.Add(signedQty)

	switch {
	case oldPos.IsZero():
		next.AvgCost = trade.Price
	case oldPos.Sign() == signedQty.Sign():
		// 同向加仓：加权平均成本
		totalCost := inv.AvgCost.Mul(oldPos.Abs()).Add(trade.Price.Mul(trade.Qty))
		next.AvgCost = totalCost.Div(oldPos.Abs().Add(trade.Qty))
	case newPos.IsZero():
		next.AvgCost = numeric.Zero
	case newPos.Sign() != oldPos.Sign():
		// 穿仓：反向剩余仓按本次成交价起算
		next.AvgCost = trade.Price
	default:
		// 纯减仓：成本不变
	}

	next.Position = newPos
	next.Value = newPos.Mul(currentPrice)
	next.UnrealizedPnL = currentPrice.Sub(next.AvgCost).Mul(newPos)
	next.Delta = newPos // 现货 delta ≈ 仓位
	ratio := next.PositionRatio()
	next.RiskLevel = riskTier(ratio)
	next.NeedsHedging = ratio.Cmp(decimal.NewFromFloat(0.5)) > 0
	next.RecommendedHedgeSize = newPos.Sub(inv.TargetPosition).Abs()
	return next
}
