package risk

import (
	"github.com/shopspring/decimal"

	"mm-quote-engine/inventory"
)

// Limits 风险限额配置。
type Limits struct {
	MaxPosition      decimal.Decimal
	MaxValue         decimal.Decimal
	MaxConcentration decimal.Decimal // HHI 上限
}

// CheckInventoryLimits 检查单品种限额，返回全部突破信号。
// 软约束：信号供上层决定告警或撤出报价，不阻断成交。
func CheckInventoryLimits(inv inventory.Inventory, limits Limits) []*LimitBreachError {
	var breaches []*LimitBreachError
	if limits.MaxPosition.IsPositive() && inv.Position.Abs().Cmp(limits.MaxPosition) > 0 {
		breaches = append(breaches, &LimitBreachError{
			InstrumentID: inv.InstrumentID,
			Kind:         "POSITION",
			Value:        inv.Position.Abs(),
			Limit:        limits.MaxPosition,
		})
	}
	if limits.MaxValue.IsPositive() && inv.Value.Abs().Cmp(limits.MaxValue) > 0 {
		breaches = append(breaches, &LimitBreachError{
			InstrumentID: inv.InstrumentID,
			Kind:         "VALUE",
			Value:        inv.Value.Abs(),
			Limit:        limits.MaxValue,
		})
	}
	return breaches
}

// CheckConcentration 检查组合集中度限额。
func CheckConcentration(c Concentration, limits Limits) *LimitBreachError {
	if limits.MaxConcentration.IsPositive() && c.HHI.Cmp(limits.MaxConcentration) > 0 {
		return &LimitBreachError{
			InstrumentID: c.TopInstrument,
			Kind:         "CONCENTRATION",
			Value:        c.HHI,
			Limit:        limits.MaxConcentration,
		}
	}
	return nil
}
