package risk

import (
	"github.com/shopspring/decimal"

	"mm-quote-engine/inventory"
)

// StressResult 单一冲击情景下的损益估计。
type StressResult struct {
	ShockPct    decimal.Decimal
	PnLUpMove   decimal.Decimal // 价格上冲 shockPct 的盈亏
	PnLDownMove decimal.Decimal // 价格下挫 shockPct 的盈亏
	WorstCase   decimal.Decimal
}

// StressTest 对持仓施加对称价格冲击。
// 多头在下挫、空头在上冲时受损，WorstCase 取两个方向的较差者。
func StressTest(inv inventory.Inventory, currentPrice, shockPct decimal.Decimal) StressResult {
	move := currentPrice.Mul(shockPct)
	up := inv.Position.Mul(move)
	down := inv.Position.Mul(move.Neg())
	worst := up
	if down.Cmp(up) < 0 {
		worst = down
	}
	return StressResult{
		ShockPct:    shockPct,
		PnLUpMove:   up,
		PnLDownMove: down,
		WorstCase:   worst,
	}
}
