package risk

import (
	"github.com/shopspring/decimal"

	"mm-quote-engine/inventory"
	"mm-quote-engine/numeric"
)

// Concentration 组合集中度结果。
type Concentration struct {
	// HHI Herfindahl 指数，单一持仓时为 1，完全分散趋近 1/n。
	HHI decimal.Decimal
	// TopInstrument 权重最大的品种。
	TopInstrument string
	TopWeight     decimal.Decimal
}

// CalcConcentration 按持仓市值绝对额计算 Herfindahl 集中度。
// 空组合或总值为 0 返回零值结果。
func CalcConcentration(invs []inventory.Inventory) Concentration {
	total := numeric.Zero
	for _, inv := range invs {
		total = total.Add(inv.Value.Abs())
	}
	out := Concentration{}
	if total.IsZero() {
		return out
	}
	for _, inv := range invs {
		w := inv.Value.Abs().Div(total)
		out.HHI = out.HHI.Add(w.Mul(w))
		if w.Cmp(out.TopWeight) > 0 {
			out.TopWeight = w
			out.TopInstrument = inv.InstrumentID
		}
	}
	return out
}
