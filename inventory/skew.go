package inventory

import (
	"github.com/shopspring/decimal"

	"mm-quote-engine/numeric"
)

// Skew 库存驱动的报价偏移（bps）。
// 多头方向持仓过重时 bid 侧加宽（负 bps）、ask 侧收窄，反之亦然。
type Skew struct {
	Multiplier decimal.Decimal
	BidBps     decimal.Decimal
	AskBps     decimal.Decimal
}

var skewScale = decimal.NewFromInt(10)

// CalcSkew 计算库存偏移：
// multiplier = ((position-target)/max) * riskAversion * volatility，
// bid 偏移 -10*multiplier bps，ask 偏移 +10*multiplier bps。
func CalcSkew(inv Inventory, volatility, riskAversion decimal.Decimal) Skew {
	drift := numeric.Ratio(inv.Position.Sub(inv.TargetPosition), inv.MaxPosition)
	m := drift.Mul(riskAversion).Mul(volatility)
	return Skew{
		Multiplier: m,
		BidBps:     skewScale.Mul(m).Neg(),
		AskBps:     skewScale.Mul(m),
	}
}

// PriceShift 将偏移换算成作用在双边报价上的同向价格平移。
// ask 侧 bps 为正表示整体上移，直接复用 ask 偏移。
func (s Skew) PriceShift(mid decimal.Decimal) decimal.Decimal {
	return mid.Mul(numeric.FromBps(s.AskBps))
}
