package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"mm-quote-engine/inventory"
	"mm-quote-engine/numeric"
)

// MinVaRSamples VaR 计算要求的最小历史收益样本数。
const MinVaRSamples = 30

// VaR 参数化 VaR：z(confidence) * volatility * |value| * sqrt(horizon)。
// 返回负数表示潜在损失。波动率由调用方基于 ≥MinVaRSamples 个
// 历史收益估计；样本不足返回 ErrInsufficientHistory。
func VaR(inv inventory.Inventory, returns []decimal.Decimal, confidence decimal.Decimal, horizonDays decimal.Decimal) (decimal.Decimal, error) {
	if len(returns) < MinVaRSamples {
		return numeric.Zero, fmt.Errorf("%w: need %d returns, have %d", ErrInsufficientHistory, MinVaRSamples, len(returns))
	}
	vol := stddev(returns)
	z := numeric.ZScore(confidence)
	v := z.Mul(vol).Mul(inv.Value.Abs()).Mul(numeric.Sqrt(horizonDays))
	return v.Neg(), nil
}

// stddev 样本标准差（总体口径，与波动率窗口一致）。
func stddev(values []decimal.Decimal) decimal.Decimal {
	n := decimal.NewFromInt(int64(len(values)))
	sum := numeric.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	mean := sum.Div(n)
	variance := numeric.Zero
	for _, v := range values {
		d := v.Sub(mean)
		variance = variance.Add(d.Mul(d))
	}
	return numeric.Sqrt(variance.Div(n))
}
