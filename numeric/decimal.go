// Package numeric 提供引擎统一的十进制运算工具。
// 所有价格、金额、比例都使用 decimal.Decimal，避免浮点漂移。
package numeric

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	// Zero 十进制零值。
	Zero = decimal.Zero
	// One 十进制 1。
	One = decimal.NewFromInt(1)
	// BpsUnit 基点换算单位（1bp = 1/10000）。
	BpsUnit = decimal.NewFromInt(10000)
	// HalfSpreadUnit 半价差换算单位（bps→半价差需除以 20000）。
	HalfSpreadUnit = decimal.NewFromInt(20000)
)

// FromBps 将 bps 值换算成比例（20 bps → 0.002）。
func FromBps(bps decimal.Decimal) decimal.Decimal {
	return bps.Div(BpsUnit)
}

// ToBps 将比例换算回 bps（0.002 → 20）。
func ToBps(ratio decimal.Decimal) decimal.Decimal {
	return ratio.Mul(BpsUnit)
}

// SpreadBps 计算 (ask-bid)/mid 的 bps 表示；mid<=0 时返回 0。
func SpreadBps(bid, ask, mid decimal.Decimal) decimal.Decimal {
	if !mid.IsPositive() {
		return Zero
	}
	return ask.Sub(bid).Div(mid).Mul(BpsUnit)
}

// Sqrt 对非负十进制数开平方。
// decimal 没有原生开方，这里借道 float64，精度对风险量级足够。
func Sqrt(d decimal.Decimal) decimal.Decimal {
	f := d.InexactFloat64()
	if f <= 0 {
		return Zero
	}
	return decimal.NewFromFloat(math.Sqrt(f))
}

// Min 返回较小者。
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max 返回较大者。
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Clamp 把 d 限制在 [lo, hi] 区间。仅用于契约本身就是区间的指标
// （如 0-100 的质量分），不得用于 P&L、VaR 等风险值。
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.Cmp(lo) < 0 {
		return lo
	}
	if d.Cmp(hi) > 0 {
		return hi
	}
	return d
}

// Ratio 计算 num/den；den 为 0 返回 0，避免调用方到处判零。
func Ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return Zero
	}
	return num.Div(den)
}

// CoefficientOfVariation 计算变异系数 stddev/mean；样本不足或均值为 0 返回 0。
func CoefficientOfVariation(values []decimal.Decimal) decimal.Decimal {
	if len(values) < 2 {
		return Zero
	}
	sum := Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(values))))
	if mean.IsZero() {
		return Zero
	}
	variance := Zero
	for _, v := range values {
		d := v.Sub(mean)
		variance = variance.Add(d.Mul(d))
	}
	variance = variance.Div(decimal.NewFromInt(int64(len(values))))
	return Sqrt(variance).Div(mean.Abs())
}

// ZScore 返回置信度对应的正态分位数。
// 只认 0.99/0.95 两档，其余一律 1.28，与风控口径保持一致。
func ZScore(confidence decimal.Decimal) decimal.Decimal {
	switch {
	case confidence.Cmp(decimal.NewFromFloat(0.99)) >= 0:
		return decimal.NewFromFloat(2.33)
	case confidence.Cmp(decimal.NewFromFloat(0.95)) >= 0:
		return decimal.NewFromFloat(1.65)
	default:
		return decimal.NewFromFloat(1.28)
	}
}
