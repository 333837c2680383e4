package market

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MidWindow keeps a bounded series of mid prices and derives realized
// volatility and simple returns from it. Not goroutine safe; the owner
// is expected to be the instrument's single writer.
type MidWindow struct {
	size   int
	prices []decimal.Decimal
	times  []time.Time
}

// NewMidWindow creates a window holding at most size mid prices.
func NewMidWindow(size int) *MidWindow {
	return &MidWindow{
		size:   size,
		prices: make([]decimal.Decimal, 0, size),
		times:  make([]time.Time, 0, size),
	}
}

// Add appends a mid price, evicting the oldest once full.
func (w *MidWindow) Add(mid decimal.Decimal, ts time.Time) {
	w.prices = append(w.prices, mid)
	w.times = append(w.times, ts)
	if len(w.prices) > w.size {
		w.prices = w.prices[1:]
		w.times = w.times[1:]
	}
}

// Len returns the number of stored prices.
func (w *MidWindow) Len() int { return len(w.prices) }

// Last returns the most recent mid, or zero when empty.
func (w *MidWindow) Last() decimal.Decimal {
	if len(w.prices) == 0 {
		return decimal.Zero
	}
	return w.prices[len(w.prices)-1]
}

// Returns 返回相邻 mid 的简单收益序列，供 VaR 使用。
func (w *MidWindow) Returns() []decimal.Decimal {
	if len(w.prices) < 2 {
		return nil
	}
	out := make([]decimal.Decimal, 0, len(w.prices)-1)
	for i := 1; i < len(w.prices); i++ {
		if w.prices[i-1].IsPositive() {
			out = append(out, w.prices[i].Sub(w.prices[i-1]).Div(w.prices[i-1]))
		}
	}
	return out
}

// RealizedVol 基于对数收益计算已实现波动率。
// 样本不足返回 0；结果按观测数开方放大，与窗口长度解耦。
func (w *MidWindow) RealizedVol() decimal.Decimal {
	if len(w.prices) < 2 {
		return decimal.Zero
	}
	logReturns := make([]float64, 0, len(w.prices)-1)
	for i := 1; i < len(w.prices); i++ {
		prev := w.prices[i-1].InexactFloat64()
		cur := w.prices[i].InexactFloat64()
		if prev > 0 && cur > 0 {
			logReturns = append(logReturns, math.Log(cur/prev))
		}
	}
	if len(logReturns) < 1 {
		return decimal.Zero
	}
	sum := 0.0
	for _, r := range logReturns {
		sum += r
	}
	mean := sum / float64(len(logReturns))
	variance := 0.0
	for _, r := range logReturns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(logReturns))
	vol := math.Sqrt(variance) * math.Sqrt(float64(len(logReturns)))
	return decimal.NewFromFloat(vol)
}

// IsReady reports whether enough data has accumulated.
func (w *MidWindow) IsReady() bool { return len(w.prices) >= 2 }
