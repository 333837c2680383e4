package risk

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"mm-quote-engine/inventory"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func returnsSeries(n int, amp float64) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = dec(amp)
		} else {
			out[i] = dec(-amp)
		}
	}
	return out
}

func holding(value float64) inventory.Inventory {
	return inventory.Inventory{InstrumentID: "AAPL", Value: dec(value), Position: dec(value / 100)}
}

func TestVaRInsufficientHistory(t *testing.T) {
	_, err := VaR(holding(10000), returnsSeries(29, 0.01), dec(0.99), dec(1))
	if !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestVaRSignAndScaling(t *testing.T) {
	rets := returnsSeries(40, 0.01)
	v1, err := VaR(holding(10000), rets, dec(0.99), dec(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v1.IsNegative() {
		t.Fatalf("VaR must be reported as a loss (negative), got %s", v1)
	}

	// 99% 置信度比 95% 更保守
	v95, _ := VaR(holding(10000), rets, dec(0.95), dec(1))
	if v1.Cmp(v95) >= 0 {
		t.Fatalf("99%% VaR should exceed 95%% in magnitude: %s vs %s", v1, v95)
	}

	// 4 天期按 sqrt(4)=2 放大
	v4, _ := VaR(holding(10000), rets, dec(0.99), dec(4))
	ratio := v4.Div(v1)
	if ratio.Sub(dec(2)).Abs().GreaterThan(dec(1e-6)) {
		t.Fatalf("4-day VaR should be 2x 1-day: ratio %s", ratio)
	}
}

func TestVaRZeroVolatility(t *testing.T) {
	v, err := VaR(holding(10000), returnsSeries(40, 0), dec(0.99), dec(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsZero() {
		t.Fatalf("zero vol should give zero VaR, got %s", v)
	}
}
