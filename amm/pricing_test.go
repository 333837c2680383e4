package amm

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func balancedPool() PoolState {
	return NewPool(dec(1000), dec(1000), dec(0.003))
}

func TestConstantProductScenario(t *testing.T) {
	// 1000/1000，0.3% 费，买入 10 asset1
	res, err := ConstantProduct(balancedPool(), dec(10), Asset1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 扣费后净输入 9.97 入池
	if !res.NewState.Reserve1.Equal(dec(1009.97)) {
		t.Fatalf("reserve1 = %s, want 1009.97", res.NewState.Reserve1)
	}
	// 滑点+费：产出必须低于 10*(1000/1000)
	if res.Output.Cmp(dec(10)) >= 0 {
		t.Fatalf("output %s should be < 10", res.Output)
	}
	if !res.Output.IsPositive() {
		t.Fatalf("output must be positive")
	}
	// k 只增不减
	if res.NewState.K.Cmp(balancedPool().K) < 0 {
		t.Fatalf("k decreased: %s -> %s", balancedPool().K, res.NewState.K)
	}
	if !res.EffectivePrice.IsPositive() {
		t.Fatalf("effective price must be positive")
	}
}

func TestConstantProductInvariantMonotonic(t *testing.T) {
	amounts := []float64{0.001, 1, 10, 500, 5000}
	fees := []float64{0, 0.001, 0.003, 0.01, 0.3}
	for _, a := range amounts {
		for _, f := range fees {
			p := NewPool(dec(1000), dec(2000), dec(f))
			res, err := ConstantProduct(p, dec(a), Asset1)
			if err != nil {
				t.Fatalf("amount=%v fee=%v: %v", a, f, err)
			}
			if res.NewState.K.Cmp(p.K) < 0 {
				t.Fatalf("amount=%v fee=%v: k decreased %s -> %s", a, f, p.K, res.NewState.K)
			}
			if !res.NewState.Reserve1.IsPositive() || !res.NewState.Reserve2.IsPositive() {
				t.Fatalf("amount=%v fee=%v: non-positive reserves", a, f)
			}
		}
	}
}

func TestConstantProductRoundTrip(t *testing.T) {
	// A 换出再换回，费用保证拿回的少于 A
	start := dec(10)
	res1, err := ConstantProduct(balancedPool(), start, Asset1)
	if err != nil {
		t.Fatalf("leg1: %v", err)
	}
	res2, err := ConstantProduct(res1.NewState, res1.Output, Asset2)
	if err != nil {
		t.Fatalf("leg2: %v", err)
	}
	if res2.Output.Cmp(start) >= 0 {
		t.Fatalf("round trip must lose value: %s >= %s", res2.Output, start)
	}
}

func TestConstantProductRejectsDegenerate(t *testing.T) {
	var pie *PoolInvariantError
	if _, err := ConstantProduct(balancedPool(), dec(-5), Asset1); !errors.As(err, &pie) {
		t.Fatalf("negative amount should violate invariant, got %v", err)
	}
	empty := NewPool(dec(0), dec(1000), dec(0.003))
	if _, err := ConstantProduct(empty, dec(5), Asset1); !errors.As(err, &pie) {
		t.Fatalf("empty reserve should violate invariant, got %v", err)
	}
	badFee := NewPool(dec(1000), dec(1000), dec(1))
	if _, err := ConstantProduct(badFee, dec(5), Asset1); !errors.As(err, &pie) {
		t.Fatalf("fee 1 should violate invariant, got %v", err)
	}
}

func TestConstantSum(t *testing.T) {
	res, err := ConstantSum(balancedPool(), dec(10), Asset1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Output.Equal(dec(9.97)) {
		t.Fatalf("output = %s, want 9.97 (10 after 0.3%% fee)", res.Output)
	}
	if !res.EffectivePrice.Equal(dec(1)) {
		t.Fatalf("constant-sum price must be 1, got %s", res.EffectivePrice)
	}

	// 抽干池子被拒
	var pie *PoolInvariantError
	if _, err := ConstantSum(balancedPool(), dec(2000), Asset1); !errors.As(err, &pie) {
		t.Fatalf("draining trade should violate invariant, got %v", err)
	}
}

func TestHybridBlending(t *testing.T) {
	amount := dec(10)

	// 均衡池：权重 1，产出贴近恒定和
	balanced, err := Hybrid(balancedPool(), amount, Asset1)
	if err != nil {
		t.Fatalf("balanced: %v", err)
	}
	sumOut, _ := ConstantSum(balancedPool(), amount, Asset1)
	if !balanced.Output.Equal(sumOut.Output) {
		t.Fatalf("balanced hybrid = %s, want constant-sum %s", balanced.Output, sumOut.Output)
	}

	// 失衡 1.5 倍：权重 0，退化为恒定乘积
	skewedPool := NewPool(dec(1500), dec(1000), dec(0.003))
	skewed, err := Hybrid(skewedPool, amount, Asset1)
	if err != nil {
		t.Fatalf("skewed: %v", err)
	}
	prodOut, _ := ConstantProduct(skewedPool, amount, Asset1)
	if !skewed.Output.Equal(prodOut.Output) {
		t.Fatalf("skewed hybrid = %s, want constant-product %s", skewed.Output, prodOut.Output)
	}

	// 中间失衡：产出落在两条曲线之间
	midPool := NewPool(dec(1200), dec(1000), dec(0.003))
	mid, err := Hybrid(midPool, amount, Asset1)
	if err != nil {
		t.Fatalf("mid: %v", err)
	}
	midSum, _ := ConstantSum(midPool, amount, Asset1)
	midProd, _ := ConstantProduct(midPool, amount, Asset1)
	if mid.Output.Cmp(midProd.Output) < 0 || mid.Output.Cmp(midSum.Output) > 0 {
		t.Fatalf("hybrid %s should sit between product %s and sum %s",
			mid.Output, midProd.Output, midSum.Output)
	}
}

func TestPoolImmutability(t *testing.T) {
	p := balancedPool()
	if _, err := ConstantProduct(p, dec(10), Asset1); err != nil {
		t.Fatalf("trade: %v", err)
	}
	if !p.Reserve1.Equal(dec(1000)) || !p.Reserve2.Equal(dec(1000)) {
		t.Fatalf("input state mutated: %s/%s", p.Reserve1, p.Reserve2)
	}
}
