package amm

import (
	"github.com/shopspring/decimal"

	"mm-quote-engine/numeric"
)

// TradeResult 一次池内交易的产出。
type TradeResult struct {
	Output         decimal.Decimal
	NewState       PoolState
	EffectivePrice decimal.Decimal // 输入/输出，含费与滑点
}

// 产出截断精度：向下取整保证恒定乘积只增不减。
const outputPrecision = 12

// applyFee 扣费后的净输入。
func applyFee(amount, feePct decimal.Decimal) decimal.Decimal {
	return amount.Mul(numeric.One.Sub(feePct))
}

func validateTrade(p PoolState, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &PoolInvariantError{Reason: "trade amount must be positive"}
	}
	if !p.Reserve1.IsPositive() || !p.Reserve2.IsPositive() {
		return &PoolInvariantError{Reason: "reserves must be positive"}
	}
	if p.FeePct.IsNegative() || p.FeePct.Cmp(numeric.One) >= 0 {
		return &PoolInvariantError{Reason: "fee must be in [0,1)"}
	}
	return nil
}

// ConstantProduct 恒定乘积曲线 x*y=k。
// 费用先从输入扣除，净输入入池，产出由 k 对新储备求解。
// 产出向下截断，使新 k 始终不小于旧 k。
func ConstantProduct(p PoolState, amount decimal.Decimal, in Asset) (TradeResult, error) {
	if err := validateTrade(p, amount); err != nil {
		return TradeResult{}, err
	}
	rIn, rOut := p.reserves(in)
	k := rIn.Mul(rOut)
	netIn := applyFee(amount, p.FeePct)
	newRIn := rIn.Add(netIn)
	out := rOut.Sub(k.Div(newRIn)).RoundDown(outputPrecision)
	if !out.IsPositive() {
		return TradeResult{}, &PoolInvariantError{Reason: "output not positive"}
	}
	newROut := rOut.Sub(out)
	if !newROut.IsPositive() {
		return TradeResult{}, &PoolInvariantError{Reason: "output would drain the pool"}
	}
	next := p.withReserves(in, newRIn, newROut)
	next.Price = amount.Div(out)
	return TradeResult{Output: out, NewState: next, EffectivePrice: next.Price}, nil
}

// ConstantSum 恒定和曲线 x+y=k：扣费后 1:1 兑换，价格恒为 1。
// 稳定资产假设，储备不足时拒绝。
func ConstantSum(p PoolState, amount decimal.Decimal, in Asset) (TradeResult, error) {
	if err := validateTrade(p, amount); err != nil {
		return TradeResult{}, err
	}
	rIn, rOut := p.reserves(in)
	out := applyFee(amount, p.FeePct)
	if out.Cmp(rOut) >= 0 {
		return TradeResult{}, &PoolInvariantError{Reason: "output would drain the pool"}
	}
	next := p.withReserves(in, rIn.Add(out), rOut.Sub(out))
	next.Price = numeric.One
	return TradeResult{Output: out, NewState: next, EffectivePrice: numeric.One}, nil
}

// Hybrid 混合曲线：储备越均衡越接近恒定和（低滑点），
// 失衡时向恒定乘积退化。权重 = 1 - min(|r1/r2-1|, 0.5)*2。
func Hybrid(p PoolState, amount decimal.Decimal, in Asset) (TradeResult, error) {
	if err := validateTrade(p, amount); err != nil {
		return TradeResult{}, err
	}
	sumRes, err := ConstantSum(p, amount, in)
	if err != nil {
		return TradeResult{}, err
	}
	prodRes, err := ConstantProduct(p, amount, in)
	if err != nil {
		return TradeResult{}, err
	}

	ratio := p.Reserve1.Div(p.Reserve2)
	imbalance := numeric.Min(ratio.Sub(numeric.One).Abs(), decimal.NewFromFloat(0.5))
	weight := numeric.One.Sub(imbalance.Mul(decimal.NewFromInt(2)))

	out := weight.Mul(sumRes.Output).Add(numeric.One.Sub(weight).Mul(prodRes.Output))
	if !out.IsPositive() {
		return TradeResult{}, &PoolInvariantError{Reason: "output not positive"}
	}
	rIn, rOut := p.reserves(in)
	if out.Cmp(rOut) >= 0 {
		return TradeResult{}, &PoolInvariantError{Reason: "output would drain the pool"}
	}
	next := p.withReserves(in, rIn.Add(applyFee(amount, p.FeePct)), rOut.Sub(out))
	next.Price = amount.Div(out)
	return TradeResult{Output: out, NewState: next, EffectivePrice: next.Price}, nil
}
