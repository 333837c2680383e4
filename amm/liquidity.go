package amm

import (
	"github.com/shopspring/decimal"

	"mm-quote-engine/numeric"
)

// LiquidityShare 计算一次双边注入应得的流动性代币：
// 首个注入者得 sqrt(amount1*amount2)；后续按两侧注入比例的
// 较小者乘以现有供应量，防止失衡注入搭便车。
func LiquidityShare(p PoolState, amount1, amount2 decimal.Decimal) (decimal.Decimal, error) {
	if !amount1.IsPositive() || !amount2.IsPositive() {
		return numeric.Zero, &PoolInvariantError{Reason: "deposit amounts must be positive"}
	}
	if p.TokenSupply.IsZero() {
		return numeric.Sqrt(amount1.Mul(amount2)), nil
	}
	if !p.Reserve1.IsPositive() || !p.Reserve2.IsPositive() {
		return numeric.Zero, &PoolInvariantError{Reason: "reserves must be positive"}
	}
	share1 := amount1.Div(p.Reserve1)
	share2 := amount2.Div(p.Reserve2)
	return numeric.Min(share1, share2).Mul(p.TokenSupply), nil
}

// AddLiquidity 注入储备并铸造份额，返回新状态与铸造量。
func AddLiquidity(p PoolState, amount1, amount2 decimal.Decimal) (PoolState, decimal.Decimal, error) {
	minted, err := LiquidityShare(p, amount1, amount2)
	if err != nil {
		return p, numeric.Zero, err
	}
	next := p
	next.Reserve1 = p.Reserve1.Add(amount1)
	next.Reserve2 = p.Reserve2.Add(amount2)
	next.K = next.Reserve1.Mul(next.Reserve2)
	next.TokenSupply = p.TokenSupply.Add(minted)
	return next, minted, nil
}

// SpotPrice 返回恒定乘积口径的即时价 reserve2/reserve1。
func SpotPrice(p PoolState) decimal.Decimal {
	return numeric.Ratio(p.Reserve2, p.Reserve1)
}

// ImpliedValue 以 asset2 计价的池子总价值（双侧按即时价折算）。
func ImpliedValue(p PoolState) decimal.Decimal {
	return p.Reserve1.Mul(SpotPrice(p)).Add(p.Reserve2)
}

// RemoveLiquidity 按份额占比赎回两侧储备。
func RemoveLiquidity(p PoolState, tokens decimal.Decimal) (PoolState, decimal.Decimal, decimal.Decimal, error) {
	if !tokens.IsPositive() || p.TokenSupply.IsZero() || tokens.Cmp(p.TokenSupply) > 0 {
		return p, numeric.Zero, numeric.Zero, &PoolInvariantError{Reason: "invalid token amount"}
	}
	share := tokens.Div(p.TokenSupply)
	out1 := p.Reserve1.Mul(share)
	out2 := p.Reserve2.Mul(share)
	next := p
	next.Reserve1 = p.Reserve1.Sub(out1)
	next.Reserve2 = p.Reserve2.Sub(out2)
	next.K = next.Reserve1.Mul(next.Reserve2)
	next.TokenSupply = p.TokenSupply.Sub(tokens)
	return next, out1, out2, nil
}
