// Package amm 实现池式做市定价：恒定乘积、恒定和与混合曲线，
// 以及流动性份额记账。PoolState 不可变，交易函数返回新状态，
// 支持回放与 what-if 定价。
package amm

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Asset 池内资产选择。
type Asset int

const (
	Asset1 Asset = 1
	Asset2 Asset = 2
)

// PoolState 池子状态快照。
type PoolState struct {
	Reserve1    decimal.Decimal
	Reserve2    decimal.Decimal
	FeePct      decimal.Decimal // 0-1 区间，0.003 表示 0.3%
	K           decimal.Decimal // 恒定乘积不变量
	TokenSupply decimal.Decimal // 流动性代币总量
	Price       decimal.Decimal // 最近一次成交有效价
}

// NewPool 以初始储备与费率建池。
func NewPool(reserve1, reserve2, feePct decimal.Decimal) PoolState {
	return PoolState{
		Reserve1: reserve1,
		Reserve2: reserve2,
		FeePct:   feePct,
		K:        reserve1.Mul(reserve2),
	}
}

// PoolInvariantError 交易会破坏池子不变量（非正储备或非正产出）。
type PoolInvariantError struct {
	Reason string
}

func (e *PoolInvariantError) Error() string {
	return fmt.Sprintf("pool invariant violation: %s", e.Reason)
}

// reserves 按输入资产返回 (入方储备, 出方储备)。
func (p PoolState) reserves(in Asset) (decimal.Decimal, decimal.Decimal) {
	if in == Asset1 {
		return p.Reserve1, p.Reserve2
	}
	return p.Reserve2, p.Reserve1
}

// withReserves 返回按输入资产回填储备后的新状态。
func (p PoolState) withReserves(in Asset, rIn, rOut decimal.Decimal) PoolState {
	next := p
	if in == Asset1 {
		next.Reserve1, next.Reserve2 = rIn, rOut
	} else {
		next.Reserve1, next.Reserve2 = rOut, rIn
	}
	next.K = next.Reserve1.Mul(next.Reserve2)
	return next
}
