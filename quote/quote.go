// Package quote 实现双边报价的生成、更新决策、NBBO 校验与生命周期管理。
package quote

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// State 报价状态。
type State string

const (
	StateActive    State = "ACTIVE"
	StateWithdrawn State = "WITHDRAWN"
	StateExpired   State = "EXPIRED"
)

// Quote 一笔双边报价的完整快照。
type Quote struct {
	ID           string
	InstrumentID string
	Timestamp    time.Time
	BidPrice     decimal.Decimal
	BidSize      decimal.Decimal
	AskPrice     decimal.Decimal
	AskSize      decimal.Decimal
	Spread       decimal.Decimal
	SpreadBps    decimal.Decimal
	MidPrice     decimal.Decimal
	Skew         decimal.Decimal
	State        State
	Duration     time.Duration
	Source       string
}

// Age 返回报价距生成时刻的年龄。
func (q Quote) Age(now time.Time) time.Duration {
	return now.Sub(q.Timestamp)
}

// IsTerminal 报价是否处于终态。
func (q Quote) IsTerminal() bool {
	return q.State == StateWithdrawn || q.State == StateExpired
}

// transition 状态转换。
type transition struct {
	from State
	to   State
}

// 合法转换表：ACTIVE 可撤可过期；终态不可再转。
var legalTransitions = map[transition]bool{
	{StateActive, StateWithdrawn}: true,
	{StateActive, StateExpired}:   true,
}

// Transition 返回状态推进后的新快照；非法转换报错，原快照不变。
func (q Quote) Transition(to State, now time.Time) (Quote, error) {
	if !legalTransitions[transition{q.State, to}] {
		return q, fmt.Errorf("illegal quote state transition %s -> %s", q.State, to)
	}
	next := q
	next.State = to
	next.Duration = now.Sub(q.Timestamp)
	return next, nil
}

// Withdraw 显式撤单或被新报价替换。
func (q Quote) Withdraw(now time.Time) (Quote, error) {
	return q.Transition(StateWithdrawn, now)
}

// Expire TTL 到期。
func (q Quote) Expire(now time.Time) (Quote, error) {
	return q.Transition(StateExpired, now)
}
