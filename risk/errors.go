// Package risk 提供持仓风险度量：参数化 VaR、集中度、压力测试、
// 对冲选择与限额信号。所有函数都是对快照的纯计算，不持有内部状态。
package risk

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientHistory 历史样本不足（VaR 至少需要 30 个收益观测）。
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrNoHedgeCandidate 没有可用的对冲工具。
	ErrNoHedgeCandidate = errors.New("no hedge candidate")
)

// LimitBreachError 限额突破信号。成交是交易所确认的事实，
// 这里只报告，从不拦截。
type LimitBreachError struct {
	InstrumentID string
	Kind         string
	Value        decimal.Decimal
	Limit        decimal.Decimal
}

func (e *LimitBreachError) Error() string {
	return fmt.Sprintf("limit breach [%s] %s: %s > %s",
		e.InstrumentID, e.Kind, e.Value.StringFixed(4), e.Limit.StringFixed(4))
}
