package inventory

import (
	"sync"

	"github.com/shopspring/decimal"

	"mm-quote-engine/market"
)

// Ledger 维护单品种的当前持仓快照。
// 写入遵循单写者约束（每品种一个 goroutine）；读多写少用 RWMutex。
type Ledger struct {
	mu  sync.RWMutex
	cur Inventory
}

// NewLedger 以目标仓/上限初始化账本。
func NewLedger(instrumentID string, target, max decimal.Decimal) *Ledger {
	return &Ledger{
		cur: Inventory{
			InstrumentID:   instrumentID,
			TargetPosition: target,
			MaxPosition:    max,
		},
	}
}

// ApplyFill 并入一笔成交，返回更新后的快照。
func (l *Ledger) ApplyFill(trade market.Trade, currentPrice decimal.Decimal) Inventory {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cur = ApplyFill(l.cur, trade, currentPrice)
	return l.cur
}

// MarkPrice 按最新价重估持仓价值与浮动盈亏。
func (l *Ledger) MarkPrice(price decimal.Decimal) Inventory {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cur.Value = l.cur.Position.Mul(price)
	l.cur.UnrealizedPnL = price.Sub(l.cur.AvgCost).Mul(l.cur.Position)
	return l.cur
}

// Snapshot 返回当前持仓快照副本。
func (l *Ledger) Snapshot() Inventory {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cur
}

// Restore 从持久层恢复快照（启动时使用）。
func (l *Ledger) Restore(inv Inventory) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cur = inv
}
