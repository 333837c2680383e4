// Package market defines normalized market-data types consumed by the
// quoting engine: snapshots, NBBO, trades and the rolling windows the
// detectors and risk calculations read from.
package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot represents a market snapshot for one instrument.
type Snapshot struct {
	InstrumentID string
	Mid          decimal.Decimal
	BestBid      decimal.Decimal
	BestAsk      decimal.Decimal
	Timestamp    time.Time
}

// NBBO 全市场最优买卖价。
type NBBO struct {
	BestBid decimal.Decimal
	BestAsk decimal.Decimal
}

// Mid 返回 NBBO 中间价；买卖价缺失时返回 0。
func (n NBBO) Mid() decimal.Decimal {
	if !n.BestBid.IsPositive() || !n.BestAsk.IsPositive() {
		return decimal.Zero
	}
	return n.BestBid.Add(n.BestAsk).Div(decimal.NewFromInt(2))
}

// Tick 行情推送的最小单元，由 gateway 归一化后进入引擎。
type Tick struct {
	InstrumentID string
	Mid          decimal.Decimal
	BestBid      decimal.Decimal
	BestAsk      decimal.Decimal
	Ts           time.Time
}
