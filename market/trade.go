package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side 成交方向（做市商视角：BUY 表示我方买入）。
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Sign 返回方向符号：买 +1，卖 -1。
func (s Side) Sign() decimal.Decimal {
	if s == Buy {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}

// Opposite 返回反方向。
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Trade represents a normalized maker fill.
type Trade struct {
	ID           string
	InstrumentID string
	QuoteID      string
	Side         Side
	Price        decimal.Decimal
	Qty          decimal.Decimal
	Mid          decimal.Decimal // mid at fill time, used for spread capture
	Ts           time.Time
}

// FillMark 带事后价格标记的成交，供逆向选择检测使用。
// PriceAfter 为成交后观察窗口末端的 mid 价。
type FillMark struct {
	Trade
	PriceAfter decimal.Decimal
}

// QuoteEvent 报价生命周期事件，供报价灌单检测使用。
// CanceledAt 为零值表示报价仍然存活。
type QuoteEvent struct {
	QuoteID    string
	PlacedAt   time.Time
	CanceledAt time.Time
}

// Lifetime 返回报价存活时长；未撤单的按 now 计。
func (e QuoteEvent) Lifetime(now time.Time) time.Duration {
	end := e.CanceledAt
	if end.IsZero() {
		end = now
	}
	return end.Sub(e.PlacedAt)
}
