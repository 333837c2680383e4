package quote

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mm-quote-engine/numeric"
)

// Params 生成双边报价所需的全部输入。
type Params struct {
	ID           string
	InstrumentID string
	Mid          decimal.Decimal
	SpreadBps    decimal.Decimal
	BidSize      decimal.Decimal
	AskSize      decimal.Decimal
	// Skew 以价格表示的同向偏移：正值整体上移报价，
	// 卖侧远离 mid、买侧贴近 mid。
	Skew   decimal.Decimal
	Source string
	Now    time.Time
}

// Generate 生成一笔双边报价。
// half = mid * spreadBps / 20000；skew 同向平移买卖两侧。
// 对任意有限非退化输入保证 bid < ask。
func Generate(p Params) (Quote, error) {
	if !p.Mid.IsPositive() {
		return Quote{}, fmt.Errorf("%w: mid %s must be positive", ErrInvalidQuoteParameters, p.Mid)
	}
	if !p.BidSize.IsPositive() || !p.AskSize.IsPositive() {
		return Quote{}, fmt.Errorf("%w: sizes must be positive (bid %s, ask %s)",
			ErrInvalidQuoteParameters, p.BidSize, p.AskSize)
	}
	if !p.SpreadBps.IsPositive() {
		return Quote{}, fmt.Errorf("%w: spread %s bps must be positive", ErrInvalidQuoteParameters, p.SpreadBps)
	}

	half := p.Mid.Mul(p.SpreadBps).Div(numeric.HalfSpreadUnit)
	bid := p.Mid.Sub(half).Add(p.Skew)
	ask := p.Mid.Add(half).Add(p.Skew)
	if !bid.IsPositive() {
		return Quote{}, fmt.Errorf("%w: skew %s pushes bid to %s", ErrInvalidQuoteParameters, p.Skew, bid)
	}

	spread := ask.Sub(bid)
	return Quote{
		ID:           p.ID,
		InstrumentID: p.InstrumentID,
		Timestamp:    p.Now,
		BidPrice:     bid,
		BidSize:      p.BidSize,
		AskPrice:     ask,
		AskSize:      p.AskSize,
		Spread:       spread,
		SpreadBps:    numeric.SpreadBps(bid, ask, p.Mid),
		MidPrice:     p.Mid,
		Skew:         p.Skew,
		State:        StateActive,
		Source:       p.Source,
	}, nil
}
