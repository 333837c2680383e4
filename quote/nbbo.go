package quote

import (
	"mm-quote-engine/market"
	"mm-quote-engine/numeric"

	"github.com/shopspring/decimal"
)

// ValidateAgainstNBBO 校验报价相对 NBBO 的合法性：
// 穿越市场（bid > 最优卖价或 ask < 最优买价）或偏离 NBBO 中间价
// 超出 maxDeviationBps 都会返回 *NBBOViolationError。
func ValidateAgainstNBBO(q Quote, nbbo market.NBBO, maxDeviationBps decimal.Decimal) error {
	if nbbo.BestAsk.IsPositive() && q.BidPrice.Cmp(nbbo.BestAsk) > 0 {
		return &NBBOViolationError{Kind: ViolationCrossedMarket, QuoteID: q.ID}
	}
	if nbbo.BestBid.IsPositive() && q.AskPrice.Cmp(nbbo.BestBid) < 0 {
		return &NBBOViolationError{Kind: ViolationCrossedMarket, QuoteID: q.ID}
	}

	mid := nbbo.Mid()
	if !mid.IsPositive() {
		return nil
	}
	bidDev := q.BidPrice.Sub(mid).Abs().Div(mid).Mul(numeric.BpsUnit)
	askDev := q.AskPrice.Sub(mid).Abs().Div(mid).Mul(numeric.BpsUnit)
	worst := numeric.Max(bidDev, askDev)
	if worst.Cmp(maxDeviationBps) > 0 {
		return &NBBOViolationError{
			Kind:         ViolationDeviation,
			QuoteID:      q.ID,
			DeviationBps: worst,
			MaxBps:       maxDeviationBps,
		}
	}
	return nil
}
