package quote

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidQuoteParameters 非法报价参数（mid/size 非正、价差退化）。
	ErrInvalidQuoteParameters = errors.New("invalid quote parameters")
)

// NBBOViolationKind NBBO 违规类型。
type NBBOViolationKind string

const (
	// ViolationCrossedMarket 报价穿越 NBBO（bid > 最优卖价或 ask < 最优买价）。
	ViolationCrossedMarket NBBOViolationKind = "CROSSED_MARKET"
	// ViolationDeviation 报价偏离 NBBO 中间价超出容忍度。
	ViolationDeviation NBBOViolationKind = "EXCESSIVE_DEVIATION"
)

// NBBOViolationError 报价违反 NBBO 约束。只报告，不悄悄修正。
type NBBOViolationError struct {
	Kind         NBBOViolationKind
	QuoteID      string
	DeviationBps decimal.Decimal
	MaxBps       decimal.Decimal
}

func (e *NBBOViolationError) Error() string {
	if e.Kind == ViolationCrossedMarket {
		return fmt.Sprintf("nbbo violation: quote %s crosses the market", e.QuoteID)
	}
	return fmt.Sprintf("nbbo violation: quote %s deviates %s bps > max %s bps",
		e.QuoteID, e.DeviationBps.StringFixed(2), e.MaxBps.StringFixed(2))
}
