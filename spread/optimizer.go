// Package spread computes the optimal quoting spread from market and
// inventory conditions. All functions are pure: identical inputs always
// produce identical outputs.
package spread

import (
	"time"

	"github.com/shopspring/decimal"

	"mm-quote-engine/numeric"
)

// Session describes the venue trading session used for the time-of-day
// adjustment. Only the clock-of-day of Open and Close matters; the date
// part is ignored, so values parsed from "15:04" strings work across
// days. Zero values disable the adjustment (24h venues).
type Session struct {
	Open  time.Time
	Close time.Time
}

// busyWindow reports whether t falls in the first 45 minutes after open
// or the last 30 minutes before close, comparing clock-of-day on t's
// calendar day.
func (s Session) busyWindow(t time.Time) bool {
	if s.Open.IsZero() || s.Close.IsZero() {
		return false
	}
	open := onDay(s.Open, t)
	close := onDay(s.Close, t)
	if !t.Before(open) && t.Before(open.Add(45*time.Minute)) {
		return true
	}
	if !t.After(close) && t.After(close.Add(-30*time.Minute)) {
		return true
	}
	return false
}

// onDay 将 c 的钟点投影到 t 所在的日历日。
func onDay(c, t time.Time) time.Time {
	day := t.In(c.Location())
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), c.Second(), 0, c.Location())
}

// Inputs holds everything the optimizer looks at.
type Inputs struct {
	BaseBps              decimal.Decimal
	Volatility           decimal.Decimal
	InventoryRatio       decimal.Decimal // signed (position-target)/max
	CompetitorSpreadBps  decimal.Decimal
	AdverseSelectionRate decimal.Decimal // 0-1
	Now                  time.Time
	Session              Session
}

// OptimalSpread is the optimizer output. Confidence is advisory metadata
// and never gates the spread itself.
type OptimalSpread struct {
	SpreadBps     decimal.Decimal
	BaseBps       decimal.Decimal
	VolAdjust     decimal.Decimal
	InvAdjust     decimal.Decimal
	CompAdjustBps decimal.Decimal
	AdverseAdjust decimal.Decimal
	TimeAdjust    decimal.Decimal
	FlooredAtMin  bool
	Confidence    decimal.Decimal
}

var (
	half       = decimal.NewFromFloat(0.5)
	volCoef    = decimal.NewFromFloat(0.5)
	invCoef    = decimal.NewFromFloat(0.3)
	compCoef   = decimal.NewFromFloat(0.2)
	advCoef    = decimal.NewFromFloat(0.4)
	busyFactor = decimal.NewFromFloat(1.2)
)

// Optimal applies five independent adjustments to the base spread:
// volatility and inventory widen multiplicatively, competition pulls
// additively toward the competitor spread, adverse selection widens
// multiplicatively, and the open/close busy windows add 20%. The final
// spread is floored at half the base to prevent near-zero quoting.
func Optimal(in Inputs) OptimalSpread {
	out := OptimalSpread{BaseBps: in.BaseBps}

	out.VolAdjust = numeric.One.Add(volCoef.Mul(in.Volatility))
	out.InvAdjust = numeric.One.Add(invCoef.Mul(in.InventoryRatio.Abs()))
	out.CompAdjustBps = compCoef.Mul(in.CompetitorSpreadBps.Sub(in.BaseBps))
	out.AdverseAdjust = numeric.One.Add(advCoef.Mul(in.AdverseSelectionRate))
	out.TimeAdjust = numeric.One
	if in.Session.busyWindow(in.Now) {
		out.TimeAdjust = busyFactor
	}

	s := in.BaseBps.
		Mul(out.VolAdjust).
		Mul(out.InvAdjust).
		Add(out.CompAdjustBps).
		Mul(out.AdverseAdjust).
		Mul(out.TimeAdjust)

	floor := in.BaseBps.Mul(half)
	if s.Cmp(floor) < 0 {
		s = floor
		out.FlooredAtMin = true
	}
	out.SpreadBps = s
	out.Confidence = confidence(in)
	return out
}

// confidence degrades with volatility and adverse selection; it is
// reported alongside the spread but never used to gate it.
func confidence(in Inputs) decimal.Decimal {
	c := numeric.One.
		Sub(in.Volatility.Mul(decimal.NewFromFloat(0.2))).
		Sub(in.AdverseSelectionRate.Mul(decimal.NewFromFloat(0.3)))
	return numeric.Clamp(c, numeric.Zero, numeric.One)
}
