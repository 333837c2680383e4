package quote

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Violation 单条义务违规记录。
type Violation struct {
	Ts      time.Time
	QuoteID string
	Kind    string
	Detail  string
}

// Obligation 场所/监管报价义务。Violations 为只增日志。
type Obligation struct {
	MaxSpreadBps  decimal.Decimal
	MinQuoteSize  decimal.Decimal
	MinQuoteTime  time.Duration
	MinUptimePct  decimal.Decimal // 要求的最低在场时间占比，[0,1]
	CurrentUptime decimal.Decimal // 0-1 区间的在线率
	Violations    []Violation
}

// Enabled 是否配置了任何一项义务。
func (o Obligation) Enabled() bool {
	return o.MaxSpreadBps.IsPositive() || o.MinQuoteSize.IsPositive() ||
		o.MinQuoteTime > 0 || o.MinUptimePct.IsPositive()
}

// Check 将报价对照义务检查，返回追加了新违规记录的副本。
// 原快照不被修改。
func (o Obligation) Check(q Quote, now time.Time) Obligation {
	next := o
	// 共享底层数组会让旧快照看到新违规，复制一份
	next.Violations = make([]Violation, len(o.Violations), len(o.Violations)+3)
	copy(next.Violations, o.Violations)

	if o.MaxSpreadBps.IsPositive() && q.SpreadBps.Cmp(o.MaxSpreadBps) > 0 {
		next.Violations = append(next.Violations, Violation{
			Ts: now, QuoteID: q.ID, Kind: "SPREAD_TOO_WIDE",
			Detail: fmt.Sprintf("spread %s bps > max %s bps", q.SpreadBps.StringFixed(2), o.MaxSpreadBps.StringFixed(2)),
		})
	}
	if o.MinQuoteSize.IsPositive() {
		if q.BidSize.Cmp(o.MinQuoteSize) < 0 || q.AskSize.Cmp(o.MinQuoteSize) < 0 {
			next.Violations = append(next.Violations, Violation{
				Ts: now, QuoteID: q.ID, Kind: "SIZE_TOO_SMALL",
				Detail: fmt.Sprintf("bid %s / ask %s below min %s", q.BidSize, q.AskSize, o.MinQuoteSize),
			})
		}
	}
	if o.MinQuoteTime > 0 && q.IsTerminal() && q.Duration < o.MinQuoteTime {
		next.Violations = append(next.Violations, Violation{
			Ts: now, QuoteID: q.ID, Kind: "QUOTE_TIME_TOO_SHORT",
			Detail: fmt.Sprintf("lived %s < min %s", q.Duration, o.MinQuoteTime),
		})
	}
	return next
}

// CheckUptime 将 uptime（0-1 区间）对照最低在场时间占比检查，
// 返回更新了 CurrentUptime 并追加了新违规记录的副本。
func (o Obligation) CheckUptime(uptime decimal.Decimal, now time.Time) Obligation {
	next := o
	next.CurrentUptime = uptime
	if !o.MinUptimePct.IsPositive() || uptime.Cmp(o.MinUptimePct) >= 0 {
		return next
	}
	next.Violations = make([]Violation, len(o.Violations), len(o.Violations)+1)
	copy(next.Violations, o.Violations)
	next.Violations = append(next.Violations, Violation{
		Ts: now, Kind: "UPTIME_BELOW_MIN",
		Detail: fmt.Sprintf("uptime %s < min %s", uptime.StringFixed(4), o.MinUptimePct.StringFixed(4)),
	})
	return next
}

// Compliant 当前是否没有任何违规记录。
func (o Obligation) Compliant() bool { return len(o.Violations) == 0 }
