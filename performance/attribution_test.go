package performance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"mm-quote-engine/market"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func trade(side market.Side, price, mid, qty float64) market.Trade {
	return market.Trade{Side: side, Price: dec(price), Mid: dec(mid), Qty: dec(qty), Ts: time.Now()}
}

func TestSpreadCapture(t *testing.T) {
	trades := []market.Trade{
		trade(market.Buy, 99.9, 100, 10),   // 低于 mid 买入 +1
		trade(market.Sell, 100.1, 100, 10), // 高于 mid 卖出 +1
	}
	a := CalcAttribution(trades, decimal.Zero, decimal.Zero, AttributionOptions{})
	if !a.SpreadCapture.Equal(dec(2)) {
		t.Fatalf("spread capture = %s, want 2", a.SpreadCapture)
	}
	// 默认 15% 逆向选择折减
	if !a.AdverseSelectionLoss.Equal(dec(-0.3)) {
		t.Fatalf("adverse loss = %s, want -0.3", a.AdverseSelectionLoss)
	}
}

func TestInventoryPnLFromPairs(t *testing.T) {
	trades := []market.Trade{
		trade(market.Buy, 100, 100, 10),
		trade(market.Sell, 101, 101, 10), // 配对 +10
		trade(market.Sell, 102, 102, 5),  // 同向不配对
		trade(market.Buy, 101, 101, 8),   // 与上一笔配对 +( (102-101)*5 )
	}
	a := CalcAttribution(trades, decimal.Zero, decimal.Zero, AttributionOptions{})
	if !a.InventoryPnL.Equal(dec(15)) {
		t.Fatalf("inventory pnl = %s, want 15", a.InventoryPnL)
	}
}

func TestTotalPnLComposition(t *testing.T) {
	trades := []market.Trade{
		trade(market.Buy, 99.9, 100, 10),
		trade(market.Sell, 100.1, 100, 10),
	}
	rebates := dec(1.5)
	hedging := dec(0.8)
	a := CalcAttribution(trades, rebates, hedging, AttributionOptions{})
	// capture 2 + invPnl (100.1-99.9)*10=2 + 1.5 - 0.3 - 0.8 = 4.4
	want := a.SpreadCapture.Add(a.InventoryPnL).Add(rebates).Add(a.AdverseSelectionLoss).Sub(hedging)
	if !a.TotalPnL.Equal(want) {
		t.Fatalf("total = %s, want %s", a.TotalPnL, want)
	}
	if !a.TotalPnL.Equal(dec(4.4)) {
		t.Fatalf("total = %s, want 4.4", a.TotalPnL)
	}
}

func TestLiveAdverseRatioOverride(t *testing.T) {
	trades := []market.Trade{trade(market.Buy, 99, 100, 1)}
	ratio := dec(0.4)
	a := CalcAttribution(trades, decimal.Zero, decimal.Zero, AttributionOptions{AdverseRatio: &ratio})
	if !a.AdverseSelectionLoss.Equal(dec(-0.4)) {
		t.Fatalf("live ratio loss = %s, want -0.4 (capture 1 * 0.4)", a.AdverseSelectionLoss)
	}
}

func TestQuoteQuality(t *testing.T) {
	uniform := []QuoteStats{
		{SpreadBps: dec(20), BidSize: dec(100), AskSize: dec(100)},
		{SpreadBps: dec(20), BidSize: dec(100), AskSize: dec(100)},
		{SpreadBps: dec(20), BidSize: dec(100), AskSize: dec(100)},
	}
	q := AnalyzeQuoteQuality(uniform, dec(1))
	if !q.SpreadConsistency.Equal(dec(100)) || !q.SizeConsistency.Equal(dec(100)) {
		t.Fatalf("uniform quotes should score 100/100, got %+v", q)
	}
	if !q.Composite.Equal(dec(100)) {
		t.Fatalf("composite = %s, want 100", q.Composite)
	}

	noisy := []QuoteStats{
		{SpreadBps: dec(5), BidSize: dec(10), AskSize: dec(500)},
		{SpreadBps: dec(90), BidSize: dec(900), AskSize: dec(20)},
		{SpreadBps: dec(30), BidSize: dec(50), AskSize: dec(300)},
	}
	nq := AnalyzeQuoteQuality(noisy, dec(0.6))
	if nq.SpreadConsistency.Cmp(q.SpreadConsistency) >= 0 {
		t.Fatalf("noisy spreads should score lower")
	}
	if !nq.UptimeScore.Equal(dec(60)) {
		t.Fatalf("uptime score = %s, want 60", nq.UptimeScore)
	}
	// 分数永远在 [0,100]
	for _, s := range []decimal.Decimal{nq.SpreadConsistency, nq.SizeConsistency, nq.UptimeScore, nq.Composite} {
		if s.IsNegative() || s.Cmp(dec(100)) > 0 {
			t.Fatalf("score outside [0,100]: %s", s)
		}
	}
}

func TestBuildSnapshot(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	end := time.Now()
	trades := []market.Trade{trade(market.Buy, 99.9, 100, 10)}
	snap := BuildSnapshot(start, end, nil, trades, dec(1), dec(0.5), dec(0.99), AttributionOptions{})
	if snap.TradeCount != 1 {
		t.Fatalf("trade count = %d", snap.TradeCount)
	}
	if !snap.PeriodEnd.After(snap.PeriodStart) {
		t.Fatalf("period must be ordered")
	}
}
