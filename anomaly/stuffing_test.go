package anomaly

import (
	"testing"
	"time"

	"mm-quote-engine/market"
)

// stuffedWindow 构造 1 秒窗口内 quotes 条新报价与 cancels 条撤单，
// 撤单对应的报价可以在窗口开始前挂出。
func stuffedWindow(now time.Time, quotes, cancels int, lifetime time.Duration) []market.QuoteEvent {
	events := make([]market.QuoteEvent, 0, quotes+cancels)
	for i := 0; i < quotes; i++ {
		events = append(events, market.QuoteEvent{
			QuoteID:  "q",
			PlacedAt: now.Add(-time.Duration(i) * time.Millisecond),
		})
	}
	for i := 0; i < cancels; i++ {
		placed := now.Add(-2 * time.Second).Add(-time.Duration(i) * time.Millisecond)
		events = append(events, market.QuoteEvent{
			QuoteID:    "c",
			PlacedAt:   placed,
			CanceledAt: placed.Add(lifetime),
		})
	}
	return events
}

func TestStuffingBlockScenario(t *testing.T) {
	// 1 秒窗口 120 报价 + 150 撤单 + 1 笔成交 → 分数 ≥80 → BLOCK
	now := time.Now()
	events := stuffedWindow(now, 120, 150, 1900*time.Millisecond)
	snap := EvaluateQuoteStuffing(events, 1, time.Second, now)
	if snap.Score < 80 {
		t.Fatalf("score = %d, want >= 80", snap.Score)
	}
	if snap.Action != StuffingBlock {
		t.Fatalf("action = %s, want BLOCK", snap.Action)
	}
	if !snap.IsStuffing {
		t.Fatalf("score %d should flag stuffing", snap.Score)
	}
}

func TestStuffingQuietWindow(t *testing.T) {
	now := time.Now()
	// 1 秒 5 笔报价、零撤单、5 笔成交、长寿命 → 无动作
	events := make([]market.QuoteEvent, 0, 5)
	for i := 0; i < 5; i++ {
		events = append(events, market.QuoteEvent{
			QuoteID:  "q",
			PlacedAt: now.Add(-time.Duration(i*100) * time.Millisecond).Add(-600 * time.Millisecond),
		})
	}
	snap := EvaluateQuoteStuffing(events, 5, time.Second, now)
	if snap.Score != 0 || snap.Action != StuffingNone || snap.IsStuffing {
		t.Fatalf("quiet window should be clean, got %+v", snap)
	}
}

func TestStuffingTiering(t *testing.T) {
	now := time.Now()
	// 60 报价/秒 (+15)，30 撤单/秒 (+15)，比率 60 (+12)，寿命 >500ms (+0) → 42 → WARN
	events := stuffedWindow(now, 60, 30, 1900*time.Millisecond)
	snap := EvaluateQuoteStuffing(events, 1, time.Second, now)
	if snap.Action != StuffingWarn {
		t.Fatalf("score %d action %s, want WARN", snap.Score, snap.Action)
	}
	if snap.IsStuffing {
		t.Fatalf("score below 50 must not flag stuffing: %d", snap.Score)
	}
}

func TestStuffingIdempotent(t *testing.T) {
	now := time.Now()
	events := stuffedWindow(now, 120, 150, 50*time.Millisecond)
	a := EvaluateQuoteStuffing(events, 1, time.Second, now)
	b := EvaluateQuoteStuffing(events, 1, time.Second, now)
	if a.Score != b.Score || a.Action != b.Action || !a.QuoteRate.Equal(b.QuoteRate) {
		t.Fatalf("same window must give same verdict: %+v vs %+v", a, b)
	}
}

func TestStuffingEmptyWindow(t *testing.T) {
	snap := EvaluateQuoteStuffing(nil, 0, time.Second, time.Now())
	if snap.Score != 0 || snap.Action != StuffingNone {
		t.Fatalf("empty window should be clean, got %+v", snap)
	}
}

func TestEvaluateCombined(t *testing.T) {
	now := time.Now()
	res := Evaluate(
		[]market.FillMark{mark(market.Buy, 100, 99)},
		stuffedWindow(now, 120, 150, 1900*time.Millisecond),
		1, time.Second, now,
	)
	if res.Adverse.Trades != 1 {
		t.Fatalf("adverse leg missing: %+v", res.Adverse)
	}
	if res.Stuffing.Action != StuffingBlock {
		t.Fatalf("stuffing leg should BLOCK, got %s", res.Stuffing.Action)
	}
}
