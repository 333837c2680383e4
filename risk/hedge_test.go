package risk

import (
	"errors"
	"testing"

	"mm-quote-engine/inventory"
	"mm-quote-engine/market"
)

func longInv(pos float64) inventory.Inventory {
	return inventory.Inventory{
		InstrumentID: "AAPL",
		Position:     dec(pos),
		Delta:        dec(pos),
		Value:        dec(pos * 100),
		MaxPosition:  dec(100),
	}
}

func TestOptimalHedgeNoopBelowFloor(t *testing.T) {
	rec, err := OptimalHedge(longInv(0.05), []HedgeCandidate{{InstrumentID: "SPY", Delta: dec(1)}})
	if err != nil || rec != nil {
		t.Fatalf("tiny delta should be a no-op, got rec=%v err=%v", rec, err)
	}
}

func TestOptimalHedgeSelection(t *testing.T) {
	candidates := []HedgeCandidate{
		{InstrumentID: "CHEAP_ILLIQUID", Delta: dec(1), Cost: dec(1), Liquidity: dec(100)},   // score 50
		{InstrumentID: "DEEP", Delta: dec(0.5), Cost: dec(4), Liquidity: dec(1000)},          // score 200
		{InstrumentID: "EXPENSIVE", Delta: dec(1), Cost: dec(99), Liquidity: dec(1000)},      // score 10
	}
	rec, err := OptimalHedge(longInv(40), candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.InstrumentID != "DEEP" {
		t.Fatalf("expected DEEP (max liquidity/(cost+1)), got %s", rec.InstrumentID)
	}
	// size = |delta| / instrument delta = 40/0.5
	if !rec.Size.Equal(dec(80)) {
		t.Fatalf("hedge size = %s, want 80", rec.Size)
	}
	if rec.Side != market.Sell {
		t.Fatalf("long inventory hedges by selling, got %s", rec.Side)
	}
	// efficiency = 1 - 4/4000
	if !rec.Efficiency.Equal(dec(0.999)) {
		t.Fatalf("efficiency = %s, want 0.999", rec.Efficiency)
	}
}

func TestOptimalHedgeShortSide(t *testing.T) {
	inv := longInv(-40)
	rec, err := OptimalHedge(inv, []HedgeCandidate{{InstrumentID: "SPY", Delta: dec(1), Liquidity: dec(10)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Side != market.Buy {
		t.Fatalf("short inventory hedges by buying, got %s", rec.Side)
	}
}

func TestOptimalHedgeNoCandidates(t *testing.T) {
	_, err := OptimalHedge(longInv(40), nil)
	if !errors.Is(err, ErrNoHedgeCandidate) {
		t.Fatalf("expected ErrNoHedgeCandidate, got %v", err)
	}
}

func TestBuildHedgePlan(t *testing.T) {
	rec := HedgeRecommendation{Size: dec(25), Side: market.Sell}
	plan := BuildHedgePlan(rec, dec(10), dec(0.5))
	if len(plan.Slices) != 3 {
		t.Fatalf("expected 3 slices, got %d", len(plan.Slices))
	}
	if !plan.Total.Equal(dec(25)) {
		t.Fatalf("plan total = %s, want 25", plan.Total)
	}
	for _, s := range plan.Slices {
		if s.Side != market.Sell {
			t.Fatalf("all slices should carry the hedge side")
		}
	}

	// 低于 sizeFloor 的零头被丢弃
	plan = BuildHedgePlan(HedgeRecommendation{Size: dec(10.2), Side: market.Sell}, dec(10), dec(0.5))
	if len(plan.Slices) != 1 || !plan.Total.Equal(dec(10)) {
		t.Fatalf("sub-floor remainder should drop: %+v", plan)
	}
}
