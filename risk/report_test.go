package risk

import (
	"testing"

	"mm-quote-engine/inventory"
)

func TestConcentrationHHI(t *testing.T) {
	single := []inventory.Inventory{{InstrumentID: "AAPL", Value: dec(1000)}}
	c := CalcConcentration(single)
	if !c.HHI.Equal(dec(1)) {
		t.Fatalf("single holding HHI = %s, want 1", c.HHI)
	}

	even := []inventory.Inventory{
		{InstrumentID: "AAPL", Value: dec(500)},
		{InstrumentID: "MSFT", Value: dec(-500)}, // 空头按绝对额计
	}
	c = CalcConcentration(even)
	if !c.HHI.Equal(dec(0.5)) {
		t.Fatalf("even 2-way HHI = %s, want 0.5", c.HHI)
	}

	skewed := []inventory.Inventory{
		{InstrumentID: "AAPL", Value: dec(900)},
		{InstrumentID: "MSFT", Value: dec(100)},
	}
	c = CalcConcentration(skewed)
	if c.TopInstrument != "AAPL" || !c.TopWeight.Equal(dec(0.9)) {
		t.Fatalf("top = %s@%s, want AAPL@0.9", c.TopInstrument, c.TopWeight)
	}

	if !CalcConcentration(nil).HHI.IsZero() {
		t.Fatalf("empty portfolio HHI should be 0")
	}
}

func TestStressTestDirectionAware(t *testing.T) {
	long := inventory.Inventory{InstrumentID: "AAPL", Position: dec(10)}
	res := StressTest(long, dec(100), dec(0.1))
	if !res.PnLDownMove.Equal(dec(-100)) {
		t.Fatalf("long down-move pnl = %s, want -100", res.PnLDownMove)
	}
	if !res.WorstCase.Equal(dec(-100)) {
		t.Fatalf("long worst case should be the down move, got %s", res.WorstCase)
	}

	short := inventory.Inventory{InstrumentID: "AAPL", Position: dec(-10)}
	res = StressTest(short, dec(100), dec(0.1))
	if !res.WorstCase.Equal(dec(-100)) || !res.PnLUpMove.Equal(dec(-100)) {
		t.Fatalf("short worst case should be the up move, got %+v", res)
	}
}

func TestCheckInventoryLimits(t *testing.T) {
	inv := inventory.Inventory{InstrumentID: "AAPL", Position: dec(120), Value: dec(12000)}
	limits := Limits{MaxPosition: dec(100), MaxValue: dec(10000)}
	breaches := CheckInventoryLimits(inv, limits)
	if len(breaches) != 2 {
		t.Fatalf("expected 2 breaches, got %d", len(breaches))
	}
	for _, b := range breaches {
		if b.Error() == "" {
			t.Fatalf("breach should describe itself")
		}
	}

	ok := inventory.Inventory{InstrumentID: "AAPL", Position: dec(50), Value: dec(5000)}
	if got := CheckInventoryLimits(ok, limits); got != nil {
		t.Fatalf("within limits should yield no breaches, got %v", got)
	}
}

func TestEvaluateAggregates(t *testing.T) {
	inv := inventory.Inventory{InstrumentID: "AAPL", Position: dec(120), Value: dec(12000)}
	rep := Evaluate(EvaluateParams{
		Inventory:    inv,
		Portfolio:    []inventory.Inventory{inv},
		Returns:      returnsSeries(40, 0.01),
		Confidence:   dec(0.99),
		HorizonDays:  dec(1),
		CurrentPrice: dec(100),
		ShockPct:     dec(0.05),
		Limits:       Limits{MaxPosition: dec(100), MaxConcentration: dec(0.8)},
	})
	if rep.VaRErr != nil {
		t.Fatalf("unexpected VaR error: %v", rep.VaRErr)
	}
	if !rep.VaR.IsNegative() {
		t.Fatalf("VaR should be negative, got %s", rep.VaR)
	}
	// POSITION 超限 + 单一持仓 HHI=1 超 0.8 上限
	if len(rep.Breaches) != 2 {
		t.Fatalf("expected position+concentration breaches, got %d", len(rep.Breaches))
	}
	if rep.Stress.WorstCase.IsPositive() {
		t.Fatalf("stress worst case cannot be a gain for a directional book")
	}
}

func TestEvaluateShortHistory(t *testing.T) {
	rep := Evaluate(EvaluateParams{
		Inventory:    inventory.Inventory{InstrumentID: "AAPL", Value: dec(100)},
		Returns:      returnsSeries(5, 0.01),
		Confidence:   dec(0.95),
		HorizonDays:  dec(1),
		CurrentPrice: dec(100),
		ShockPct:     dec(0.05),
	})
	if rep.VaRErr == nil {
		t.Fatalf("short history must be reported")
	}
	if !rep.VaR.IsZero() {
		t.Fatalf("VaR should zero out on short history")
	}
}
