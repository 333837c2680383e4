package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestQuoteMetrics(t *testing.T) {
	m := New(DefaultConfig())

	m.RecordQuoteGenerated("BTC-USD")
	m.RecordQuoteGenerated("BTC-USD")
	m.RecordQuoteReject("BTC-USD", "CROSSED_MARKET")
	m.UpdateSpread("BTC-USD", 24.5)

	if got := testutil.ToFloat64(m.quotesGenerated.WithLabelValues("BTC-USD")); got != 2 {
		t.Errorf("quotesGenerated = %f, want 2", got)
	}
	if got := testutil.ToFloat64(m.quoteRejects.WithLabelValues("BTC-USD", "CROSSED_MARKET")); got != 1 {
		t.Errorf("quoteRejects = %f, want 1", got)
	}
	if got := testutil.ToFloat64(m.spreadBps.WithLabelValues("BTC-USD")); got != 24.5 {
		t.Errorf("spreadBps = %f, want 24.5", got)
	}
}

func TestInventoryMetrics(t *testing.T) {
	m := New(DefaultConfig())

	m.UpdateInventory("ETH-USD", 85, 0.85, -120.5, 2)

	if got := testutil.ToFloat64(m.position.WithLabelValues("ETH-USD")); got != 85 {
		t.Errorf("position = %f, want 85", got)
	}
	if got := testutil.ToFloat64(m.positionRatio.WithLabelValues("ETH-USD")); got != 0.85 {
		t.Errorf("positionRatio = %f, want 0.85", got)
	}
	if got := testutil.ToFloat64(m.inventoryRisk.WithLabelValues("ETH-USD")); got != 2 {
		t.Errorf("inventoryRisk = %f, want 2", got)
	}
}

func TestRiskAndAnomalyMetrics(t *testing.T) {
	m := New(DefaultConfig())

	m.UpdateVaR("BTC-USD", -4660)
	m.UpdateConcentration(0.58)
	m.RecordLimitBreach("BTC-USD", "POSITION")
	m.UpdateAnomalyScore("BTC-USD", "quote_stuffing", 85)
	m.RecordAnomalyAction("BTC-USD", "BLOCK")

	if got := testutil.ToFloat64(m.valueAtRisk.WithLabelValues("BTC-USD")); got != -4660 {
		t.Errorf("valueAtRisk = %f, want -4660", got)
	}
	if got := testutil.ToFloat64(m.concentration); got != 0.58 {
		t.Errorf("concentration = %f, want 0.58", got)
	}
	if got := testutil.ToFloat64(m.limitBreaches.WithLabelValues("BTC-USD", "POSITION")); got != 1 {
		t.Errorf("limitBreaches = %f, want 1", got)
	}
	if got := testutil.ToFloat64(m.anomalyScore.WithLabelValues("BTC-USD", "quote_stuffing")); got != 85 {
		t.Errorf("anomalyScore = %f, want 85", got)
	}
}

func TestSeparateRegistries(t *testing.T) {
	// 每个 Monitor 独立 registry，重复创建不应 panic
	a := New(DefaultConfig())
	b := New(DefaultConfig())
	a.RecordWSConnection()
	if got := testutil.ToFloat64(b.wsConnections); got != 0 {
		t.Errorf("registries should be isolated, got %f", got)
	}
}
