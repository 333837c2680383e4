package gateway

import (
	"testing"

	"mm-quote-engine/market"
)

func TestParseTick(t *testing.T) {
	raw := []byte(`{"instrument":"BTC-USD","bestBid":"99.90","bestAsk":"100.10","ts":1700000000000}`)
	tick, err := ParseTick(raw)
	if err != nil {
		t.Fatalf("ParseTick failed: %v", err)
	}
	if tick.InstrumentID != "BTC-USD" {
		t.Errorf("instrument = %q", tick.InstrumentID)
	}
	if tick.BestBid.String() != "99.9" || tick.BestAsk.String() != "100.1" {
		t.Errorf("bid/ask = %s/%s", tick.BestBid, tick.BestAsk)
	}
	if tick.Mid.String() != "100" {
		t.Errorf("mid = %s, want 100", tick.Mid)
	}
	if tick.Ts.UnixMilli() != 1700000000000 {
		t.Errorf("ts = %v", tick.Ts)
	}
}

func TestParseTickRejectsBadPayload(t *testing.T) {
	cases := []string{
		`{"instrument":"","bestBid":"1","bestAsk":"2","ts":1}`,
		`{"instrument":"X","bestBid":"abc","bestAsk":"2","ts":1}`,
		`{"instrument":"X","bestBid":"1","bestAsk":"","ts":1}`,
		`not json`,
	}
	for _, raw := range cases {
		if _, err := ParseTick([]byte(raw)); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestParseTrade(t *testing.T) {
	raw := []byte(`{"id":"t1","instrument":"ETH-USD","quoteId":"q42","side":"SELL","price":"2000.5","qty":"3","ts":1700000000500}`)
	trade, err := ParseTrade(raw)
	if err != nil {
		t.Fatalf("ParseTrade failed: %v", err)
	}
	if trade.QuoteID != "q42" {
		t.Errorf("quoteID = %q", trade.QuoteID)
	}
	if trade.Side != market.Sell {
		t.Errorf("side = %q", trade.Side)
	}
	if trade.Price.String() != "2000.5" || trade.Qty.String() != "3" {
		t.Errorf("price/qty = %s/%s", trade.Price, trade.Qty)
	}
}

func TestParseTradeRejectsUnknownSide(t *testing.T) {
	raw := []byte(`{"id":"t1","instrument":"ETH-USD","side":"SHORT","price":"1","qty":"1","ts":1}`)
	if _, err := ParseTrade(raw); err == nil {
		t.Fatal("expected error for unknown side")
	}
}
