package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mm-quote-engine/market"
)

// Envelope 对应行情流的外层包装。
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// TickMessage 提取 tick 消息的核心字段，价格按字符串传输避免精度损失。
type TickMessage struct {
	Instrument string `json:"instrument"`
	BestBid    string `json:"bestBid"`
	BestAsk    string `json:"bestAsk"`
	TsMs       int64  `json:"ts"`
}

// TradeMessage 成交回报消息。
type TradeMessage struct {
	ID         string `json:"id"`
	Instrument string `json:"instrument"`
	QuoteID    string `json:"quoteId"`
	Side       string `json:"side"`
	Price      string `json:"price"`
	Qty        string `json:"qty"`
	TsMs       int64  `json:"ts"`
}

// ParseTick 解析 tick 消息，返回带 mid 的行情快照。
func ParseTick(raw []byte) (market.Tick, error) {
	var msg TickMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return market.Tick{}, fmt.Errorf("parse tick: %w", err)
	}
	if msg.Instrument == "" {
		return market.Tick{}, fmt.Errorf("parse tick: missing instrument")
	}
	bid, err := decimal.NewFromString(msg.BestBid)
	if err != nil {
		return market.Tick{}, fmt.Errorf("parse tick bid %q: %w", msg.BestBid, err)
	}
	ask, err := decimal.NewFromString(msg.BestAsk)
	if err != nil {
		return market.Tick{}, fmt.Errorf("parse tick ask %q: %w", msg.BestAsk, err)
	}
	nbbo := market.NBBO{BestBid: bid, BestAsk: ask}
	return market.Tick{
		InstrumentID: msg.Instrument,
		Mid:          nbbo.Mid(),
		BestBid:      bid,
		BestAsk:      ask,
		Ts:           time.UnixMilli(msg.TsMs).UTC(),
	}, nil
}

// ParseTrade 解析成交回报。
func ParseTrade(raw []byte) (market.Trade, error) {
	var msg TradeMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return market.Trade{}, fmt.Errorf("parse trade: %w", err)
	}
	if msg.Instrument == "" {
		return market.Trade{}, fmt.Errorf("parse trade: missing instrument")
	}
	side := market.Side(msg.Side)
	if side != market.Buy && side != market.Sell {
		return market.Trade{}, fmt.Errorf("parse trade: unknown side %q", msg.Side)
	}
	price, err := decimal.NewFromString(msg.Price)
	if err != nil {
		return market.Trade{}, fmt.Errorf("parse trade price %q: %w", msg.Price, err)
	}
	qty, err := decimal.NewFromString(msg.Qty)
	if err != nil {
		return market.Trade{}, fmt.Errorf("parse trade qty %q: %w", msg.Qty, err)
	}
	return market.Trade{
		ID:           msg.ID,
		InstrumentID: msg.Instrument,
		QuoteID:      msg.QuoteID,
		Side:         side,
		Price:        price,
		Qty:          qty,
		Ts:           time.UnixMilli(msg.TsMs).UTC(),
	}, nil
}
