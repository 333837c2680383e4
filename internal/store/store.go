// Package store 维护单品种的历史窗口（报价事件、成交、mid 序列），
// 供异常检测、VaR 与绩效归因整窗读取。
package store

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"mm-quote-engine/market"
)

// EventSink 可选的事件回调，供日志/指标挂接。
type EventSink func(event string, fields map[string]interface{})

// Archiver 持久化边界：外部协作方，按需落盘。
type Archiver interface {
	ArchiveTrade(t market.Trade) error
	ArchiveQuoteEvent(e market.QuoteEvent) error
}

// Store 单写者历史仓。窗口按容量与时间双重裁剪。
type Store struct {
	InstrumentID string

	mu        sync.RWMutex
	mids      *market.MidWindow
	trades    []market.Trade
	pending   []market.Trade // 等待事后标记的成交
	fills     []market.FillMark
	quoteEvts []market.QuoteEvent
	maxTrades int
	maxEvents int
	evtWindow time.Duration
	markDelay time.Duration
	sink      EventSink
	archiver  Archiver
}

// Config 历史仓配置。
type Config struct {
	MidWindowSize int
	MaxTrades     int
	MaxEvents     int
	EventWindow   time.Duration
	MarkDelay     time.Duration // 成交事后标记的观察延迟
}

// New 创建历史仓。archiver 与 sink 均可为 nil。
func New(instrumentID string, cfg Config, archiver Archiver, sink EventSink) *Store {
	if cfg.MidWindowSize <= 0 {
		cfg.MidWindowSize = 900
	}
	if cfg.MaxTrades <= 0 {
		cfg.MaxTrades = 1000
	}
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = 4096
	}
	if cfg.EventWindow <= 0 {
		cfg.EventWindow = time.Minute
	}
	if cfg.MarkDelay <= 0 {
		cfg.MarkDelay = 5 * time.Second
	}
	return &Store{
		InstrumentID: instrumentID,
		mids:         market.NewMidWindow(cfg.MidWindowSize),
		maxTrades:    cfg.MaxTrades,
		maxEvents:    cfg.MaxEvents,
		evtWindow:    cfg.EventWindow,
		markDelay:    cfg.MarkDelay,
		archiver:     archiver,
		sink:         sink,
	}
}

// OnTick 记录一笔行情，并用最新 mid 标记已过观察期的成交。
func (s *Store) OnTick(tick market.Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mids.Add(tick.Mid, tick.Ts)
	s.markPendingLocked(tick.Ts, tick.Mid)
}

// markPendingLocked 将成交时刻早于 now-markDelay 的待标记成交
// 以当前 mid 作为事后价格落入 fills 窗口。
func (s *Store) markPendingLocked(now time.Time, mid decimal.Decimal) {
	idx := 0
	for idx < len(s.pending) && !s.pending[idx].Ts.Add(s.markDelay).After(now) {
		s.fills = append(s.fills, market.FillMark{Trade: s.pending[idx], PriceAfter: mid})
		idx++
	}
	if idx == 0 {
		return
	}
	s.pending = s.pending[idx:]
	if len(s.fills) > s.maxTrades {
		s.fills = s.fills[len(s.fills)-s.maxTrades:]
	}
}

// OnTrade 记录一笔成交并归档，同时排队等待事后标记。
func (s *Store) OnTrade(t market.Trade) {
	s.mu.Lock()
	s.trades = append(s.trades, t)
	if len(s.trades) > s.maxTrades {
		s.trades = s.trades[1:]
	}
	s.pending = append(s.pending, t)
	if len(s.pending) > s.maxTrades {
		s.pending = s.pending[1:]
	}
	s.mu.Unlock()

	if s.archiver != nil {
		// 归档失败只上报，不影响交易路径
		if err := s.archiver.ArchiveTrade(t); err != nil && s.sink != nil {
			s.sink("archive_trade_failed", map[string]interface{}{"err": err.Error(), "trade_id": t.ID})
		}
	}
	if s.sink != nil {
		s.sink("trade_recorded", map[string]interface{}{"trade_id": t.ID, "side": string(t.Side)})
	}
}

// MarkFill 在观察期结束后补记事后价格，形成 FillMark。
func (s *Store) MarkFill(t market.Trade, priceAfter decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fills = append(s.fills, market.FillMark{Trade: t, PriceAfter: priceAfter})
	if len(s.fills) > s.maxTrades {
		s.fills = s.fills[1:]
	}
}

// OnQuotePlaced 记录一笔新报价事件。
func (s *Store) OnQuotePlaced(quoteID string, ts time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quoteEvts = append(s.quoteEvts, market.QuoteEvent{QuoteID: quoteID, PlacedAt: ts})
	s.trimEventsLocked(ts)
}

// OnQuoteCanceled 回填撤单时刻。找不到对应报价时忽略。
func (s *Store) OnQuoteCanceled(quoteID string, ts time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.quoteEvts) - 1; i >= 0; i-- {
		if s.quoteEvts[i].QuoteID == quoteID && s.quoteEvts[i].CanceledAt.IsZero() {
			s.quoteEvts[i].CanceledAt = ts
			break
		}
	}
}

// trimEventsLocked 裁掉超龄与超量事件。
func (s *Store) trimEventsLocked(now time.Time) {
	cutoff := now.Add(-s.evtWindow)
	idx := 0
	for idx < len(s.quoteEvts) && s.quoteEvts[idx].PlacedAt.Before(cutoff) {
		idx++
	}
	if idx > 0 {
		s.quoteEvts = s.quoteEvts[idx:]
	}
	if len(s.quoteEvts) > s.maxEvents {
		s.quoteEvts = s.quoteEvts[len(s.quoteEvts)-s.maxEvents:]
	}
}

// Trades 返回成交窗口副本。
func (s *Store) Trades() []market.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]market.Trade, len(s.trades))
	copy(out, s.trades)
	return out
}

// Fills 返回带事后标记的成交窗口副本。
func (s *Store) Fills() []market.FillMark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]market.FillMark, len(s.fills))
	copy(out, s.fills)
	return out
}

// QuoteEvents 返回报价事件窗口副本。
func (s *Store) QuoteEvents() []market.QuoteEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]market.QuoteEvent, len(s.quoteEvts))
	copy(out, s.quoteEvts)
	return out
}

// Returns 返回 mid 序列的简单收益。
func (s *Store) Returns() []decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mids.Returns()
}

// RealizedVol 返回窗口已实现波动率。
func (s *Store) RealizedVol() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mids.RealizedVol()
}

// LastMid 返回最近一笔 mid。
func (s *Store) LastMid() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mids.Last()
}
