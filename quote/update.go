package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"mm-quote-engine/numeric"
)

// UpdateReason 触发报价更新的原因。
type UpdateReason string

const (
	ReasonPriceMove       UpdateReason = "PRICE_MOVE"
	ReasonInventoryChange UpdateReason = "INVENTORY_CHANGE"
	ReasonTimeDecay       UpdateReason = "TIME_DECAY"
)

// Urgency 更新紧迫度。
type Urgency string

const (
	UrgencyLow    Urgency = "LOW"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyHigh   Urgency = "HIGH"
)

// UpdateDecision 报价更新决策结果。
type UpdateDecision struct {
	ShouldUpdate  bool
	Reason        UpdateReason
	Urgency       Urgency
	MarketMoveBps decimal.Decimal
}

// DefaultTTL 源系统的固定报价寿命。
const DefaultTTL = 5 * time.Second

// UpdateInput 更新决策输入。InventoryRatio 为 |position|/maxPosition。
type UpdateInput struct {
	Current        Quote
	MarketMid      decimal.Decimal
	InventoryRatio decimal.Decimal
	ThresholdBps   decimal.Decimal
	TTL            time.Duration
	Now            time.Time
}

// DetermineUpdate 依次判定三个独立触发条件，首个命中即返回：
//  1. 行情偏移 ≥ 阈值 → ≥2 倍阈值 HIGH，否则 MEDIUM；
//  2. 库存占比 ≥ 0.8 → HIGH / INVENTORY_CHANGE；
//  3. 报价年龄 > TTL → LOW / TIME_DECAY。
// 均未命中则 ShouldUpdate=false。
func DetermineUpdate(in UpdateInput) UpdateDecision {
	moveBps := numeric.Zero
	if in.Current.MidPrice.IsPositive() {
		moveBps = in.MarketMid.Sub(in.Current.MidPrice).Abs().
			Div(in.Current.MidPrice).Mul(numeric.BpsUnit)
	}

	if in.ThresholdBps.IsPositive() && moveBps.Cmp(in.ThresholdBps) >= 0 {
		urgency := UrgencyMedium
		if moveBps.Cmp(in.ThresholdBps.Mul(decimal.NewFromInt(2))) >= 0 {
			urgency = UrgencyHigh
		}
		return UpdateDecision{ShouldUpdate: true, Reason: ReasonPriceMove, Urgency: urgency, MarketMoveBps: moveBps}
	}

	if in.InventoryRatio.Cmp(decimal.NewFromFloat(0.8)) >= 0 {
		return UpdateDecision{ShouldUpdate: true, Reason: ReasonInventoryChange, Urgency: UrgencyHigh, MarketMoveBps: moveBps}
	}

	ttl := in.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if in.Current.Age(in.Now) > ttl {
		return UpdateDecision{ShouldUpdate: true, Reason: ReasonTimeDecay, Urgency: UrgencyLow, MarketMoveBps: moveBps}
	}

	return UpdateDecision{MarketMoveBps: moveBps}
}
