package performance

import (
	"github.com/shopspring/decimal"

	"mm-quote-engine/numeric"
)

// StrategyMode 做市策略档位。
type StrategyMode string

const (
	ModePassive    StrategyMode = "PASSIVE"
	ModeAggressive StrategyMode = "AGGRESSIVE"
	ModeAdaptive   StrategyMode = "ADAPTIVE"
)

// StrategyInputs 策略建议的决策输入。
type StrategyInputs struct {
	InventoryRatio         decimal.Decimal // |position|/max
	AdverseSelectionRisk   bool
	CompetitiveOpportunity bool            // 竞争对手价差明显偏宽
	FillRate               decimal.Decimal // 0-1
	BaseSpreadBps          decimal.Decimal
	BaseSize               decimal.Decimal
}

// StrategyRecommendation 规则表输出：档位 + 目标参数。
type StrategyRecommendation struct {
	Mode            StrategyMode
	TargetSpreadBps decimal.Decimal
	TargetSize      decimal.Decimal
	EnableHedging   bool
	Rationale       string
}

// RecommendStrategy 决策表（规则引擎，不做数值寻优）：
// 库存过重或逆向选择风险 → PASSIVE（加宽、缩量、开对冲）；
// 有竞争空间且成交率偏低 → AGGRESSIVE（收窄、放量）；
// 其余 → ADAPTIVE 维持基准。
func RecommendStrategy(in StrategyInputs) StrategyRecommendation {
	heavyInventory := in.InventoryRatio.Cmp(decimal.NewFromFloat(0.7)) > 0
	lowFillRate := in.FillRate.Cmp(decimal.NewFromFloat(0.3)) < 0

	switch {
	case heavyInventory || in.AdverseSelectionRisk:
		reason := "inventory ratio above 0.7"
		if in.AdverseSelectionRisk {
			reason = "adverse selection risk flagged"
		}
		return StrategyRecommendation{
			Mode:            ModePassive,
			TargetSpreadBps: in.BaseSpreadBps.Mul(decimal.NewFromFloat(1.5)),
			TargetSize:      in.BaseSize.Mul(decimal.NewFromFloat(0.5)),
			EnableHedging:   in.InventoryRatio.Cmp(decimal.NewFromFloat(0.5)) > 0,
			Rationale:       reason,
		}
	case in.CompetitiveOpportunity && lowFillRate:
		return StrategyRecommendation{
			Mode:            ModeAggressive,
			TargetSpreadBps: numeric.Max(in.BaseSpreadBps.Mul(decimal.NewFromFloat(0.8)), numeric.One),
			TargetSize:      in.BaseSize.Mul(decimal.NewFromFloat(1.2)),
			Rationale:       "competitor spreads leave room and fill rate is low",
		}
	default:
		return StrategyRecommendation{
			Mode:            ModeAdaptive,
			TargetSpreadBps: in.BaseSpreadBps,
			TargetSize:      in.BaseSize,
			EnableHedging:   in.InventoryRatio.Cmp(decimal.NewFromFloat(0.5)) > 0,
			Rationale:       "conditions nominal, track the market",
		}
	}
}
