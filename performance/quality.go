package performance

import (
	"github.com/shopspring/decimal"

	"mm-quote-engine/numeric"
)

// QuoteStats 质量评分所需的单笔报价特征。
type QuoteStats struct {
	SpreadBps decimal.Decimal
	BidSize   decimal.Decimal
	AskSize   decimal.Decimal
}

// QualityScore 报价质量三项评分，0-100。
// 一致性 = 100 - 变异系数*100；该区间是指标契约，允许裁剪。
type QualityScore struct {
	SpreadConsistency decimal.Decimal
	SizeConsistency   decimal.Decimal
	UptimeScore       decimal.Decimal
	Composite         decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

func consistencyScore(values []decimal.Decimal) decimal.Decimal {
	cv := numeric.CoefficientOfVariation(values)
	return numeric.Clamp(hundred.Sub(cv.Mul(hundred)), numeric.Zero, hundred)
}

// AnalyzeQuoteQuality 从报价历史计算价差一致性、规模一致性与
// 在线率得分，并给出三项均值。uptime 为 0-1 区间的在线率。
func AnalyzeQuoteQuality(quotes []QuoteStats, uptime decimal.Decimal) QualityScore {
	spreads := make([]decimal.Decimal, 0, len(quotes))
	sizes := make([]decimal.Decimal, 0, len(quotes)*2)
	for _, q := range quotes {
		spreads = append(spreads, q.SpreadBps)
		sizes = append(sizes, q.BidSize, q.AskSize)
	}
	score := QualityScore{
		SpreadConsistency: consistencyScore(spreads),
		SizeConsistency:   consistencyScore(sizes),
		UptimeScore:       numeric.Clamp(uptime.Mul(hundred), numeric.Zero, hundred),
	}
	score.Composite = score.SpreadConsistency.
		Add(score.SizeConsistency).
		Add(score.UptimeScore).
		Div(decimal.NewFromInt(3))
	return score
}
