package risk

import (
	"github.com/shopspring/decimal"

	"mm-quote-engine/inventory"
)

// Report 一次完整风险评估的结果。
type Report struct {
	VaR           decimal.Decimal
	VaRErr        error
	Concentration Concentration
	Stress        StressResult
	Breaches      []*LimitBreachError
}

// EvaluateParams 风险评估输入。
type EvaluateParams struct {
	Inventory    inventory.Inventory
	Portfolio    []inventory.Inventory
	Returns      []decimal.Decimal
	Confidence   decimal.Decimal
	HorizonDays  decimal.Decimal
	CurrentPrice decimal.Decimal
	ShockPct     decimal.Decimal
	Limits       Limits
}

// Evaluate 汇总 VaR、集中度、压力测试和限额信号。
// 历史不足时 VaR 置零并在 VaRErr 里报告，其余指标照常给出。
func Evaluate(p EvaluateParams) Report {
	r := Report{}
	r.VaR, r.VaRErr = VaR(p.Inventory, p.Returns, p.Confidence, p.HorizonDays)
	r.Concentration = CalcConcentration(p.Portfolio)
	r.Stress = StressTest(p.Inventory, p.CurrentPrice, p.ShockPct)
	r.Breaches = CheckInventoryLimits(p.Inventory, p.Limits)
	if b := CheckConcentration(r.Concentration, p.Limits); b != nil {
		r.Breaches = append(r.Breaches, b)
	}
	return r
}
