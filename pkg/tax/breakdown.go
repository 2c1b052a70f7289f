package tax

import (
	"github.com/mkale/taxkeep/pkg/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Breakdown is the full liability picture for one year's profit. It is
// recomputed on demand and never persisted.
type Breakdown struct {
	Profit            decimal.Decimal `json:"profit"`
	PersonalAllowance decimal.Decimal `json:"personal_allowance"`

	BasicTax      decimal.Decimal `json:"basic_tax"`
	HigherTax     decimal.Decimal `json:"higher_tax"`
	AdditionalTax decimal.Decimal `json:"additional_tax"`
	IncomeTax     decimal.Decimal `json:"income_tax"`

	Class4NI decimal.Decimal `json:"class4_ni"`
	Class2NI decimal.Decimal `json:"class2_ni"`

	TotalTax decimal.Decimal `json:"total_tax"`

	// EffectiveRate is a percentage, 0 when profit is zero or negative.
	EffectiveRate decimal.Decimal `json:"effective_rate"`
}

// ComputeBreakdown applies the year's bands to a profit figure. Tax is
// strictly additive across bands; no rate is ever applied to the whole
// profit.
func ComputeBreakdown(profit decimal.Decimal, y Year) Breakdown {
	b := Breakdown{
		Profit:            profit,
		PersonalAllowance: y.PersonalAllowance,
	}

	b.BasicTax = bandTax(profit, y.PersonalAllowance, y.BasicRateLimit, y.BasicRate)
	b.HigherTax = bandTax(profit, y.BasicRateLimit, y.HigherRateLimit, y.HigherRate)
	b.AdditionalTax = topBandTax(profit, y.HigherRateLimit, y.AdditionalRate)
	b.IncomeTax = b.BasicTax.Add(b.HigherTax).Add(b.AdditionalTax)

	b.Class4NI = Class4(profit, y)
	b.Class2NI = Class2(profit, y)

	b.TotalTax = b.IncomeTax.Add(b.Class4NI).Add(b.Class2NI)

	if profit.IsPositive() {
		b.EffectiveRate = b.TotalTax.Div(profit).Mul(hundred).Round(2)
	}

	return b
}

// BreakdownFor computes the breakdown straight from a transaction set.
func BreakdownFor(txns []*domain.Transaction, p Period, include IncludeFunc, y Year) Breakdown {
	return ComputeBreakdown(Profit(txns, p, include), y)
}

// IncomeTax is the progressive income tax alone.
func IncomeTax(profit decimal.Decimal, y Year) decimal.Decimal {
	basic := bandTax(profit, y.PersonalAllowance, y.BasicRateLimit, y.BasicRate)
	higher := bandTax(profit, y.BasicRateLimit, y.HigherRateLimit, y.HigherRate)
	additional := topBandTax(profit, y.HigherRateLimit, y.AdditionalRate)
	return basic.Add(higher).Add(additional)
}

// Class4 applies the main rate between the lower and upper limit and the
// upper rate above it.
func Class4(profit decimal.Decimal, y Year) decimal.Decimal {
	main := bandTax(profit, y.Class4LowerLimit, y.Class4UpperLimit, y.Class4MainRate)
	upper := topBandTax(profit, y.Class4UpperLimit, y.Class4UpperRate)
	return main.Add(upper)
}

// Class2 is a flat annual charge once profit clears the small-profits
// threshold.
func Class2(profit decimal.Decimal, y Year) decimal.Decimal {
	if profit.LessThanOrEqual(y.Class2SmallProfits) {
		return decimal.Zero
	}
	return y.Class2WeeklyRate.Mul(decimal.NewFromInt(int64(y.Class2Weeks))).Round(2)
}

// bandTax taxes the slice of profit that falls between floor and ceiling.
func bandTax(profit, floor, ceiling, rate decimal.Decimal) decimal.Decimal {
	width := ceiling.Sub(floor)
	taxable := decimal.Min(decimal.Max(profit.Sub(floor), decimal.Zero), width)
	return taxable.Mul(rate).Round(2)
}

// topBandTax taxes everything above floor; the top band has no ceiling.
func topBandTax(profit, floor, rate decimal.Decimal) decimal.Decimal {
	taxable := decimal.Max(profit.Sub(floor), decimal.Zero)
	return taxable.Mul(rate).Round(2)
}
