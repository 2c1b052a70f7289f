/*
Package tax computes UK self-assessment liabilities from classified
transactions: progressive income tax, Class 2 and Class 4 National
Insurance, rolling VAT-threshold exposure, Making Tax Digital quarters and
payment-on-account schedules. Every function is pure; the caller supplies
transactions, a rate table and any "as of" instant.
*/
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Year holds the rates and limits for one tax year. Rates differ between
// years (Class 4 in particular has flipped between 9% and 6% main rates),
// so nothing in this package hard-codes them.
type Year struct {
	Label string `json:"label"`

	PersonalAllowance decimal.Decimal `json:"personal_allowance"`
	BasicRateLimit    decimal.Decimal `json:"basic_rate_limit"`
	HigherRateLimit   decimal.Decimal `json:"higher_rate_limit"`
	BasicRate         decimal.Decimal `json:"basic_rate"`
	HigherRate        decimal.Decimal `json:"higher_rate"`
	AdditionalRate    decimal.Decimal `json:"additional_rate"`

	Class4LowerLimit decimal.Decimal `json:"class4_lower_limit"`
	Class4UpperLimit decimal.Decimal `json:"class4_upper_limit"`
	Class4MainRate   decimal.Decimal `json:"class4_main_rate"`
	Class4UpperRate  decimal.Decimal `json:"class4_upper_rate"`

	Class2WeeklyRate   decimal.Decimal `json:"class2_weekly_rate"`
	Class2Weeks        int             `json:"class2_weeks"`
	Class2SmallProfits decimal.Decimal `json:"class2_small_profits"`

	VATApproaching decimal.Decimal `json:"vat_approaching"`
	VATDanger      decimal.Decimal `json:"vat_danger"`
	VATThreshold   decimal.Decimal `json:"vat_threshold"`
}

// Default returns the 2024/25 rate table.
func Default() Year {
	return Year{
		Label: "2024-25",

		PersonalAllowance: decimal.NewFromInt(12570),
		BasicRateLimit:    decimal.NewFromInt(50270),
		HigherRateLimit:   decimal.NewFromInt(125140),
		BasicRate:         decimal.NewFromFloat(0.20),
		HigherRate:        decimal.NewFromFloat(0.40),
		AdditionalRate:    decimal.NewFromFloat(0.45),

		Class4LowerLimit: decimal.NewFromInt(12570),
		Class4UpperLimit: decimal.NewFromInt(50270),
		Class4MainRate:   decimal.NewFromFloat(0.06),
		Class4UpperRate:  decimal.NewFromFloat(0.02),

		Class2WeeklyRate:   decimal.NewFromFloat(3.45),
		Class2Weeks:        52,
		Class2SmallProfits: decimal.NewFromInt(6725),

		VATApproaching: decimal.NewFromInt(75000),
		VATDanger:      decimal.NewFromInt(85000),
		VATThreshold:   decimal.NewFromInt(90000),
	}
}

// Validate rejects rate tables that would make the band arithmetic
// meaningless.
func (y Year) Validate() error {
	if y.PersonalAllowance.IsNegative() {
		return fmt.Errorf("tax year %s: negative personal allowance", y.Label)
	}
	if y.BasicRateLimit.LessThanOrEqual(y.PersonalAllowance) {
		return fmt.Errorf("tax year %s: basic rate limit below personal allowance", y.Label)
	}
	if y.HigherRateLimit.LessThanOrEqual(y.BasicRateLimit) {
		return fmt.Errorf("tax year %s: higher rate limit below basic rate limit", y.Label)
	}
	if y.Class4UpperLimit.LessThanOrEqual(y.Class4LowerLimit) {
		return fmt.Errorf("tax year %s: class 4 upper limit below lower limit", y.Label)
	}
	if y.Class2Weeks <= 0 {
		return fmt.Errorf("tax year %s: class 2 weeks must be positive", y.Label)
	}
	one := decimal.NewFromInt(1)
	for _, r := range []decimal.Decimal{
		y.BasicRate, y.HigherRate, y.AdditionalRate,
		y.Class4MainRate, y.Class4UpperRate,
	} {
		if r.IsNegative() || r.GreaterThan(one) {
			return fmt.Errorf("tax year %s: rate %s outside [0,1]", y.Label, r)
		}
	}
	if !y.VATApproaching.LessThan(y.VATDanger) || !y.VATDanger.LessThan(y.VATThreshold) {
		return fmt.Errorf("tax year %s: VAT thresholds out of order", y.Label)
	}
	return nil
}
