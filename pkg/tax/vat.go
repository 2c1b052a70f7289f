package tax

import (
	"time"

	"github.com/mkale/taxkeep/pkg/domain"

	"github.com/shopspring/decimal"
)

// VATStatusCode is how close the trailing twelve months of business income
// sit to the VAT registration threshold.
type VATStatusCode string

const (
	VATSafe        VATStatusCode = "safe"
	VATApproaching VATStatusCode = "approaching"
	VATDanger      VATStatusCode = "danger"
	VATExceeded    VATStatusCode = "exceeded"
)

// MonthIncome is one month's business income inside the rolling window.
type MonthIncome struct {
	Month  time.Time       `json:"month"` // first day of the month, UTC
	Income decimal.Decimal `json:"income"`
}

type VATReport struct {
	TotalIncome decimal.Decimal `json:"total_income"`
	Threshold   decimal.Decimal `json:"threshold"`
	Percent     decimal.Decimal `json:"percent"`
	Status      VATStatusCode   `json:"status"`
	Remaining   decimal.Decimal `json:"remaining"`
	Monthly     []MonthIncome   `json:"monthly"` // oldest first, 12 entries
}

// VATStatus sums business income over the twelve months ending with (and
// including) the month containing endingMonth. Each call computes a fresh
// window; navigating to a different ending month re-sums from scratch
// rather than adjusting a running total.
func VATStatus(txns []*domain.Transaction, endingMonth time.Time, y Year) VATReport {
	end := monthStart(endingMonth)
	start := end.AddDate(0, -11, 0)

	monthly := make([]MonthIncome, 12)
	for i := 0; i < 12; i++ {
		monthly[i] = MonthIncome{Month: start.AddDate(0, i, 0)}
	}

	total := decimal.Zero
	for _, t := range txns {
		if !t.IsBusinessIncome() {
			continue
		}
		m := monthStart(t.Date)
		if m.Before(start) || m.After(end) {
			continue
		}
		idx := monthsBetween(start, m)
		monthly[idx].Income = monthly[idx].Income.Add(t.Amount.Abs())
		total = total.Add(t.Amount.Abs())
	}

	percent := decimal.Zero
	if y.VATThreshold.IsPositive() {
		percent = total.Div(y.VATThreshold).Mul(hundred).Round(2)
	}

	report := VATReport{
		TotalIncome: total,
		Threshold:   y.VATThreshold,
		Percent:     percent,
		Status:      vatStatus(total, y),
		Remaining:   decimal.Max(y.VATThreshold.Sub(total), decimal.Zero),
		Monthly:     monthly,
	}
	return report
}

func vatStatus(total decimal.Decimal, y Year) VATStatusCode {
	switch {
	case total.GreaterThanOrEqual(y.VATThreshold):
		return VATExceeded
	case total.GreaterThanOrEqual(y.VATDanger):
		return VATDanger
	case total.GreaterThanOrEqual(y.VATApproaching):
		return VATApproaching
	default:
		return VATSafe
	}
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
