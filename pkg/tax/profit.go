package tax

import (
	"time"

	"github.com/mkale/taxkeep/pkg/domain"

	"github.com/shopspring/decimal"
)

// Period is an inclusive date range, compared at day granularity in UTC.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (p Period) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(dateOnly(p.From)) && !d.After(dateOnly(p.To))
}

// TaxYear returns the period of the UK tax year starting 6 April of
// startYear.
func TaxYear(startYear int) Period {
	return Period{
		From: time.Date(startYear, time.April, 6, 0, 0, 0, 0, time.UTC),
		To:   time.Date(startYear+1, time.April, 5, 0, 0, 0, 0, time.UTC),
	}
}

// IncludeFunc lets the caller keep journal-only rows, transfers and the
// like out of profit. Transfers are always excluded regardless.
type IncludeFunc func(*domain.Transaction) bool

// IncludeAll is the predicate that excludes nothing extra.
func IncludeAll(*domain.Transaction) bool { return true }

// Totals sums business income and expenses over a period. Amounts are
// taken by absolute value; the sign on an entry is informational.
func Totals(txns []*domain.Transaction, p Period, include IncludeFunc) (income, expenses decimal.Decimal) {
	if include == nil {
		include = IncludeAll
	}
	for _, t := range txns {
		if !p.Contains(t.Date) || !include(t) {
			continue
		}
		switch {
		case t.IsBusinessIncome():
			income = income.Add(t.Amount.Abs())
		case t.IsBusinessExpense():
			expenses = expenses.Add(t.Amount.Abs())
		}
	}
	return income, expenses
}

// Profit is business income minus business expenses over the period.
func Profit(txns []*domain.Transaction, p Period, include IncludeFunc) decimal.Decimal {
	income, expenses := Totals(txns, p, include)
	return income.Sub(expenses)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
