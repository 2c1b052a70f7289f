package tax

import (
	"time"

	"github.com/mkale/taxkeep/pkg/domain"

	"github.com/shopspring/decimal"
)

// QuarterStatus relates a Making Tax Digital quarter to the given instant.
// There is no "submitted" state here: submission records live with the
// caller, not in this computation.
type QuarterStatus string

const (
	QuarterUpcoming QuarterStatus = "upcoming"
	QuarterDue      QuarterStatus = "due"
	QuarterPastDue  QuarterStatus = "past-due"
)

type Quarter struct {
	Number   int             `json:"quarter"`
	Period   Period          `json:"period"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
	DueDate  time.Time       `json:"due_date"`
	Status   QuarterStatus   `json:"status"`
}

// MTDQuarters slices the tax year starting 6 April of startYear into the
// four fixed MTD quarters and totals each. Updates are due one calendar
// month plus seven days after the quarter ends.
func MTDQuarters(txns []*domain.Transaction, startYear int, asOf time.Time, include IncludeFunc) []Quarter {
	quarters := make([]Quarter, 0, 4)
	start := time.Date(startYear, time.April, 6, 0, 0, 0, 0, time.UTC)

	for q := 0; q < 4; q++ {
		from := start.AddDate(0, 3*q, 0)
		to := start.AddDate(0, 3*(q+1), 0).AddDate(0, 0, -1)
		period := Period{From: from, To: to}

		income, expenses := Totals(txns, period, include)
		due := to.AddDate(0, 1, 7)

		quarters = append(quarters, Quarter{
			Number:   q + 1,
			Period:   period,
			Income:   income,
			Expenses: expenses,
			Profit:   income.Sub(expenses),
			DueDate:  due,
			Status:   quarterStatus(to, due, asOf),
		})
	}

	return quarters
}

func quarterStatus(end, due, asOf time.Time) QuarterStatus {
	day := dateOnly(asOf)
	switch {
	case day.After(dateOnly(due)):
		return QuarterPastDue
	case day.After(dateOnly(end)):
		return QuarterDue
	default:
		return QuarterUpcoming
	}
}
