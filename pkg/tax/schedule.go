package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one installment in a self-assessment payment schedule.
type Payment struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Due    time.Time       `json:"due"`
}

// Schedule is what falls due after a tax year closes: the balancing payment
// for that year and two payments on account toward the next one.
type Schedule struct {
	BalancingPayment Payment `json:"balancing_payment"`
	FirstPoA         Payment `json:"first_payment_on_account"`
	SecondPoA        Payment `json:"second_payment_on_account"`
}

// PaymentSchedule builds the schedule for the tax year ending 5 April of
// endYear. The balancing payment of the full liability is due the
// following 31 January; each payment on account is half the liability, due
// 31 January and 31 July.
func PaymentSchedule(totalTax decimal.Decimal, endYear int) Schedule {
	jan := time.Date(endYear+1, time.January, 31, 0, 0, 0, 0, time.UTC)
	jul := time.Date(endYear+1, time.July, 31, 0, 0, 0, 0, time.UTC)

	half := totalTax.Div(decimal.NewFromInt(2)).Round(2)

	return Schedule{
		BalancingPayment: Payment{
			Label:  "Balancing payment",
			Amount: totalTax.Round(2),
			Due:    jan,
		},
		FirstPoA: Payment{
			Label:  "First payment on account",
			Amount: half,
			Due:    jan,
		},
		SecondPoA: Payment{
			Label:  "Second payment on account",
			Amount: half,
			Due:    jul,
		},
	}
}
