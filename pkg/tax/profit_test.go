package tax

import (
	"testing"
	"time"

	"github.com/mkale/taxkeep/pkg/domain"

	"github.com/stretchr/testify/assert"
)

func TestProfitSumsByAbsoluteValue(t *testing.T) {
	p := TaxYear(2024)
	txns := []*domain.Transaction{
		income(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), "3000"),
		expense(time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), "-450.25"),
		// expenses entered with a positive sign still count as outflow
		expense(time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC), "49.75"),
	}

	assert.Equal(t, "2500", Profit(txns, p, nil).String())
}

func TestProfitIgnoresPersonalUnreviewedAndTransfers(t *testing.T) {
	p := TaxYear(2024)
	d := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	txns := []*domain.Transaction{
		income(d, "1000"),
		{Date: d, Amount: dec("700"), Type: domain.TypePersonal, Status: domain.StatusCleared},
		{Date: d, Amount: dec("600"), Type: domain.TypeUnreviewed, Status: domain.StatusCleared},
		{Date: d, Amount: dec("500"), Type: domain.TypeBusiness, BusinessType: domain.BusinessTransfer, Status: domain.StatusCleared},
	}

	assert.Equal(t, "1000", Profit(txns, p, nil).String())
}

func TestProfitRespectsPeriodBoundaries(t *testing.T) {
	p := TaxYear(2024) // 6 Apr 2024 - 5 Apr 2025
	txns := []*domain.Transaction{
		income(time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC), "100"),
		income(time.Date(2024, time.April, 6, 0, 0, 0, 0, time.UTC), "200"),
		income(time.Date(2025, time.April, 5, 23, 59, 0, 0, time.UTC), "300"),
		income(time.Date(2025, time.April, 6, 0, 0, 0, 0, time.UTC), "400"),
	}

	assert.Equal(t, "500", Profit(txns, p, nil).String())
}

func TestProfitCallerPredicate(t *testing.T) {
	p := TaxYear(2024)
	d := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	journal := income(d, "900")
	journal.Tags = []string{"journal"}
	txns := []*domain.Transaction{income(d, "1000"), journal}

	got := Profit(txns, p, func(t *domain.Transaction) bool {
		return !t.HasTag("journal")
	})

	assert.Equal(t, "1000", got.String())
}

func TestBreakdownForTransactions(t *testing.T) {
	p := TaxYear(2024)
	d := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	txns := []*domain.Transaction{
		income(d, "20000"),
		expense(d, "-5000"),
	}

	b := BreakdownFor(txns, p, nil, Default())

	assert.Equal(t, "15000", b.Profit.String())
	// 2430*0.20 + 2430*0.06 + 179.40
	assert.Equal(t, "811.20", b.TotalTax.StringFixed(2))
}

func TestYearValidate(t *testing.T) {
	assert.Nil(t, Default().Validate())

	bad := Default()
	bad.BasicRate = dec("1.5")
	assert.NotNil(t, bad.Validate())

	bad = Default()
	bad.HigherRateLimit = dec("10000")
	assert.NotNil(t, bad.Validate())

	bad = Default()
	bad.VATDanger = dec("95000")
	assert.NotNil(t, bad.Validate())
}
