package fingerprint

import (
	"testing"
	"time"

	"github.com/mkale/taxkeep/pkg/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeWindow struct {
	rows []*domain.Transaction
}

func (f *fakeWindow) Between(from, to time.Time) ([]*domain.Transaction, error) {
	out := []*domain.Transaction{}
	for _, t := range f.rows {
		if !t.Date.Before(from) && !t.Date.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func row(id string, date time.Time, amount float64, desc string, tags ...string) *domain.Transaction {
	return &domain.Transaction{
		ID:          id,
		Date:        date,
		Description: desc,
		Amount:      decimal.NewFromFloat(amount),
		Type:        domain.TypeUnreviewed,
		Status:      domain.StatusCleared,
		Tags:        tags,
	}
}

func TestCheckAdmitsAgainstEmptyStore(t *testing.T) {
	c := NewChecker(&fakeWindow{})

	d, err := c.Check(Candidate{
		Date:        day(2024, 5, 1),
		Amount:      decimal.NewFromFloat(-45.00),
		Description: "TFL TRAVEL",
	}, nil, nil)

	assert.Nil(t, err)
	assert.True(t, d.Admit)
	assert.NotEmpty(t, d.Fingerprint)
}

func TestCheckRejectsExactDateMatch(t *testing.T) {
	c := NewChecker(&fakeWindow{rows: []*domain.Transaction{
		row("t1", day(2024, 5, 1), -45.00, "TFL TRAVEL"),
	}})

	d, err := c.Check(Candidate{
		Date:        day(2024, 5, 1),
		Amount:      decimal.NewFromFloat(-45.00),
		Description: "tfl travel ",
	}, nil, nil)

	assert.Nil(t, err)
	assert.False(t, d.Admit)
	assert.Equal(t, "t1", d.MatchedID)
}

func TestCheckIsIdempotent(t *testing.T) {
	store := &fakeWindow{}
	c := NewChecker(store)
	cand := Candidate{
		Date:        day(2024, 5, 1),
		Amount:      decimal.NewFromFloat(-45.00),
		Description: "TFL TRAVEL",
	}

	first, err := c.Check(cand, nil, nil)
	assert.Nil(t, err)
	assert.True(t, first.Admit)

	admitted := row("t1", cand.Date, -45.00, cand.Description)
	admitted.Fingerprint = first.Fingerprint
	store.rows = append(store.rows, admitted)

	second, err := c.Check(cand, nil, nil)
	assert.Nil(t, err)
	assert.False(t, second.Admit)
	assert.Equal(t, "t1", second.MatchedID)
}

func TestCheckRejectsSingleAdjacentDayLiveMatch(t *testing.T) {
	c := NewChecker(&fakeWindow{rows: []*domain.Transaction{
		row("t1", day(2024, 5, 2), -45.00, "TFL TRAVEL"),
	}})

	d, err := c.Check(Candidate{
		Date:        day(2024, 5, 1),
		Amount:      decimal.NewFromFloat(-45.00),
		Description: "TFL TRAVEL",
	}, nil, nil)

	assert.Nil(t, err)
	assert.False(t, d.Admit)
	assert.Equal(t, "t1", d.MatchedID)
}

func TestCheckAdmitsRecurringDailyCharge(t *testing.T) {
	// two live rows on adjacent days is a recurring pattern, not a duplicate
	c := NewChecker(&fakeWindow{rows: []*domain.Transaction{
		row("t1", day(2024, 5, 1), -6.70, "TFL TRAVEL"),
		row("t2", day(2024, 5, 2), -6.70, "TFL TRAVEL"),
	}})

	d, err := c.Check(Candidate{
		Date:        day(2024, 5, 3),
		Amount:      decimal.NewFromFloat(-6.70),
		Description: "TFL TRAVEL",
	}, nil, nil)

	assert.Nil(t, err)
	assert.True(t, d.Admit)
}

func TestCheckAdmitsWhenAdjacentMatchIsBulkImport(t *testing.T) {
	c := NewChecker(&fakeWindow{rows: []*domain.Transaction{
		row("t1", day(2024, 5, 2), -45.00, "TFL TRAVEL", domain.TagBulkImport),
	}})

	d, err := c.Check(Candidate{
		Date:        day(2024, 5, 1),
		Amount:      decimal.NewFromFloat(-45.00),
		Description: "TFL TRAVEL",
	}, nil, nil)

	assert.Nil(t, err)
	assert.True(t, d.Admit)
}

func TestCheckIgnoresCurrentBatchRows(t *testing.T) {
	existing := row("t1", day(2024, 5, 1), -45.00, "TFL TRAVEL")
	existing.Fingerprint = New(existing.Date, existing.Amount, existing.Description, "")

	c := NewChecker(&fakeWindow{rows: []*domain.Transaction{existing}})
	batch := map[string]bool{existing.Fingerprint: true}

	d, err := c.Check(Candidate{
		Date:        day(2024, 5, 1),
		Amount:      decimal.NewFromFloat(-45.00),
		Description: "TFL TRAVEL",
	}, batch, nil)

	assert.Nil(t, err)
	assert.True(t, d.Admit)
}

func TestCheckRefusesExcludedFingerprint(t *testing.T) {
	cand := Candidate{
		Date:        day(2024, 5, 1),
		Amount:      decimal.NewFromFloat(-45.00),
		Description: "TFL TRAVEL",
	}
	fp := New(cand.Date, cand.Amount, cand.Description, cand.Reference)

	c := NewChecker(&fakeWindow{})
	d, err := c.Check(cand, nil, map[string]bool{fp: true})

	assert.Nil(t, err)
	assert.False(t, d.Admit)
	assert.Empty(t, d.MatchedID)
}

func TestCheckAmountTolerance(t *testing.T) {
	c := NewChecker(&fakeWindow{rows: []*domain.Transaction{
		row("t1", day(2024, 5, 1), -45.00, "TFL TRAVEL"),
	}})

	// a penny out still matches
	d, err := c.Check(Candidate{
		Date:        day(2024, 5, 1),
		Amount:      decimal.NewFromFloat(-45.01),
		Description: "TFL TRAVEL",
	}, nil, nil)
	assert.Nil(t, err)
	assert.False(t, d.Admit)

	// two pence out does not
	d, err = c.Check(Candidate{
		Date:        day(2024, 5, 1),
		Amount:      decimal.NewFromFloat(-45.02),
		Description: "TFL TRAVEL",
	}, nil, nil)
	assert.Nil(t, err)
	assert.True(t, d.Admit)
}

func TestCheckDescriptionMustMatchExactly(t *testing.T) {
	c := NewChecker(&fakeWindow{rows: []*domain.Transaction{
		row("t1", day(2024, 5, 1), -45.00, "TFL TRAVEL"),
	}})

	d, err := c.Check(Candidate{
		Date:        day(2024, 5, 1),
		Amount:      decimal.NewFromFloat(-45.00),
		Description: "TFL TRAVEL LONDON",
	}, nil, nil)

	assert.Nil(t, err)
	assert.True(t, d.Admit)
}
