package fingerprint

import (
	"strings"
	"time"

	"github.com/mkale/taxkeep/pkg/domain"

	"github.com/shopspring/decimal"
)

// amountTolerance is the absolute difference two amounts may show and still
// be considered the same value. Sources occasionally disagree by a penny
// when they round a pending amount differently.
var amountTolerance = decimal.NewFromFloat(0.01)

// Candidate is an incoming transaction record, before admission.
type Candidate struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Reference   string
}

// Decision is the outcome of a duplicate check. When Admit is false and
// MatchedID is set, the candidate duplicates that persisted row. Admit false
// with no MatchedID means the user previously deleted this exact record and
// it must not come back.
type Decision struct {
	Admit       bool
	MatchedID   string
	Fingerprint string
}

// Window is the slice of the transaction store the checker reads: every
// persisted row whose date falls in an inclusive range.
type Window interface {
	Between(from, to time.Time) ([]*domain.Transaction, error)
}

type Checker struct {
	store Window
}

func NewChecker(store Window) *Checker {
	return &Checker{store: store}
}

// Check classifies a candidate against the persisted rows around its date.
//
// Different sources can disagree on the calendar date of the same real-world
// transaction by up to a day, and may or may not carry a reference, so the
// match uses a one-day window on amount + description only. An exact-date
// match always rejects. Off-by-one-day matches reject only when exactly one
// live-source row matches; zero or several such rows indicates a recurring
// daily charge and the candidate is admitted. Ambiguity always resolves to
// admit: an extra row a user can merge beats silently dropped data.
//
// batch holds fingerprints written earlier in the current import run, so a
// record never matches its own batch. excluded holds fingerprints of rows
// the user deleted; those candidates are refused outright.
func (c *Checker) Check(cand Candidate, batch, excluded map[string]bool) (Decision, error) {
	fp := New(cand.Date, cand.Amount, cand.Description, cand.Reference)
	if excluded[fp] {
		return Decision{Admit: false, Fingerprint: fp}, nil
	}

	from := dayStart(cand.Date.AddDate(0, 0, -1))
	to := dayEnd(cand.Date.AddDate(0, 0, 1))
	existing, err := c.store.Between(from, to)
	if err != nil {
		return Decision{}, err
	}

	matches := []*domain.Transaction{}
	for _, t := range existing {
		if t.Fingerprint != "" && batch[t.Fingerprint] {
			continue // written by this same import run
		}
		if !amountsMatch(t.Amount, cand.Amount) {
			continue
		}
		if !descriptionsMatch(t.Description, cand.Description) {
			continue
		}
		matches = append(matches, t)
	}

	// same day + same amount + same description: no ambiguity
	for _, t := range matches {
		if sameDay(t.Date, cand.Date) {
			return Decision{Admit: false, MatchedID: t.ID, Fingerprint: fp}, nil
		}
	}

	live := []*domain.Transaction{}
	for _, t := range matches {
		if !t.IsBulkImport() {
			live = append(live, t)
		}
	}

	// one adjacent-day live row is the same transaction seen with a
	// one-day date discrepancy; two or more is a recurring daily charge
	if len(live) == 1 {
		return Decision{Admit: false, MatchedID: live[0].ID, Fingerprint: fp}, nil
	}

	return Decision{Admit: true, Fingerprint: fp}, nil
}

func amountsMatch(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(amountTolerance)
}

func descriptionsMatch(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayEnd(t time.Time) time.Time {
	return dayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
