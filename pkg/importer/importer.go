/*
Package importer runs an import batch: read candidates from a source,
check each against the fingerprint engine, auto-categorize admitted rows and
persist them.

A batch runs to completion before another begins; the caller provides that
exclusivity. The store's fingerprint uniqueness is the backstop if two
processes race anyway.
*/
package importer

import (
	"fmt"
	"time"

	"github.com/mkale/taxkeep/pkg/domain"
	"github.com/mkale/taxkeep/pkg/fingerprint"
	"github.com/mkale/taxkeep/pkg/rules"
	"github.com/mkale/taxkeep/pkg/source"
	"github.com/mkale/taxkeep/pkg/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Duplicate records a candidate the checker matched to a persisted row.
type Duplicate struct {
	Candidate *domain.Transaction
	MatchedID string
}

type Report struct {
	Admitted   []*domain.Transaction
	Duplicates []Duplicate

	// PreviouslyDeleted counts candidates refused because the user had
	// deleted the same transaction before.
	PreviouslyDeleted int
}

type Importer struct {
	store   store.Store
	ruleset []domain.CategorizationRule
	checker *fingerprint.Checker
	log     zerolog.Logger
}

func New(st store.Store, ruleset []domain.CategorizationRule, log zerolog.Logger) *Importer {
	return &Importer{
		store:   st,
		ruleset: ruleset,
		checker: fingerprint.NewChecker(st),
		log:     log,
	}
}

// Run imports every candidate the source yields for the range. Admitted
// rows are written one at a time, so a later candidate in the same batch
// sees earlier ones in the store; the batch set keeps it from matching
// them.
func (im *Importer) Run(src source.Source, from, to time.Time) (*Report, error) {
	candidates, err := src.Transactions(from, to)
	if err != nil {
		return nil, err
	}

	excluded, err := im.store.Excluded()
	if err != nil {
		return nil, err
	}

	report := &Report{}
	batch := map[string]bool{}

	for _, t := range candidates {
		decision, err := im.checker.Check(fingerprint.Candidate{
			Date:        t.Date,
			Amount:      t.Amount,
			Description: t.Description,
			Reference:   t.Reference,
		}, batch, excluded)
		if err != nil {
			return nil, err
		}

		if !decision.Admit {
			if decision.MatchedID == "" {
				report.PreviouslyDeleted++
				im.log.Debug().Str("description", t.Description).Msg("skipping previously deleted transaction")
				continue
			}
			report.Duplicates = append(report.Duplicates, Duplicate{Candidate: t, MatchedID: decision.MatchedID})
			im.log.Debug().Str("description", t.Description).Str("matched", decision.MatchedID).Msg("rejecting duplicate")
			continue
		}

		fp := decision.Fingerprint
		if batch[fp] {
			// two identical same-day rows in one statement are
			// distinct real transactions (two bus fares); the second
			// needs its own fingerprint or the store's uniqueness
			// check would fail it
			fp = disambiguate(fp, batch)
		}

		t.Fingerprint = fp
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if !t.HasTag(src.Provenance()) {
			t.Tags = append(t.Tags, src.Provenance())
		}

		if suggestion, ok := rules.Match(t, im.ruleset); ok {
			// a suggestion that would leave the row invalid (Business
			// with no business type) is ignored, not fatal: the row
			// still imports as Unreviewed
			if suggestion.Type != domain.TypeBusiness || suggestion.BusinessType != "" {
				suggestion.Apply(t)
				im.log.Debug().Str("description", t.Description).Str("category", t.Category).Msg("auto-categorized")
			} else {
				im.log.Warn().Str("rule", suggestion.RuleID).Msg("skipping rule without a business type")
			}
		}

		if err := t.Validate(); err != nil {
			return nil, err
		}

		if err := im.store.Write([]*domain.Transaction{t}); err != nil {
			return nil, err
		}

		batch[fp] = true
		report.Admitted = append(report.Admitted, t)
	}

	im.log.Info().
		Int("admitted", len(report.Admitted)).
		Int("duplicates", len(report.Duplicates)).
		Int("previously_deleted", report.PreviouslyDeleted).
		Msg("import finished")

	return report, nil
}

// disambiguate suffixes a fingerprint until it is unique within the batch.
// The suffixed values still batch-exclude later candidates in the run.
func disambiguate(fp string, batch map[string]bool) string {
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s#%d", fp, n)
		if !batch[candidate] {
			return candidate
		}
	}
}
