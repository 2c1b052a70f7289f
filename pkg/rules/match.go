/*Package rules matches transactions against user-defined keyword rules.*/
package rules

import (
	"strings"

	"github.com/mkale/taxkeep/pkg/domain"
)

// Suggestion is a classification a matched rule proposes. Type,
// BusinessType and Category travel together so applying a rule can never
// leave a Business row without a category the rule would have supplied.
type Suggestion struct {
	RuleID       string
	Type         domain.Type
	BusinessType domain.BusinessType
	Category     string
}

// Apply writes the suggestion onto the transaction in one step.
func (s *Suggestion) Apply(t *domain.Transaction) {
	t.Type = s.Type
	t.BusinessType = s.BusinessType
	t.Category = s.Category
}

// Match returns the suggestion from the first rule (in stored order) whose
// keyword appears, case-insensitively, in the transaction's description,
// merchant or reference. It has no side effects; persisting the result is
// the caller's business.
func Match(t *domain.Transaction, rules []domain.CategorizationRule) (*Suggestion, bool) {
	for i := range rules {
		r := &rules[i]
		keyword := strings.ToLower(strings.TrimSpace(r.Keyword))
		if keyword == "" {
			continue
		}
		if !containsKeyword(t, keyword) {
			continue
		}

		s := &Suggestion{RuleID: r.ID, Type: r.Type}
		if r.Type == domain.TypeBusiness {
			s.BusinessType = r.BusinessType
			s.Category = r.Category
		}
		return s, true
	}
	return nil, false
}

func containsKeyword(t *domain.Transaction, keyword string) bool {
	for _, field := range []string{t.Description, t.Merchant, t.Reference} {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}
