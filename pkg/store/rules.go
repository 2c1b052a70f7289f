package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mkale/taxkeep/pkg/domain"
)

// LoadRules reads categorization rules from a JSON file. File order is
// stored order; the matcher gives the first match priority, so the order
// here is load-bearing.
func LoadRules(filename string) ([]domain.CategorizationRule, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", filename, err)
	}

	rules := []domain.CategorizationRule{}
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", filename, err)
	}

	for i, r := range rules {
		if r.Keyword == "" {
			return nil, fmt.Errorf("rules %s: rule %d has no keyword", filename, i)
		}
		// an applied Business rule must yield a valid Business row
		if r.Type == domain.TypeBusiness && r.BusinessType == "" {
			return nil, fmt.Errorf("rules %s: rule %d: Business rule needs a business type", filename, i)
		}
		if r.Category != "" && !domain.ValidCategory(r.BusinessType, r.Category) {
			return nil, fmt.Errorf("rules %s: rule %d: category %q invalid for %q",
				filename, i, r.Category, r.BusinessType)
		}
	}
	return rules, nil
}
