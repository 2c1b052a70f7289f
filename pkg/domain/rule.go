package domain

import (
	"time"
)

// CategorizationRule maps a keyword to a classification. Rules are evaluated
// in stored order; the matcher never deduplicates them.
type CategorizationRule struct {
	ID      string `json:"id"`
	Keyword string `json:"keyword"`

	Type Type `json:"type"`

	// BusinessType and Category are optional; empty means the rule only
	// sets the top-level type.
	BusinessType BusinessType `json:"business_type,omitempty"`
	Category     string       `json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
