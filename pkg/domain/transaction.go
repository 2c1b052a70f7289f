package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Type is the top-level review classification of a transaction.
type Type string

const (
	TypeBusiness   Type = "Business"
	TypePersonal   Type = "Personal"
	TypeUnreviewed Type = "Unreviewed"
)

// BusinessType qualifies a Business transaction. It carries no meaning for
// Personal or Unreviewed rows.
type BusinessType string

const (
	BusinessIncome   BusinessType = "Income"
	BusinessExpense  BusinessType = "Expense"
	BusinessTransfer BusinessType = "Transfer"
)

type Status string

const (
	StatusPending Status = "Pending"
	StatusCleared Status = "Cleared"
)

// TagBulkImport marks rows that arrived via a bulk statement export (CSV).
// Rows without it are treated as coming from a live source.
const TagBulkImport = "import:csv"

type Transaction struct {
	ID string `json:"id"`

	// Date is a UTC instant; only the calendar day is significant for
	// matching and tax aggregation.
	Date time.Time `json:"date"`

	Description string `json:"description"`
	Merchant    string `json:"merchant,omitempty"`
	Reference   string `json:"reference,omitempty"`

	// Amount is signed: positive inflow, negative outflow. Two decimal
	// places of precision are retained exactly.
	Amount decimal.Decimal `json:"amount"`

	Type         Type         `json:"type"`
	BusinessType BusinessType `json:"business_type,omitempty"`
	Category     string       `json:"category,omitempty"`
	Status       Status       `json:"status"`

	Tags []string `json:"tags,omitempty"`

	// Fingerprint is the derived identity key. Empty is valid for legacy
	// or manually entered rows.
	Fingerprint string `json:"fingerprint,omitempty"`
}

func (t *Transaction) JSON() ([]byte, error) {
	return json.Marshal(t)
}

func (t *Transaction) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if v == tag {
			return true
		}
	}
	return false
}

// IsBulkImport reports whether the row came from a bulk/offline export
// rather than a live source.
func (t *Transaction) IsBulkImport() bool {
	return t.HasTag(TagBulkImport)
}

func (t *Transaction) IsBusinessIncome() bool {
	return t.Type == TypeBusiness && t.BusinessType == BusinessIncome
}

func (t *Transaction) IsBusinessExpense() bool {
	return t.Type == TypeBusiness && t.BusinessType == BusinessExpense
}

// Validate enforces the closed enum set at the boundary. Free text is never
// trusted as a type inside the computation core.
func (t *Transaction) Validate() error {
	switch t.Type {
	case TypeBusiness, TypePersonal, TypeUnreviewed:
	default:
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	switch t.BusinessType {
	case BusinessIncome, BusinessExpense, BusinessTransfer, "":
	default:
		return fmt.Errorf("invalid business type %q", t.BusinessType)
	}
	switch t.Status {
	case StatusPending, StatusCleared:
	default:
		return fmt.Errorf("invalid status %q", t.Status)
	}
	if t.Type == TypeBusiness && t.BusinessType == "" {
		return fmt.Errorf("business transaction %q has no business type", t.ID)
	}
	return nil
}
