package store

import (
	"errors"
	"time"

	"github.com/mkale/taxkeep/pkg/domain"
)

// ErrFingerprintExists reports that a write lost a race: another import
// already committed a row with the same fingerprint.
var ErrFingerprintExists = errors.New("transaction fingerprint already stored")

// Store persists transactions and the fingerprints of rows a user has
// deleted. Deleted fingerprints outlive their rows so a re-import can never
// resurrect a deliberately removed transaction.
type Store interface {
	Write([]*domain.Transaction) error

	// Between returns every stored transaction whose date falls in the
	// inclusive range.
	Between(from, to time.Time) ([]*domain.Transaction, error)

	// Excluded returns the fingerprints of deleted rows.
	Excluded() (map[string]bool, error)

	// Delete removes a row and records its fingerprint as excluded.
	Delete(id string) error
}
