/*
Package source reads transaction candidates out of bank export files.

A source validates amounts and dates at the boundary: a malformed row is a
rejected input surfaced to the caller, never a value coerced into the
computation core.
*/
package source

import (
	"errors"
	"time"

	"github.com/mkale/taxkeep/pkg/domain"
)

// ErrBadRow wraps any per-row validation failure.
var ErrBadRow = errors.New("could not import this transaction")

type Source interface {
	// Transactions returns candidates dated within the inclusive range.
	Transactions(from, to time.Time) ([]*domain.Transaction, error)

	// Provenance is the tag stamped on every admitted row from this
	// source, e.g. "import:csv".
	Provenance() string
}
