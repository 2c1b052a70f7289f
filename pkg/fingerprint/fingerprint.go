/*
Package fingerprint derives stable identity keys for transactions and
decides whether an incoming record duplicates one already on record.
*/
package fingerprint

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/gtank/cryptopasta"
	"github.com/shopspring/decimal"
)

// hashTag keys the fingerprint hash so the values can never collide with
// hashes produced elsewhere for other purposes.
const hashTag = "taxkeep.fingerprint.v1"

// New derives the deterministic fingerprint for a transaction. The same
// (day, amount, description, reference) always yields the same value; the
// time-of-day component of date is ignored.
func New(date time.Time, amount decimal.Decimal, description, reference string) string {
	canonical := strings.Join([]string{
		date.UTC().Format("2006-01-02"),
		amount.StringFixed(2),
		strings.ToLower(strings.TrimSpace(description)),
		strings.TrimSpace(reference),
	}, "|")

	sum := cryptopasta.Hash(hashTag, []byte(canonical))
	return base64.RawURLEncoding.EncodeToString(sum)
}
