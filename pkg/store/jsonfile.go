package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mkale/taxkeep/pkg/domain"
)

// JSONFile keeps the whole ledger in one JSON document. Fine for a single
// self-employed ledger; every operation reads and rewrites the file.
type JSONFile struct {
	filename string
}

type jsonLedger struct {
	Transactions []*domain.Transaction `json:"transactions"`
	Excluded     []string              `json:"excluded_fingerprints,omitempty"`
}

func NewJSONFile(filename string) Store {
	return &JSONFile{filename: filename}
}

func (f *JSONFile) Write(txns []*domain.Transaction) error {
	ledger, err := f.load()
	if err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, t := range ledger.Transactions {
		if t.Fingerprint != "" {
			seen[t.Fingerprint] = true
		}
	}

	for _, t := range txns {
		if t.Fingerprint != "" && seen[t.Fingerprint] {
			return fmt.Errorf("%w: %s", ErrFingerprintExists, t.Fingerprint)
		}
		if t.Fingerprint != "" {
			seen[t.Fingerprint] = true
		}
		ledger.Transactions = append(ledger.Transactions, t)
	}

	return f.save(ledger)
}

func (f *JSONFile) Between(from, to time.Time) ([]*domain.Transaction, error) {
	ledger, err := f.load()
	if err != nil {
		return nil, err
	}

	out := []*domain.Transaction{}
	for _, t := range ledger.Transactions {
		if !t.Date.Before(from) && !t.Date.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *JSONFile) Excluded() (map[string]bool, error) {
	ledger, err := f.load()
	if err != nil {
		return nil, err
	}

	out := map[string]bool{}
	for _, fp := range ledger.Excluded {
		out[fp] = true
	}
	return out, nil
}

func (f *JSONFile) Delete(id string) error {
	ledger, err := f.load()
	if err != nil {
		return err
	}

	kept := ledger.Transactions[:0]
	found := false
	for _, t := range ledger.Transactions {
		if t.ID == id {
			found = true
			if t.Fingerprint != "" {
				ledger.Excluded = append(ledger.Excluded, t.Fingerprint)
			}
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return fmt.Errorf("no transaction with id %s", id)
	}

	ledger.Transactions = kept
	return f.save(ledger)
}

func (f *JSONFile) load() (*jsonLedger, error) {
	ledger := &jsonLedger{}

	data, err := os.ReadFile(f.filename)
	if os.IsNotExist(err) {
		return ledger, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, ledger); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", f.filename, err)
	}
	return ledger, nil
}

func (f *JSONFile) save(ledger *jsonLedger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return err
	}
	return os.WriteFile(f.filename, data, 0644)
}
