package source

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mkale/taxkeep/pkg/domain"

	"github.com/shopspring/decimal"
)

const TagFeed = "import:feed"

// FeedSource reads a provider export: the JSON a live-sync API hands back,
// saved to a file. The shape mirrors open-banking aggregator responses.
type FeedSource struct {
	filename string
}

func NewFeed(filename string) *FeedSource {
	return &FeedSource{filename: filename}
}

func (s *FeedSource) Provenance() string { return TagFeed }

type feedReply struct {
	Results []feedTransaction `json:"results"`
}

type feedTransaction struct {
	ID          string      `json:"transaction_id"`
	Timestamp   string      `json:"timestamp"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Merchant    string      `json:"merchant_name"`
	Reference   string      `json:"provider_reference"`
}

func (s *FeedSource) Transactions(from, to time.Time) ([]*domain.Transaction, error) {
	data, err := os.ReadFile(s.filename)
	if err != nil {
		return nil, err
	}

	raw := &feedReply{}
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.filename, err)
	}

	txns := []*domain.Transaction{}
	for i, r := range raw.Results {
		t, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s result %d: %w", s.filename, i, err)
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		txns = append(txns, t)
	}

	return txns, nil
}

func (r feedTransaction) toDomain() (*domain.Transaction, error) {
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: bad timestamp %q", ErrBadRow, r.Timestamp)
	}

	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return nil, fmt.Errorf("%w: bad amount %q", ErrBadRow, r.Amount.String())
	}

	if r.Description == "" {
		return nil, fmt.Errorf("%w: empty description", ErrBadRow)
	}

	return &domain.Transaction{
		ID:          r.ID,
		Date:        ts.UTC(),
		Description: r.Description,
		Merchant:    r.Merchant,
		Reference:   r.Reference,
		Amount:      amount,
		Type:        domain.TypeUnreviewed,
		Status:      domain.StatusCleared,
	}, nil
}
