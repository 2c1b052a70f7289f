package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mkale/taxkeep/pkg/domain"

	"github.com/shopspring/decimal"
)

// csv date layouts seen across UK bank statement exports
var csvDateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

const TagCSV = domain.TagBulkImport

// CSVSource reads a bank statement CSV export. The header row names the
// columns; date, amount and description are required, reference and
// merchant are optional.
type CSVSource struct {
	filename string
}

func NewCSV(filename string) *CSVSource {
	return &CSVSource{filename: filename}
}

func (s *CSVSource) Provenance() string { return TagCSV }

func (s *CSVSource) Transactions(from, to time.Time) ([]*domain.Transaction, error) {
	f, err := os.Open(s.filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.filename, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: empty file", s.filename)
	}

	cols, err := headerIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.filename, err)
	}

	txns := []*domain.Transaction{}
	for i, record := range records[1:] {
		line := i + 2 // 1-based, after header

		t, err := parseRow(record, cols)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", s.filename, line, err)
		}

		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		txns = append(txns, t)
	}

	return txns, nil
}

type columns struct {
	date, amount, description int
	reference, merchant       int // -1 when absent
}

func headerIndex(header []string) (*columns, error) {
	cols := &columns{date: -1, amount: -1, description: -1, reference: -1, merchant: -1}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "amount":
			cols.amount = i
		case "description":
			cols.description = i
		case "reference":
			cols.reference = i
		case "merchant":
			cols.merchant = i
		}
	}

	if cols.date < 0 || cols.amount < 0 || cols.description < 0 {
		return nil, fmt.Errorf("header must name date, amount and description columns")
	}
	return cols, nil
}

func parseRow(record []string, cols *columns) (*domain.Transaction, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := parseDate(field(cols.date))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRow, err)
	}

	amount, err := decimal.NewFromString(field(cols.amount))
	if err != nil {
		return nil, fmt.Errorf("%w: bad amount %q", ErrBadRow, field(cols.amount))
	}

	description := field(cols.description)
	if description == "" {
		return nil, fmt.Errorf("%w: empty description", ErrBadRow)
	}

	return &domain.Transaction{
		Date:        date,
		Description: description,
		Merchant:    field(cols.merchant),
		Reference:   field(cols.reference),
		Amount:      amount,
		Type:        domain.TypeUnreviewed,
		Status:      domain.StatusCleared,
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad date %q", raw)
}
