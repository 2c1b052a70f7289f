/*
Package config loads per-tax-year rate tables.

Rates ship with built-in defaults for recent years; a JSON file can add
years or override the bundled numbers.
*/
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mkale/taxkeep/pkg/tax"

	"github.com/shopspring/decimal"
)

type Config struct {
	Years map[string]tax.Year `json:"years"`
}

// Defaults returns the bundled rate tables. 2023/24 is the year the Class 4
// main rate was still 9%; both variants exist as data so reports for either
// year agree with themselves.
func Defaults() *Config {
	current := tax.Default()

	previous := tax.Default()
	previous.Label = "2023-24"
	previous.Class4MainRate = decimal.NewFromFloat(0.09)

	return &Config{
		Years: map[string]tax.Year{
			current.Label:  current,
			previous.Label: previous,
		},
	}
}

// Load merges the rate file at path over the defaults. An empty path means
// defaults only.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rates file: %w", err)
	}

	loaded := &Config{}
	if err := json.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parse rates file %s: %w", path, err)
	}

	for label, year := range loaded.Years {
		if year.Label == "" {
			year.Label = label
		}
		if err := year.Validate(); err != nil {
			return nil, fmt.Errorf("rates file %s: %w", path, err)
		}
		cfg.Years[label] = year
	}

	return cfg, nil
}

// Year looks up the rate table for a tax year label such as "2024-25".
func (c *Config) Year(label string) (tax.Year, error) {
	y, ok := c.Years[label]
	if !ok {
		return tax.Year{}, fmt.Errorf("no rates known for tax year %q", label)
	}
	return y, nil
}

// YearStarting maps a start year (2024 for the year beginning 6 April
// 2024) to its rate table.
func (c *Config) YearStarting(startYear int) (tax.Year, error) {
	return c.Year(fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100))
}
