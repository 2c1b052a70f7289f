package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkale/taxkeep/pkg/domain"

	"github.com/stretchr/testify/assert"
)

func writeRules(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "rules.json")
	assert.Nil(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadRulesKeepsFileOrder(t *testing.T) {
	path := writeRules(t, `[
		{"id": "r1", "keyword": "uber", "type": "Business", "business_type": "Expense", "category": "Travel & Vehicle"},
		{"id": "r2", "keyword": "netflix", "type": "Personal"}
	]`)

	rules, err := LoadRules(path)

	assert.Nil(t, err)
	assert.Len(t, rules, 2)
	assert.Equal(t, "r1", rules[0].ID)
	assert.Equal(t, domain.CatTravelVehicle, rules[0].Category)
	assert.Equal(t, "r2", rules[1].ID)
}

func TestLoadRulesRejectsMissingKeyword(t *testing.T) {
	path := writeRules(t, `[{"id": "r1", "type": "Personal"}]`)

	_, err := LoadRules(path)
	assert.NotNil(t, err)
}

func TestLoadRulesRejectsBusinessRuleWithoutBusinessType(t *testing.T) {
	path := writeRules(t, `[{"id": "r1", "keyword": "tfl", "type": "Business"}]`)

	_, err := LoadRules(path)
	assert.NotNil(t, err)
}

func TestLoadRulesRejectsUnknownCategory(t *testing.T) {
	path := writeRules(t, `[
		{"id": "r1", "keyword": "uber", "type": "Business", "business_type": "Expense", "category": "Fun Money"}
	]`)

	_, err := LoadRules(path)
	assert.NotNil(t, err)
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules("/nonexistent/rules.json")
	assert.NotNil(t, err)
}
