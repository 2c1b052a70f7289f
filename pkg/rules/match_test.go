package rules

import (
	"testing"

	"github.com/mkale/taxkeep/pkg/domain"

	"github.com/stretchr/testify/assert"
)

func TestMatchMerchantCaseInsensitive(t *testing.T) {
	txn := &domain.Transaction{Merchant: "Uber Trip"}
	ruleset := []domain.CategorizationRule{
		{
			ID:           "r1",
			Keyword:      "uber",
			Type:         domain.TypeBusiness,
			BusinessType: domain.BusinessExpense,
			Category:     domain.CatTravelVehicle,
		},
	}

	s, ok := Match(txn, ruleset)

	assert.True(t, ok)
	assert.Equal(t, domain.TypeBusiness, s.Type)
	assert.Equal(t, domain.BusinessExpense, s.BusinessType)
	assert.Equal(t, domain.CatTravelVehicle, s.Category)
}

func TestMatchFirstRuleWins(t *testing.T) {
	txn := &domain.Transaction{Description: "AMAZON MARKETPLACE"}
	ruleset := []domain.CategorizationRule{
		{ID: "r1", Keyword: "amazon", Type: domain.TypeBusiness, BusinessType: domain.BusinessExpense, Category: domain.CatOfficeCosts},
		{ID: "r2", Keyword: "amazon", Type: domain.TypePersonal},
	}

	s, ok := Match(txn, ruleset)

	assert.True(t, ok)
	assert.Equal(t, "r1", s.RuleID)
}

func TestMatchSearchesDescriptionMerchantReference(t *testing.T) {
	ruleset := []domain.CategorizationRule{
		{ID: "r1", Keyword: "invoice-77", Type: domain.TypeBusiness, BusinessType: domain.BusinessIncome, Category: domain.CatSales},
	}

	byRef := &domain.Transaction{Description: "BACS CREDIT", Reference: "INVOICE-77"}
	s, ok := Match(byRef, ruleset)
	assert.True(t, ok)
	assert.Equal(t, domain.CatSales, s.Category)

	byDesc := &domain.Transaction{Description: "payment invoice-77 thanks"}
	_, ok = Match(byDesc, ruleset)
	assert.True(t, ok)
}

func TestMatchNoRuleMatches(t *testing.T) {
	txn := &domain.Transaction{Description: "GREGGS LEEDS"}
	ruleset := []domain.CategorizationRule{
		{ID: "r1", Keyword: "uber", Type: domain.TypeBusiness, BusinessType: domain.BusinessExpense, Category: domain.CatTravelVehicle},
	}

	s, ok := Match(txn, ruleset)

	assert.False(t, ok)
	assert.Nil(t, s)
}

func TestMatchPersonalRuleCarriesNoBusinessFields(t *testing.T) {
	txn := &domain.Transaction{Description: "NETFLIX.COM"}
	ruleset := []domain.CategorizationRule{
		{ID: "r1", Keyword: "netflix", Type: domain.TypePersonal, BusinessType: domain.BusinessExpense, Category: domain.CatOtherExpenses},
	}

	s, ok := Match(txn, ruleset)

	assert.True(t, ok)
	assert.Equal(t, domain.TypePersonal, s.Type)
	assert.Empty(t, string(s.BusinessType))
	assert.Empty(t, s.Category)
}

func TestApplySetsFieldsTogether(t *testing.T) {
	txn := &domain.Transaction{Description: "Uber Trip", Type: domain.TypeUnreviewed}
	s := &Suggestion{Type: domain.TypeBusiness, BusinessType: domain.BusinessExpense, Category: domain.CatTravelVehicle}

	s.Apply(txn)

	assert.Equal(t, domain.TypeBusiness, txn.Type)
	assert.Equal(t, domain.BusinessExpense, txn.BusinessType)
	assert.Equal(t, domain.CatTravelVehicle, txn.Category)
	assert.Nil(t, txn.Validate())
}

func TestMatchIgnoresEmptyKeyword(t *testing.T) {
	txn := &domain.Transaction{Description: "anything"}
	ruleset := []domain.CategorizationRule{
		{ID: "r1", Keyword: "   ", Type: domain.TypePersonal},
	}

	_, ok := Match(txn, ruleset)
	assert.False(t, ok)
}
