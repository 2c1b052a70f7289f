package domain

// Income categories.
const (
	CatSales       = "Sales"
	CatConsulting  = "Consulting"
	CatOtherIncome = "Other Income"
)

// Expense categories, following the SA103F self-employment supplement.
const (
	CatCostOfGoods   = "Cost of Goods"
	CatStaffCosts    = "Staff Costs"
	CatTravelVehicle = "Travel & Vehicle"
	CatPremises      = "Premises & Utilities"
	CatRepairs       = "Repairs & Maintenance"
	CatOfficeCosts   = "Office Costs"
	CatAdvertising   = "Advertising & Marketing"
	CatLoanInterest  = "Loan Interest"
	CatBankCharges   = "Bank Charges"
	CatBadDebts      = "Bad Debts"
	CatProfessional  = "Professional Fees"
	CatDepreciation  = "Depreciation"
	CatOtherExpenses = "Other Expenses"
)

var IncomeCategories = []string{
	CatSales,
	CatConsulting,
	CatOtherIncome,
}

var ExpenseCategories = []string{
	CatCostOfGoods,
	CatStaffCosts,
	CatTravelVehicle,
	CatPremises,
	CatRepairs,
	CatOfficeCosts,
	CatAdvertising,
	CatLoanInterest,
	CatBankCharges,
	CatBadDebts,
	CatProfessional,
	CatDepreciation,
	CatOtherExpenses,
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func ValidCategory(businessType BusinessType, category string) bool {
	switch businessType {
	case BusinessIncome:
		return contains(IncomeCategories, category)
	case BusinessExpense:
		return contains(ExpenseCategories, category)
	default:
		return category == ""
	}
}
