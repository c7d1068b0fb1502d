package badges

import (
	"fmt"
	"strings"
)

// Category classifies what a transaction was for.
type Category string

const (
	CategoryFood               Category = "Food"
	CategoryGroceries          Category = "Groceries"
	CategoryTransport          Category = "Transport"
	CategoryBills              Category = "Bills"
	CategoryRent               Category = "Rent"
	CategoryUtilities          Category = "Utilities"
	CategoryShopping           Category = "Shopping"
	CategoryEntertainment      Category = "Entertainment"
	CategoryDiningOut          Category = "Dining Out"
	CategoryPersonalCare       Category = "Personal Care"
	CategoryGifts              Category = "Gifts & Celebrations"
	CategoryHealthFitness      Category = "Health & Fitness"
	CategorySubscriptions      Category = "Subscriptions"
	CategoryTravel             Category = "Travel"
	CategoryFuel               Category = "Fuel"
	CategorySalaryIncome       Category = "Salary / Income"
	CategoryInvestments        Category = "Investments"
	CategoryLoanPayments       Category = "Loan Payments"
	CategoryInsurance          Category = "Insurance"
	CategoryBusinessExpenses   Category = "Business Expenses"
	CategoryDonations          Category = "Donations / Charity"
	CategoryTaxes              Category = "Taxes"
	CategorySavings            Category = "Savings"
	CategoryEmergencyFund      Category = "Emergency Fund"
	CategoryCreditCardPayment  Category = "Credit Card Payment"
	CategoryInstallments       Category = "EMI / Installments"
	CategoryKidsFamily         Category = "Kids / Family Expenses"
	CategoryOnlineServices     Category = "Online Services"
	CategoryMaintenanceRepairs Category = "Maintenance / Repairs"
	CategoryPets               Category = "Pets"
	CategoryOther              Category = "Other"
	CategoryMiscellaneous      Category = "Miscellaneous"
)

// CategoryGroup is a labelled set of categories, in display order.
type CategoryGroup struct {
	Label      string
	Categories []Category
}

// CategoryGroups lists every category grouped the way the dashboard shows them.
var CategoryGroups = []CategoryGroup{
	{
		Label: "Daily Expenses",
		Categories: []Category{
			CategoryFood, CategoryGroceries, CategoryTransport,
			CategoryBills, CategoryRent, CategoryUtilities,
		},
	},
	{
		Label: "Lifestyle",
		Categories: []Category{
			CategoryShopping, CategoryEntertainment, CategoryDiningOut,
			CategoryPersonalCare, CategoryGifts, CategoryHealthFitness,
			CategorySubscriptions, CategoryTravel, CategoryFuel,
		},
	},
	{
		Label: "Finance",
		Categories: []Category{
			CategorySalaryIncome, CategoryInvestments, CategoryLoanPayments,
			CategoryInsurance, CategoryBusinessExpenses, CategoryDonations, CategoryTaxes,
		},
	},
	{
		Label: "Savings",
		Categories: []Category{
			CategorySavings, CategoryEmergencyFund,
			CategoryCreditCardPayment, CategoryInstallments,
		},
	},
	{
		Label: "Miscellaneous",
		Categories: []Category{
			CategoryKidsFamily, CategoryOnlineServices, CategoryMaintenanceRepairs,
			CategoryPets, CategoryOther, CategoryMiscellaneous,
		},
	},
}

var categoryIndex = func() map[string]Category {
	index := make(map[string]Category)
	for _, group := range CategoryGroups {
		for _, c := range group.Categories {
			index[strings.ToLower(string(c))] = c
		}
	}
	return index
}()

// ParseCategory resolves a category name, ignoring case and surrounding spaces.
func ParseCategory(name string) (Category, error) {
	c, ok := categoryIndex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown category %q", name)
	}
	return c, nil
}

// AllCategories returns every category in display order.
func AllCategories() []Category {
	all := make([]Category, 0, len(categoryIndex))
	for _, group := range CategoryGroups {
		all = append(all, group.Categories...)
	}
	return all
}
