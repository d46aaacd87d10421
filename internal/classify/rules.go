package classify

import "github.com/mwhite/centsible/internal/model"

// Rule maps a set of keyword tokens to a category. Keywords are matched as
// case-insensitive substrings of the transaction description or merchant.
type Rule struct {
	Category model.Category
	Keywords []string
}

// Rules returns the ordered rule table. Order is priority: the first rule
// with a matching keyword wins, so categorization results depend on this
// exact sequence.
func Rules() []Rule {
	return []Rule{
		{
			Category: model.CategoryFoodDining,
			Keywords: []string{"starbucks", "mcdonalds", "subway", "restaurant", "cafe", "pizza", "burger"},
		},
		{
			Category: model.CategoryTransportation,
			Keywords: []string{"shell", "exxon", "chevron", "gas", "uber", "lyft", "taxi", "parking"},
		},
		{
			Category: model.CategoryGroceries,
			Keywords: []string{"whole foods", "safeway", "kroger", "walmart", "grocery", "supermarket"},
		},
		{
			Category: model.CategoryShopping,
			Keywords: []string{"amazon", "target", "best buy", "apple", "store", "purchase"},
		},
		{
			Category: model.CategoryBillsUtilities,
			Keywords: []string{"rent", "mortgage", "property", "utilities", "electric", "water", "internet"},
		},
		{
			Category: model.CategoryIncome,
			Keywords: []string{"payroll", "salary", "deposit", "income", "refund", "cashback"},
		},
		{
			Category: model.CategoryHealthcare,
			Keywords: []string{"pharmacy", "doctor", "hospital", "medical", "health", "dental"},
		},
		{
			Category: model.CategoryEntertainment,
			Keywords: []string{"netflix", "spotify", "movie", "theater", "entertainment", "subscription"},
		},
	}
}
