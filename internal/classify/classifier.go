// Package classify assigns spending categories to raw transaction records
// using an ordered keyword rule table.
package classify

import (
	"strings"

	"github.com/mwhite/centsible/internal/model"
)

var rules = Rules()

// Classify returns the category for a raw record. It is a pure function of
// the record's description, merchant, amount, and declared type: the first
// rule whose keywords match wins, and unmatched records fall back to Income
// or Other depending on the resolved transaction type. A missing merchant is
// treated as the empty string; Classify never fails.
func Classify(r model.RawRecord) model.Category {
	description := strings.ToLower(r.Description)
	merchant := strings.ToLower(r.Merchant)

	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(description, keyword) || strings.Contains(merchant, keyword) {
				return rule.Category
			}
		}
	}

	if r.ResolveType() == model.TypeIncome {
		return model.CategoryIncome
	}
	return model.CategoryOther
}
