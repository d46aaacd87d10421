// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// Category is one label from the fixed spending category vocabulary.
type Category string

// The category vocabulary. Every persisted transaction carries exactly one of
// these; CategoryOther is the classifier fallback for unmatched expenses.
const (
	CategoryFoodDining     Category = "Food & Dining"
	CategoryTransportation Category = "Transportation"
	CategoryGroceries      Category = "Groceries"
	CategoryShopping       Category = "Shopping"
	CategoryBillsUtilities Category = "Bills & Utilities"
	CategoryIncome         Category = "Income"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEntertainment  Category = "Entertainment"
	CategoryOther          Category = "Other"
)

// Categories returns the full vocabulary in display order.
func Categories() []Category {
	return []Category{
		CategoryFoodDining,
		CategoryTransportation,
		CategoryGroceries,
		CategoryShopping,
		CategoryBillsUtilities,
		CategoryIncome,
		CategoryHealthcare,
		CategoryEntertainment,
		CategoryOther,
	}
}

// Valid reports whether c is part of the vocabulary.
func (c Category) Valid() bool {
	switch c {
	case CategoryFoodDining, CategoryTransportation, CategoryGroceries,
		CategoryShopping, CategoryBillsUtilities, CategoryIncome,
		CategoryHealthcare, CategoryEntertainment, CategoryOther:
		return true
	}
	return false
}

// ParseCategory converts a stored label back into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}

// CategoryMeta carries the presentation metadata associated with a category.
type CategoryMeta struct {
	Icon  string
	Color string
}

// Meta returns the presentation metadata for a category. The mapping is
// exhaustive over the vocabulary; an invalid category panics rather than
// silently rendering as Other.
func (c Category) Meta() CategoryMeta {
	switch c {
	case CategoryFoodDining:
		return CategoryMeta{Icon: "Utensils", Color: "orange"}
	case CategoryTransportation:
		return CategoryMeta{Icon: "Car", Color: "blue"}
	case CategoryGroceries:
		return CategoryMeta{Icon: "ShoppingCart", Color: "green"}
	case CategoryShopping:
		return CategoryMeta{Icon: "ShoppingBag", Color: "purple"}
	case CategoryBillsUtilities:
		return CategoryMeta{Icon: "Receipt", Color: "yellow"}
	case CategoryIncome:
		return CategoryMeta{Icon: "TrendingUp", Color: "teal"}
	case CategoryHealthcare:
		return CategoryMeta{Icon: "Heart", Color: "red"}
	case CategoryEntertainment:
		return CategoryMeta{Icon: "Music", Color: "pink"}
	case CategoryOther:
		return CategoryMeta{Icon: "MoreHorizontal", Color: "gray"}
	}
	panic(fmt.Sprintf("no metadata for category %q", string(c)))
}
