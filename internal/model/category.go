package model

// Category classifies purchases and avoided purchases.
type Category string

const (
	CategoryDining        Category = "dining"
	CategoryGroceries     Category = "groceries"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryTransport     Category = "transport"
	CategorySubscriptions Category = "subscriptions"
	CategoryOther         Category = "other"
)

// Categories returns all known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryDining,
		CategoryGroceries,
		CategoryEntertainment,
		CategoryShopping,
		CategoryTransport,
		CategorySubscriptions,
		CategoryOther,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryDining, CategoryGroceries, CategoryEntertainment,
		CategoryShopping, CategoryTransport, CategorySubscriptions, CategoryOther:
		return true
	}
	return false
}
