package model

// Category identifies a class of financial items that require sign-off.
type Category string

const (
	CategoryPayouts  Category = "payouts"
	CategorySalaries Category = "salaries"
	CategoryInvoices Category = "invoices"
)

// Categories returns all categories in the order they are processed.
func Categories() []Category {
	return []Category{CategoryPayouts, CategorySalaries, CategoryInvoices}
}

func (c Category) String() string {
	return string(c)
}
