package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Description string // empty = not set
	Image       string // stored path/reference, empty = no image
}

// Validate enforces the catalog invariants: non-empty name, price >= 0.
func (p *Product) Validate() error {
	fields := map[string][]string{}
	if p.Name == "" {
		fields["name"] = []string{"This field may not be blank."}
	}
	if p.Price.IsNegative() {
		fields["price"] = []string{"Ensure this value is greater than or equal to 0."}
	}
	if len(fields) > 0 {
		return NewFieldError(fields)
	}
	return nil
}
