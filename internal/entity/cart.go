package domain

// CartLine is one (user, product) row of a cart. Quantity is always >= 1;
// a line that would reach quantity 0 is deleted instead.
type CartLine struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int64

	// Product is the live catalog row joined for display. Cart listings
	// reflect current prices, unlike order line snapshots.
	Product *Product
}
