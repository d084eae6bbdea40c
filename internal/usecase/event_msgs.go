package usecase

// Published to the broker after a committed checkout; consumed by the
// notification worker.
type OrderCreatedMsg struct {
	OrderID  int64  `json:"order_id"`
	Username string `json:"username"`
	Total    string `json:"total"` // fixed 2-dp string, e.g. "25.00"
}
