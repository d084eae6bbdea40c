package repo

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/dzmitrysafronau/shop-project/internal/usecase"
	"github.com/shopspring/decimal"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// WithinTx runs fn inside one transaction. fn returning an error rolls
// everything back; commit errors surface to the caller. The row locks taken
// by LockCartLines live exactly as long as this transaction.
func (r *MySQLOrderRepo) WithinTx(ctx context.Context, fn func(tx usecase.CheckoutTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&checkoutTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type checkoutTx struct{ tx *sql.Tx }

// LockCartLines takes exclusive locks on the user's cart rows. A second
// checkout for the same user blocks here until the first commits, then sees
// an empty set.
func (t *checkoutTx) LockCartLines(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	rows, err := t.tx.QueryContext(ctx, `
SELECT ci.id, ci.product_id, ci.quantity, p.name, p.price
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = ?
ORDER BY ci.id
FOR UPDATE`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CartLine
	for rows.Next() {
		var (
			cl    domain.CartLine
			p     domain.Product
			price string
		)
		if err := rows.Scan(&cl.ID, &cl.ProductID, &cl.Quantity, &p.Name, &price); err != nil {
			return nil, err
		}
		if p.Price, err = parseDecimal(price); err != nil {
			return nil, err
		}
		p.ID = cl.ProductID
		cl.UserID = userID
		cl.Product = &p
		out = append(out, cl)
	}
	return out, rows.Err()
}

func (t *checkoutTx) InsertOrder(ctx context.Context, userID int64, createdAt time.Time) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, total, created_at) VALUES (?, 0, ?)`,
		userID, createdAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (t *checkoutTx) InsertOrderLines(ctx context.Context, orderID int64, lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(lines))
	args := make([]any, 0, len(lines)*4)
	for _, l := range lines {
		placeholders = append(placeholders, "(?,?,?,?)")
		args = append(args, orderID, l.ProductID, l.Price.StringFixed(2), l.Quantity)
	}
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO order_items (order_id, product_id, price, quantity) VALUES `+
			strings.Join(placeholders, ","), args...)
	return err
}

func (t *checkoutTx) SetOrderTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE orders SET total = ? WHERE id = ?`, total.StringFixed(2), orderID)
	return err
}

func (t *checkoutTx) DeleteCartLines(ctx context.Context, userID int64, lineIDs []int64) error {
	if len(lineIDs) == 0 {
		return nil
	}
	args := make([]any, 0, len(lineIDs)+1)
	args = append(args, userID)
	for _, id := range lineIDs {
		args = append(args, id)
	}
	_, err := t.tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = ? AND id IN (`+
			strings.TrimSuffix(strings.Repeat("?,", len(lineIDs)), ",")+`)`, args...)
	return err
}

// ListByUser loads the user's orders newest first, then their line
// snapshots in one extra query.
func (r *MySQLOrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, total, created_at
FROM orders WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		orders []domain.Order
		index  = map[int64]int{}
	)
	for rows.Next() {
		var (
			o     domain.Order
			total string
		)
		if err := rows.Scan(&o.ID, &o.UserID, &total, &o.CreatedAt); err != nil {
			return nil, err
		}
		if o.Total, err = parseDecimal(total); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	lineRows, err := r.db.QueryContext(ctx, `
SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.price, oi.quantity
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id IN (`+strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")+`)
ORDER BY oi.id`, ids...)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var (
			l     domain.OrderLine
			price string
		)
		if err := lineRows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &price, &l.Quantity); err != nil {
			return nil, err
		}
		if l.Price, err = parseDecimal(price); err != nil {
			return nil, err
		}
		i := index[l.OrderID]
		orders[i].Lines = append(orders[i].Lines, l)
	}
	return orders, lineRows.Err()
}

var (
	_ usecase.CheckoutStore = (*MySQLOrderRepo)(nil)
	_ usecase.OrderRepo     = (*MySQLOrderRepo)(nil)
)
