package repo

import (
	"context"
	"database/sql"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/dzmitrysafronau/shop-project/internal/usecase"
)

type MySQLCartRepo struct{ db *sql.DB }

func NewMySQLCartRepo(db *sql.DB) *MySQLCartRepo { return &MySQLCartRepo{db: db} }

const cartLineSelect = `
SELECT ci.id, ci.user_id, ci.product_id, ci.quantity,
       p.id, p.name, p.price, p.description, p.image
FROM cart_items ci
JOIN products p ON p.id = ci.product_id`

// Upsert is a single conditional increment: concurrent adds for the same
// (user, product) pair both land, neither overwrites the other.
func (r *MySQLCartRepo) Upsert(ctx context.Context, userID, productID, qty int64) (*domain.CartLine, error) {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?,?,?)
ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`,
		userID, productID, qty)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx,
		cartLineSelect+` WHERE ci.user_id=? AND ci.product_id=?`, userID, productID)
	return scanCartLine(row)
}

func (r *MySQLCartRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	rows, err := r.db.QueryContext(ctx,
		cartLineSelect+` WHERE ci.user_id=? ORDER BY ci.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CartLine
	for rows.Next() {
		cl, err := scanCartLine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *cl)
	}
	return out, rows.Err()
}

func (r *MySQLCartRepo) Delete(ctx context.Context, userID, lineID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id=? AND user_id=?`, lineID, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCartLineNotFound
	}
	return nil
}

func (r *MySQLCartRepo) DeleteByProduct(ctx context.Context, userID, productID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id=? AND product_id=?`, userID, productID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCartLineNotFound
	}
	return nil
}

func scanCartLine(row rowScanner) (*domain.CartLine, error) {
	var (
		cl          domain.CartLine
		p           domain.Product
		price       string
		desc, image sql.NullString
	)
	err := row.Scan(&cl.ID, &cl.UserID, &cl.ProductID, &cl.Quantity,
		&p.ID, &p.Name, &price, &desc, &image)
	if err != nil {
		return nil, err
	}
	if p.Price, err = parseDecimal(price); err != nil {
		return nil, err
	}
	p.Description = desc.String
	p.Image = image.String
	cl.Product = &p
	return &cl, nil
}

var _ usecase.CartRepo = (*MySQLCartRepo)(nil)
