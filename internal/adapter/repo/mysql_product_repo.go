package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/dzmitrysafronau/shop-project/internal/usecase"
	"github.com/shopspring/decimal"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

// orderClause whitelists sortable columns; anything else falls back to id
// ascending. A '-' prefix flips direction.
func orderClause(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	col := strings.TrimPrefix(ordering, "-")
	switch col {
	case "id", "name", "price":
	default:
		return "id ASC"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

func (r *MySQLProductRepo) List(ctx context.Context, f usecase.ProductFilter) ([]domain.Product, int64, error) {
	var (
		where []string
		args  []any
	)
	if f.Query != "" {
		pat := "%" + f.Query + "%"
		where = append(where, "(name LIKE ? OR description LIKE ?)")
		args = append(args, pat, pat)
	}
	if f.Price != "" {
		where = append(where, "price = ?")
		args = append(args, f.Price)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+cond, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	q := "SELECT id,name,price,description,image FROM products" + cond +
		" ORDER BY " + orderClause(f.Ordering) + " LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, count, rows.Err()
}

func (r *MySQLProductRepo) Get(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id,name,price,description,image FROM products WHERE id=?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	return p, err
}

func (r *MySQLProductRepo) Create(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name,price,description,image) VALUES (?,?,?,?)`,
		p.Name, p.Price.StringFixed(2), nullable(p.Description), nullable(p.Image))
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLProductRepo) Update(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name=?,price=?,description=?,image=? WHERE id=?`,
		p.Name, p.Price.StringFixed(2), nullable(p.Description), nullable(p.Image), p.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// RowsAffected is also 0 for a no-op update; confirm existence.
		if _, err := r.Get(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *MySQLProductRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=?`, id)
	if err != nil {
		if isRowReferenced(err) {
			return domain.ErrProductInUse
		}
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p           domain.Product
		price       string
		desc, image sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &price, &desc, &image)
	if err != nil {
		return nil, err
	}
	if p.Price, err = parseDecimal(price); err != nil {
		return nil, err
	}
	p.Description = desc.String
	p.Image = image.String
	return &p, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)
