package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/dzmitrysafronau/shop-project/internal/usecase"
)

type MySQLUserRepo struct{ db *sql.DB }

func NewMySQLUserRepo(db *sql.DB) *MySQLUserRepo { return &MySQLUserRepo{db: db} }

func (r *MySQLUserRepo) Create(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, email, password_hash, is_admin, created_at)
VALUES (?,?,?,?,NOW())`,
		u.Username, u.Email, u.PasswordHash, u.IsAdmin)
	if err != nil {
		if isDupEntry(err) {
			return dupUserError(err)
		}
		return err
	}
	u.ID, err = res.LastInsertId()
	return err
}

// dupUserError maps a unique-key violation to a field-level validation
// error; the key name in the server message tells us which field collided.
func dupUserError(err error) error {
	if strings.Contains(err.Error(), "email") {
		return domain.NewFieldError(map[string][]string{
			"email": {"A user with this e-mail already exists."},
		})
	}
	return domain.NewFieldError(map[string][]string{
		"username": {"A user with that username already exists."},
	})
}

func (r *MySQLUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, email, password_hash, is_admin, created_at
FROM users WHERE username = ?`, username)

	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

var _ usecase.UserRepo = (*MySQLUserRepo)(nil)
