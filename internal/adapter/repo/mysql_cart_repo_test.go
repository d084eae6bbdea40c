package repo

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartLineRow(id, userID, productID, qty int64, name, price string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"ci.id", "ci.user_id", "ci.product_id", "ci.quantity",
		"p.id", "p.name", "p.price", "p.description", "p.image",
	}).AddRow(id, userID, productID, qty, productID, name, price, nil, nil)
}

func TestCartUpsertAccumulates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("ON DUPLICATE KEY UPDATE quantity").
		WithArgs(int64(7), int64(10), int64(2)).
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectQuery("FROM cart_items ci").
		WithArgs(int64(7), int64(10)).
		WillReturnRows(cartLineRow(1, 7, 10, 5, "Product A", "10.00"))

	line, err := NewMySQLCartRepo(db).Upsert(context.Background(), 7, 10, 2)
	require.NoError(t, err)

	// quantity reflects the post-increment row, not the delta
	assert.Equal(t, int64(5), line.Quantity)
	assert.Equal(t, "10.00", line.Product.Price.StringFixed(2))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartDeleteScopedToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewMySQLCartRepo(db).Delete(context.Background(), 7, 3)
	assert.ErrorIs(t, err, domain.ErrCartLineNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartDeleteByProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(int64(7), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewMySQLCartRepo(db).DeleteByProduct(context.Background(), 7, 10)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
