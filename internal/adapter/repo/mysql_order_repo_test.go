package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/dzmitrysafronau/shop-project/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopNotifier struct{}

func (noopNotifier) OrderCreated(context.Context, usecase.OrderCreatedMsg) error { return nil }

func cartRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "product_id", "quantity", "name", "price"}).
		AddRow(1, 10, 2, "Product A", "10.00").
		AddRow(2, 11, 1, "Product B", "5.00")
}

// Drives the real checkout engine against the expected SQL sequence:
// lock, insert order, insert lines, set total, clear cart, commit.
func TestCheckoutTransactionCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(7)).
		WillReturnRows(cartRows())
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(42), int64(10), "10.00", int64(2), int64(42), int64(11), "5.00", int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectExec("UPDATE orders SET total").
		WithArgs("25.00", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(int64(7), int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	uc := usecase.NewCheckout(NewMySQLOrderRepo(db), noopNotifier{})
	order, err := uc.Execute(context.Background(), domain.User{ID: 7, Username: "u1"})
	require.NoError(t, err)

	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, "25.00", order.Total.StringFixed(2))
	require.Len(t, order.Lines, 2)
	assert.Equal(t, "10.00", order.Lines[0].Price.StringFixed(2))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutTransactionRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(7)).
		WillReturnRows(cartRows())
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	uc := usecase.NewCheckout(NewMySQLOrderRepo(db), noopNotifier{})
	_, err = uc.Execute(context.Background(), domain.User{ID: 7, Username: "u1"})
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutEmptyCartRollsBackCleanly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "quantity", "name", "price"}))
	mock.ExpectRollback()

	uc := usecase.NewCheckout(NewMySQLOrderRepo(db), noopNotifier{})
	_, err = uc.Execute(context.Background(), domain.User{ID: 7, Username: "u1"})
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM orders").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total", "created_at"}).
			AddRow(43, 7, "5.00", created).
			AddRow(42, 7, "25.00", created))
	mock.ExpectQuery("FROM order_items").
		WithArgs(int64(43), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "name", "price", "quantity"}).
			AddRow(1, 42, 10, "Product A", "10.00", 2).
			AddRow(2, 42, 11, "Product B", "5.00", 1).
			AddRow(3, 43, 11, "Product B", "5.00", 1))

	orders, err := NewMySQLOrderRepo(db).ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// newest first
	assert.Equal(t, int64(43), orders[0].ID)
	assert.Len(t, orders[0].Lines, 1)
	assert.Equal(t, int64(42), orders[1].ID)
	require.Len(t, orders[1].Lines, 2)
	assert.Equal(t, "Product A", orders[1].Lines[0].ProductName)
	assert.Equal(t, "25.00", orders[1].Total.StringFixed(2))

	assert.NoError(t, mock.ExpectationsWereMet())
}
