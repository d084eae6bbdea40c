package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductValidate(t *testing.T) {
	t.Run("negative price rejected", func(t *testing.T) {
		p := Product{Name: "Bad", Price: decimal.RequireFromString("-1")}
		err := p.Validate()
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))

		detail, ok := DetailOf(err).(map[string][]string)
		require.True(t, ok)
		assert.Contains(t, detail, "price")
	})

	t.Run("zero price allowed", func(t *testing.T) {
		p := Product{Name: "Free", Price: decimal.Zero}
		assert.NoError(t, p.Validate())
	})

	t.Run("blank name rejected", func(t *testing.T) {
		p := Product{Name: "", Price: decimal.RequireFromString("10.00")}
		err := p.Validate()
		require.Error(t, err)

		detail := DetailOf(err).(map[string][]string)
		assert.Contains(t, detail, "name")
	})
}

func TestOrderLineSubtotal(t *testing.T) {
	l := OrderLine{Price: decimal.RequireFromString("10.00"), Quantity: 3}
	assert.Equal(t, "30.00", l.Subtotal().StringFixed(2))
}

func TestRegistrationValidate(t *testing.T) {
	valid := Registration{Username: "u1", Email: "u1@example.com", Password: "password123"}
	assert.NoError(t, valid.Validate())

	short := valid
	short.Password = "short"
	err := short.Validate()
	require.Error(t, err)
	assert.Contains(t, DetailOf(err).(map[string][]string), "password")

	badMail := valid
	badMail.Email = "not-an-email"
	err = badMail.Validate()
	require.Error(t, err)
	assert.Contains(t, DetailOf(err).(map[string][]string), "email")
}

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:       422,
		KindNotFound:         404,
		KindNotAuthenticated: 401,
		KindPermissionDenied: 403,
		KindInvalidState:     400,
		KindConflict:         409,
		KindInternal:         500,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.HTTPStatus(), string(kind))
	}
}
