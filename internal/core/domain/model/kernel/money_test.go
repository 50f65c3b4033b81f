package kernel_test

import (
	"encoding/json"
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("rounds to currency precision", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.005"))

		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is zero dollars", func(t *testing.T) {
		var m kernel.Money

		assert.True(t, m.IsZero())
		assert.Equal(t, "$0.00", m.Format())
	})
}

func TestMoneyFromString(t *testing.T) {
	t.Run("parses plain amounts", func(t *testing.T) {
		m, err := kernel.MoneyFromString("25")

		require.NoError(t, err)
		assert.Equal(t, "25.00", m.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := kernel.MoneyFromString("ten")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	ten := kernel.MustMoney("10.00")
	twentyFive := kernel.MustMoney("25.00")

	assert.Equal(t, "55.00", ten.MulInt(3).Add(twentyFive).String())
	assert.Equal(t, "-15.00", ten.Sub(twentyFive).String())
	assert.Equal(t, "-$15.00", ten.Sub(twentyFive).Format())
	assert.Equal(t, "120.00", kernel.MustMoney("8").MulFloat(15).String())
	assert.Equal(t, "12.35", kernel.MustMoney("1.30").MulFloat(9.5).String())
	assert.True(t, twentyFive.Max(ten).Equal(twentyFive))
	assert.True(t, ten.Max(twentyFive).Equal(twentyFive))
	assert.True(t, ten.LessThan(twentyFive))
	assert.True(t, ten.GreaterThanOrEqual(kernel.MustMoney("10")))
	assert.True(t, ten.Sub(twentyFive).IsNegative())
	assert.True(t, ten.IsPositive())
}

func TestMoney_JSON(t *testing.T) {
	t.Run("encodes as fixed string", func(t *testing.T) {
		data, err := json.Marshal(kernel.MustMoney("70"))

		require.NoError(t, err)
		assert.JSONEq(t, `"70.00"`, string(data))
	})

	t.Run("decodes numbers and strings", func(t *testing.T) {
		var fromNumber, fromString kernel.Money

		require.NoError(t, json.Unmarshal([]byte(`12.5`), &fromNumber))
		require.NoError(t, json.Unmarshal([]byte(`"12.50"`), &fromString))
		assert.True(t, fromNumber.Equal(fromString))
	})
}
