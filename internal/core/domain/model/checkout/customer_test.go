package checkout_test

import (
	"testing"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWhatsAppNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		valid  bool
	}{
		{"plain digits", "5550102030", true},
		{"with separators", "(555) 010-2030", true},
		{"dotted", "555.010.2030", true},
		{"too short", "555010203", false},
		{"too long", "55501020301", false},
		{"letters", "555O102030", false},
		{"plus sign", "+5550102030", false},
		{"blank", "   ", false},
		{"separators only", "() - .", false},
		{"non-ascii digits", "५५५0102030", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkout.ValidateWhatsAppNumber(tt.number, 10)
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
		})
	}

	t.Run("digit count is a parameter", func(t *testing.T) {
		require.NoError(t, checkout.ValidateWhatsAppNumber("555 0102 0304", 11))
		require.ErrorIs(t, checkout.ValidateWhatsAppNumber("5550102030", 11), errs.ErrValueIsInvalid)
	})
}

func TestCustomer_Validate(t *testing.T) {
	for _, name := range []string{"", " ", "\t\n"} {
		err := checkout.Customer{Name: name, WhatsAppNumber: "5550102030"}.Validate(10)

		require.ErrorIs(t, err, checkout.ErrCustomerNameIsRequired)
	}

	require.NoError(t, checkout.Customer{Name: "Ana", WhatsAppNumber: "5550102030"}.Validate(10))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "5550102030", checkout.Digits("(555) 010-2030"))
}
