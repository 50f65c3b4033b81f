package checkout

import (
	"fmt"
	"strings"
	"unicode"

	"storefront/internal/pkg/errs"
)

// phoneSeparators are the non-digit characters accepted in a phone number.
const phoneSeparators = " -()."

// Customer identifies the shopper to the merchant.
type Customer struct {
	Name           string
	WhatsAppNumber string
}

// Validate checks the name is not blank and the number has exactly
// phoneDigits digits.
func (c Customer) Validate(phoneDigits int) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCustomerNameIsRequired
	}
	return ValidateWhatsAppNumber(c.WhatsAppNumber, phoneDigits)
}

// ValidateWhatsAppNumber accepts digits and the separators space, '-', '(',
// ')' and '.', and requires exactly digits digits.
func ValidateWhatsAppNumber(number string, digits int) error {
	if strings.TrimSpace(number) == "" {
		return ErrWhatsAppNumberIsRequired
	}

	count := 0
	for _, r := range number {
		switch {
		case unicode.IsDigit(r) && r <= unicode.MaxASCII:
			count++
		case strings.ContainsRune(phoneSeparators, r):
		default:
			return errs.NewValueIsInvalidErrorWithCause("whatsappNumber",
				fmt.Errorf("unexpected character %q", r))
		}
	}

	if count != digits {
		return errs.NewValueIsInvalidErrorWithCause("whatsappNumber",
			fmt.Errorf("has %d digits, want %d", count, digits))
	}
	return nil
}

// Digits strips every non-digit from a phone number.
func Digits(number string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
}
