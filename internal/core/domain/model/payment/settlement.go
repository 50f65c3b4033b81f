package payment

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
)

// Settlement is the outcome of paying amountDue with a cash amount.
type Settlement struct {
	IsValid   bool
	Change    kernel.Money
	Shortfall kernel.Money
	Message   string
}

// Settle compares tendered with due at currency precision. Change is never
// negative; Shortfall is only set when the payment does not cover due.
func Settle(tendered, due kernel.Money) Settlement {
	if tendered.LessThan(due) {
		shortfall := due.Sub(tendered)
		return Settlement{
			IsValid:   false,
			Change:    kernel.Zero(),
			Shortfall: shortfall,
			Message:   fmt.Sprintf("Insufficient amount, missing %s", shortfall.Format()),
		}
	}

	change := tendered.Sub(due)
	return Settlement{
		IsValid:   true,
		Change:    change,
		Shortfall: kernel.Zero(),
		Message:   fmt.Sprintf("Change: %s", change.Format()),
	}
}
