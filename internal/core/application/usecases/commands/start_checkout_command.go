package commands

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrStartCheckoutCommandIsNotConstructed = errors.New(
		"StartCheckoutCommand must be created via NewStartCheckoutCommand constructor",
	)
	ErrCartLinesAreRequired = errors.New("at least one cart line is required")
)

// CartLine is one line of the shopper's cart as sent by the storefront.
type CartLine struct {
	CatalogItemID string
	Name          string
	Quantity      int
	UnitPrice     kernel.Money
	VariantLabel  string
	OptionLabels  []string
}

// StartCheckoutCommand opens a checkout session for a store's cart.
//
// Example:
//
//	cmd, err := NewStartCheckoutCommand(storeID, []CartLine{
//	    {CatalogItemID: "burger", Name: "Burger", Quantity: 3, UnitPrice: kernel.MustMoney("10")},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid cart: %w", err)
//	}
//	sessionID, err := handler.Handle(ctx, cmd)
type StartCheckoutCommand struct { //nolint:recvcheck //using for validation
	storeID kernel.UUID
	cart    cart.Cart

	guard guard.ConstructorGuard
}

// NewStartCheckoutCommand validates the store ID and merges the lines into a
// cart. Lines with the same item, variant and options are merged.
func NewStartCheckoutCommand(storeID kernel.UUID, lines []CartLine) (StartCheckoutCommand, error) {
	cmd := StartCheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStoreID(storeID),
		cmd.setLines(lines),
	); err != nil {
		return StartCheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrStartCheckoutCommandIsNotConstructed)
}

func (c StartCheckoutCommand) StoreID() kernel.UUID {
	return c.storeID
}

func (c StartCheckoutCommand) Cart() cart.Cart {
	return c.cart
}

func (c *StartCheckoutCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}

func (c *StartCheckoutCommand) setLines(lines []CartLine) error {
	if len(lines) == 0 {
		return ErrCartLinesAreRequired
	}

	var result cart.Cart
	var lineErrs []error
	for i, line := range lines {
		item, err := cart.NewItem(
			strings.TrimSpace(line.CatalogItemID),
			line.Name,
			line.Quantity,
			line.UnitPrice,
			line.VariantLabel,
			line.OptionLabels,
		)
		if err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", i, err))
			continue
		}
		if err = result.Add(item); err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", i, err))
		}
	}
	if err := errors.Join(lineErrs...); err != nil {
		return err
	}

	c.cart = result
	return nil
}
