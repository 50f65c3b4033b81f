package cart

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	// ErrItemIsNotConstructed is returned when using an Item that bypassed NewItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
	// ErrCatalogItemIDIsRequired is returned when an item has no catalog reference.
	ErrCatalogItemIDIsRequired = errs.NewValueIsRequiredError("catalogItemID")
	// ErrItemNameIsRequired is returned when an item has no display name.
	ErrItemNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Key identifies a cart line for merge-on-add semantics.
type Key struct {
	CatalogItemID string
	Variant       string
	Options       string
}

// Item is one cart line. It is immutable: WithQuantity returns a new Item.
type Item struct { //nolint:recvcheck //using for validation
	catalogItemID string
	name          string
	quantity      int
	unitPrice     kernel.Money
	variantLabel  string
	optionLabels  []string

	guard guard.ConstructorGuard
}

// NewItem validates and builds a cart line. variantLabel may be empty;
// optionLabels keep the order in which the shopper picked them.
func NewItem(
	catalogItemID string,
	name string,
	quantity int,
	unitPrice kernel.Money,
	variantLabel string,
	optionLabels []string,
) (Item, error) {
	item := Item{
		variantLabel: strings.TrimSpace(variantLabel),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setCatalogItemID(catalogItemID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		item.setOptionLabels(optionLabels),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) CatalogItemID() string {
	return i.catalogItemID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i Item) VariantLabel() string {
	return i.variantLabel
}

// OptionLabels returns a copy of the selected option labels in selection order.
func (i Item) OptionLabels() []string {
	return slices.Clone(i.optionLabels)
}

// LineTotal is unit price times quantity.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}

// Key returns the merge key. Option labels are compared as a set.
func (i Item) Key() Key {
	options := slices.Clone(i.optionLabels)
	slices.Sort(options)
	return Key{
		CatalogItemID: i.catalogItemID,
		Variant:       i.variantLabel,
		Options:       strings.Join(options, "\x1f"),
	}
}

// WithQuantity returns a copy of the item with a new quantity.
func (i Item) WithQuantity(quantity int) (Item, error) {
	if err := i.Validate(); err != nil {
		return Item{}, err
	}
	next := i
	next.optionLabels = slices.Clone(i.optionLabels)
	if err := next.setQuantity(quantity); err != nil {
		return Item{}, err
	}
	return next, nil
}

func (i *Item) setCatalogItemID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrCatalogItemIDIsRequired
	}
	i.catalogItemID = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrItemNameIsRequired
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", kernel.ErrMoneyIsNegative)
	}
	i.unitPrice = price
	return nil
}

func (i *Item) setOptionLabels(labels []string) error {
	cleaned := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			return errs.NewValueIsInvalidErrorWithCause("optionLabels", errors.New("option label is empty"))
		}
		cleaned = append(cleaned, label)
	}
	i.optionLabels = cleaned
	return nil
}
