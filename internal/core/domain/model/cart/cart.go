package cart

import (
	"errors"
	"slices"

	"storefront/internal/core/domain/model/kernel"
)

// ErrItemNotFound is returned when a key matches no cart line.
var ErrItemNotFound = errors.New("cart item not found")

// Cart is an ordered list of Items with unique keys.
// The zero value is an empty cart ready to use.
type Cart struct {
	items []Item
}

// NewCart builds a cart by adding each item in order, merging duplicates.
func NewCart(items ...Item) (Cart, error) {
	var c Cart
	for _, item := range items {
		if err := c.Add(item); err != nil {
			return Cart{}, err
		}
	}
	return c, nil
}

// Add appends item, or increments the quantity of the line with the same key.
func (c *Cart) Add(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	idx := c.indexOf(item.Key())
	if idx < 0 {
		c.items = append(c.items, item)
		return nil
	}

	merged, err := c.items[idx].WithQuantity(c.items[idx].Quantity() + item.Quantity())
	if err != nil {
		return err
	}
	c.items[idx] = merged
	return nil
}

// SetQuantity replaces the line's quantity; zero removes the line.
func (c *Cart) SetQuantity(key Key, quantity int) error {
	if quantity == 0 {
		return c.Remove(key)
	}

	idx := c.indexOf(key)
	if idx < 0 {
		return ErrItemNotFound
	}

	updated, err := c.items[idx].WithQuantity(quantity)
	if err != nil {
		return err
	}
	c.items[idx] = updated
	return nil
}

// Remove deletes the line with the given key.
func (c *Cart) Remove(key Key) error {
	idx := c.indexOf(key)
	if idx < 0 {
		return ErrItemNotFound
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	return nil
}

// Items returns a copy of the lines in insertion order.
func (c Cart) Items() []Item {
	return slices.Clone(c.items)
}

func (c Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// ItemCount is the total number of units across lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity()
	}
	return count
}

// Subtotal is the sum of line totals.
func (c Cart) Subtotal() kernel.Money {
	total := kernel.Zero()
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (c Cart) indexOf(key Key) int {
	return slices.IndexFunc(c.items, func(item Item) bool {
		return item.Key() == key
	})
}
