// Package cart models the shopper's cart: immutable Item records merged by key.
//
// Key business rules:
//   - Quantity is a positive integer and unit prices are non-negative
//   - Adding an item whose key (catalog item, variant, option selection) already
//     exists increments that line instead of adding a duplicate
//   - Setting a quantity to zero removes the line
package cart
