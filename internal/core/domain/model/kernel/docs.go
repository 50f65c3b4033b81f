// Package kernel provides the shared value objects of the storefront domain.
//
// The package includes:
//   - UUID: identifiers for checkout sessions, orders and stores
//   - Money: currency amounts with two-decimal precision
//   - Coordinates: geographic points used for delivery quoting
//
// All values are immutable. Zero values are invalid and fail Validate; build them
// through their constructors.
package kernel
