// Package order provides the Order aggregate: the immutable record of a
// finished checkout that is handed to the merchant.
//
// The package includes:
//   - Order: cart lines, customer, fulfilment, totals and payment as they were
//     at submission, plus the summary text sent to the merchant
//   - Status: the Pending -> Submitted | Unsaved lifecycle
//   - Summary rendering: a deterministic, line-oriented message
//
// Key business rules:
//   - The order number is the first 8 hex characters of the order ID, upper-cased
//   - Total is the subtotal plus the delivery fee; an undetermined fee adds nothing
//   - Cash orders record the tendered amount and the change
//   - Orders that could not be stored stay Unsaved until a retry stores them
package order
