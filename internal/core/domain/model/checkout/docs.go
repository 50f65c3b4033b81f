// Package checkout implements the guided checkout of a storefront cart.
//
// A Session holds everything the shopper entered so far, plus snapshots of the
// store configuration and the cart taken when the checkout started. A Flow
// moves a Session through an ordered list of steps:
//
//	CustomerInfo → DeliveryMethod → [Address] → Payment → Confirm → Submitted
//
// Each step has a validator that gates forward moves and an optional inclusion
// predicate; Address is only part of the path for delivery orders. Moving back
// always follows the path actually taken.
//
// Delivery quotes for an address are requested with Session.BeginQuote and
// applied with Session.ApplyQuote. Only the result of the latest request is
// kept; results for superseded or cancelled requests are ignored.
//
// Submission is gated by Flow.BeginSubmission, which refuses a second
// submission while one is in flight, a missing or stale delivery quote and a
// closed store.
package checkout
