// Package delivery defines a store's delivery pricing policy and the quotes it produces.
//
// A store has exactly one active Policy:
//   - FlatBasePolicy: a fixed fee, waived when the subtotal reaches a free threshold
//   - DistancePolicy: price per km with a minimum fee and a maximum distance
//   - ZonePolicy: a fixed price per merchant-defined zone
//   - ManualPolicy: the fee is settled with the merchant after the order is sent
//
// A Quote is the result of pricing one destination. It is only valid for the
// destination it was computed against; see Quote.IsFreshFor.
package delivery
