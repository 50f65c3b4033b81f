// Package services provides domain services that coordinate business
// operations spanning several domain models of the storefront checkout.
//
// The package includes:
//   - DeliveryPricer: turns a store's delivery policy and a destination into a Quote,
//     consulting the distance service or zone resolver when the policy needs them
//   - OrderDraftBuilder: turns a checkout session on its final step into an Order
//
// Domain services contain no persistence; collaborators are reached through
// the interfaces in package ports.
package services
