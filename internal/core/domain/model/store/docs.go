// Package store holds the merchant configuration a checkout reads once at start:
// contact number, pickup origin, delivery policy and business hours.
package store
