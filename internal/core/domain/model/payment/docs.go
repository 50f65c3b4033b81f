// Package payment models how a shopper pays and settles cash payments.
//
// Cash payments carry the amount the shopper will hand over; Settle compares it
// with the amount due at currency precision and reports change or shortfall.
package payment
