package order

import (
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/payment"
)

// renderSummary writes the merchant message. The output depends only on the
// order, so the same order always renders the same text.
func renderSummary(o *Order) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("*New order #%s*", o.Number())
	line("Customer: %s", o.customer.Name)
	line("WhatsApp: %s", o.customer.WhatsAppNumber)

	line("")
	line("*Items*")
	for _, item := range o.items {
		line("%dx %s - %s", item.Quantity(), item.Name(), item.LineTotal().Format())
		if item.VariantLabel() != "" {
			line("  Variant: %s", item.VariantLabel())
		}
		if options := item.OptionLabels(); len(options) > 0 {
			line("  Options: %s", strings.Join(options, ", "))
		}
	}

	line("")
	if o.fulfilment.Method.IsDelivery() {
		line("Delivery to: %s", formatAddress(*o.fulfilment.Address))
		if ref := o.fulfilment.Address.Field(checkout.AddressReference); ref != "" {
			line("Reference: %s", ref)
		}
	} else {
		line("Pickup at store")
	}

	line("")
	line("Subtotal: %s", o.subtotal.Format())
	if o.fulfilment.Method.IsDelivery() {
		if fee, ok := o.DeliveryFee(); ok {
			line("Delivery: %s", fee.Format())
		} else if o.fulfilment.FeeMessage != "" {
			line("Delivery: to be confirmed (%s)", o.fulfilment.FeeMessage)
		} else {
			line("Delivery: to be confirmed")
		}
	}
	line("Total: %s", o.total.Format())

	line("")
	line("Payment: %s", o.payment.Method().Label())
	if tendered, ok := o.payment.Tendered(); ok && o.payment.Method() == payment.MethodCash {
		change, _ := o.Change()
		line("Pays with: %s", tendered.Format())
		line("Change: %s", change.Format())
	}

	if o.observations != "" {
		line("")
		line("Notes: %s", o.observations)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func formatAddress(a checkout.Address) string {
	place := string(a.DwellingType)
	if unit := a.Field(checkout.AddressUnit); unit != "" {
		if place == "" {
			place = unit
		} else {
			place += ", " + unit
		}
	}

	text := strings.TrimSpace(a.Field(checkout.AddressStreet) + " " + a.Field(checkout.AddressNumber))
	if n := a.Field(checkout.AddressNeighborhood); n != "" {
		text += ", " + n
	}
	if place != "" {
		text += " (" + place + ")"
	}
	return text
}
