package pricing

// LineItem is one cart line: a unit price in cents and a quantity.
type LineItem struct {
	UnitPriceCents int64
	Quantity       int64
}

// CartTotals is the derived amount breakdown for a cart. Discount is
// always recomputed from the current subtotal, never carried over from
// a previous quote.
type CartTotals struct {
	SubtotalCents int64
	DiscountCents int64
	TotalCents    int64
}

// ComputeCartTotals derives subtotal, loyalty discount and total for a
// sequence of line items. NFT holders get a flat 10% off the subtotal;
// the discount does not stack with anything else.
func ComputeCartTotals(items []LineItem, nftHolder bool) CartTotals {
	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPriceCents * item.Quantity
	}

	var discount int64
	if nftHolder {
		discount = NFTDiscountCents(subtotal)
	}

	return CartTotals{
		SubtotalCents: subtotal,
		DiscountCents: discount,
		TotalCents:    subtotal - discount,
	}
}
