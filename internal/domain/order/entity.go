package order

import (
	"errors"
	"time"

	"coworkhub/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart       = errors.New("cart has no items")
	ErrInvalidQuantity = errors.New("item quantity must be positive")
	ErrNegativePrice   = errors.New("item price cannot be negative")
)

// Item is one café order line.
type Item struct {
	MenuItemID     uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int64
	Instructions   *string
}

// Cart is the explicit aggregate handed to the pricing engine by
// value. Session persistence is an infrastructure concern; the cart
// itself holds no totals, they are always re-derived.
type Cart struct {
	Items []Item
}

func (c Cart) Lines() []pricing.LineItem {
	lines := make([]pricing.LineItem, len(c.Items))
	for i, item := range c.Items {
		lines[i] = pricing.LineItem{
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		}
	}
	return lines
}

// Totals quotes the cart with the current items. Adding or removing an
// item invalidates any previously shown discount by construction.
func (c Cart) Totals(nftHolder bool) pricing.CartTotals {
	return pricing.ComputeCartTotals(c.Lines(), nftHolder)
}

// Order is a placed café order with its totals snapshot frozen.
type Order struct {
	id            uuid.UUID
	userID        uuid.UUID
	items         []Item
	subtotalCents int64
	discountCents int64
	totalCents    int64
	nftDiscount   bool
	createdAt     time.Time
}

func NewOrder(userID uuid.UUID, cart Cart, nftHolder bool) (*Order, error) {
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, item := range cart.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.UnitPriceCents < 0 {
			return nil, ErrNegativePrice
		}
	}

	totals := cart.Totals(nftHolder)

	return &Order{
		id:            uuid.New(),
		userID:        userID,
		items:         cart.Items,
		subtotalCents: totals.SubtotalCents,
		discountCents: totals.DiscountCents,
		totalCents:    totals.TotalCents,
		nftDiscount:   nftHolder,
	}, nil
}

func ReconstructOrder(
	id, userID uuid.UUID,
	items []Item,
	subtotalCents, discountCents, totalCents int64,
	nftDiscount bool,
	createdAt time.Time,
) *Order {
	return &Order{
		id:            id,
		userID:        userID,
		items:         items,
		subtotalCents: subtotalCents,
		discountCents: discountCents,
		totalCents:    totalCents,
		nftDiscount:   nftDiscount,
		createdAt:     createdAt,
	}
}

func (o *Order) ID() uuid.UUID        { return o.id }
func (o *Order) UserID() uuid.UUID    { return o.userID }
func (o *Order) Items() []Item        { return o.items }
func (o *Order) SubtotalCents() int64 { return o.subtotalCents }
func (o *Order) DiscountCents() int64 { return o.discountCents }
func (o *Order) TotalCents() int64    { return o.totalCents }
func (o *Order) NFTDiscount() bool    { return o.nftDiscount }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
