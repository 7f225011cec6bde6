package commands

import (
	"context"
	"errors"
	"log/slog"

	"coworkhub/internal/domain/order"
	"coworkhub/internal/domain/pricing"
	reqdto "coworkhub/internal/handler/dto/request"
	"coworkhub/internal/infra"
	"coworkhub/internal/pkg/errs"
	"coworkhub/internal/pkg/metrics"
	"coworkhub/internal/usecase/queries"
	"coworkhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrMenuItemNotFound    = errs.New("menu item not found")
	ErrMenuItemUnavailable = errs.New("menu item unavailable")
	ErrCartEmpty           = errs.New("cart is empty")
	ErrCartItemNotInCart   = errs.New("item not in cart")
	ErrCartStoreFailed     = errs.New("cart store operation failed")
)

// CartQuote is what the member sees before confirming: the lines plus
// totals derived from them right now. Totals are never cached, a cart
// mutation always yields a fresh quote.
type CartQuote struct {
	Items         []order.Item
	SubtotalCents int64
	DiscountCents int64
	TotalCents    int64
}

type OrderCommands interface {
	AddItem(ctx context.Context, req reqdto.AddCartItemRequest, userID uuid.UUID) (*CartQuote, error)
	RemoveItem(ctx context.Context, menuItemID, userID uuid.UUID) (*CartQuote, error)
	QuoteCart(ctx context.Context, userID uuid.UUID) (*CartQuote, error)
	PlaceOrder(ctx context.Context, userID uuid.UUID) (*queries.OrderView, error)
}

type orderCommandsImpl struct {
	uow          shared.UnitOfWork
	cartStore    CartStore
	orderQueries queries.OrderQueries
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	cartStore CartStore,
	orderQueries queries.OrderQueries,
) OrderCommands {
	return &orderCommandsImpl{
		uow:          uow,
		cartStore:    cartStore,
		orderQueries: orderQueries,
	}
}

func (c *orderCommandsImpl) AddItem(ctx context.Context, req reqdto.AddCartItemRequest, userID uuid.UUID) (*CartQuote, error) {
	item, err := c.uow.CommandReads().MenuItemByID(ctx, req.MenuItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !item.Available {
		return nil, ErrMenuItemUnavailable
	}

	cart, err := c.cartStore.Get(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrCartStoreFailed)
	}

	// Same item again merges into one line
	merged := false
	for i := range cart.Items {
		if cart.Items[i].MenuItemID == req.MenuItemID {
			cart.Items[i].Quantity += req.Quantity
			cart.Items[i].Instructions = req.GetInstructions()
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, order.Item{
			MenuItemID:     item.ID,
			Name:           item.Name,
			UnitPriceCents: item.PriceCents,
			Quantity:       req.Quantity,
			Instructions:   req.GetInstructions(),
		})
	}

	if err := c.cartStore.Save(ctx, userID, cart); err != nil {
		return nil, errs.Mark(err, ErrCartStoreFailed)
	}
	return c.quote(ctx, userID, cart)
}

func (c *orderCommandsImpl) RemoveItem(ctx context.Context, menuItemID, userID uuid.UUID) (*CartQuote, error) {
	cart, err := c.cartStore.Get(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrCartStoreFailed)
	}

	kept := cart.Items[:0]
	found := false
	for _, item := range cart.Items {
		if item.MenuItemID == menuItemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, ErrCartItemNotInCart
	}
	cart.Items = kept

	if err := c.cartStore.Save(ctx, userID, cart); err != nil {
		return nil, errs.Mark(err, ErrCartStoreFailed)
	}
	return c.quote(ctx, userID, cart)
}

func (c *orderCommandsImpl) QuoteCart(ctx context.Context, userID uuid.UUID) (*CartQuote, error) {
	cart, err := c.cartStore.Get(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrCartStoreFailed)
	}
	return c.quote(ctx, userID, cart)
}

func (c *orderCommandsImpl) PlaceOrder(ctx context.Context, userID uuid.UUID) (*queries.OrderView, error) {
	cart, err := c.cartStore.Get(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrCartStoreFailed)
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	usr, err := c.uow.CommandReads().UserByID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	entity, err := order.NewOrder(userID, cart, usr.NFTHolder)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			return nil, ErrCartEmpty
		}
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var orderID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, createErr := tx.Orders().Create(ctx, tx.DB(), entity)
		if createErr != nil {
			return createErr
		}
		orderID = id
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := c.cartStore.Clear(ctx, userID); err != nil {
		// Order is durable; a stale cart only lingers until its TTL
		slog.Warn("failed to clear cart after order placement", "user_id", userID, "error", err.Error())
	}

	view, err := c.orderQueries.GetByIDSystem(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	metrics.IncOrderPlaced()
	return view, nil
}

func (c *orderCommandsImpl) quote(ctx context.Context, userID uuid.UUID, cart order.Cart) (*CartQuote, error) {
	usr, err := c.uow.CommandReads().UserByID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	totals := cart.Totals(usr.NFTHolder)
	return newCartQuote(cart, totals), nil
}

func newCartQuote(cart order.Cart, totals pricing.CartTotals) *CartQuote {
	return &CartQuote{
		Items:         cart.Items,
		SubtotalCents: totals.SubtotalCents,
		DiscountCents: totals.DiscountCents,
		TotalCents:    totals.TotalCents,
	}
}
