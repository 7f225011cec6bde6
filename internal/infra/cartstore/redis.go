package cartstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coworkhub/internal/domain/order"
	"coworkhub/internal/pkg/config"
	"coworkhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCartStore keeps each member's café cart under a per-user key
// with a sliding TTL. A missing key is an empty cart, not an error.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client: client,
		ttl:    ttl,
	}
}

type cartLine struct {
	MenuItemID     uuid.UUID `json:"menu_item_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int64     `json:"quantity"`
	Instructions   *string   `json:"instructions,omitempty"`
}

func cartKey(userID uuid.UUID) string {
	return fmt.Sprintf("cart:%s", userID)
}

func (s *RedisCartStore) Get(ctx context.Context, userID uuid.UUID) (order.Cart, error) {
	val, err := s.client.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil {
		return order.Cart{}, nil
	}
	if err != nil {
		return order.Cart{}, errs.Wrap(err, "failed to get cart from redis")
	}

	var lines []cartLine
	if err := json.Unmarshal([]byte(val), &lines); err != nil {
		return order.Cart{}, errs.Wrap(err, "failed to unmarshal cart")
	}

	items := make([]order.Item, len(lines))
	for i, line := range lines {
		items[i] = order.Item{
			MenuItemID:     line.MenuItemID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			Instructions:   line.Instructions,
		}
	}
	return order.Cart{Items: items}, nil
}

func (s *RedisCartStore) Save(ctx context.Context, userID uuid.UUID, cart order.Cart) error {
	lines := make([]cartLine, len(cart.Items))
	for i, item := range cart.Items {
		lines[i] = cartLine{
			MenuItemID:     item.MenuItemID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			Instructions:   item.Instructions,
		}
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return errs.Wrap(err, "failed to marshal cart")
	}

	if err := s.client.Set(ctx, cartKey(userID), data, s.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to set cart in redis")
	}
	return nil
}

func (s *RedisCartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return errs.Wrap(err, "failed to delete cart from redis")
	}
	return nil
}

// Ping verifies the connection on startup.
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return errs.Wrap(err, "failed to ping redis")
	}
	return nil
}
