package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// cartTTL keeps abandoned carts around long enough to survive a return
// visit without accumulating forever.
const cartTTL = 30 * 24 * time.Hour

type redisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a Redis-backed cart store.
func NewRedisRepository(client *redis.Client) Repository {
	return &redisRepository{client: client}
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}

func (r *redisRepository) Load(ctx context.Context, cartID string) (*Cart, error) {
	payload, err := r.client.Get(ctx, cartKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var c Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("corrupt cart snapshot: %w", err)
	}
	if c.Items == nil {
		c.Items = []*Item{}
	}
	return &c, nil
}

func (r *redisRepository) Save(ctx context.Context, c *Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cartKey(c.ID), payload, cartTTL).Err()
}
