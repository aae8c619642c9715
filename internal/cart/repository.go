package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Repository is the durable key-value store for cart snapshots.
// Load returns (nil, nil) when no cart exists for the identifier.
type Repository interface {
	Load(ctx context.Context, cartID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
}

type repository struct {
	db *sql.DB
}

// NewRepository creates a Postgres-backed cart store. Each cart is a
// single JSON snapshot row, upserted as a whole so a partially applied
// mutation can never become visible.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Load(ctx context.Context, cartID string) (*Cart, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT payload
		FROM cart_snapshots
		WHERE cart_id = $1
	`, cartID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
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

func (r *repository) Save(ctx context.Context, c *Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cart_snapshots (cart_id, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (cart_id)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`, c.ID, payload)
	return err
}
