package cart

import (
	"context"
	"fmt"
	"time"

	"verbena-be/internal/logger"
	"verbena-be/internal/metrics"

	"go.uber.org/zap"
)

// Service defines the business logic for carts. Every mutation is
// write-through: the updated cart is persisted before the call returns,
// and a failed save surfaces an error while the persisted copy keeps
// its pre-operation value.
type Service interface {
	Get(ctx context.Context, cartID string) (*Cart, error)
	Add(ctx context.Context, cartID string, params AddItemParams) (*Cart, error)
	SetQuantity(ctx context.Context, cartID, productID, variantID string, quantity int) (*Cart, error)
	Remove(ctx context.Context, cartID, productID, variantID string) (*Cart, error)
	Clear(ctx context.Context, cartID string) (*Cart, error)
}

// AddItemParams carries the resolved (product, variant) tuple plus the
// display snapshot taken at add time.
type AddItemParams struct {
	ProductID string
	VariantID string
	Title     string
	ImageURL  *string
	UnitPrice float64
	Quantity  int
}

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new cart service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Get loads the cart, initializing an empty one when the store has no
// entry for this identifier.
func (s *service) Get(ctx context.Context, cartID string) (*Cart, error) {
	c, err := s.repo.Load(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoad, err)
	}
	if c == nil {
		c = NewCart(cartID)
	}
	return c, nil
}

// loadForUpdate returns a private copy of the cart for mutation, so a
// rejected save never leaves a half-applied change visible through a
// repository that hands back shared instances.
func (s *service) loadForUpdate(ctx context.Context, cartID string) (*Cart, error) {
	c, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

// Add merges into an existing line item or appends a new one at the end
// of the collection. Merging increments quantity only; the unit price
// snapshot of the first add is kept.
func (s *service) Add(ctx context.Context, cartID string, params AddItemParams) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Add"),
	)
	start := time.Now()

	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.loadForUpdate(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if item := c.Find(params.ProductID, params.VariantID); item != nil {
		item.Quantity += params.Quantity
	} else {
		c.Items = append(c.Items, &Item{
			ProductID: params.ProductID,
			VariantID: params.VariantID,
			Title:     params.Title,
			ImageURL:  params.ImageURL,
			UnitPrice: params.UnitPrice,
			Quantity:  params.Quantity,
			AddedAt:   time.Now(),
		})
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	metrics.CartMutations.Inc()
	log.Debug("item added",
		zap.String("product_id", params.ProductID),
		zap.String("variant_id", params.VariantID),
		zap.Int("quantity", params.Quantity),
		zap.Int("total_items", c.TotalItems()),
		zap.Duration("duration", time.Since(start)),
	)

	return c, nil
}

// SetQuantity sets a line item's quantity exactly. A non-positive
// quantity removes the item; setting quantity on a missing item is
// reported as not found and never materializes a new line.
func (s *service) SetQuantity(ctx context.Context, cartID, productID, variantID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.Remove(ctx, cartID, productID, variantID)
	}

	c, err := s.loadForUpdate(ctx, cartID)
	if err != nil {
		return nil, err
	}

	item := c.Find(productID, variantID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	item.Quantity = quantity

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	metrics.CartMutations.Inc()
	return c, nil
}

// Remove deletes the matching line item if present; no-op otherwise.
func (s *service) Remove(ctx context.Context, cartID, productID, variantID string) (*Cart, error) {
	c, err := s.loadForUpdate(ctx, cartID)
	if err != nil {
		return nil, err
	}

	kept := c.Items[:0]
	removed := false
	for _, item := range c.Items {
		if item.ProductID == productID && item.VariantID == variantID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}

	if !removed {
		// nothing changed, no write needed
		return c, nil
	}

	c.Items = kept
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	metrics.CartMutations.Inc()
	return c, nil
}

// Clear empties the collection; used after checkout completion.
func (s *service) Clear(ctx context.Context, cartID string) (*Cart, error) {
	c, err := s.loadForUpdate(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.Items = []*Item{}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	metrics.CartMutations.Inc()
	return c, nil
}

func (s *service) save(ctx context.Context, c *Cart) error {
	c.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, c); err != nil {
		metrics.CartPersistFailures.Inc()
		logger.FromCtx(ctx).Error("cart save failed",
			zap.String("cart_id", c.ID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
