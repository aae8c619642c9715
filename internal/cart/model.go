package cart

import "time"

// Item is one cart line, identified by (ProductID, VariantID).
// Title, ImageURL and UnitPrice are a display snapshot frozen at the
// time of the first add, so a catalog price change mid-session never
// reprices units already in the cart.
type Item struct {
	ProductID string    `json:"product_id"`
	VariantID string    `json:"variant_id,omitempty"` // empty when the product has no variants
	Title     string    `json:"title"`
	ImageURL  *string   `json:"image_url,omitempty"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Cart is the ordered collection of items for one cart identifier.
// Insertion order is preserved for display. Aggregates are always
// derived from the items, never cached.
type Cart struct {
	ID        string    `json:"id"`
	Items     []*Item   `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCart(id string) *Cart {
	return &Cart{ID: id, Items: []*Item{}}
}

// Find returns the line item for a (product, variant) key, if present.
func (c *Cart) Find(productID, variantID string) *Item {
	for _, item := range c.Items {
		if item.ProductID == productID && item.VariantID == variantID {
			return item
		}
	}
	return nil
}

// TotalItems is the sum of quantities across all line items.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of quantity × unit price across all line items.
func (c *Cart) Subtotal() float64 {
	subtotal := 0.0
	for _, item := range c.Items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}
	return subtotal
}

// Clone deep-copies the cart so a mutation can be discarded when the
// write-through save fails.
func (c *Cart) Clone() *Cart {
	items := make([]*Item, len(c.Items))
	for i, item := range c.Items {
		copied := *item
		items[i] = &copied
	}
	return &Cart{ID: c.ID, Items: items, UpdatedAt: c.UpdatedAt}
}
