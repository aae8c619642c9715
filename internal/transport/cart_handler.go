package transport

import (
	"errors"
	"net/http"

	"verbena-be/internal/cart"
	"verbena-be/internal/catalog"

	"github.com/gin-gonic/gin"
)

type cartResponse struct {
	CartID     string       `json:"cart_id"`
	Items      []*cart.Item `json:"items"`
	TotalItems int          `json:"total_items"`
	Subtotal   float64      `json:"subtotal"`
}

func toCartResponse(c *cart.Cart) cartResponse {
	return cartResponse{
		CartID:     c.ID,
		Items:      c.Items,
		TotalItems: c.TotalItems(),
		Subtotal:   c.Subtotal(),
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id"`
	Quantity  *int   `json:"quantity"`
}

type setQuantityRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

// GetCart serves the ordered line items and derived aggregates.
func (h *Handler) GetCart(c *gin.Context) {
	crt, err := h.Carts.Get(c.Request.Context(), CartID(c))
	if err != nil {
		writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(crt))
}

// AddItem validates the resolved (product, variant) tuple against the
// catalog, takes the display snapshot and merges or appends the line
// item. The UI disables the add action for unpurchasable states; this
// re-checks everything anyway.
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	p, err := h.Catalog.GetProductByID(c.Request.Context(), req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}

	catalog.LogIntegrityIssues(c.Request.Context(), p)

	params := cart.AddItemParams{
		ProductID: p.ID,
		VariantID: req.VariantID,
		Title:     p.Title,
		ImageURL:  p.FirstImage(),
		UnitPrice: p.Price,
		Quantity:  qty,
	}

	if p.HasVariants() {
		if req.VariantID == "" {
			// a partial selection never yields an addable state
			writeError(c, ErrIncompleteSelection)
			return
		}

		v := p.VariantByID(req.VariantID)
		if v == nil {
			writeError(c, catalog.ErrVariantNotFound)
			return
		}
		if !v.InStock() {
			writeError(c, ErrOutOfStock)
			return
		}

		params.UnitPrice = v.Price
		if v.ImageURL != nil {
			params.ImageURL = v.ImageURL
		}
	} else {
		if req.VariantID != "" {
			writeError(c, catalog.ErrVariantNotFound)
			return
		}
		if !p.InStock() {
			writeError(c, ErrOutOfStock)
			return
		}
	}

	crt, err := h.Carts.Add(c.Request.Context(), CartID(c), params)
	if err != nil {
		writeCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(crt))
}

// SetQuantity sets a line item's quantity exactly; zero or below
// removes the line.
func (h *Handler) SetQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crt, err := h.Carts.SetQuantity(c.Request.Context(), CartID(c), req.ProductID, req.VariantID, *req.Quantity)
	if err != nil {
		writeCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(crt))
}

// RemoveItem deletes a line item addressed by query parameters.
func (h *Handler) RemoveItem(c *gin.Context) {
	productID := c.Query("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	crt, err := h.Carts.Remove(c.Request.Context(), CartID(c), productID, c.Query("variant_id"))
	if err != nil {
		writeCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(crt))
}

// ClearCart empties the cart after checkout completion or an explicit
// clear action.
func (h *Handler) ClearCart(c *gin.Context) {
	crt, err := h.Carts.Clear(c.Request.Context(), CartID(c))
	if err != nil {
		writeCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(crt))
}

func writeCartError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		status = http.StatusBadRequest
	case errors.Is(err, cart.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, cart.ErrPersistence), errors.Is(err, cart.ErrFailedLoad):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
