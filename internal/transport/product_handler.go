package transport

import (
	"errors"
	"net/http"

	"verbena-be/internal/catalog"
	"verbena-be/internal/metrics"
	"verbena-be/internal/selection"

	"github.com/gin-gonic/gin"
)

type productResponse struct {
	ID             string           `json:"id"`
	Slug           string           `json:"slug"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Price          float64          `json:"price"`
	CompareAtPrice *float64         `json:"compare_at_price,omitempty"`
	Images         []string         `json:"images"`
	Featured       bool             `json:"featured"`
	HasVariants    bool             `json:"has_variants"`
	InStock        bool             `json:"in_stock"`
	Options        []catalog.Option `json:"options,omitempty"`
}

type productSummary struct {
	ID                 string   `json:"id"`
	Slug               string   `json:"slug"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Price              float64  `json:"price"`
	CompareAtPrice     *float64 `json:"compare_at_price,omitempty"`
	DiscountPercentage *int     `json:"discount_percentage,omitempty"`
	ImageURL           *string  `json:"image_url,omitempty"`
	Featured           bool     `json:"featured"`
	InStock            bool     `json:"in_stock"`
}

// ListProducts serves the storefront index: every product, or only the
// featured selection with ?featured=true. Summaries carry the base
// price and its badge; variant pricing belongs to the display surface.
func (h *Handler) ListProducts(c *gin.Context) {
	featuredOnly := c.Query("featured") == "true"

	products, err := h.Catalog.ListProducts(c.Request.Context(), featuredOnly)
	if err != nil {
		writeError(c, err)
		return
	}

	summaries := make([]productSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, productSummary{
			ID:                 p.ID,
			Slug:               p.Slug,
			Title:              p.Title,
			Description:        p.PlainDescription(),
			Price:              p.Price,
			CompareAtPrice:     p.CompareAtPrice,
			DiscountPercentage: selection.DiscountPercent(p.Price, p.CompareAtPrice),
			ImageURL:           p.FirstImage(),
			Featured:           p.Featured,
			InStock:            p.InStock(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"products": summaries})
}

// GetProduct serves the catalog entry for a slug with the rich-text
// description already rendered to plain text.
func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.Catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	catalog.LogIntegrityIssues(c.Request.Context(), p)

	c.JSON(http.StatusOK, productResponse{
		ID:             p.ID,
		Slug:           p.Slug,
		Title:          p.Title,
		Description:    p.PlainDescription(),
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		Images:         p.Images,
		Featured:       p.Featured,
		HasVariants:    p.HasVariants(),
		InStock:        p.InStock(),
		Options:        p.Options,
	})
}

// GetDisplay recomputes the full purchasing state for the selection
// encoded in the query string, e.g. /products/rose-bouquet/display?Size=Small.
// Query keys are matched to option names case-insensitively; unknown
// keys are ignored.
func (h *Handler) GetDisplay(c *gin.Context) {
	p, err := h.Catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	catalog.LogIntegrityIssues(c.Request.Context(), p)

	sel := selection.Selection{}
	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		if opt := p.OptionByName(key); opt != nil {
			sel[opt.Name] = values[0]
		}
	}

	metrics.DisplayComputations.Inc()
	c.JSON(http.StatusOK, selection.Display(p, sel))
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, catalog.ErrVariantNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrIncompleteSelection):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, ErrOutOfStock):
		status = http.StatusConflict
	case errors.Is(err, catalog.ErrFailedGetProduct):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
