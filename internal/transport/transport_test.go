package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"verbena-be/internal/cart"
	"verbena-be/internal/catalog"
	"verbena-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() catalog.Repository {
	rose := &catalog.Product{
		ID:             "p-rose",
		Slug:           "rose-bouquet",
		Title:          "Rose Bouquet",
		Description:    utils.StrPtr("<p>Rosas <strong>frescas</strong></p>"),
		Price:          500,
		CompareAtPrice: utils.FloatPtr(700),
		Images:         []string{"https://cdn.example.com/rose.jpg"},
		Featured:       true,
		Options: []catalog.Option{
			{Name: "Size", Values: []string{"Small", "Large"}},
		},
		Variants: []catalog.Variant{
			{ID: "v-small", ProductID: "p-rose", Options: map[string]string{"Size": "Small"}, Price: 450, CompareAtPrice: utils.FloatPtr(700), Stock: 4},
			{ID: "v-large", ProductID: "p-rose", Options: map[string]string{"Size": "Large"}, Price: 650, Stock: 0},
		},
	}

	single := &catalog.Product{
		ID:     "p-single",
		Slug:   "single-rose",
		Title:  "Single Rose",
		Price:  120,
		Stock:  10,
		Images: []string{"https://cdn.example.com/single.jpg"},
	}

	return catalog.NewMemoryRepository([]*catalog.Product{rose, single})
}

func newTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(testCatalog(), cart.NewService(cart.NewMemoryRepository()))
}

func doJSON(t *testing.T, r *gin.Engine, method, path, cartID string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cartID != "" {
		req.Header.Set(CartIDHeader, cartID)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestListProducts(t *testing.T) {
	r := newTestServer()

	t.Run("All products in catalog order", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodGet, "/products", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		products, ok := body["products"].([]any)
		require.True(t, ok)
		require.Len(t, products, 2)

		first := products[0].(map[string]any)
		assert.Equal(t, "rose-bouquet", first["slug"])
		assert.Equal(t, "Rosas frescas", first["description"])
		assert.Equal(t, 500.0, first["price"])
		assert.Equal(t, 28.0, first["discount_percentage"])
		assert.Equal(t, true, first["featured"])
		assert.Equal(t, true, first["in_stock"])

		second := products[1].(map[string]any)
		assert.Equal(t, "single-rose", second["slug"])
		_, present := second["discount_percentage"]
		assert.False(t, present)
	})

	t.Run("Featured only", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodGet, "/products?featured=true", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		products := body["products"].([]any)
		require.Len(t, products, 1)
		assert.Equal(t, "rose-bouquet", products[0].(map[string]any)["slug"])
	})
}

func TestGetProduct(t *testing.T) {
	r := newTestServer()

	t.Run("Success", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodGet, "/products/rose-bouquet", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Rose Bouquet", body["title"])
		assert.Equal(t, "Rosas frescas", body["description"])
		assert.Equal(t, true, body["has_variants"])
		assert.Equal(t, true, body["in_stock"])
	})

	t.Run("Not found", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/products/missing", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetDisplay(t *testing.T) {
	r := newTestServer()

	t.Run("Resolved selection", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodGet, "/products/rose-bouquet/display?Size=Small", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "v-small", body["matched_variant_id"])
		assert.Equal(t, 450.0, body["price"])
		assert.Equal(t, 35.0, body["discount_percentage"])
		assert.Equal(t, true, body["can_add_to_cart"])
	})

	t.Run("Query keys are case-insensitive", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodGet, "/products/rose-bouquet/display?size=Large", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "v-large", body["matched_variant_id"])
		assert.Equal(t, false, body["in_stock"])
		assert.Equal(t, false, body["can_add_to_cart"])
		// no compare-at on the large variant, so no badge
		_, present := body["discount_percentage"]
		assert.False(t, present)
	})

	t.Run("Empty selection falls back to base state", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodGet, "/products/rose-bouquet/display", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		_, present := body["matched_variant_id"]
		assert.False(t, present)
		assert.Equal(t, 500.0, body["price"])
		assert.Equal(t, false, body["can_add_to_cart"])
	})
}

func TestCartFlow(t *testing.T) {
	r := newTestServer()
	cartID := "cart-flow-1"

	t.Run("Add twice merges", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, "/cart/items", cartID, gin.H{
			"product_id": "p-rose", "variant_id": "v-small", "quantity": 2,
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2.0, body["total_items"])
		assert.Equal(t, 900.0, body["subtotal"])

		w, body = doJSON(t, r, http.MethodPost, "/cart/items", cartID, gin.H{
			"product_id": "p-rose", "variant_id": "v-small",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3.0, body["total_items"])
		assert.Equal(t, 1350.0, body["subtotal"])
		assert.Len(t, body["items"], 1)
	})

	t.Run("Get reflects persisted state", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodGet, "/cart", cartID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3.0, body["total_items"])
	})

	t.Run("Set quantity to zero removes", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPatch, "/cart/items", cartID, gin.H{
			"product_id": "p-rose", "variant_id": "v-small", "quantity": 0,
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0.0, body["total_items"])
		assert.Equal(t, 0.0, body["subtotal"])
		assert.Empty(t, body["items"])
	})
}

func TestAddItemValidation(t *testing.T) {
	r := newTestServer()

	t.Run("Unknown product", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/cart/items", "cart-v1", gin.H{
			"product_id": "p-missing", "variant_id": "v1",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Missing variant id on a variant product", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/cart/items", "cart-v2", gin.H{
			"product_id": "p-rose",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Unknown variant", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/cart/items", "cart-v3", gin.H{
			"product_id": "p-rose", "variant_id": "v-nope",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Out-of-stock variant", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/cart/items", "cart-v4", gin.H{
			"product_id": "p-rose", "variant_id": "v-large",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Non-positive quantity", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/cart/items", "cart-v5", gin.H{
			"product_id": "p-rose", "variant_id": "v-small", "quantity": -1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Variant id on a variant-less product", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/cart/items", "cart-v6", gin.H{
			"product_id": "p-single", "variant_id": "v1",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Variant-less product adds by product alone", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, "/cart/items", "cart-v7", gin.H{
			"product_id": "p-single",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1.0, body["total_items"])
		assert.Equal(t, 120.0, body["subtotal"])
	})
}

func TestSetQuantityMissingItem(t *testing.T) {
	r := newTestServer()

	w, _ := doJSON(t, r, http.MethodPatch, "/cart/items", "cart-m1", gin.H{
		"product_id": "p-rose", "variant_id": "v-small", "quantity": 3,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveAndClear(t *testing.T) {
	r := newTestServer()
	cartID := "cart-rc1"

	_, _ = doJSON(t, r, http.MethodPost, "/cart/items", cartID, gin.H{
		"product_id": "p-rose", "variant_id": "v-small", "quantity": 1,
	})
	_, _ = doJSON(t, r, http.MethodPost, "/cart/items", cartID, gin.H{
		"product_id": "p-single", "quantity": 2,
	})

	t.Run("Remove one line", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodDelete, "/cart/items?product_id=p-rose&variant_id=v-small", cartID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2.0, body["total_items"])
	})

	t.Run("Remove without product_id", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodDelete, "/cart/items", cartID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Clear", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodDelete, "/cart", cartID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0.0, body["total_items"])
	})
}

func TestCartIDMinting(t *testing.T) {
	r := newTestServer()

	w, body := doJSON(t, r, http.MethodGet, "/cart", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	minted := w.Header().Get(CartIDHeader)
	assert.NotEmpty(t, minted)
	assert.Equal(t, minted, body["cart_id"])
}

func TestPersistenceFailureSurfaces(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(testCatalog(), cart.NewService(rejectingRepository{}))

	w, _ := doJSON(t, r, http.MethodPost, "/cart/items", "cart-pf1", gin.H{
		"product_id": "p-rose", "variant_id": "v-small", "quantity": 1,
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

type rejectingRepository struct{}

func (rejectingRepository) Load(ctx context.Context, cartID string) (*cart.Cart, error) {
	return nil, nil
}

func (rejectingRepository) Save(ctx context.Context, c *cart.Cart) error {
	return errors.New("store rejected write")
}
