package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "storefront/internal/cart/app"
	cartadapter "storefront/internal/cart/infra/adapter"
	catalogapp "storefront/internal/catalog/app"
	checkoutapp "storefront/internal/checkout/app"
	checkoutadapter "storefront/internal/checkout/infra/adapter"
	"storefront/internal/memstore"
	orderapp "storefront/internal/order/app"
)

type testServer struct {
	*Server
	catalog *catalogapp.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.NewStore()
	catalogSvc := catalogapp.NewService(memstore.NewProducts(store))
	cartSvc := cartapp.NewService(memstore.NewCarts(store), cartadapter.NewCatalogServiceReader(catalogSvc))
	orderSvc := orderapp.NewService(memstore.NewOrders(store))
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceStore(cartSvc),
		checkoutadapter.NewCatalogServiceStore(catalogSvc),
		checkoutadapter.NewOrderServiceStore(orderSvc),
		store,
		checkoutapp.Options{Currency: "USD"},
	)

	return &testServer{
		Server:  NewServer(catalogSvc, cartSvc, orderSvc, checkoutSvc, nil),
		catalog: catalogSvc,
	}
}

func (ts *testServer) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	ts.Engine().ServeHTTP(w, req)
	return w
}

func (ts *testServer) seedProduct(t *testing.T, name string, amount, stock int64) string {
	t.Helper()
	p, err := ts.catalog.CreateProduct(context.Background(), catalogapp.CreateProductInput{
		Name:     name,
		Currency: "USD",
		Amount:   amount,
		Stock:    stock,
	})
	require.NoError(t, err)
	return p.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/v1/cart", "/api/v1/orders"} {
		w := ts.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := ts.do(t, http.MethodPost, "/api/v1/checkout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductCRUD(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/products", "", map[string]any{
		"name": "Widget", "currency": "USD", "amount": 1000, "stock": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	w = ts.do(t, http.MethodGet, "/api/v1/products/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.Equal(t, "Widget", got["name"])
	assert.Equal(t, float64(5), got["stock"])

	t.Run("invalid input", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/v1/products", "", map[string]any{
			"name": "", "currency": "USD", "amount": 1000,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing product", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/v1/products/unknown", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete deactivates", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/v1/products/"+id, "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = ts.do(t, http.MethodGet, "/api/v1/products/"+id, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decode(t, w)["active"])

		// an inactive product can no longer be added to a cart
		w = ts.do(t, http.MethodPost, "/api/v1/cart/items", "user-1", map[string]any{
			"product_id": id, "quantity": 1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCartFlow(t *testing.T) {
	ts := newTestServer(t)
	productID := ts.seedProduct(t, "Widget", 1000, 5)

	w := ts.do(t, http.MethodPost, "/api/v1/cart/items", "user-1", map[string]any{
		"product_id": productID, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode(t, w)
	items, _ := cart["items"].([]any)
	require.Len(t, items, 1)

	quote, _ := cart["quote"].(map[string]any)
	require.NotNil(t, quote)
	subtotal := quote["subtotal"].(map[string]any)
	assert.Equal(t, float64(2000), subtotal["amount"])

	t.Run("default quantity is one", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/v1/cart/items", "user-2", map[string]any{
			"product_id": productID,
		})
		require.Equal(t, http.StatusOK, w.Code)
		cart := decode(t, w)
		items := cart["items"].([]any)
		require.Len(t, items, 1)
		line := items[0].(map[string]any)
		assert.Equal(t, float64(1), line["quantity"])
	})

	t.Run("remove item", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/v1/cart/items/"+productID, "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Item removed", decode(t, w)["success"])
	})
}

func TestUpdateCartItemQuantity(t *testing.T) {
	ts := newTestServer(t)
	productID := ts.seedProduct(t, "Widget", 1000, 5)

	w := ts.do(t, http.MethodPost, "/api/v1/cart/items", "user-1", map[string]any{
		"product_id": productID, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode(t, w)
	line := cart["items"].([]any)[0].(map[string]any)
	itemID := line["id"].(string)

	w = ts.do(t, http.MethodPost, "/cart/items/update", "user-1", map[string]any{
		"item_id": itemID, "quantity": 4,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])

	t.Run("unknown item", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/cart/items/update", "user-1", map[string]any{
			"item_id": "977f17f3-0000-0000-0000-000000000000", "quantity": 4,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])
	})

	t.Run("cannot touch another user's line", func(t *testing.T) {
		// user-2 has a cart of their own; user-1's item id must still be
		// out of reach
		w := ts.do(t, http.MethodPost, "/api/v1/cart/items", "user-2", map[string]any{
			"product_id": productID, "quantity": 1,
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = ts.do(t, http.MethodPost, "/cart/items/update", "user-2", map[string]any{
			"item_id": itemID, "quantity": 99,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])

		w = ts.do(t, http.MethodGet, "/api/v1/cart", "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		line := decode(t, w)["items"].([]any)[0].(map[string]any)
		assert.Equal(t, float64(4), line["quantity"])
	})
}

func TestCheckoutEndpoint(t *testing.T) {
	ts := newTestServer(t)
	productA := ts.seedProduct(t, "Widget A", 1000, 10)
	productB := ts.seedProduct(t, "Widget B", 500, 10)

	addItem := func(user, product string, qty int64) {
		w := ts.do(t, http.MethodPost, "/api/v1/cart/items", user, map[string]any{
			"product_id": product, "quantity": qty,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	addItem("user-1", productA, 2)
	addItem("user-1", productB, 1)

	w := ts.do(t, http.MethodPost, "/api/v1/checkout", "user-1", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode(t, w)
	assert.Equal(t, "Pending", order["status"])
	total := order["total"].(map[string]any)
	assert.Equal(t, float64(2500), total["amount"])
	assert.Len(t, order["items"].([]any), 2)

	t.Run("cart is empty afterwards", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/v1/cart", "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode(t, w)["items"])
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/v1/checkout", "user-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Cart is empty", decode(t, w)["error"])
	})

	t.Run("insufficient stock rejected", func(t *testing.T) {
		scarce := ts.seedProduct(t, "Scarce", 700, 3)
		addItem("user-2", scarce, 5)

		w := ts.do(t, http.MethodPost, "/api/v1/checkout", "user-2", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["error"], "insufficient stock")
	})
}

func TestCheckoutFormEndpoint(t *testing.T) {
	ts := newTestServer(t)
	productID := ts.seedProduct(t, "Widget", 1000, 5)

	w := ts.do(t, http.MethodPost, "/api/v1/cart/items", "user-1", map[string]any{
		"product_id": productID, "quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/cart/checkout", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Checkout completed successfully!", resp["message"])

	t.Run("empty cart", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/cart/checkout", "user-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])
	})
}

func TestOrderEndpoints(t *testing.T) {
	ts := newTestServer(t)
	productID := ts.seedProduct(t, "Widget", 1000, 5)

	w := ts.do(t, http.MethodPost, "/api/v1/cart/items", "user-1", map[string]any{
		"product_id": productID, "quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodPost, "/api/v1/checkout", "user-1", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decode(t, w)["id"].(string)

	t.Run("list own orders", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/v1/orders", "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["orders"].([]any), 1)
	})

	t.Run("other user cannot see the order", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/v1/orders/"+orderID, "user-2", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("status transitions", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/status", orderID), "user-1", map[string]any{
			"status": "Processing",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Processing", decode(t, w)["status"])

		w = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/status", orderID), "user-1", map[string]any{
			"status": "Pending",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
