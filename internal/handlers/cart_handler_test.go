package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/aami-bangali/internal/checkout"
	"github.com/Lixing-Zhang/aami-bangali/internal/models"
	"github.com/Lixing-Zhang/aami-bangali/internal/storefront"
)

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) CartResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CartResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp["error"]
}

func TestCartAPI_InitialSnapshot(t *testing.T) {
	c := newTestClient(t, nil)

	w := c.get("/api/cart")
	cart := decodeCart(t, w)

	assert.NotNil(t, cart.Lines)
	assert.Empty(t, cart.Lines)
	assert.Zero(t, cart.Count)
	assert.Zero(t, cart.Total)
	assert.Equal(t, "₹0", cart.TotalDisplay)
	assert.Equal(t, "INR", cart.Currency)
	assert.Equal(t, storefront.PanelClosed, cart.Panel)
	assert.Equal(t, "thalis", cart.ActiveCategory)

	assert.Nil(t, c.cookie, "reading the cart does not start a session")
	assert.Equal(t, 0, c.store.Len())

	decodeCart(t, c.jsonRequest(http.MethodPut, "/api/cart/panel", `{"open":false}`))
	require.NotNil(t, c.cookie, "session cookie issued on first change")
	assert.True(t, c.cookie.HttpOnly)
	assert.Equal(t, 1, c.store.Len())
}

func TestCartAPI_AddItem(t *testing.T) {
	c := newTestClient(t, nil)

	c.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"t1"}`)
	c.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"d2"}`)
	cart := decodeCart(t, c.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"t1"}`))

	require.Len(t, cart.Lines, 2)
	assert.Equal(t, CartLineResponse{ItemID: "t1", Name: "Veg Thali Spl", UnitPrice: 319, Quantity: 2, Subtotal: 638}, cart.Lines[0])
	assert.Equal(t, CartLineResponse{ItemID: "d2", Name: "Mishti Doi", UnitPrice: 40, Quantity: 1, Subtotal: 40}, cart.Lines[1])
	assert.Equal(t, 3, cart.Count)
	assert.Equal(t, int64(678), cart.Total)
	assert.Equal(t, "₹678", cart.TotalDisplay)
	assert.Equal(t, storefront.PanelOpen, cart.Panel)
	assert.Equal(t, 1, c.store.Len(), "one visitor, one session")
}

func TestCartAPI_AddItemErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"unknown item", `{"itemId":"zz"}`, http.StatusNotFound, "Item not found"},
		{"missing item id", `{}`, http.StatusBadRequest, "itemId is required"},
		{"malformed body", `{"itemId":`, http.StatusBadRequest, "Invalid request body"},
		{"unknown field", `{"productId":"t1"}`, http.StatusBadRequest, "Invalid request body"},
		{"trailing object", `{"itemId":"t1"}{"itemId":"t2"}`, http.StatusBadRequest, "Invalid request body"},
		{"trailing garbage", `{"itemId":"t1"} x`, http.StatusBadRequest, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, nil)

			w := c.jsonRequest(http.MethodPost, "/api/cart/items", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w))

			cart := decodeCart(t, c.get("/api/cart"))
			assert.Empty(t, cart.Lines)
			assert.Equal(t, storefront.PanelClosed, cart.Panel)
		})
	}
}

func TestCartAPI_AdjustItem(t *testing.T) {
	c := newTestClient(t, nil)
	c.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"s2"}`)
	c.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"r2"}`)

	cart := decodeCart(t, c.jsonRequest(http.MethodPatch, "/api/cart/items/s2", `{"delta":2}`))
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.Equal(t, int64(3*250+70), cart.Total)

	cart = decodeCart(t, c.jsonRequest(http.MethodPatch, "/api/cart/items/s2", `{"delta":-5}`))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "r2", cart.Lines[0].ItemID)

	// absent line is a no-op, not an error
	cart = decodeCart(t, c.jsonRequest(http.MethodPatch, "/api/cart/items/s2", `{"delta":1}`))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Count)

	cart = decodeCart(t, c.jsonRequest(http.MethodPatch, "/api/cart/items/unknown", `{"delta":1}`))
	assert.Equal(t, 1, cart.Count)

	w := c.jsonRequest(http.MethodPatch, "/api/cart/items/r2", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "delta is required", decodeError(t, w))
}

func TestCartAPI_AdjustIsCapped(t *testing.T) {
	c := newTestClient(t, nil)
	c.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"d1"}`)
	c.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"t1"}`)

	c.jsonRequest(http.MethodPatch, "/api/cart/items/d1", `{"delta":9223372036854775807}`)
	cart := decodeCart(t, c.jsonRequest(http.MethodPatch, "/api/cart/items/t1", `{"delta":9223372036854775807}`))

	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 999, cart.Lines[0].Quantity)
	assert.Equal(t, 999, cart.Lines[1].Quantity)
	assert.Equal(t, 2*999, cart.Count)
	assert.Equal(t, int64((20+319)*999), cart.Total)
	assert.Equal(t, int64(319*999), cart.Lines[1].Subtotal)
}

func TestCartAPI_ClearKeepsPanel(t *testing.T) {
	c := newTestClient(t, nil)
	c.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"c1"}`)

	cart := decodeCart(t, c.jsonRequest(http.MethodDelete, "/api/cart", ""))

	assert.Empty(t, cart.Lines)
	assert.Zero(t, cart.Total)
	assert.Equal(t, storefront.PanelOpen, cart.Panel)
}

func TestCartAPI_Panel(t *testing.T) {
	c := newTestClient(t, nil)

	cart := decodeCart(t, c.jsonRequest(http.MethodPut, "/api/cart/panel", `{"open":true}`))
	assert.Equal(t, storefront.PanelOpen, cart.Panel)

	cart = decodeCart(t, c.jsonRequest(http.MethodPut, "/api/cart/panel", `{"open":false}`))
	assert.Equal(t, storefront.PanelClosed, cart.Panel)

	w := c.jsonRequest(http.MethodPut, "/api/cart/panel", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartAPI_SelectCategory(t *testing.T) {
	c := newTestClient(t, nil)
	c.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"t3"}`)

	cart := decodeCart(t, c.jsonRequest(http.MethodPut, "/api/view/category", `{"categoryId":"desserts"}`))
	assert.Equal(t, "desserts", cart.ActiveCategory)
	assert.Equal(t, 1, cart.Count, "selecting a category never touches the cart")

	w := c.jsonRequest(http.MethodPut, "/api/view/category", `{"categoryId":"pizza"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", decodeError(t, w))

	cart = decodeCart(t, c.get("/api/cart"))
	assert.Equal(t, "desserts", cart.ActiveCategory)
}

func TestCartAPI_SessionsAreIsolated(t *testing.T) {
	alice := newTestClient(t, nil)
	bob := &testClient{t: t, router: alice.router, store: alice.store}

	alice.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"t4"}`)
	bobCart := decodeCart(t, bob.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"d1"}`))

	require.Len(t, bobCart.Lines, 1)
	assert.Equal(t, "d1", bobCart.Lines[0].ItemID)
	assert.NotEqual(t, alice.cookie.Value, bob.cookie.Value)
	assert.Equal(t, 2, alice.store.Len())

	aliceCart := decodeCart(t, alice.get("/api/cart"))
	require.Len(t, aliceCart.Lines, 1)
	assert.Equal(t, "t4", aliceCart.Lines[0].ItemID)
}

func TestCartAPI_UnknownCookieStartsFreshSession(t *testing.T) {
	c := newTestClient(t, nil)
	c.cookie = &http.Cookie{Name: testCookie, Value: "not-a-session"}

	cart := decodeCart(t, c.get("/api/cart"))
	assert.Empty(t, cart.Lines)
	assert.Equal(t, 0, c.store.Len())

	cart = decodeCart(t, c.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"d2"}`))
	assert.Equal(t, 1, cart.Count)
	assert.NotEqual(t, "not-a-session", c.cookie.Value)
	assert.Equal(t, 1, c.store.Len())
}

type failingSubmitter struct{}

func (failingSubmitter) Submit(context.Context, models.Order) (models.Receipt, error) {
	return models.Receipt{}, errors.New("kitchen printer offline")
}

func TestCheckoutAPI(t *testing.T) {
	logSubmitter := checkout.NewLogSubmitter(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name       string
		submitter  checkout.Submitter
		addItem    bool
		status     int
		message    string
		cartIntact bool
	}{
		{"disabled", nil, true, http.StatusNotImplemented, msgCheckoutUnavailable, true},
		{"empty cart", logSubmitter, false, http.StatusBadRequest, msgEmptyOrder, true},
		{"submitter failure", failingSubmitter{}, true, http.StatusInternalServerError, msgCheckoutFailed, true},
		{"accepted", logSubmitter, true, http.StatusOK, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.submitter)
			if tt.addItem {
				c.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"d1"}`)
				c.jsonRequest(http.MethodPost, "/api/cart/items", `{"itemId":"d1"}`)
			}

			w := c.jsonRequest(http.MethodPost, "/api/checkout", "")
			require.Equal(t, tt.status, w.Code, w.Body.String())

			if tt.status == http.StatusOK {
				var receipt models.Receipt
				require.NoError(t, json.NewDecoder(w.Body).Decode(&receipt))
				assert.Len(t, receipt.ID, 26)
				assert.Equal(t, int64(40), receipt.Total)
				assert.Equal(t, 2, receipt.ItemCount)
				assert.Equal(t, "INR", receipt.Currency)
			} else {
				assert.Equal(t, tt.message, decodeError(t, w))
			}

			cart := decodeCart(t, c.get("/api/cart"))
			if !tt.addItem {
				assert.Empty(t, cart.Lines)
				return
			}
			if tt.cartIntact {
				assert.Equal(t, 2, cart.Count)
				assert.Equal(t, storefront.PanelOpen, cart.Panel)
			} else {
				assert.Empty(t, cart.Lines)
				assert.Equal(t, storefront.PanelClosed, cart.Panel)
			}
		})
	}
}
