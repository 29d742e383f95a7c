package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/aami-bangali/internal/catalog"
	"github.com/Lixing-Zhang/aami-bangali/internal/checkout"
	"github.com/Lixing-Zhang/aami-bangali/internal/format"
	"github.com/Lixing-Zhang/aami-bangali/internal/middleware"
	"github.com/Lixing-Zhang/aami-bangali/internal/render"
	"github.com/Lixing-Zhang/aami-bangali/internal/repository"
	"github.com/Lixing-Zhang/aami-bangali/internal/service"
	"github.com/Lixing-Zhang/aami-bangali/internal/session"
)

const testCookie = "test_session"

// testClient drives a router the way a browser would, carrying the session
// cookie from one request to the next.
type testClient struct {
	t      *testing.T
	router http.Handler
	store  *session.Store
	cookie *http.Cookie
}

func newTestClient(t *testing.T, submitter checkout.Submitter) *testClient {
	t.Helper()

	menu, err := catalog.Default()
	require.NoError(t, err)

	prices, err := format.NewPrices(menu.Restaurant().Currency)
	require.NoError(t, err)

	renderer, err := render.New(prices)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	menuService := service.NewMenuService(repository.NewInMemoryMenuRepository(menu))
	checkoutService := service.NewCheckoutService(submitter, prices.Code())
	store := session.NewStore(menu, time.Hour)

	pages := NewPageHandler(menuService, checkoutService, renderer, log)
	menus := NewMenuHandler(menuService, log)
	carts := NewCartHandler(menuService, prices, log)
	orders := NewCheckoutHandler(checkoutService, log)
	sessions := middleware.Session(store, middleware.SessionOptions{CookieName: testCookie}, log)

	r := chi.NewRouter()
	r.Use(middleware.HTMX)
	r.Get("/health", NewHealthHandler(menu, log).ServeHTTP)
	r.Group(func(r chi.Router) {
		r.Use(sessions)
		r.Get("/", pages.Home)
		r.Post("/categories/{categoryId}", pages.SelectCategory)
		r.Post("/cart/items/{itemId}", pages.AddItem)
		r.Post("/cart/items/{itemId}/adjust", pages.AdjustItem)
		r.Post("/cart/clear", pages.ClearCart)
		r.Post("/cart/open", pages.OpenCart)
		r.Post("/cart/close", pages.CloseCart)
		r.Post("/checkout", pages.Checkout)
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", menus.ListMenu)
		r.Get("/menu/{categoryId}", menus.GetCategory)
		r.Get("/items/{itemId}", menus.GetItem)
		r.Group(func(r chi.Router) {
			r.Use(sessions)
			r.Get("/cart", carts.GetCart)
			r.Delete("/cart", carts.ClearCart)
			r.Post("/cart/items", carts.AddItem)
			r.Patch("/cart/items/{itemId}", carts.AdjustItem)
			r.Put("/cart/panel", carts.SetPanel)
			r.Put("/view/category", carts.SelectCategory)
			r.Post("/checkout", orders.PlaceOrder)
		})
	})

	return &testClient{t: t, router: r, store: store}
}

func (c *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()

	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == testCookie {
			c.cookie = ck
		}
	}
	return w
}

func (c *testClient) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *testClient) jsonRequest(method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *testClient) form(path string, fields map[string]string, htmx bool) *httptest.ResponseRecorder {
	vals := make([]string, 0, len(fields))
	for k, v := range fields {
		vals = append(vals, k+"="+v)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(strings.Join(vals, "&")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return c.do(req)
}
