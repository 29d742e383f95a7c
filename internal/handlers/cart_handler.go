package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/aami-bangali/internal/format"
	"github.com/Lixing-Zhang/aami-bangali/internal/middleware"
	"github.com/Lixing-Zhang/aami-bangali/internal/repository"
	"github.com/Lixing-Zhang/aami-bangali/internal/service"
	"github.com/Lixing-Zhang/aami-bangali/internal/storefront"
	"github.com/go-chi/chi/v5"
)

// CartHandler exposes the visitor's storefront as a JSON API
type CartHandler struct {
	menu   *service.MenuService
	prices *format.Prices
	logger *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(menu *service.MenuService, prices *format.Prices, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		menu:   menu,
		prices: prices,
		logger: logger,
	}
}

// CartLineResponse is one cart line as seen by API clients
type CartLineResponse struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// CartResponse is the storefront snapshot returned by every cart endpoint
type CartResponse struct {
	Lines          []CartLineResponse `json:"lines"`
	Count          int                `json:"count"`
	Total          int64              `json:"total"`
	TotalDisplay   string             `json:"totalDisplay"`
	Currency       string             `json:"currency"`
	Panel          storefront.Panel   `json:"panel"`
	ActiveCategory string             `json:"activeCategory"`
}

type addItemRequest struct {
	ItemID string `json:"itemId"`
}

type adjustRequest struct {
	Delta *int `json:"delta"`
}

type panelRequest struct {
	Open *bool `json:"open"`
}

type selectCategoryRequest struct {
	CategoryID string `json:"categoryId"`
}

func newCartResponse(view storefront.View, prices *format.Prices) CartResponse {
	resp := CartResponse{
		Lines:          make([]CartLineResponse, 0, len(view.Lines)),
		Count:          view.Count,
		Total:          view.Total,
		TotalDisplay:   prices.Format(view.Total),
		Currency:       prices.Code(),
		Panel:          view.Panel,
		ActiveCategory: view.Active.ID,
	}
	for _, l := range view.Lines {
		resp.Lines = append(resp.Lines, CartLineResponse{
			ItemID:    l.Item.ID,
			Name:      l.Item.Name,
			UnitPrice: l.Item.Price,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	return resp
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}
	h.writeView(w, sf)
}

// AddItem handles POST /api/cart/items. Adding opens the cart panel.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("failed to decode add item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if req.ItemID == "" {
		WriteError(w, http.StatusBadRequest, "itemId is required", h.logger)
		return
	}

	item, err := h.menu.GetItem(r.Context(), req.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			h.logger.Info("item not found", "itemId", req.ItemID)
			WriteError(w, http.StatusNotFound, "Item not found", h.logger)
			return
		}
		h.logger.Error("failed to get item", "itemId", req.ItemID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	sf.Activate(*item)
	h.writeView(w, sf)
}

// AdjustItem handles PATCH /api/cart/items/{itemId}. Adjusting an item that
// is not in the cart leaves the cart unchanged.
func (h *CartHandler) AdjustItem(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	var req adjustRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("failed to decode adjust request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if req.Delta == nil {
		WriteError(w, http.StatusBadRequest, "delta is required", h.logger)
		return
	}

	sf.Adjust(chi.URLParam(r, "itemId"), *req.Delta)
	h.writeView(w, sf)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	sf.Clear()
	h.writeView(w, sf)
}

// SetPanel handles PUT /api/cart/panel
func (h *CartHandler) SetPanel(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	var req panelRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Open == nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if *req.Open {
		sf.OpenPanel()
	} else {
		sf.ClosePanel()
	}
	h.writeView(w, sf)
}

// SelectCategory handles PUT /api/view/category
func (h *CartHandler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	var req selectCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("failed to decode select category request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if _, err := h.menu.GetCategory(r.Context(), req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			WriteError(w, http.StatusNotFound, "Category not found", h.logger)
			return
		}
		h.logger.Error("failed to get category", "categoryId", req.CategoryID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	sf.SelectCategory(req.CategoryID)
	h.writeView(w, sf)
}

func (h *CartHandler) storefront(w http.ResponseWriter, r *http.Request) (*storefront.Storefront, bool) {
	sf := middleware.Storefront(r.Context())
	if sf == nil {
		h.logger.Error("no storefront on request; session middleware missing")
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return nil, false
	}
	return sf, true
}

func (h *CartHandler) writeView(w http.ResponseWriter, sf *storefront.Storefront) {
	WriteJSON(w, http.StatusOK, newCartResponse(sf.View(), h.prices), h.logger)
}
