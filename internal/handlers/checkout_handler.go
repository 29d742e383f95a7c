package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/aami-bangali/internal/checkout"
	"github.com/Lixing-Zhang/aami-bangali/internal/middleware"
	"github.com/Lixing-Zhang/aami-bangali/internal/service"
)

// CheckoutHandler hands the visitor's cart to the order submitter
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	log             *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		log:             log,
	}
}

// PlaceOrder handles POST /api/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sf := middleware.Storefront(r.Context())
	if sf == nil {
		h.log.Error("no storefront on request; session middleware missing")
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	receipt, err := h.checkoutService.PlaceOrder(r.Context(), middleware.SessionID(r.Context()), sf)
	if err != nil {
		status, message := checkoutError(err)
		if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
			h.log.Error("failed to place order", "error", err)
		} else {
			h.log.Info("order rejected", "reason", err)
		}
		WriteError(w, status, message, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, receipt, h.log)
	h.log.Info("order placed", "receipt_id", receipt.ID, "items_count", receipt.ItemCount)
}

const (
	msgEmptyOrder          = "Order must contain at least one item"
	msgCheckoutUnavailable = "Online ordering is not available yet. Please call the restaurant to order."
	msgCheckoutFailed      = "Something went wrong placing your order. Please try again."
)

// checkoutError maps a PlaceOrder failure to an HTTP status and a message
// safe to show to visitors
func checkoutError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmptyOrder):
		return http.StatusBadRequest, msgEmptyOrder
	case errors.Is(err, checkout.ErrCheckoutUnavailable):
		return http.StatusNotImplemented, msgCheckoutUnavailable
	default:
		return http.StatusInternalServerError, msgCheckoutFailed
	}
}
