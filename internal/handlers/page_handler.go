package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/aami-bangali/internal/checkout"
	"github.com/Lixing-Zhang/aami-bangali/internal/middleware"
	"github.com/Lixing-Zhang/aami-bangali/internal/render"
	"github.com/Lixing-Zhang/aami-bangali/internal/repository"
	"github.com/Lixing-Zhang/aami-bangali/internal/service"
	"github.com/Lixing-Zhang/aami-bangali/internal/storefront"
	"github.com/go-chi/chi/v5"
)

// Checkout outcomes carried through the post/redirect/get round trip
const (
	outcomePlaced      = "placed"
	outcomeEmpty       = "empty"
	outcomeUnavailable = "unavailable"
	outcomeFailed      = "failed"
)

var checkoutNotices = map[string]render.Notice{
	outcomePlaced:      {Tone: "success", Text: "Thank you! Your order has been received."},
	outcomeEmpty:       {Tone: "error", Text: "Your cart is empty."},
	outcomeUnavailable: {Tone: "error", Text: msgCheckoutUnavailable},
	outcomeFailed:      {Tone: "error", Text: msgCheckoutFailed},
}

// PageHandler serves the server-rendered site. Form posts answer with a
// 303 back to the page, or with the swapped fragment for htmx requests.
type PageHandler struct {
	menu            *service.MenuService
	checkoutService *service.CheckoutService
	renderer        *render.Renderer
	logger          *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(menu *service.MenuService, checkoutService *service.CheckoutService, renderer *render.Renderer, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		menu:            menu,
		checkoutService: checkoutService,
		renderer:        renderer,
		logger:          logger,
	}
}

// Home handles GET /. An optional ?category= selects a tab first; unknown
// ids are ignored.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	if id := r.URL.Query().Get("category"); id != "" {
		if _, err := h.menu.GetCategory(r.Context(), id); err == nil {
			middleware.CommitSession(r.Context())
			sf.SelectCategory(id)
		}
	}

	var notice *render.Notice
	if n, ok := checkoutNotices[r.URL.Query().Get("checkout")]; ok {
		notice = &n
	}

	h.render(w, r, sf, notice, "")
}

// SelectCategory handles POST /categories/{categoryId}
func (h *PageHandler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	categoryID := chi.URLParam(r, "categoryId")
	if _, err := h.menu.GetCategory(r.Context(), categoryID); err != nil {
		h.notFound(w, err, repository.ErrCategoryNotFound, "Category not found")
		return
	}

	sf.SelectCategory(categoryID)
	h.respond(w, r, sf, "")
}

// AddItem handles POST /cart/items/{itemId}
func (h *PageHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemId")
	item, err := h.menu.GetItem(r.Context(), itemID)
	if err != nil {
		h.notFound(w, err, repository.ErrItemNotFound, "Item not found")
		return
	}

	sf.Activate(*item)
	h.respond(w, r, sf, "")
}

// AdjustItem handles POST /cart/items/{itemId}/adjust with a signed delta
// form field
func (h *PageHandler) AdjustItem(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	delta, err := strconv.Atoi(r.PostFormValue("delta"))
	if err != nil {
		h.logger.Warn("invalid delta", "delta", r.PostFormValue("delta"), "error", err)
		http.Error(w, "delta must be an integer", http.StatusBadRequest)
		return
	}

	sf.Adjust(chi.URLParam(r, "itemId"), delta)
	h.respond(w, r, sf, "")
}

// ClearCart handles POST /cart/clear
func (h *PageHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	sf.Clear()
	h.respond(w, r, sf, "")
}

// OpenCart handles POST /cart/open
func (h *PageHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	sf.OpenPanel()
	h.respond(w, r, sf, "")
}

// CloseCart handles POST /cart/close
func (h *PageHandler) CloseCart(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	sf.ClosePanel()
	h.respond(w, r, sf, "")
}

// Checkout handles POST /checkout
func (h *PageHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sf, ok := h.storefront(w, r)
	if !ok {
		return
	}

	outcome := outcomePlaced
	receipt, err := h.checkoutService.PlaceOrder(r.Context(), middleware.SessionID(r.Context()), sf)
	switch {
	case err == nil:
		h.logger.Info("order placed", "receipt_id", receipt.ID, "items_count", receipt.ItemCount)
	case errors.Is(err, service.ErrEmptyOrder):
		outcome = outcomeEmpty
	case errors.Is(err, checkout.ErrCheckoutUnavailable):
		outcome = outcomeUnavailable
	default:
		h.logger.Error("failed to place order", "error", err)
		outcome = outcomeFailed
	}

	h.respond(w, r, sf, outcome)
}

// respond finishes a form post: htmx gets the re-rendered app fragment,
// plain browsers are redirected back to the page.
func (h *PageHandler) respond(w http.ResponseWriter, r *http.Request, sf *storefront.Storefront, outcome string) {
	if middleware.IsHTMX(r.Context()) {
		var notice *render.Notice
		if n, ok := checkoutNotices[outcome]; ok {
			notice = &n
		}
		h.render(w, r, sf, notice, render.FragmentApp)
		return
	}

	target := "/#menu"
	if outcome != "" {
		target = "/?checkout=" + outcome + "#menu"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// render draws the full page, or fragment when it is not empty. Output is
// buffered so a template error never leaves a half-written page.
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, sf *storefront.Storefront, notice *render.Notice, fragment string) {
	restaurant, err := h.menu.Restaurant(r.Context())
	if err != nil {
		h.logger.Error("failed to load restaurant", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := render.PageData{
		Restaurant: restaurant,
		View:       sf.View(),
		Notice:     notice,
	}

	var buf bytes.Buffer
	if fragment == "" {
		err = h.renderer.Page(&buf, data)
	} else {
		err = h.renderer.Fragment(&buf, fragment, data)
	}
	if err != nil {
		h.logger.Error("failed to render page", "fragment", fragment, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Debug("failed to write page", "error", err)
	}
}

func (h *PageHandler) notFound(w http.ResponseWriter, err, sentinel error, message string) {
	if errors.Is(err, sentinel) {
		http.Error(w, message, http.StatusNotFound)
		return
	}
	h.logger.Error("menu lookup failed", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func (h *PageHandler) storefront(w http.ResponseWriter, r *http.Request) (*storefront.Storefront, bool) {
	sf := middleware.Storefront(r.Context())
	if sf == nil {
		h.logger.Error("no storefront on request; session middleware missing")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return sf, true
}
