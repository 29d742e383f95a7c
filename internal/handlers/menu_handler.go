package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/aami-bangali/internal/repository"
	"github.com/Lixing-Zhang/aami-bangali/internal/service"
	"github.com/go-chi/chi/v5"
)

// MenuHandler serves the read-only menu
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// ListMenu handles GET /api/menu
func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}

// GetCategory handles GET /api/menu/{categoryId}
func (h *MenuHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	category, err := h.service.GetCategory(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			h.logger.Info("category not found", "categoryId", categoryID)
			WriteError(w, http.StatusNotFound, "Category not found", h.logger)
			return
		}

		h.logger.Error("failed to get category", "categoryId", categoryID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, category, h.logger)
}

// GetItem handles GET /api/items/{itemId}
func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			h.logger.Info("item not found", "itemId", itemID)
			WriteError(w, http.StatusNotFound, "Item not found", h.logger)
			return
		}

		h.logger.Error("failed to get item", "itemId", itemID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}
