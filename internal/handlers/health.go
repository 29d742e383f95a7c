package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/aami-bangali/internal/catalog"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	menu   *catalog.Menu
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(menu *catalog.Menu, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		menu:   menu,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	Categories int       `json:"categories"`
	Items      int       `json:"items"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().UTC(),
		Version:    Version,
		Categories: len(h.menu.Categories()),
		Items:      h.menu.ItemCount(),
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
