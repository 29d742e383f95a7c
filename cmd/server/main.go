package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/aami-bangali/internal/catalog"
	"github.com/Lixing-Zhang/aami-bangali/internal/checkout"
	"github.com/Lixing-Zhang/aami-bangali/internal/config"
	"github.com/Lixing-Zhang/aami-bangali/internal/format"
	"github.com/Lixing-Zhang/aami-bangali/internal/handlers"
	"github.com/Lixing-Zhang/aami-bangali/internal/icons"
	"github.com/Lixing-Zhang/aami-bangali/internal/middleware"
	"github.com/Lixing-Zhang/aami-bangali/internal/render"
	"github.com/Lixing-Zhang/aami-bangali/internal/repository"
	"github.com/Lixing-Zhang/aami-bangali/internal/service"
	"github.com/Lixing-Zhang/aami-bangali/internal/session"
	"github.com/Lixing-Zhang/aami-bangali/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.NewWithWriter(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	log.Info("starting aami bangali server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"checkout_mode", cfg.Checkout.Mode,
	)

	// Load the menu, embedded unless MENU_FILE points elsewhere
	menu, err := loadMenu(cfg.Menu.File)
	if err != nil {
		log.Error("failed to load menu", "error", err)
		os.Exit(1)
	}
	log.Info("menu loaded",
		"source", menuSource(cfg.Menu.File),
		"categories", len(menu.Categories()),
		"items", menu.ItemCount(),
	)
	if missing := menu.UnmappedIcons(); len(missing) > 0 {
		log.Warn("categories use unknown icons, the fallback will be shown",
			"categories", missing,
			"fallback", icons.Fallback,
			"available", icons.Keys(),
		)
	}

	currency := cfg.Menu.Currency
	if currency == "" {
		currency = menu.Restaurant().Currency
	}
	prices, err := format.NewPrices(currency)
	if err != nil {
		log.Error("invalid currency", "error", err)
		os.Exit(1)
	}

	renderer, err := render.New(prices)
	if err != nil {
		log.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	submitter, err := checkout.New(cfg.Checkout.Mode, log)
	if err != nil {
		log.Error("failed to configure checkout", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	menuRepo := repository.NewInMemoryMenuRepository(menu)

	// Initialize services
	menuService := service.NewMenuService(menuRepo)
	checkoutService := service.NewCheckoutService(submitter, prices.Code())

	// Sessions live in memory; a restart empties every cart
	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	store := session.NewStore(menu, ttl)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go store.Run(ctx, time.Duration(cfg.Session.SweepInterval)*time.Second, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(menu, log)
	pageHandler := handlers.NewPageHandler(menuService, checkoutService, renderer, log)
	menuHandler := handlers.NewMenuHandler(menuService, log)
	cartHandler := handlers.NewCartHandler(menuService, prices, log)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, log)

	sessions := middleware.Session(store, middleware.SessionOptions{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.Secure,
		MaxAge:     ttl,
	}, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.HTMX)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// Server-rendered site
	r.Group(func(r chi.Router) {
		r.Use(sessions)

		r.Get("/", pageHandler.Home)
		r.Post("/categories/{categoryId}", pageHandler.SelectCategory)
		r.Post("/cart/items/{itemId}", pageHandler.AddItem)
		r.Post("/cart/items/{itemId}/adjust", pageHandler.AdjustItem)
		r.Post("/cart/clear", pageHandler.ClearCart)
		r.Post("/cart/open", pageHandler.OpenCart)
		r.Post("/cart/close", pageHandler.CloseCart)
		r.Post("/checkout", pageHandler.Checkout)
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// The cart rides on the session cookie, so credentials are allowed
		// only when origins are listed explicitly
		allowCredentials := !(len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*")
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: allowCredentials,
			MaxAge:           300,
		}))

		// Menu endpoints
		r.Get("/menu", menuHandler.ListMenu)
		r.Get("/menu/{categoryId}", menuHandler.GetCategory)
		r.Get("/items/{itemId}", menuHandler.GetItem)

		// Cart, view and checkout endpoints
		r.Group(func(r chi.Router) {
			r.Use(sessions)

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Patch("/cart/items/{itemId}", cartHandler.AdjustItem)
			r.Put("/cart/panel", cartHandler.SetPanel)
			r.Put("/view/category", cartHandler.SelectCategory)
			r.Post("/checkout", checkoutHandler.PlaceOrder)
		})
	})

	// Create HTTP server
	addr := cfg.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stop()

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully", "sessions", store.Len())
}

func loadMenu(path string) (*catalog.Menu, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func menuSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
