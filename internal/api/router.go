package api

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erazemk/inventory/internal/inventory"
)

// Config holds what the router needs to serve the inventory.
type Config struct {
	DB          *sql.DB
	Loader      inventory.Loader
	Images      inventory.ImageLoader
	TokenSecret string
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(cfg Config) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: cfg.DB, TokenSecret: cfg.TokenSecret}
	itemsHandler := &ItemsHandler{DB: cfg.DB, Loader: cfg.Loader, Images: cfg.Images}

	authMW := AuthMiddleware(cfg.TokenSecret, cfg.DB)

	// Public: login and metrics.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("GET /metrics", promhttp.HandlerFor(newRegistry(cfg.DB), promhttp.HandlerOpts{}))

	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Items.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("POST /api/items/{id}/sale", authMW(http.HandlerFunc(itemsHandler.Sale)))
	mux.Handle("POST /api/items/{id}/quantity", authMW(http.HandlerFunc(itemsHandler.Adjust)))
	mux.Handle("GET /api/items/{id}/reorder", authMW(http.HandlerFunc(itemsHandler.Reorder)))
	mux.Handle("GET /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.Image)))

	return LoggingMiddleware(mux)
}
