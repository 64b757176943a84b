package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/shopsphere/storefront/internal/handlers"
	"github.com/shopsphere/storefront/internal/hydrate"
	"github.com/shopsphere/storefront/internal/index"
	"github.com/shopsphere/storefront/storage"
)

type Service struct {
	storage *storage.Storage
	config  *Config

	categoryHandler  *handlers.CategoryHandler
	searchHandler    *handlers.SearchHandler
	productHandler   *handlers.ProductHandler
	cartHandler      *handlers.CartHandler
	orderHandler     *handlers.OrderHandler
	assistantHandler *handlers.AssistantHandler

	stopWatch func()
}

func New(store *storage.Storage, config *Config) (*Service, error) {
	client := index.NewClient(config.Catalog.BaseURL, nil)

	productStore := index.NewProductStore(client)
	categoryStore := index.NewCategoryStore(client)
	searchStore := index.NewSearchStore(client)

	hydrator := hydrate.New(client, hydrate.NewCache(), config.Hydrate.Workers)

	productHandler, err := handlers.NewProductHandler(client)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize product handler: %w", err)
	}

	svc := &Service{
		storage:          store,
		config:           config,
		categoryHandler:  handlers.NewCategoryHandler(productStore, categoryStore, hydrator),
		searchHandler:    handlers.NewSearchHandler(searchStore),
		productHandler:   productHandler,
		cartHandler:      handlers.NewCartHandler(store),
		orderHandler:     handlers.NewOrderHandler(store),
		assistantHandler: handlers.NewAssistantHandler(),
	}

	if config.Catalog.Watch {
		productsDir := filepath.Join(config.PublicDir, "products")
		stop, err := index.Watch(context.Background(), productsDir, productStore, categoryStore, searchStore)
		if err != nil {
			slog.Warn("catalog watching disabled", "dir", productsDir, "error", err)
		} else {
			slog.Info("watching catalog for index changes", "dir", productsDir)
			svc.stopWatch = stop
		}
	}

	return svc, nil
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	// The static catalog tree, at both the primary and the legacy location.
	productsDir := filepath.Join(s.config.PublicDir, "products")
	e.Static("/products", productsDir)
	e.Static("/static/products", productsDir)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	api.GET("/categories/:slug", s.categoryHandler.HandleCategory)
	api.GET("/search", s.searchHandler.HandleSearch)
	api.GET("/products/:key", s.productHandler.HandleProduct)

	api.GET("/cart", s.cartHandler.HandleGetCart)
	api.POST("/cart/items", s.cartHandler.HandleAddItem)
	api.PUT("/cart/items/:id", s.cartHandler.HandleUpdateItem)
	api.DELETE("/cart/items/:id", s.cartHandler.HandleRemoveItem)
	api.DELETE("/cart", s.cartHandler.HandleClearCart)

	api.POST("/orders", s.orderHandler.HandleCreateOrder)
	api.GET("/orders", s.orderHandler.HandleListOrders)
	api.GET("/orders/:id", s.orderHandler.HandleGetOrder)

	api.POST("/assistant", s.assistantHandler.HandleMessage)
}

// Close stops background work. The storage connection is owned by the caller.
func (s *Service) Close() {
	if s.stopWatch != nil {
		s.stopWatch()
	}
}
