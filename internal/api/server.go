package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"partnerbridge/internal/api/handlers"
	"partnerbridge/internal/api/middleware"
	"partnerbridge/internal/config"
	"partnerbridge/internal/database"
	"partnerbridge/internal/events"
	"partnerbridge/internal/logger"
	"partnerbridge/internal/services/shopify"
	"partnerbridge/internal/store"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, publisher *events.Publisher) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Services and stores
	oauthService := shopify.NewOAuthService(cfg, logger)
	partnerStore := store.NewPartnerStore(db.DB, logger)
	productStore := store.NewProductStore(db.DB, logger)

	// Handlers
	shopifyHandler := handlers.NewShopifyHandler(cfg, logger, oauthService, partnerStore)
	partnerHandler := handlers.NewPartnerHandler(logger, partnerStore, partnerStore, publisher)
	productHandler := handlers.NewProductHandler(logger, productStore)

	// OAuth result surfaces
	router.GET("/connect/success", shopifyHandler.ConnectSuccess)
	router.GET("/connect/error", shopifyHandler.ConnectError)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Shopify integration
		sh := v1.Group("/shopify")
		{
			sh.POST("/install", shopifyHandler.Install)
			sh.GET("/callback", shopifyHandler.Callback)
			sh.POST("/webhook", shopifyHandler.Webhook)
		}

		// Partners
		partners := v1.Group("/partners")
		{
			partners.GET("", partnerHandler.List)
			partners.GET("/:shop", partnerHandler.Get)
			partners.POST("/:shop/sync", partnerHandler.Sync)
			partners.DELETE("/:shop", partnerHandler.Delete)
		}

		// Imported catalog
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/partner/:shop", productHandler.ListByPartner)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}
