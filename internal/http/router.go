package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/greenbasket/storefront/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Security headers apply to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	if len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, auth.CSRFTokenHeader)
		router.Use(cors.New(corsConfig))
	}

	// CSRF must run before session so that session context is
	// preserved on top of CSRF's request replacement
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
		router.Use(TokenRestoreMiddleware(cfg.Account, cfg.SessionManager, cfg.Wishlist))
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	cartController := NewCartController(cfg.Cart)
	wishlistController := NewWishlistController(cfg.Wishlist, cfg.LoginURL)
	checkoutController := NewCheckoutController(cfg.Checkout, cfg.LoginURL)
	authController := NewAuthController(cfg.Account, cfg.SessionManager, cfg.Wishlist)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Cart endpoints
	router.GET("/api/cart", cartController.GetCart)
	router.POST("/api/cart/items", cartController.AddItem)
	router.PUT("/api/cart/items/:productId", cartController.UpdateQuantity)
	router.DELETE("/api/cart/items/:productId", cartController.RemoveItem)
	router.DELETE("/api/cart", cartController.ClearCart)

	// Wishlist endpoints
	router.GET("/api/wishlist", wishlistController.List)
	router.GET("/api/wishlist/count", wishlistController.Count)
	router.GET("/api/wishlist/:productId", wishlistController.Status)
	router.POST("/api/wishlist/toggle", wishlistController.Toggle)

	// Checkout
	router.POST("/api/checkout", checkoutController.PlaceOrder)

	// Auth passthrough
	router.POST("/api/auth/login", authController.Login)
	router.POST("/api/auth/logout", authController.Logout)
	router.GET("/api/auth/session", authController.Session)

	return router
}
