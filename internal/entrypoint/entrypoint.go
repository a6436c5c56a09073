// Package entrypoint wires the storefront together and runs the HTTP
// server. Construction order: config, database, query cache, sync
// engine, backend clients, stores, checkout, task queue, scheduler,
// router.
package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/storefront/internal/auth"
	"github.com/greenbasket/storefront/internal/backend"
	"github.com/greenbasket/storefront/internal/cart"
	"github.com/greenbasket/storefront/internal/checkout"
	"github.com/greenbasket/storefront/internal/config"
	"github.com/greenbasket/storefront/internal/database"
	"github.com/greenbasket/storefront/internal/database/cartslots"
	"github.com/greenbasket/storefront/internal/entities"
	http_controllers "github.com/greenbasket/storefront/internal/http"
	"github.com/greenbasket/storefront/internal/scheduler"
	"github.com/greenbasket/storefront/internal/syncengine"
	"github.com/greenbasket/storefront/internal/tasks"
	"github.com/greenbasket/storefront/internal/wishlist"
)

// ShutdownFunc is called during graceful shutdown to clean up
// resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Storefront v%s", version)

	if cfg.Backend.BaseURL == "" {
		log.Fatalf("BACKEND_BASE_URL is not set")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Query cache for the sync engine
	var cache syncengine.Cache
	var redisCache *syncengine.RedisCache
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisCache = syncengine.NewRedisCache(cfg.Cache.RedisAddress, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		cache = redisCache
		log.Printf("Query cache: redis at %s", cfg.Cache.RedisAddress)
	case config.CacheBackendMemory, "":
		cache = syncengine.NewMemoryCache()
		log.Printf("Query cache: in-memory")
	default:
		log.Fatalf("Unknown cache backend %q", cfg.Cache.Backend)
	}
	engine := syncengine.New(cache, cfg.Cache.TTL)

	// Backend clients
	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.APIKey, cfg.Backend.Timeout)
	wishlistClient := backend.NewWishlistClient(backendClient)
	orderClient := backend.NewOrderClient(backendClient)
	authClient := backend.NewAuthClient(backendClient, cfg.Backend.LoginURL)

	// Stores
	wishlistStore := wishlist.NewStore(context.Background(), engine, wishlistClient, authClient)

	cartSlot := cartslots.NewRepository(db.DB, entities.SlotKeyCart)
	cartStore := cart.NewStore(cartSlot)

	// Task queue for order submissions
	var taskClient *tasks.Client
	var orderSubmitter checkout.OrderSubmitter
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewSubmitOrderQueue(orderClient))
		orderSubmitter = tasks.NewSubmitter(taskClient)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	} else {
		log.Printf("Task queue disabled; orders are submitted inline")
		orderSubmitter = inlineSubmitter{orders: orderClient}
	}

	checkoutService := checkout.NewService(cartStore, wishlistStore, orderSubmitter)

	// Periodic wishlist revalidation
	refreshScheduler := scheduler.NewWishlistRefreshScheduler(wishlistStore, cfg.WishlistSync.Schedule, cfg.WishlistSync.Enabled)
	if err := refreshScheduler.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start wishlist refresh scheduler: %v", err)
	}

	// Session manager over the main SQLite database
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	// CSRF secret: configured or generated per process
	var csrfSecret []byte
	if cfg.Auth.SessionSecret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Auth.SessionSecret)
		}
	} else {
		secret, err := auth.GenerateSessionSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		csrfSecret, _ = hex.DecodeString(secret)
		log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Cart:           cartStore,
		Wishlist:       wishlistStore,
		Checkout:       checkoutService,
		Account:        backendClient,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		LoginURL:       cfg.Backend.LoginURL,
		Database:       db,
		Version:        version,
	})

	onShutdown := func(ctx context.Context) {
		refreshScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if redisCache != nil {
			if err := redisCache.Close(); err != nil {
				log.Printf("Error closing redis cache: %v", err)
			}
		}
	}

	Serve(router, cfg, onShutdown)
}

// inlineSubmitter posts orders synchronously when the task queue is
// disabled.
type inlineSubmitter struct {
	orders *backend.OrderClient
}

func (s inlineSubmitter) EnqueueOrder(order entities.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return s.orders.Submit(ctx, order)
}
