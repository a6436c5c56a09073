package config

import (
	"time"

	"github.com/spf13/viper"
)

type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory" // In-process query cache (default)
	CacheBackendRedis  CacheBackend = "redis"  // Shared Redis query cache
)

type (
	Config struct {
		HTTP
		Backend
		Database
		Cache
		WishlistSync
		Tasks
		Auth
		Global
	}

	HTTP struct {
		Port           int32
		Host           string
		AllowedOrigins []string // CORS origins for the storefront UI
	}
	Backend struct {
		BaseURL  string
		APIKey   string
		LoginURL string // Where signed-out users are sent for the sign-in flow
		Timeout  time.Duration
	}
	Database struct {
		Path string
	}
	Cache struct {
		Backend       CacheBackend
		TTL           time.Duration
		RedisAddress  string
		RedisPassword string
		RedisDB       int
	}
	WishlistSync struct {
		Enabled  bool
		Schedule string // Cron format: "*/5 * * * *" = every 5 minutes
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		SecureCookies   bool // Set to false for local dev without HTTPS
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8288)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("allowed_origins", "http://localhost:3000")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Backend defaults
	v.SetDefault("backend_base_url", "")
	v.SetDefault("backend_api_key", "")
	v.SetDefault("backend_login_url", "/login")
	v.SetDefault("backend_timeout", "30s")

	// Query cache defaults
	v.SetDefault("cache_backend", "memory")
	v.SetDefault("cache_ttl", "5m")
	v.SetDefault("redis_address", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	// Wishlist revalidation defaults
	v.SetDefault("wishlist_sync_enabled", false)
	v.SetDefault("wishlist_sync_schedule", "*/5 * * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "2m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Session defaults
	v.SetDefault("auth_session_secret", "") // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "168h")
	v.SetDefault("auth_secure_cookies", true)

	return &Config{
		HTTP: HTTP{
			Port:           v.GetInt32("PORT"),
			Host:           v.GetString("HOST"),
			AllowedOrigins: v.GetStringSlice("ALLOWED_ORIGINS"),
		},
		Backend: Backend{
			BaseURL:  v.GetString("BACKEND_BASE_URL"),
			APIKey:   v.GetString("BACKEND_API_KEY"),
			LoginURL: v.GetString("BACKEND_LOGIN_URL"),
			Timeout:  v.GetDuration("BACKEND_TIMEOUT"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Cache: Cache{
			Backend:       CacheBackend(v.GetString("CACHE_BACKEND")),
			TTL:           v.GetDuration("CACHE_TTL"),
			RedisAddress:  v.GetString("REDIS_ADDRESS"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
		},
		WishlistSync: WishlistSync{
			Enabled:  v.GetBool("WISHLIST_SYNC_ENABLED"),
			Schedule: v.GetString("WISHLIST_SYNC_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Auth: Auth{
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
