package config

// Default paths for local databases
const (
	// DefaultDatabasePath is the default path for the storefront state database
	DefaultDatabasePath = "./storefront.db"
)
