package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/greenbasket/storefront/internal/config"
	"github.com/greenbasket/storefront/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
