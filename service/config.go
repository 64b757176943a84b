package service

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string
	PublicDir   string

	Catalog struct {
		// BaseURL is the origin the index stores fetch catalog JSON from.
		// Defaults to the service's own address, which serves PublicDir back.
		BaseURL string
		// Watch invalidates index caches when files under PublicDir/products
		// change (the indexer rewrites them in place).
		Watch bool
	}

	Hydrate struct {
		Workers int
	}
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/storefront.db"),
		PublicDir:   getEnv("PUBLIC_DIR", "./public"),
	}

	config.Catalog.BaseURL = getEnv("CATALOG_BASE_URL", config.BaseURL)
	config.Catalog.Watch = getEnv("CATALOG_WATCH", "true") == "true"

	workers := getEnv("HYDRATE_WORKERS", "8")
	if n, err := strconv.Atoi(workers); err == nil && n > 0 {
		config.Hydrate.Workers = n
	} else {
		config.Hydrate.Workers = 8
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
