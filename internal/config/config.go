package config

import (
	"flag"
	"os"

	"go.uber.org/zap"
)

type Config struct {
	RunAddress        string
	DatabaseURI       string
	CatalogAddress    string
	OfferAddress      string
	RedisAddress      string
	Key               string
	AdminLogin        string
	AdminPasswordHash string
	Logger            *zap.SugaredLogger
}

func NewConfig() *Config {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stdout", "server.log"}

	logger := zap.Must(logCfg.Build())

	cfg := &Config{}
	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "HTTP server address")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "DB connection string")
	flag.StringVar(&cfg.CatalogAddress, "c", "", "Catalog service address")
	flag.StringVar(&cfg.OfferAddress, "o", "", "Offer service address")
	flag.StringVar(&cfg.RedisAddress, "r", "", "Redis address for webhook dedup (optional)")
	flag.StringVar(&cfg.Key, "k", "", "JWT signing key")
	flag.Parse()

	cfg.Logger = logger.Sugar()

	ReadServerEnvironment(cfg)

	return cfg
}

func ReadServerEnvironment(cfg *Config) {
	if runAddress := os.Getenv("RUN_ADDRESS"); runAddress != "" {
		cfg.RunAddress = runAddress
	}

	if databaseURI := os.Getenv("DATABASE_URI"); databaseURI != "" {
		cfg.DatabaseURI = databaseURI
	}

	if catalogAddress := os.Getenv("CATALOG_ADDRESS"); catalogAddress != "" {
		cfg.CatalogAddress = catalogAddress
	}

	if offerAddress := os.Getenv("OFFER_ADDRESS"); offerAddress != "" {
		cfg.OfferAddress = offerAddress
	}

	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		cfg.RedisAddress = redisAddress
	}

	if key := os.Getenv("ENROLLCORE_KEY"); key != "" {
		cfg.Key = key
	}

	if adminLogin := os.Getenv("ADMIN_LOGIN"); adminLogin != "" {
		cfg.AdminLogin = adminLogin
	}

	if adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH"); adminPasswordHash != "" {
		cfg.AdminPasswordHash = adminPasswordHash
	}
}
