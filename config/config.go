// Package config loads application configuration from the environment, with
// optional .env file support.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Server holds the HTTP listener settings.
type Server struct {
	Host string `envconfig:"APP_HOST" default:"127.0.0.1"`
	Port int    `envconfig:"APP_PORT" default:"3000"`
}

// RateLimit holds the request limiter settings.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Settlement holds the contract gateway settings. The environment variable
// names follow the original deployment's .env layout.
type Settlement struct {
	GatewayURL      string        `envconfig:"RPC_URL" default:"http://localhost:8545"`
	ContractAddress string        `envconfig:"CONTRACT_ADDRESS" required:"true"`
	OwnerPrivateKey string        `envconfig:"OWNER_PRIVATE_KEY" required:"true"`
	ChainID         uint64        `envconfig:"CHAIN_ID" default:"31337"`
	HTTPTimeout     time.Duration `envconfig:"SETTLEMENT_HTTP_TIMEOUT" default:"15s"`
}

// App is the full application configuration.
type App struct {
	Env        string     `envconfig:"APP_ENV" default:"development"`
	Server     Server     `envconfig:"APP"`
	RateLimit  RateLimit  `envconfig:"RATE_LIMIT"`
	Settlement Settlement
}

// Load reads configuration from the environment, first loading a .env file
// when one exists.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		logger.Warn("No .env file found, using system environment variables")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("App config loaded",
		"env", cfg.Env,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"gateway_url", cfg.Settlement.GatewayURL,
		"contract_address", cfg.Settlement.ContractAddress,
		"chain_id", cfg.Settlement.ChainID,
		"owner_key", maskValue(cfg.Settlement.OwnerPrivateKey),
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
