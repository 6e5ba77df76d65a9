package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken    string        `envconfig:"BOT_TOKEN" required:"true"`
	OWMAPIKey   string        `envconfig:"OPENWEATHERMAP_API_KEY" required:"true"`
	DataFile    string        `envconfig:"DATA_FILE" default:"./data/user_data.json"`
	TickEvery   time.Duration `envconfig:"NOTIFY_TICK" default:"45s"` // daily-update loop tick, must stay under a minute
	AdminUserID int64         `envconfig:"ADMIN_USER_ID" default:"0"` // 0 disables /updatebot
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error
	HTTPAddr    string        `envconfig:"HTTP_ADDR" default:":8080"` // healthz
}

// Load reads a .env file if one is present, then environment variables
// into Config. A missing .env is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	// The daily-update loop must observe every wall-clock minute at
	// least once, so the tick has to stay under a minute.
	if cfg.TickEvery <= 0 || cfg.TickEvery >= time.Minute {
		return cfg, fmt.Errorf("NOTIFY_TICK must be positive and under a minute, got %s", cfg.TickEvery)
	}
	return cfg, nil
}
