package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port          string `envconfig:"PORT" default:"3001"`
	Environment   string `envconfig:"ENV" default:"development"`
	AllowedOrigin string `envconfig:"ALLOWED_ORIGIN" default:"http://localhost:3000"`

	DBConnectionString string `envconfig:"DATABASE_URL" required:"true"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	S3URL       string `envconfig:"S3_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET" required:"true"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY" required:"true"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY" required:"true"`

	// Either the key itself or a Secret Manager secret version resource
	// (projects/*/secrets/*/versions/*) must be provided.
	GeminiAPIKey       string `envconfig:"GEMINI_API_KEY"`
	GeminiAPIKeySecret string `envconfig:"GEMINI_API_KEY_SECRET"`

	FlashModel string `envconfig:"FLASH_MODEL" default:"gemini-1.5-flash"`
	ProModel   string `envconfig:"PRO_MODEL" default:"gemini-1.5-pro"`

	RateLimitWindowSec int `envconfig:"RATE_LIMIT_WINDOW_SEC" default:"60"`
	RateLimitMax       int `envconfig:"RATE_LIMIT_MAX" default:"15"`

	HistoryCacheTTLSec int `envconfig:"HISTORY_CACHE_TTL_SEC" default:"3600"`
	SignedURLTTLSec    int `envconfig:"SIGNED_URL_TTL_SEC" default:"3600"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
