package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/sandeepzgk/ESR-System-sub000/internal/validation"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Engine EngineConfig
	Batch  BatchConfig
	AWS    AWSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
	LogLevel       zerolog.Level
}

// EngineConfig holds the engine's supported noise band
type EngineConfig struct {
	Limits validation.Limits
}

// BatchConfig bounds batch evaluation
type BatchConfig struct {
	Workers  int
	MaxItems int
}

// AWSConfig holds S3 configuration for report export.
// Export is disabled when S3Bucket is empty.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
	URLExpiry       time.Duration
}

// ReportsEnabled reports whether a bucket is configured
func (c AWSConfig) ReportsEnabled() bool {
	return c.S3Bucket != ""
}

var keys = []string{
	"PORT",
	"ENVIRONMENT",
	"ALLOWED_ORIGINS",
	"LOG_LEVEL",
	"NOISE_MIN_FREQUENCY",
	"NOISE_MAX_FREQUENCY",
	"BATCH_WORKERS",
	"BATCH_MAX_ITEMS",
	"AWS_REGION",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"S3_BUCKET",
	"S3_ENDPOINT",
	"REPORT_URL_EXPIRY",
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	v := viper.New()

	defaults := validation.DefaultLimits()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("NOISE_MIN_FREQUENCY", defaults.NoiseMinFrequency)
	v.SetDefault("NOISE_MAX_FREQUENCY", defaults.NoiseMaxFrequency)
	v.SetDefault("BATCH_WORKERS", 4)
	v.SetDefault("BATCH_MAX_ITEMS", 500)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("REPORT_URL_EXPIRY", "24h")

	// Environment variables override .env file values
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	env := v.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev" // Use "dev" to match .env.dev filename
	}

	// Read .env file for the current environment (ignore error if it doesn't exist)
	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	var config Config
	config.Server.Port = v.GetString("PORT")
	config.Server.Env = env
	config.Server.AllowedOrigins = splitList(v.GetString("ALLOWED_ORIGINS"))

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("LOG_LEVEL")))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	config.Server.LogLevel = level

	config.Engine.Limits = validation.Limits{
		NoiseMinFrequency: v.GetFloat64("NOISE_MIN_FREQUENCY"),
		NoiseMaxFrequency: v.GetFloat64("NOISE_MAX_FREQUENCY"),
	}
	if err := config.Engine.Limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid noise frequency limits: %w", err)
	}

	config.Batch.Workers = v.GetInt("BATCH_WORKERS")
	config.Batch.MaxItems = v.GetInt("BATCH_MAX_ITEMS")
	if config.Batch.Workers <= 0 || config.Batch.MaxItems <= 0 {
		return nil, fmt.Errorf("BATCH_WORKERS and BATCH_MAX_ITEMS must be positive")
	}

	config.AWS.Region = v.GetString("AWS_REGION")
	config.AWS.AccessKeyID = v.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = v.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = v.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = v.GetString("S3_ENDPOINT")
	config.AWS.URLExpiry = v.GetDuration("REPORT_URL_EXPIRY")
	if config.AWS.URLExpiry <= 0 {
		return nil, fmt.Errorf("invalid REPORT_URL_EXPIRY %q", v.GetString("REPORT_URL_EXPIRY"))
	}

	log.Debug().
		Str("env", config.Server.Env).
		Strs("allowed_origins", config.Server.AllowedOrigins).
		Float64("noise_min_hz", config.Engine.Limits.NoiseMinFrequency).
		Float64("noise_max_hz", config.Engine.Limits.NoiseMaxFrequency).
		Bool("reports_enabled", config.AWS.ReportsEnabled()).
		Msg("Configuration loaded")

	return &config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
