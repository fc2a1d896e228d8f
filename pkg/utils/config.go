package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Sentiment SentimentConfig
	HTTP      HTTPConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type StoreConfig struct {
	Driver string // memory | postgres
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SentimentConfig struct {
	Backend string // local | hosted | openai | anthropic
	Timeout time.Duration

	LocalURL string

	HostedURL   string
	HostedToken string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	AnthropicKey     string
	AnthropicModel   string
	AnthropicBaseURL string

	PendingAttempts int
	PendingBackoff  time.Duration
	RetryAttempts   int
	RetryBackoff    time.Duration

	RateLimit float64 // requests per second, 0 disables throttling
	RateBurst int
}

type HTTPConfig struct {
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

type TelemetryConfig struct {
	Environment   string
	TraceExporter string // none | stdout | otlp
	OTLPEndpoint  string
	OTLPInsecure  bool
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "movie-review")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("STORE_DRIVER", "memory")
	v.SetDefault("DB_MAX_CONNS", 10)

	v.SetDefault("SENTIMENT_BACKEND", "local")
	v.SetDefault("SENTIMENT_TIMEOUT", "20s")
	v.SetDefault("LOCAL_MODEL_URL", "http://localhost:8001/classify")
	v.SetDefault("HF_API_URL", "https://api-inference.huggingface.co/models/matthewburke/korean_sentiment")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest")
	v.SetDefault("SENTIMENT_PENDING_ATTEMPTS", 3)
	v.SetDefault("SENTIMENT_PENDING_BACKOFF", "5s")
	v.SetDefault("SENTIMENT_RETRY_ATTEMPTS", 2)
	v.SetDefault("SENTIMENT_RETRY_BACKOFF", "1s")
	v.SetDefault("SENTIMENT_RATE_LIMIT", 5.0)
	v.SetDefault("SENTIMENT_RATE_BURST", 5)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("OTEL_TRACES_EXPORTER", "none")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", true)

	// .env is optional, the environment alone is enough to run
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Sentiment: SentimentConfig{
			Backend:          strings.ToLower(v.GetString("SENTIMENT_BACKEND")),
			Timeout:          v.GetDuration("SENTIMENT_TIMEOUT"),
			LocalURL:         v.GetString("LOCAL_MODEL_URL"),
			HostedURL:        v.GetString("HF_API_URL"),
			HostedToken:      v.GetString("HF_API_TOKEN"),
			OpenAIKey:        v.GetString("OPENAI_API_KEY"),
			OpenAIModel:      v.GetString("OPENAI_MODEL"),
			OpenAIBaseURL:    v.GetString("OPENAI_BASE_URL"),
			AnthropicKey:     v.GetString("ANTHROPIC_API_KEY"),
			AnthropicModel:   v.GetString("ANTHROPIC_MODEL"),
			AnthropicBaseURL: v.GetString("ANTHROPIC_BASE_URL"),
			PendingAttempts:  v.GetInt("SENTIMENT_PENDING_ATTEMPTS"),
			PendingBackoff:   v.GetDuration("SENTIMENT_PENDING_BACKOFF"),
			RetryAttempts:    v.GetInt("SENTIMENT_RETRY_ATTEMPTS"),
			RetryBackoff:     v.GetDuration("SENTIMENT_RETRY_BACKOFF"),
			RateLimit:        v.GetFloat64("SENTIMENT_RATE_LIMIT"),
			RateBurst:        v.GetInt("SENTIMENT_RATE_BURST"),
		},
		HTTP: HTTPConfig{
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			RateLimitRequests:  v.GetInt("RATE_LIMIT_REQUESTS"),
			RateLimitWindow:    v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Telemetry: TelemetryConfig{
			Environment:   v.GetString("APP_ENV"),
			TraceExporter: strings.ToLower(v.GetString("OTEL_TRACES_EXPORTER")),
			OTLPEndpoint:  v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			OTLPInsecure:  v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
		},
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
