package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/cookbook-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	LLMConnectorCfg       LLMConnectorConfig       `envPrefix:"LLM_"`
	ASRConnectorCfg       ASRConnectorConfig       `envPrefix:"ASR_"`
	NewsConnectorCfg      NewsConnectorConfig      `envPrefix:"NEWS_"`
	GeoConnectorCfg       GeoConnectorConfig       `envPrefix:"GEO_"`
	SearchConnectorCfg    SearchConnectorConfig    `envPrefix:"SEARCH_"`
	BrokerageConnectorCfg BrokerageConnectorConfig `envPrefix:"BROKERAGE_"`
	MCPCfg                MCPConfig                `envPrefix:"MCP_"`

	// Session configuration
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Telegram bot configuration (only required by the bot binary)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConnectorConfig configures the OpenAI-compatible chat and embeddings API.
type LLMConnectorConfig struct {
	HTTPClientConfig
	ChatEndpoint       string               `env:"CHAT_ENDPOINT" envDefault:"/v1/chat/completions"`
	EmbeddingsEndpoint string               `env:"EMBEDDINGS_ENDPOINT" envDefault:"/v1/embeddings"`
	ChatModel          string               `env:"CHAT_MODEL" envDefault:"gpt-4o"`
	EmbeddingModel     string               `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	EmbeddingDims      int                  `env:"EMBEDDING_DIMS" envDefault:"1536"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// ASRConnectorConfig configures the transcription service (AssemblyAI style).
type ASRConnectorConfig struct {
	HTTPClientConfig
	UploadEndpoint     string               `env:"UPLOAD_ENDPOINT" envDefault:"/v2/upload"`
	TranscriptEndpoint string               `env:"TRANSCRIPT_ENDPOINT" envDefault:"/v2/transcript"`
	PollInterval       time.Duration        `env:"POLL_INTERVAL" envDefault:"3s"`
	PollTimeout        time.Duration        `env:"POLL_TIMEOUT" envDefault:"10m"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// NewsConnectorConfig configures the newsdata.io headlines API.
type NewsConnectorConfig struct {
	HTTPClientConfig
	LatestEndpoint string               `env:"LATEST_ENDPOINT" envDefault:"/api/1/latest"`
	Country        string               `env:"COUNTRY" envDefault:"in"`
	Language       string               `env:"LANGUAGE" envDefault:"en"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// GeoConnectorConfig configures the Nominatim geocoding API.
type GeoConnectorConfig struct {
	HTTPClientConfig
	SearchEndpoint  string               `env:"SEARCH_ENDPOINT" envDefault:"/search"`
	ReverseEndpoint string               `env:"REVERSE_ENDPOINT" envDefault:"/reverse"`
	UserAgent       string               `env:"USER_AGENT" envDefault:"ItineraryPlanner/1.0"`
	Retry           pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// SearchConnectorConfig configures the DuckDuckGo HTML search scraper.
type SearchConnectorConfig struct {
	HTTPClientConfig
	SearchEndpoint string               `env:"SEARCH_ENDPOINT" envDefault:"/html/"`
	UserAgent      string               `env:"USER_AGENT" envDefault:"Mozilla/5.0 (compatible; CookbookBot/1.0)"`
	MaxResults     int                  `env:"MAX_RESULTS" envDefault:"5"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// BrokerageConnectorConfig configures the Kite Connect style brokerage API.
type BrokerageConnectorConfig struct {
	HTTPClientConfig
	APIKey            string               `env:"API_KEY"`
	APISecret         string               `env:"API_SECRET"`
	SessionEndpoint   string               `env:"SESSION_ENDPOINT" envDefault:"/session/token"`
	ProfileEndpoint   string               `env:"PROFILE_ENDPOINT" envDefault:"/user/profile"`
	HoldingsEndpoint  string               `env:"HOLDINGS_ENDPOINT" envDefault:"/portfolio/holdings"`
	PositionsEndpoint string               `env:"POSITIONS_ENDPOINT" envDefault:"/portfolio/positions"`
	Retry             pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// MCPConfig configures the GitHub MCP server launched over stdio.
type MCPConfig struct {
	Command      string        `env:"COMMAND" envDefault:"docker"`
	Args         string        `env:"ARGS" envDefault:"run -i --rm -e GITHUB_PERSONAL_ACCESS_TOKEN ghcr.io/github/github-mcp-server"`
	GithubToken  string        `env:"GITHUB_TOKEN"`
	CallTimeout  time.Duration `env:"CALL_TIMEOUT" envDefault:"2m"`
	MaxToolCalls int           `env:"MAX_TOOL_CALLS" envDefault:"3"`
}

// CommandArgs splits the configured args string.
func (c MCPConfig) CommandArgs() []string {
	return strings.Fields(c.Args)
}

// SessionConfig controls the in-memory session registry.
type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"2h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"` // seconds
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT,notEmpty"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT,notEmpty"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE,notEmpty"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT,notEmpty"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT,notEmpty"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize      int64 `env:"MAX_FILE_SIZE,notEmpty"`       // PDF/CSV/XLSX uploads
	MaxAudioFileSize int64 `env:"MAX_AUDIO_FILE_SIZE,notEmpty"` // audio uploads
	MaxUploadSize    int64 `env:"MAX_UPLOAD_SIZE,notEmpty"`     // multipart memory limit
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errs = append(errs, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if cfg.LLMConnectorCfg.EmbeddingDims < 1 {
		errs = append(errs, fmt.Sprintf("LLM_EMBEDDING_DIMS must be positive, got %d", cfg.LLMConnectorCfg.EmbeddingDims))
	}

	if cfg.SessionCfg.TTL < time.Minute {
		errs = append(errs, fmt.Sprintf("SESSION_TTL must be at least 1m, got %s", cfg.SessionCfg.TTL))
	}

	if cfg.SearchConnectorCfg.MaxResults < 1 || cfg.SearchConnectorCfg.MaxResults > 20 {
		errs = append(errs, fmt.Sprintf("SEARCH_MAX_RESULTS must be between 1 and 20, got %d", cfg.SearchConnectorCfg.MaxResults))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
