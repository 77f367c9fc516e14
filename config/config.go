package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"tpbot/database"
)

// Store backends
const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	GuildID      string // Empty registers commands globally

	// Database configuration
	DatabaseURL  string
	DatabaseName string
	StoreBackend string // "postgres" or "memory"

	// NATS configuration
	NATSServers string // Comma-separated; empty disables event forwarding

	// HTTP configuration
	HTTPAddr string // Empty disables the health/status server

	// Economy configuration
	EconomyVariant    string // "dual" or "legacy"
	TaxPercent        int64
	LedgerRetryMaxAge time.Duration

	// Challenge configuration
	ChallengeTimeout time.Duration
	ColorRewardMin   int64
	ColorRewardMax   int64
	QuizRewardMin    int64
	QuizRewardMax    int64
	QuizBankPath     string // Empty uses the built-in bank

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// Load reads a fresh configuration from the environment without touching the global instance
func Load() (*Config, error) {
	return load()
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),
		StoreBackend: strings.ToLower(getEnvWithDefault("STORE_BACKEND", StoreBackendPostgres)),

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// HTTP
		HTTPAddr: getEnvWithDefault("HTTP_ADDR", ":10000"),

		// Economy
		EconomyVariant: strings.ToLower(getEnvWithDefault("ECONOMY_VARIANT", "dual")),
		QuizBankPath:   os.Getenv("QUIZ_BANK_PATH"),

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: os.Getenv("ENVIRONMENT"),
	}

	var err error
	if config.TaxPercent, err = getInt64("TAX_PERCENT", 10); err != nil {
		return nil, err
	}
	if config.ColorRewardMin, err = getInt64("COLOR_REWARD_MIN", 10); err != nil {
		return nil, err
	}
	if config.ColorRewardMax, err = getInt64("COLOR_REWARD_MAX", 20); err != nil {
		return nil, err
	}
	if config.QuizRewardMin, err = getInt64("QUIZ_REWARD_MIN", 40); err != nil {
		return nil, err
	}
	if config.QuizRewardMax, err = getInt64("QUIZ_REWARD_MAX", 60); err != nil {
		return nil, err
	}

	timeoutSeconds, err := getInt64("CHALLENGE_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	config.ChallengeTimeout = time.Duration(timeoutSeconds) * time.Second

	retryMillis, err := getInt64("LEDGER_RETRY_MAX_ELAPSED_MS", 2000)
	if err != nil {
		return nil, err
	}
	config.LedgerRetryMaxAge = time.Duration(retryMillis) * time.Millisecond

	if config.Environment == "" {
		config.Environment = "development"
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreBackendPostgres, StoreBackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendPostgres, StoreBackendMemory, c.StoreBackend)
	}
	if c.TaxPercent < 0 || c.TaxPercent > 100 {
		return fmt.Errorf("TAX_PERCENT must be between 0 and 100, got %d", c.TaxPercent)
	}
	if c.ChallengeTimeout <= 0 {
		return fmt.Errorf("CHALLENGE_TIMEOUT_SECONDS must be positive")
	}
	if c.ColorRewardMin < 0 || c.ColorRewardMax < c.ColorRewardMin {
		return fmt.Errorf("invalid color reward range %d..%d", c.ColorRewardMin, c.ColorRewardMax)
	}
	if c.QuizRewardMin < 0 || c.QuizRewardMax < c.QuizRewardMin {
		return fmt.Errorf("invalid quiz reward range %d..%d", c.QuizRewardMin, c.QuizRewardMax)
	}

	if c.Environment != "test" {
		if c.DiscordToken == "" {
			return fmt.Errorf("DISCORD_TOKEN is required")
		}
		if c.StoreBackend == StoreBackendPostgres && c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
	}
	return nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		StoreBackend:      StoreBackendMemory,
		EconomyVariant:    "dual",
		TaxPercent:        10,
		LedgerRetryMaxAge: 2 * time.Second,
		ChallengeTimeout:  30 * time.Second,
		ColorRewardMin:    10,
		ColorRewardMax:    20,
		QuizRewardMin:     40,
		QuizRewardMax:     60,
		LogLevel:          "info",
		Environment:       "test",
	}
}
