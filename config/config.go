package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/Landon87/florida-crypto-lottery/database"
	"github.com/Landon87/florida-crypto-lottery/domain/entities"
)

// Config holds all application configuration
type Config struct {
	// Lottery configuration
	TicketPrice  int64         // Fixed entry fee per ticket
	DrawInterval time.Duration // Minimum time between draws
	MinPot       int64         // Minimum pot before a draw may start

	// VRF provider request parameters (passed through to the provider)
	VRFKeyHash              string
	VRFCallbackGasLimit     uint32
	VRFRequestConfirmations uint16
	VRFNumWords             uint32

	// Upkeep trigger configuration
	UpkeepPollInterval time.Duration // How often the trigger worker checks eligibility

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated)

	// HTTP API configuration
	ListenAddr string

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelServiceName          string
	OTelExporterType         string // "console", "otlp", or "none"
	OTelOTLPEndpoint         string
	OTelExportIntervalMillis int

	// Environment
	Environment string // "development" or "production"
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

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// Schedule returns the immutable fee schedule captured from configuration
func (c *Config) Schedule() entities.FeeSchedule {
	return entities.FeeSchedule{
		TicketPrice:  c.TicketPrice,
		DrawInterval: c.DrawInterval,
		MinPot:       c.MinPot,
	}
}

// VRFParams returns the provider request parameters captured from configuration
func (c *Config) VRFParams() entities.VRFParams {
	return entities.VRFParams{
		KeyHash:              c.VRFKeyHash,
		CallbackGasLimit:     c.VRFCallbackGasLimit,
		RequestConfirmations: c.VRFRequestConfirmations,
		NumWords:             c.VRFNumWords,
	}
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Lottery defaults
		TicketPrice:  100,
		DrawInterval: 24 * time.Hour,
		MinPot:       0,

		// VRF defaults
		VRFKeyHash:              os.Getenv("VRF_KEY_HASH"),
		VRFCallbackGasLimit:     500000,
		VRFRequestConfirmations: 3,
		VRFNumWords:             1,

		// Upkeep
		UpkeepPollInterval: time.Minute,

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// NATS
		NATSServers: getEnvWithDefault("NATS_SERVERS", "nats://nats:4222"),

		// HTTP API
		ListenAddr: getEnvWithDefault("LISTEN_ADDR", ":8080"),

		// OpenTelemetry
		OTelEnabled:              os.Getenv("OTEL_ENABLED") == "true",
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "raffle-service"),
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "none"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_OTLP_ENDPOINT", "localhost:4317"),
		OTelExportIntervalMillis: 60000,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if price := os.Getenv("TICKET_PRICE"); price != "" {
		parsed, err := strconv.ParseInt(price, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid TICKET_PRICE %q", price)
		}
		config.TicketPrice = parsed
	}
	if interval := os.Getenv("DRAW_INTERVAL"); interval != "" {
		parsed, err := time.ParseDuration(interval)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid DRAW_INTERVAL %q", interval)
		}
		config.DrawInterval = parsed
	}
	if minPot := os.Getenv("MIN_POT"); minPot != "" {
		parsed, err := strconv.ParseInt(minPot, 10, 64)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("invalid MIN_POT %q", minPot)
		}
		config.MinPot = parsed
	}
	if poll := os.Getenv("UPKEEP_POLL_INTERVAL"); poll != "" {
		parsed, err := time.ParseDuration(poll)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid UPKEEP_POLL_INTERVAL %q", poll)
		}
		config.UpkeepPollInterval = parsed
	}
	if gasLimit := os.Getenv("VRF_CALLBACK_GAS_LIMIT"); gasLimit != "" {
		if parsed, err := strconv.ParseUint(gasLimit, 10, 32); err == nil {
			config.VRFCallbackGasLimit = uint32(parsed)
		}
	}
	if confirmations := os.Getenv("VRF_REQUEST_CONFIRMATIONS"); confirmations != "" {
		if parsed, err := strconv.ParseUint(confirmations, 10, 16); err == nil {
			config.VRFRequestConfirmations = uint16(parsed)
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:      "test",
		TicketPrice:      100,
		DrawInterval:     time.Hour,
		MinPot:           0,
		VRFNumWords:      1,
		OTelExporterType: "none",
	}
}
