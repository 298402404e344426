package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Catalog sources
const (
	SourceTMDB   = "tmdb"
	SourceTVmaze = "tvmaze"
)

// Config holds all application configuration
type Config struct {
	// Catalog source
	CatalogSource string // tmdb or tvmaze (default: tmdb)

	// TMDB
	TMDBAPIKey        string
	TMDBBaseURL       string
	TMDBRatePerSecond float64 // Request budget shared by all lookups (default: 20)

	// TVmaze
	TVmazeBaseURL string

	// Providers
	ProviderRegion       string // Region used for watch providers (default: US)
	ProviderCacheMinutes int    // Minutes a provider lookup stays cached (default: 60)

	// Browse
	PageSize       int           // Records per page (default: 24)
	SearchDebounce time.Duration // Quiet period before a search runs (default: 300ms)
	NoticeTTL      time.Duration // How long a failure notice stays visible (default: 1500ms)
	SessionTTL     time.Duration // Idle browse sessions expire after this (default: 30m)

	// Server
	ServerPort string

	// Paths
	DatabaseFile  string // $CONFIG_DIR/bingebuddy.db
	LabelsFile    string // $CONFIG_DIR/labels.json
	BlocklistFile string // $CONFIG_DIR/blocklist.txt

	// Logging
	LogLevel  string
	LogFormat string // text or json

	// Tracing
	TracingEnabled bool
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("CATALOG_SOURCE", SourceTMDB)
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("TMDB_RATE_PER_SECOND", 20)
	viper.SetDefault("TVMAZE_BASE_URL", "https://api.tvmaze.com")
	viper.SetDefault("PROVIDER_REGION", "US")
	viper.SetDefault("PROVIDER_CACHE_MINUTES", 60)
	viper.SetDefault("PAGE_SIZE", 24)
	viper.SetDefault("SEARCH_DEBOUNCE_MS", 300)
	viper.SetDefault("NOTICE_TTL_MS", 1500)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("TRACING_ENABLED", false)

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "bingebuddy")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		CatalogSource: strings.ToLower(viper.GetString("CATALOG_SOURCE")),

		// TMDB
		TMDBAPIKey:        viper.GetString("TMDB_API_KEY"),
		TMDBBaseURL:       strings.TrimRight(viper.GetString("TMDB_BASE_URL"), "/"),
		TMDBRatePerSecond: viper.GetFloat64("TMDB_RATE_PER_SECOND"),

		// TVmaze
		TVmazeBaseURL: strings.TrimRight(viper.GetString("TVMAZE_BASE_URL"), "/"),

		// Providers
		ProviderRegion:       strings.ToUpper(viper.GetString("PROVIDER_REGION")),
		ProviderCacheMinutes: viper.GetInt("PROVIDER_CACHE_MINUTES"),

		// Browse
		PageSize:       viper.GetInt("PAGE_SIZE"),
		SearchDebounce: time.Duration(viper.GetInt("SEARCH_DEBOUNCE_MS")) * time.Millisecond,
		NoticeTTL:      time.Duration(viper.GetInt("NOTICE_TTL_MS")) * time.Millisecond,
		SessionTTL:     time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute,

		// Server
		ServerPort: viper.GetString("SERVER_PORT"),

		// Paths
		DatabaseFile:  filepath.Join(configDir, "bingebuddy.db"),
		LabelsFile:    filepath.Join(configDir, "labels.json"),
		BlocklistFile: filepath.Join(configDir, "blocklist.txt"),

		// Logging
		LogLevel:  viper.GetString("LOG_LEVEL"),
		LogFormat: viper.GetString("LOG_FORMAT"),

		// Tracing
		TracingEnabled: viper.GetBool("TRACING_ENABLED"),
	}

	// Validate required fields
	switch config.CatalogSource {
	case SourceTMDB:
		if config.TMDBAPIKey == "" {
			return nil, fmt.Errorf("TMDB_API_KEY is required when CATALOG_SOURCE is tmdb")
		}
	case SourceTVmaze:
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE must be tmdb or tvmaze, got %q", config.CatalogSource)
	}
	if config.PageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive")
	}
	if config.TMDBRatePerSecond <= 0 {
		return nil, fmt.Errorf("TMDB_RATE_PER_SECOND must be positive")
	}

	return config, nil
}
