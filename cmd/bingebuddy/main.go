package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amaumene/bingebuddy/internal/browse"
	"github.com/amaumene/bingebuddy/internal/catalog"
	"github.com/amaumene/bingebuddy/internal/chatbot"
	"github.com/amaumene/bingebuddy/internal/config"
	"github.com/amaumene/bingebuddy/internal/normalize"
	"github.com/amaumene/bingebuddy/internal/services/tmdb"
	"github.com/amaumene/bingebuddy/internal/services/tvmaze"
	"github.com/amaumene/bingebuddy/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const searchCacheTTL = 5 * time.Minute

func main() {
	root := &cobra.Command{
		Use:           "bingebuddy",
		Short:         "Browse, filter and rank movies and TV shows",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newBrowseCommand(), newChatCommand(), newImportCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the components shared by the commands
type app struct {
	cfg       *config.Config
	logger    *logrus.Logger
	tmdb      *tmdb.Client
	source    *normalize.CachedSource
	settings  browse.Settings
	assistant *chatbot.Assistant
}

func setup() (*app, error) {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Debug("Configuration loaded")

	// 3. Load labels and blocklist
	labels, err := catalog.LoadLabels(cfg.LabelsFile)
	if err != nil {
		logger.WithError(err).Warn("Failed to load labels, using defaults")
		labels = catalog.Labels{}
	}

	blocklist, err := utils.LoadBlocklist(cfg.BlocklistFile)
	if err != nil {
		logger.WithError(err).Warn("Failed to load blocklist, continuing without it")
		blocklist = nil
	} else if blocklist.Len() > 0 {
		logger.WithField("terms", blocklist.Len()).Info("Blocklist loaded")
	}

	// 4. Initialize services
	tmdbClient := tmdb.NewClient(cfg, logger)

	var source normalize.Source
	switch cfg.CatalogSource {
	case config.SourceTVmaze:
		source = normalize.NewTVmazeSource(tvmaze.NewClient(cfg, logger))
	default:
		source = normalize.NewTMDBSource(tmdbClient, logger)
	}
	logger.WithField("source", cfg.CatalogSource).Debug("Catalog source initialized")

	if cfg.TMDBAPIKey == "" {
		logger.Warn("TMDB_API_KEY is not set, chat replies will fail")
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		tmdb:   tmdbClient,
		source: normalize.NewCachedSource(source, 6*time.Hour, searchCacheTTL),
		settings: browse.Settings{
			PageSize:  cfg.PageSize,
			Debounce:  cfg.SearchDebounce,
			NoticeTTL: cfg.NoticeTTL,
			Labels:    catalog.DefaultLabels().Merge(labels),
			Seeds:     catalog.DefaultSeeds(),
			Blocklist: blocklist,
		},
		assistant: chatbot.NewAssistant(tmdbClient, logger),
	}, nil
}
