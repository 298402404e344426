package main

import (
	"fmt"
	"os"

	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newImportCommand() *cobra.Command {
	var watchlist, subscriptions, continueWatching string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import collections exported from the browser app",
		RunE: func(cmd *cobra.Command, args []string) error {
			if watchlist == "" && subscriptions == "" && continueWatching == "" {
				return fmt.Errorf("nothing to import: pass --watchlist, --subscriptions or --continue")
			}

			a, err := setup()
			if err != nil {
				return err
			}
			db, err := models.NewDatabase(a.cfg.DatabaseFile)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			imports := []struct {
				name string
				path string
				run  func([]byte) (models.ImportResult, error)
			}{
				{"watchlist", watchlist, db.ImportWatchlist},
				{"subscriptions", subscriptions, db.ImportSubscriptions},
				{"continue watching", continueWatching, db.ImportContinueWatching},
			}
			for _, imp := range imports {
				if imp.path == "" {
					continue
				}
				data, err := os.ReadFile(imp.path)
				if err != nil {
					return fmt.Errorf("failed to read %s file: %w", imp.name, err)
				}
				result, err := imp.run(data)
				if err != nil {
					return fmt.Errorf("failed to import %s: %w", imp.name, err)
				}
				a.logger.WithFields(logrus.Fields{
					"collection": imp.name,
					"imported":   result.Imported,
					"skipped":    result.Skipped,
				}).Info("Import finished")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&watchlist, "watchlist", "", "watchlist JSON file")
	cmd.Flags().StringVar(&subscriptions, "subscriptions", "", "subscriptions JSON file")
	cmd.Flags().StringVar(&continueWatching, "continue", "", "continue-watching JSON file")
	return cmd
}
