package cli

import (
	"fmt"
	"os"

	"github.com/sangkips/quotedesk-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the component catalog",
		Long: `Load hardware components into the catalog.

Uses the built-in catalog unless --file names a YAML catalog. Components
whose category and brand already exist are skipped, so seeding twice is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var catalog []byte
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read catalog: %w", err)
				}
				catalog = data
			}

			db, err := rootOpts.openMigratedDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			created, err := database.SeedComponents(db, catalog)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d components\n", created)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog to load instead of the built-in one")

	return cmd
}
