// Package cli implements quotectl, the operator command line for the
// quotation backend.
package cli

import (
	"fmt"

	"github.com/sangkips/quotedesk-api/internal/config"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Driver     string
	SQLitePath string

	cfg *config.Config
}

// NewRootCommand creates the root command for quotectl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "quotectl",
		Short: "Operate the quotation backend",
		Long:  "Database maintenance, catalog seeding and operator tokens for the quotation API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.cfg = config.Load()
			if opts.Driver != "" {
				opts.cfg.Database.Driver = opts.Driver
			}
			if opts.SQLitePath != "" {
				opts.cfg.Database.SQLitePath = opts.SQLitePath
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "database driver (postgres|sqlite), overrides DB_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite-path", "", "sqlite database file, overrides DB_SQLITE_PATH")

	// Add subcommands
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))
	cmd.AddCommand(NewNextIDCommand(opts))

	return cmd
}

// openDB connects to the configured database
func (o *RootOptions) openDB() (*gorm.DB, error) {
	db, err := database.NewDB(&o.cfg.Database)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// closeDB releases the connection pool of db
func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// openMigratedDB connects and brings the schema up to date
func (o *RootOptions) openMigratedDB() (*gorm.DB, error) {
	db, err := o.openDB()
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
