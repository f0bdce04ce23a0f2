package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/relief/internal/config"
	"github.com/example/relief/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the relief database",
		Long:  `Initialize the relief database at ~/.relief/relief.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfiguredDBPath(".")

			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing relief database at %s\n", dbPath)

			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			if seed {
				database, err := db.GetDB()
				if err != nil {
					return fmt.Errorf("failed to open database: %w", err)
				}
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Println("✓ Demonstration fixtures loaded")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  relief donation record \"Red Crescent Society\" Food 250")
			fmt.Println("  relief shortage")
			fmt.Println("  relief allocate plan")

			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Load demonstration fixtures after initializing")

	return cmd
}

// applyConfiguredDBPath honors a database_path from an existing config file
// before the database location is first resolved. An absent config is fine;
// the default location applies.
func applyConfiguredDBPath(dir string) {
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return
	}
	if cfg.DatabasePath != "" {
		db.SetPath(cfg.DatabasePath)
	}
}

// initConfig writes the default .relief/config.json if none exists
func initConfig() error {
	if _, err := os.Stat(".relief/config.json"); err == nil {
		return nil // Already exists, skip
	}

	if err := config.SaveConfig(".", config.Default()); err != nil {
		return err
	}

	fmt.Println("✓ Config file created at .relief/config.json")
	return nil
}
