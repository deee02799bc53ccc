package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bisig_backend/internals/configs"
	database "bisig_backend/internals/databases"
	"bisig_backend/internals/seeds"
	"bisig_backend/internals/server"
)

var Version = "dev"

// connect opens the configured database; tests swap it for sqlite.
var connect = func() (*gorm.DB, func()) {
	database.ConnectDB()
	return database.DB, database.Close
}

func main() {
	logger := configs.InitLogger()
	defer func() { _ = logger.Sync() }()

	rootCmd := &cobra.Command{
		Use:     "bisigctl",
		Short:   "BISIG barangay backend administration",
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(createUserCmd())
	rootCmd.AddCommand(resetPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB := connect()
			defer closeDB()
			return database.AutoMigrate(db)
		},
	}
}

func seedCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the first administrator (SEED_ADMIN_*) and default budget categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB := connect()
			defer closeDB()
			if migrate {
				if err := database.AutoMigrate(db); err != nil {
					return err
				}
			}
			if err := seeds.RunAllSeeds(db); err != nil {
				return err
			}
			zap.L().Info("seeding finished")
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run migrations first")
	return cmd
}
