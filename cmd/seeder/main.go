package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"employee-management-backend/config"
	"employee-management-backend/internal/database"
	"employee-management-backend/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "seeder creates the default accounts",
	Long:  "seeder migrates the schema and creates the default admin, hr and employee accounts",
	RunE:  rootRunE,
}

var (
	configFile     string
	password       string
	resetPasswords bool
)

func rootRunE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	logger.Init(cfg.Logging)

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		return err
	}
	if err = database.SeedAll(db, database.SeedOptions{
		Password:       password,
		ResetPasswords: resetPasswords,
	}); err != nil {
		return err
	}
	log.Info("seeding finished")
	return nil
}

func main() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", config.GetEnv("CONFIG_FILE", ""), "the config file to use")
	rootCmd.Flags().StringVarP(&password, "password", "p", config.GetEnv("SEED_PASSWORD", "admin123"), "password for the seeded accounts")
	rootCmd.Flags().BoolVar(&resetPasswords, "reset-passwords", false, "overwrite passwords of existing accounts")
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
