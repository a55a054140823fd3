package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/remardo/nutrios/internal/config"
	"github.com/remardo/nutrios/internal/db"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "nutriosctl",
	Short: "Admin tooling for the nutrios engagement engine",
	Long:  "nutriosctl seeds the challenge catalog and runs badge and habit-log maintenance against the nutrios database.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (defaults to DB_PATH)")
}

func withRepos(run func(repos *db.Repositories, location *time.Location) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	path := dbPath
	if path == "" {
		path = cfg.DBPath
	}
	database, err := db.OpenSQLite(path)
	if err != nil {
		return fmt.Errorf("open database %s: %w", path, err)
	}
	return run(db.NewRepositories(database), cfg.ReportingLocation())
}
