package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/remardo/nutrios/internal/db"
	"github.com/remardo/nutrios/internal/engine"
)

var (
	recalcClientID uint
	recalcDate     string
)

var recalcDayCmd = &cobra.Command{
	Use:   "recalc-day",
	Short: "Rebuild a client's daily habit log from meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if recalcClientID == 0 {
			return fmt.Errorf("--client is required")
		}
		return withRepos(func(repos *db.Repositories, location *time.Location) error {
			day := time.Now().In(location)
			if recalcDate != "" {
				parsed, err := time.ParseInLocation("2006-01-02", recalcDate, location)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", recalcDate, err)
				}
				day = parsed
			}
			service := engine.NewHabitService(repos.Meals, repos.HabitLogs, location)
			log, err := service.RecalcDailyLogFromMeals(recalcClientID, day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "client %d %s: %d meals, %d kcal, water %d ml, vegetables %d g, sweets %v\n",
				log.ClientID, log.Date.Format("2006-01-02"), log.LoggedMeals, log.TotalKcal, log.WaterML, log.VegetablesG, log.HadSweets)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(recalcDayCmd)
	recalcDayCmd.Flags().UintVar(&recalcClientID, "client", 0, "Client ID")
	recalcDayCmd.Flags().StringVar(&recalcDate, "date", "", "Day to rebuild (YYYY-MM-DD, default today)")
}
