package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/remardo/nutrios/internal/db"
	"github.com/remardo/nutrios/internal/engine"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed or update the challenge definition catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepos(func(repos *db.Repositories, location *time.Location) error {
			service := engine.NewChallengeService(repos.Definitions, repos.Challenges, repos.Progress, repos.HabitLogs, repos.Meals, repos.Targets, location)
			definitions, err := service.EnsureDefaultDefinitions()
			if err != nil {
				return err
			}
			for _, definition := range definitions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n", definition.Code, definition.Period, definition.Metric)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d challenge definitions in catalog\n", len(definitions))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
