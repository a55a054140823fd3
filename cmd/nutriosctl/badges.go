package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/remardo/nutrios/internal/db"
	"github.com/remardo/nutrios/internal/engine"
	"github.com/remardo/nutrios/internal/models"
)

var refreshBadgesClientID uint

var refreshBadgesCmd = &cobra.Command{
	Use:   "refresh-badges",
	Short: "Re-evaluate badges and record awards",
	Long:  "Re-evaluates all badges for one client (--client) or for every known client, persisting awards for earned badges.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepos(func(repos *db.Repositories, location *time.Location) error {
			service := engine.NewBadgeService(repos.Meals, repos.Targets, repos.BadgeAwards, location)

			var clients []models.Client
			if refreshBadgesClientID != 0 {
				client, found, err := repos.Clients.FindByID(refreshBadgesClientID)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("client %d not found", refreshBadgesClientID)
				}
				clients = []models.Client{client}
			} else {
				var err error
				clients, err = repos.Clients.List()
				if err != nil {
					return err
				}
			}

			for _, client := range clients {
				statuses, err := service.RefreshClientBadges(client.ID)
				if err != nil {
					return fmt.Errorf("refresh badges for client %d: %w", client.ID, err)
				}
				earned := 0
				for _, status := range statuses {
					if status.Earned {
						earned++
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "client %d: %d/%d badges earned\n", client.ID, earned, len(statuses))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(refreshBadgesCmd)
	refreshBadgesCmd.Flags().UintVar(&refreshBadgesClientID, "client", 0, "Client ID (all clients when omitted)")
}
