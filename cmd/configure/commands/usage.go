package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/flowloop/momentum-api/internal/config"
	"github.com/flowloop/momentum-api/internal/database"
)

// NewUsageCmd creates the usage command
func NewUsageCmd() *cobra.Command {
	var userFlag string
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show a user's AI usage",
		Long:  "Print a user's daily AI request counts, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userFlag == "" {
				return fmt.Errorf("--user is required")
			}

			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", userFlag, err)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}()

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			usageRepo := database.NewUsageRepository(db)
			usage, err := usageRepo.GetDailyByUserID(ctx, userID, limitFlag)
			if err != nil {
				return fmt.Errorf("failed to query usage: %w", err)
			}

			if len(usage) == 0 {
				fmt.Println("No usage recorded")
				return nil
			}

			fmt.Printf("Daily AI usage for %s:\n", userID)
			for _, u := range usage {
				fmt.Printf("  %s  %-20s %d\n", u.Day, u.Service, u.Count)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "User ID (UUID)")
	cmd.Flags().IntVar(&limitFlag, "limit", 30, "Maximum number of days to show")

	return cmd
}
