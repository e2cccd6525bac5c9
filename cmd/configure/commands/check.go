package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowloop/momentum-api/internal/config"
	"github.com/flowloop/momentum-api/internal/database"
	"github.com/flowloop/momentum-api/internal/middleware"
	"github.com/flowloop/momentum-api/internal/queue"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check backend connectivity",
		Long:  "Ping the database, Redis, and RabbitMQ using the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			failed := false

			// Database
			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				fmt.Printf("database: FAIL (%v)\n", err)
				failed = true
			} else {
				if err := db.PingContext(ctx); err != nil {
					fmt.Printf("database: FAIL (%v)\n", err)
					failed = true
				} else {
					fmt.Println("database: OK")
				}
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}

			// Redis
			limiter, err := middleware.NewRedisRateLimiter(cfg.RedisURL)
			if err != nil {
				fmt.Printf("redis: FAIL (%v)\n", err)
				failed = true
			} else {
				if err := limiter.Ping(ctx); err != nil {
					fmt.Printf("redis: FAIL (%v)\n", err)
					failed = true
				} else {
					fmt.Println("redis: OK")
				}
				if err := limiter.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close redis: %v\n", err)
				}
			}

			// RabbitMQ
			if cfg.RabbitMQURL == "" {
				fmt.Println("rabbitmq: not configured")
			} else {
				jobQueue, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL)
				if err != nil {
					fmt.Printf("rabbitmq: FAIL (%v)\n", err)
					failed = true
				} else {
					if err := jobQueue.HealthCheck(ctx); err != nil {
						fmt.Printf("rabbitmq: FAIL (%v)\n", err)
						failed = true
					} else {
						fmt.Println("rabbitmq: OK")
					}
					if err := jobQueue.Close(); err != nil {
						fmt.Fprintf(os.Stderr, "Warning: failed to close rabbitmq: %v\n", err)
					}
				}
			}

			if failed {
				return fmt.Errorf("one or more backends are unreachable")
			}
			return nil
		},
	}
}
