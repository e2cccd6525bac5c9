package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowloop/momentum-api/cmd/configure/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "momentum-configure",
		Short: "Admin tool for the Momentum API",
		Long:  "CLI tool for checking backend connectivity and inspecting AI usage",
	}

	rootCmd.AddCommand(commands.NewCheckCmd())
	rootCmd.AddCommand(commands.NewUsageCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
