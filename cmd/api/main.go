package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/habitboard/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "habitboard",
		Short: "HabitBoard API Server",
		Long:  `HabitBoard is a multi-tenant habit and checklist tracking API with markdown boards, daily activity logs and notifications.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
