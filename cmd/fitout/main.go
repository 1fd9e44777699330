package main

import (
	"os"

	"github.com/spf13/cobra"

	"fitout/internal/interfaces/cli/migrate"
	"fitout/internal/interfaces/cli/seed"
	"fitout/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fitout",
		Short: "Fitout - property furnishing operations backend",
		Long:  `Fitout is the operations backend for property furnishing projects, with a built-in API server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
