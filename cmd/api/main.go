package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/unimedia/agencysite/cmd/api/commands"
)

// @title Agency Site API
// @version 1.0
// @description Content API for the university media agency site

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "agencysite",
		Short: "Agency site API server",
		Long:  `Serves the media agency site content (work, skills, contact messages, social links) from JSON files and stores uploaded images.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewHashPasswordCommand())
	rootCmd.AddCommand(commands.NewSettingsCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
