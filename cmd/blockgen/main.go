// Package main is the entry point for the blockgen CLI.
//
//	@title						blockgen API
//	@version					1.0
//	@description				Translates InsectBot Hexa block programs into Arduino sketches
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	APIKeyAuth
//	@in							header
//	@name						X-API-KEY
package main

import (
	"fmt"
	"os"

	"github.com/helixml/blockgen/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blockgen",
		Short: "InsectBot Hexa block program translator",
		Long: `blockgen turns visual block programs for the DFRobot InsectBot Hexa into
Arduino sketches. Programs are YAML or JSON documents.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(translateCmd())
	cmd.AddCommand(blocksCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(stdioCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
