// Package main runs the nutrilog meal journal server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"nutrilog/internal/di"
	"nutrilog/internal/structures"
)

var (
	flags   structures.CliFlags
	envFile string
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nutrilog",
	Short: "Meal journal with AI nutrition estimates",
	Long: `nutrilog records meals described in free text. A language model turns
each description into per-item nutrition estimates, and the journal serves
running totals and a macro-nutrient breakdown over HTTP.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the nutrilog HTTP server until SIGINT or SIGTERM.

Examples:
  # Serve with the default config
  nutrilog serve

  # Serve with a custom config and console logging
  nutrilog serve --config /etc/nutrilog/config.yaml --debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config/config.yaml", "path to the YAML config file")
	serveCmd.Flags().BoolVar(&flags.DebugMode, "debug", false, "also log to the console")
	serveCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file with secrets such as GEMINI_API_KEY")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := loadEnvFile(envFile); err != nil {
		return err
	}

	_, cleanup, err := di.InitApp(&flags)
	if err != nil {
		return fmt.Errorf("nutrilog: %w", err)
	}
	cleanup()
	return nil
}

// loadEnvFile loads path into the environment. A missing file is fine;
// variables already set win over the file.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("unable to load %s: %w", path, err)
	}
	return nil
}
