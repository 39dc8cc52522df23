package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/you/localhub/internal/app"
	"github.com/you/localhub/internal/config"
)

// Global configuration instance
var cfg *config.Config
var logger *logrus.Logger

var rootCmd = &cobra.Command{
	Use:   "localhub",
	Short: "Device-side phone verification and push token registration",
	Long: `localhub runs the device half of phone verification and push token
registration against the application backend.

Configuration is read from config/config.yml (override with --config) and
environment variables; a .env file is loaded first when present.`,
	PersistentPreRunE: preRunConfigE,
	SilenceUsage:      true,
}

func preRunConfigE(cmd *cobra.Command, _ []string) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}

	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		cfg.LogLevel = "debug"
	}

	logger, err = app.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// newContainer validates the device settings and starts the container
func newContainer(cmd *cobra.Command) (*app.Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	container, err := app.NewContainer(cfg, logger)
	if err != nil {
		return nil, err
	}
	container.Bridge.Attach(newStdoutSink(cmd.OutOrStdout()))
	if err := container.Start(cmd.Context()); err != nil {
		_ = container.Close()
		return nil, err
	}
	return container, nil
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Dotenv file loaded before the config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
