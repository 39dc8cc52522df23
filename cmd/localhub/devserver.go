package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/you/localhub/internal/app"
	"github.com/you/localhub/internal/infrastructure/storage/memorystore"
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a development backend serving the credential and push token endpoints",
	Long: `Run a development backend serving:

  GET  /api/twilio/config      verification provider credentials
  POST /api/users/push-token   push token registration (bearer required)

Registered tokens are kept in memory. Use "localhub dev-token" to mint
bearer tokens it accepts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateDevServer(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return app.RunDevServer(ctx, cfg, memorystore.NewKV(), logger)
	},
}

var devTokenCmd = &cobra.Command{
	Use:   "dev-token <user-id>",
	Short: "Mint a bearer token accepted by the development backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateDevServer(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		token, err := app.NewDevTokenService(cfg).GenerateAccessToken(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devserverCmd, devTokenCmd)
}
