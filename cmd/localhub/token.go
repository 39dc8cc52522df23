package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/you/localhub/domain"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Push token registration",
}

var tokenRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Grant notification permission and register the device push token",
	Long: `Grant notification permission and register the device push token.

With --user and --bearer the session is stored first, so the token is
associated with that user and sent to the backend. Without a session the
token is only kept locally until the next login or resume.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		userID, _ := cmd.Flags().GetString("user")
		bearer, _ := cmd.Flags().GetString("bearer")

		container, err := newContainer(cmd)
		if err != nil {
			return err
		}
		defer container.Close()

		ctx := cmd.Context()
		if userID != "" {
			session := &domain.AuthSession{UserID: userID, BearerToken: bearer}
			if err := container.Dispatcher.Publish(ctx, domain.UserLoggedIn(session)); err != nil {
				return err
			}
		}

		container.PushProvider.SetToken(token)
		return container.Dispatcher.Publish(ctx, domain.PermissionChanged(true))
	},
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored push token",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := newContainer(cmd)
		if err != nil {
			return err
		}
		defer container.Close()

		current := container.Registry.CurrentToken()
		if current == nil {
			return domain.ErrTokenUnavailable
		}
		out, err := json.MarshalIndent(current, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var tokenResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Re-announce the stored token and retry its registration",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := newContainer(cmd)
		if err != nil {
			return err
		}
		defer container.Close()

		return container.Dispatcher.Publish(cmd.Context(), domain.AppResumed())
	},
}

var tokenLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the session and the token's user association",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := newContainer(cmd)
		if err != nil {
			return err
		}
		defer container.Close()

		if err := container.Dispatcher.Publish(cmd.Context(), domain.UserLoggedOut()); err != nil {
			return err
		}
		// this command stands in for the auth subsystem, which owns the session
		return container.Sessions.Clear(cmd.Context())
	},
}

func init() {
	tokenRegisterCmd.Flags().String("token", "", "Device push token issued by the provider")
	tokenRegisterCmd.Flags().String("user", "", "Signed-in user id")
	tokenRegisterCmd.Flags().String("bearer", "", "Backend bearer token of the signed-in user")
	_ = tokenRegisterCmd.MarkFlagRequired("token")
	tokenRegisterCmd.MarkFlagsRequiredTogether("user", "bearer")

	tokenCmd.AddCommand(tokenRegisterCmd, tokenShowCmd, tokenResumeCmd, tokenLogoutCmd)
	rootCmd.AddCommand(tokenCmd)
}
