package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var otpCmd = &cobra.Command{
	Use:   "otp",
	Short: "Phone number verification",
}

var otpSendCmd = &cobra.Command{
	Use:   "send <phone>",
	Short: "Send a verification code by SMS",
	Long: `Send a verification code by SMS.

The number is normalized with the configured default country code, so
"9876543210" and "+91 98765 43210" reach the same phone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := newContainer(cmd)
		if err != nil {
			return err
		}
		defer container.Close()

		if err := container.Verification.Initialize(cmd.Context()); err != nil {
			return err
		}
		result, err := container.Verification.SendCode(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var otpCheckCmd = &cobra.Command{
	Use:   "check <phone> <code>",
	Short: "Check a verification code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := newContainer(cmd)
		if err != nil {
			return err
		}
		defer container.Close()

		if err := container.Verification.Initialize(cmd.Context()); err != nil {
			return err
		}
		result, err := container.Verification.CheckCode(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	otpCmd.AddCommand(otpSendCmd, otpCheckCmd)
	rootCmd.AddCommand(otpCmd)
}
