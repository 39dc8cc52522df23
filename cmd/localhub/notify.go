package main

import (
	"github.com/spf13/cobra"
	"github.com/you/localhub/domain"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Simulate notification interactions",
}

var notifyOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Simulate a notification click and print the resulting navigation",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("type")
		target, _ := cmd.Flags().GetString("target")

		container, err := newContainer(cmd)
		if err != nil {
			return err
		}
		defer container.Close()

		return container.Dispatcher.Publish(cmd.Context(), domain.NotificationOpened(map[string]string{
			"type":      kind,
			"target_id": target,
		}))
	},
}

var notifyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear delivered notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := newContainer(cmd)
		if err != nil {
			return err
		}
		defer container.Close()

		return container.Bridge.HandleUIEvent(cmd.Context(), domain.BridgeClearNotifications, "")
	},
}

func init() {
	notifyOpenCmd.Flags().String("type", "", "Notification type tag, e.g. chat")
	notifyOpenCmd.Flags().String("target", "", "Target id carried by the notification")

	notifyCmd.AddCommand(notifyOpenCmd, notifyClearCmd)
	rootCmd.AddCommand(notifyCmd)
}
