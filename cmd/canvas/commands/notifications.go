package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// NewNotificationsCommand creates the notifications command group.
func NewNotificationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notification"},
		Short:   "Manage global account notifications",
	}

	cmd.AddCommand(newNotificationsListCommand())
	cmd.AddCommand(newNotificationsCreateCommand())
	cmd.AddCommand(newNotificationsCloseCommand())

	return cmd
}

func newNotificationsListCommand() *cobra.Command {
	var includePast bool

	cmd := &cobra.Command{
		Use:   "list ACCOUNT_ID",
		Short: "List global notifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid account ID %q: %w", args[0], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			notifications, err := client.AccountNotifications().List(accountID, includePast).All(context.Background())
			if err != nil {
				return fmt.Errorf("listing notifications: %w", err)
			}

			if done, err := renderStructured(notifications); done {
				return err
			}

			if len(notifications) == 0 {
				fmt.Println("No notifications found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Subject", "Icon", "Start", "End")

			for _, notification := range notifications {
				_ = table.Append(
					strconv.FormatInt(notification.ID, 10),
					notification.Subject,
					string(notification.Icon),
					notification.StartAt,
					notification.EndAt,
				)
			}

			return table.Render()
		},
	}

	cmd.Flags().BoolVar(&includePast, "include-past", false, "include closed notifications")

	return cmd
}

func newNotificationsCreateCommand() *cobra.Command {
	var (
		subject string
		message string
		startAt string
		endAt   string
		icon    string
	)

	cmd := &cobra.Command{
		Use:   "create ACCOUNT_ID",
		Short: "Publish a global notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid account ID %q: %w", args[0], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			created, err := client.AccountNotifications().Create(context.Background(), accountID, &canvas.AccountNotification{
				Subject: subject,
				Message: message,
				StartAt: startAt,
				EndAt:   endAt,
				Icon:    canvas.NotificationIcon(icon),
			})
			if err != nil {
				return fmt.Errorf("creating notification: %w", err)
			}

			fmt.Printf("Created notification %d: %s\n", created.ID, created.Subject)

			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "notification subject (required)")
	cmd.Flags().StringVar(&message, "message", "", "notification body (required)")
	cmd.Flags().StringVar(&startAt, "start-at", "", "publish time, RFC 3339 (required)")
	cmd.Flags().StringVar(&endAt, "end-at", "", "expiry time, RFC 3339 (required)")
	cmd.Flags().StringVar(&icon, "icon", "warning", "icon (warning, information, question, error, calendar)")

	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("message")
	_ = cmd.MarkFlagRequired("start-at")
	_ = cmd.MarkFlagRequired("end-at")

	return cmd
}

func newNotificationsCloseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close ACCOUNT_ID NOTIFICATION_ID",
		Short: "Dismiss a notification for the current user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid account ID %q: %w", args[0], err)
			}

			notificationID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid notification ID %q: %w", args[1], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			closed, err := client.AccountNotifications().Close(context.Background(), accountID, notificationID)
			if err != nil {
				return fmt.Errorf("closing notification: %w", err)
			}

			fmt.Printf("Closed notification %d: %s\n", closed.ID, closed.Subject)

			return nil
		},
	}
}
