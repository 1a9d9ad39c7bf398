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

// NewCalendarsCommand creates the calendars command group.
func NewCalendarsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calendars",
		Aliases: []string{"calendar"},
		Short:   "Manage account calendars",
		Long:    "List, search, and update the visibility of account calendars",
	}

	cmd.AddCommand(newCalendarsListCommand())
	cmd.AddCommand(newCalendarsGetCommand())
	cmd.AddCommand(newCalendarsSetVisibilityCommand())
	cmd.AddCommand(newCalendarsCountCommand())

	return cmd
}

func newCalendarsListCommand() *cobra.Command {
	var (
		searchTerm string
		accountID  int64
		filter     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List account calendars",
		Long:  "List the account calendars visible to the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if searchTerm != "" && len(searchTerm) < 2 {
				return ErrSearchTermTooShort
			}

			var it *canvas.PageIterator[canvas.AccountCalendar]

			switch {
			case accountID > 0:
				it = client.Calendars().ListForAccount(accountID, canvas.Visibility(filter), searchTerm)
			case searchTerm != "":
				it = client.Calendars().Search(searchTerm)
			default:
				it = client.Calendars().List(canvas.NewParams())
			}

			calendars, err := it.All(context.Background())
			if err != nil {
				return fmt.Errorf("listing account calendars: %w", err)
			}

			return outputCalendars(calendars)
		},
	}

	cmd.Flags().StringVar(&searchTerm, "search", "", "filter calendars by name (2+ characters)")
	cmd.Flags().Int64Var(&accountID, "account", 0, "list calendars of this account and its sub-accounts")
	cmd.Flags().StringVar(&filter, "filter", "", "visibility filter for --account (visible, hidden)")

	return cmd
}

func newCalendarsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ACCOUNT_ID",
		Short: "Show one account calendar",
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

			calendar, err := client.Calendars().Get(context.Background(), accountID)
			if err != nil {
				return fmt.Errorf("getting account calendar: %w", err)
			}

			if done, err := renderStructured(calendar); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("ID", strconv.FormatInt(calendar.ID, 10))
			_ = table.Append("Name", calendar.Name)
			_ = table.Append("Visible", boolToYesNo(calendar.Visible))
			_ = table.Append("Sub-accounts", strconv.FormatInt(calendar.SubAccountCount, 10))

			if calendar.ParentAccountID != nil {
				_ = table.Append("Parent account", strconv.FormatInt(*calendar.ParentAccountID, 10))
			}

			return table.Render()
		},
	}
}

func newCalendarsSetVisibilityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-visibility ACCOUNT_ID (visible|hidden)",
		Short: "Show or hide an account calendar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid account ID %q: %w", args[0], err)
			}

			visibility := canvas.Visibility(args[1])
			if visibility != canvas.VisibilityVisible && visibility != canvas.VisibilityHidden {
				return fmt.Errorf("invalid visibility %q: want visible or hidden", args[1])
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			calendar, err := client.Calendars().SetVisibility(context.Background(), accountID, visibility)
			if err != nil {
				return fmt.Errorf("updating calendar visibility: %w", err)
			}

			fmt.Printf("Calendar %q is now %s\n", calendar.Name, args[1])

			return nil
		},
	}
}

func newCalendarsCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count ACCOUNT_ID",
		Short: "Count visible account calendars",
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

			count, err := client.Calendars().VisibleCount(context.Background(), accountID)
			if err != nil {
				return fmt.Errorf("counting visible calendars: %w", err)
			}

			fmt.Println(count)

			return nil
		},
	}
}

func outputCalendars(calendars []canvas.AccountCalendar) error {
	if done, err := renderStructured(calendars); done {
		return err
	}

	if len(calendars) == 0 {
		fmt.Println("No account calendars found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Visible", "Sub-accounts")

	for _, calendar := range calendars {
		_ = table.Append(
			strconv.FormatInt(calendar.ID, 10),
			calendar.Name,
			boolToYesNo(calendar.Visible),
			strconv.FormatInt(calendar.SubAccountCount, 10),
		)
	}

	return table.Render()
}
