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

// NewReportsCommand creates the reports command group.
func NewReportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"report"},
		Short:   "Manage account reports",
		Long:    "List available report types, start report runs, and track their progress",
	}

	cmd.AddCommand(newReportsAvailableCommand())
	cmd.AddCommand(newReportsStartCommand())
	cmd.AddCommand(newReportsHistoryCommand())
	cmd.AddCommand(newReportsStatusCommand())
	cmd.AddCommand(newReportsDeleteCommand())

	return cmd
}

func newReportsAvailableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "available ACCOUNT_ID",
		Short: "List report types that can be run",
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

			reports, err := client.AccountReports().ListAvailable(context.Background(), accountID)
			if err != nil {
				return fmt.Errorf("listing available reports: %w", err)
			}

			if done, err := renderStructured(reports); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Report", "Title")

			for _, report := range reports {
				_ = table.Append(report.Report, report.Title)
			}

			return table.Render()
		},
	}
}

func newReportsStartCommand() *cobra.Command {
	var termID int64

	cmd := &cobra.Command{
		Use:   "start ACCOUNT_ID REPORT_TYPE",
		Short: "Start a report run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid account ID %q: %w", args[0], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			var params canvas.ReportParameters
			if cmd.Flags().Changed("term") {
				params.EnrollmentTermID = &termID
			}

			report, err := client.AccountReports().Start(context.Background(), accountID, args[1], params)
			if err != nil {
				return fmt.Errorf("starting report: %w", err)
			}

			fmt.Printf("Started report %d (%s), status %s\n", report.ID, report.Report, report.Status)

			return nil
		},
	}

	cmd.Flags().Int64Var(&termID, "term", 0, "restrict the report to an enrollment term")

	return cmd
}

func newReportsHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history ACCOUNT_ID REPORT_TYPE",
		Short: "List past runs of a report type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid account ID %q: %w", args[0], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			reports, err := client.AccountReports().History(accountID, args[1]).All(context.Background())
			if err != nil {
				return fmt.Errorf("listing report history: %w", err)
			}

			if done, err := renderStructured(reports); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Status", "Progress", "File URL")

			for _, report := range reports {
				_ = table.Append(
					strconv.FormatInt(report.ID, 10),
					report.Status,
					strconv.Itoa(report.Progress),
					report.FileURL,
				)
			}

			return table.Render()
		},
	}
}

func newReportsStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status ACCOUNT_ID REPORT_TYPE REPORT_ID",
		Short: "Show the state of a report run",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, reportID, err := parseReportArgs(args[0], args[2])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			report, err := client.AccountReports().Status(context.Background(), accountID, args[1], reportID)
			if err != nil {
				return fmt.Errorf("getting report status: %w", err)
			}

			if done, err := renderStructured(report); done {
				return err
			}

			fmt.Printf("Report %d (%s): %s, %d%%\n", report.ID, report.Report, report.Status, report.Progress)

			if report.FileURL != "" {
				fmt.Printf("Download: %s\n", report.FileURL)
			}

			return nil
		},
	}
}

func newReportsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ACCOUNT_ID REPORT_TYPE REPORT_ID",
		Short: "Delete a report run",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, reportID, err := parseReportArgs(args[0], args[2])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			report, err := client.AccountReports().Delete(context.Background(), accountID, args[1], reportID)
			if err != nil {
				return fmt.Errorf("deleting report: %w", err)
			}

			fmt.Printf("Deleted report %d (%s)\n", report.ID, report.Report)

			return nil
		},
	}
}

func parseReportArgs(accountArg, reportArg string) (int64, int64, error) {
	accountID, err := strconv.ParseInt(accountArg, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid account ID %q: %w", accountArg, err)
	}

	reportID, err := strconv.ParseInt(reportArg, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid report ID %q: %w", reportArg, err)
	}

	return accountID, reportID, nil
}
