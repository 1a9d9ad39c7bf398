package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// AccountReportsClient implements canvas.AccountReportsClient.
type AccountReportsClient struct {
	client *Client
}

// NewAccountReportsClient creates a new account reports client.
func NewAccountReportsClient(client *Client) *AccountReportsClient {
	return &AccountReportsClient{client: client}
}

func reportsPath(accountID int64) string {
	return "/api/v1/accounts/" + strconv.FormatInt(accountID, 10) + "/reports"
}

// ListAvailable implements canvas.AccountReportsClient.ListAvailable.
func (c *AccountReportsClient) ListAvailable(ctx context.Context, accountID int64) ([]canvas.Report, error) {
	reports, err := canvas.Call[[]canvas.Report](ctx, c.client, canvas.Get(reportsPath(accountID)))
	if err != nil {
		return nil, fmt.Errorf("listing available reports: %w", err)
	}

	return *reports, nil
}

// Start implements canvas.AccountReportsClient.Start.
func (c *AccountReportsClient) Start(ctx context.Context, accountID int64, reportType string, params canvas.ReportParameters) (*canvas.Report, error) {
	path := reportsPath(accountID) + "/" + reportType

	body := &canvas.ReportRequest{Parameters: params}

	report, err := canvas.Call[canvas.Report](ctx, c.client, canvas.Post(path, body))
	if err != nil {
		return nil, fmt.Errorf("starting report: %w", err)
	}

	return report, nil
}

// History implements canvas.AccountReportsClient.History.
func (c *AccountReportsClient) History(accountID int64, reportType string) *canvas.PageIterator[canvas.Report] {
	path := reportsPath(accountID) + "/" + reportType

	spec := canvas.Get(path).WithQuery(c.client.listParams(canvas.NewParams()))

	return canvas.Paginate[canvas.Report](c.client, spec)
}

// Status implements canvas.AccountReportsClient.Status.
func (c *AccountReportsClient) Status(ctx context.Context, accountID int64, reportType string, reportID int64) (*canvas.Report, error) {
	path := reportsPath(accountID) + "/" + reportType + "/" + strconv.FormatInt(reportID, 10)

	report, err := canvas.Call[canvas.Report](ctx, c.client, canvas.Get(path))
	if err != nil {
		return nil, fmt.Errorf("getting report status: %w", err)
	}

	return report, nil
}

// Delete implements canvas.AccountReportsClient.Delete.
func (c *AccountReportsClient) Delete(ctx context.Context, accountID int64, reportType string, reportID int64) (*canvas.Report, error) {
	path := reportsPath(accountID) + "/" + reportType + "/" + strconv.FormatInt(reportID, 10)

	report, err := canvas.Call[canvas.Report](ctx, c.client, canvas.Delete(path))
	if err != nil {
		return nil, fmt.Errorf("deleting report: %w", err)
	}

	return report, nil
}
