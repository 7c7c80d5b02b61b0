package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"

	"github.com/eurenemendes/ecofeira-backend/pkg/config"
	"github.com/eurenemendes/ecofeira-backend/pkg/errors"
)

const exportBaseURL = "https://docs.google.com/spreadsheets/d"

// Client fetches tabs from a published Google Spreadsheet as CSV. Published
// sheets need no credentials, which keeps the importer deployable without a
// service account.
type Client struct {
	spreadsheetID string
	httpClient    *http.Client
}

// New builds a sheets client from configuration.
func New(cfg config.SheetsConfig) *Client {
	return &Client{
		spreadsheetID: cfg.SpreadsheetID,
		httpClient:    &http.Client{Timeout: cfg.FetchTimeout},
	}
}

// FetchTab downloads one named tab and returns its rows, header included.
// Rows may have varying field counts; the importer validates per row.
func (c *Client) FetchTab(ctx context.Context, tab string) ([][]string, error) {
	if c.spreadsheetID == "" {
		return nil, errors.New(errors.CodeDependency, "spreadsheet id is not configured")
	}
	if tab == "" {
		return nil, errors.New(errors.CodeValidation, "tab name is required")
	}

	endpoint := fmt.Sprintf("%s/%s/gviz/tq?tqx=out:csv&sheet=%s",
		exportBaseURL, c.spreadsheetID, url.QueryEscape(tab))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "building sheet request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("fetching sheet tab %q", tab))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.CodeDependency,
			fmt.Sprintf("sheet tab %q returned status %d", tab, resp.StatusCode))
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("parsing sheet tab %q", tab))
	}
	return rows, nil
}
