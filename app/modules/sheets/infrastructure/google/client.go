package googlesheets

import (
	"context"
	"fmt"
	"net/http"

	sheetsservice "github.com/Black-And-White-Club/gala-night/app/modules/sheets/application"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// valueInput writes cells exactly as given, without formula or date parsing.
const valueInput = "RAW"

// Client talks to the Google Sheets values API with a service account.
type Client struct {
	svc *sheets.Service
}

// NewClient builds a Sheets client from service-account JSON.
func NewClient(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	conf, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account credentials: %w", err)
	}
	return NewClientWithHTTP(ctx, conf.Client(ctx))
}

// NewClientWithHTTP builds a client over an already authorized HTTP client.
func NewClientWithHTTP(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

func (c *Client) Clear(ctx context.Context, spreadsheetID, rng string) error {
	_, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", rng, err)
	}
	return nil
}

func (c *Client) Write(ctx context.Context, spreadsheetID, rng string, rows [][]any) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = row
	}
	_, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInput).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", rng, err)
	}
	return nil
}

func (c *Client) Read(ctx context.Context, spreadsheetID, rng string) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, err)
	}
	rows := make([][]any, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = row
	}
	return rows, nil
}

var _ sheetsservice.SheetClient = (*Client)(nil)
