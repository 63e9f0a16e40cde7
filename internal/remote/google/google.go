// Package google mirrors user collections to a Google Sheets tab per
// user key. The sheet is a mirror, not the source of truth: writes clear
// and rewrite the whole tab so it always matches the last pushed set.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"ledger/internal/payload"
	"ledger/internal/remote"
)

var headerRow = []any{"Date", "Name", "Amount", "Type", "Project"}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetPrefix   string
}

var _ remote.Backend = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_PREFIX (default "Ledger") prefixes per-user tabs.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	prefix := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_PREFIX"))
	if prefix == "" {
		prefix = "Ledger"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetPrefix:   prefix,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) sheetName(userKey string) string {
	return fmt.Sprintf("%s %s", c.sheetPrefix, remote.SanitizeKey(userKey))
}

// Write implements remote.Writer. The target tab is cleared and rewritten
// with a header row followed by one row per record.
func (c *Client) Write(ctx context.Context, userKey string, rows []payload.Row) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	sheet := c.sheetName(userKey)
	if err := c.ensureSheet(ctx, sheet); err != nil {
		return err
	}

	clearRange := fmt.Sprintf("%s!A:E", sheet)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet %s: %w", sheet, err)
	}

	values := make([][]any, 0, len(rows)+1)
	values = append(values, headerRow)
	for _, r := range rows {
		values = append(values, []any{r.Date, r.Name, r.Amount, r.Type, r.Project})
	}

	writeRange := fmt.Sprintf("%s!A1:E%d", sheet, len(values))
	vr := &gsheet.ValueRange{Values: values}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write sheet %s: %w", sheet, err)
	}

	slog.InfoContext(ctx, "Collection mirrored to Google Sheets",
		"sheet", sheet,
		"records", len(rows))
	return nil
}

// Read implements remote.Reader by scanning the user's tab back into rows.
// A missing tab means the key was never mirrored.
func (c *Client) Read(ctx context.Context, userKey string) ([]payload.Row, bool, error) {
	if c.svc == nil {
		return nil, false, errors.New("sheets service not initialized")
	}

	sheet := c.sheetName(userKey)
	rng := fmt.Sprintf("%s!A2:E", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		if isMissingSheet(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", rng, err)
	}

	rows := make([]payload.Row, 0, len(resp.Values))
	for _, raw := range resp.Values {
		cols := toStrings(raw)
		if len(cols) < 3 {
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(cols[2], ",", "."), 64)
		if err != nil {
			continue
		}
		row := payload.Row{
			Date:   cols[0],
			Name:   cols[1],
			Amount: amount,
		}
		if len(cols) >= 4 {
			row.Type = cols[3]
		}
		if len(cols) >= 5 {
			row.Project = cols[4]
		}
		if row.Name == "" && row.Amount == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, true, nil
}

// ensureSheet creates the tab when it does not exist yet.
func (c *Client) ensureSheet(ctx context.Context, sheet string) error {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet metadata: %w", err)
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == sheet {
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: sheet},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	slog.InfoContext(ctx, "Created mirror sheet", "sheet", sheet)
	return nil
}

func isMissingSheet(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Unable to parse range")
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
