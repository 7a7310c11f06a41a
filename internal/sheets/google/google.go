// Package google exports the committee ledger to a Google Spreadsheet using
// Service Account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"samiti/internal/core"
	ports "samiti/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// Base sheet name without year; the export prefixes the session year.
	sheetBase string
}

var _ ports.LedgerExporter = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME (default "Ledger").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetBase := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetBase == "" {
		sheetBase = "Ledger"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetBase:     sheetBase,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
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

	slog.InfoContext(ctx, "Google Sheets service created")
	return service, nil
}

// ExportLedger rewrites the year's sheet with the contributions and expenses
// of that session. The sheet is cleared first so removed rows do not linger.
func (c *Client) ExportLedger(ctx context.Context, year int, records core.YearRecords) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	sheet := fmt.Sprintf("%d %s", year, c.sheetBase)

	clearRange := fmt.Sprintf("%s!A:E", sheet)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("clear sheet %s: %w", sheet, err)
	}

	rows := ledgerRows(records)

	writeRange := fmt.Sprintf("%s!A1:E%d", sheet, len(rows))
	vr := &gsheet.ValueRange{Values: rows}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("write sheet %s: %w", sheet, err)
	}

	slog.InfoContext(ctx, "Exported ledger",
		"sheet", sheet,
		"contributions", len(records.Contributions),
		"expenses", len(records.Expenses))

	return writeRange, nil
}

// ledgerRows renders the ledger as spreadsheet rows. Contributions come
// first, then expenses, each section with its own header.
func ledgerRows(records core.YearRecords) [][]any {
	rows := [][]any{
		{"Type", "Date", "Name / Category", "Detail", "Amount"},
	}
	for _, con := range records.Contributions {
		rows = append(rows, []any{"Collection", con.Date, con.DonorName, con.Note, con.Amount})
	}
	for _, exp := range records.Expenses {
		rows = append(rows, []any{"Expense", exp.Date, exp.Category, exp.Description, exp.Amount})
	}

	sum := core.Summarize(records.Contributions, records.Expenses)
	rows = append(rows,
		[]any{},
		[]any{"Total Collected", "", "", "", core.FormatRupees(sum.TotalCollected)},
		[]any{"Total Expense", "", "", "", core.FormatRupees(sum.TotalExpense)},
		[]any{"Balance", "", "", "", core.FormatRupees(sum.Balance)},
	)
	return rows
}
