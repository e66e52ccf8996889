// Package sheets mirrors monthly summaries into a Google Sheets
// spreadsheet so a printable record exists outside the service.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/PCalderonpm/menu-escolar/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client writes one row per (menu id, year, month) to a year-named sheet,
// e.g. "2024 Resumen". Existing rows for the same key are updated in
// place; new keys append.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	summaryBase   string
}

var _ SummaryWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client using service-account credentials.
// Required: GOOGLE_SPREADSHEET_ID. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS. Optional: GOOGLE_SUMMARY_SHEET_NAME
// (default "Resumen").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	summaryBase := strings.TrimSpace(os.Getenv("GOOGLE_SUMMARY_SHEET_NAME"))
	if summaryBase == "" {
		summaryBase = "Resumen"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		summaryBase:   summaryBase,
	}, nil
}

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

func (c *Client) sheetName(year int) string {
	return fmt.Sprintf("%d %s", year, c.summaryBase)
}

// rowKey is the value written to column A identifying a summary row.
func rowKey(menuID string, year, month int) string {
	return fmt.Sprintf("%s/%04d-%02d", menuID, year, month)
}

// WriteSummary implements SummaryWriter.
func (c *Client) WriteSummary(ctx context.Context, s MonthlySummary) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	sheet := c.sheetName(s.Stats.Year)
	key := rowKey(s.MenuID, s.Stats.Year, s.Stats.Month)

	// Scan column A for an existing row with this key.
	rng := fmt.Sprintf("%s!A:A", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read keys from %s: %w", sheet, err)
	}

	row := len(resp.Values) + 1 // default: first empty row
	for i, cells := range resp.Values {
		if len(cells) > 0 && fmt.Sprint(cells[0]) == key {
			row = i + 1
			break
		}
	}

	values := [][]any{{
		key,
		s.Student,
		s.Stats.Month,
		s.Stats.Year,
		s.Stats.MenuDays,
		s.Stats.PackedLunchDays,
		s.Stats.AbsentDays,
		s.Stats.NoClassesDays,
		s.Stats.MenuCost.Float(),
		s.Stats.PackedLunchCost.Float(),
		s.Stats.TotalCost.Float(),
		savingsCell(s.Stats),
		time.Now().UTC().Format(time.RFC3339),
	}}

	writeRange := fmt.Sprintf("%s!A%d:M%d", sheet, row, row)
	_, err = c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, writeRange, &gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write summary row %s: %w", writeRange, err)
	}

	slog.InfoContext(ctx, "Monthly summary exported",
		"menu_id", s.MenuID,
		"year", s.Stats.Year,
		"month", s.Stats.Month,
		"sheet", sheet,
		"row", row)

	return nil
}

// savingsCell renders the savings column, blank when no fixed plan is set.
func savingsCell(st core.MonthlyStats) any {
	if !st.HasSavings {
		return ""
	}
	return st.Savings.Float()
}
