package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer implements service.ReportWriter for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}, nil
}

// Write replaces the sheet contents with the given report.
func (w *Writer) Write(ctx context.Context, report *service.Report) error {
	w.logger.Info("starting report export",
		"expenses", len(report.Expenses),
		"categories", len(report.CategoryTotals))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
	}

	if err := common.WithRetry(ctx, func() error {
		return classifyAPIError(w.clearSheet(ctx, spreadsheetID))
	}, retryOpts); err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := prepareReportData(report)

	if err := common.WithRetry(ctx, func() error {
		return classifyAPIError(w.writeData(ctx, spreadsheetID, values))
	}, retryOpts); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		if err := w.applyFormatting(ctx, spreadsheetID); err != nil {
			// Data is already written; formatting is cosmetic.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("report export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// classifyAPIError marks client errors as permanent and rate limits as such,
// so WithRetry only retries what can succeed on a later attempt.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return &common.RetryableError{Err: err, Retryable: false}
	default:
		return err
	}
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: "Ledger",
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// clearSheet clears all data from the sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// prepareReportData lays the report out as spreadsheet rows. Section
// titles sit in column A; every table starts with a header row.
func prepareReportData(report *service.Report) [][]any {
	categoryNames := make(map[int64]string, len(report.Categories))
	for _, cat := range report.Categories {
		categoryNames[cat.ID] = cat.Name
	}

	values := make([][]any, 0, 16+len(report.CategoryTotals)+len(report.Budgets)+
		len(report.Subscriptions)+len(report.Expenses))

	values = append(values,
		[]any{"Fintrack Report", report.GeneratedAt.Format("2006-01-02 15:04")},
		[]any{},
		[]any{"Category Totals"},
		[]any{"Category", "Total"},
	)
	for _, row := range report.CategoryTotals {
		values = append(values, []any{row.Name, row.Total})
	}

	if alert := report.Alert; alert != nil {
		limit := any("")
		if alert.Budget != nil {
			limit = alert.Budget.Limit
		}
		values = append(values,
			[]any{},
			[]any{"Budget Check"},
			[]any{"Month", "Spent", "Limit", "Status"},
			[]any{alert.Month, alert.Total, limit, alert.Status.String()},
		)
	}

	values = append(values,
		[]any{},
		[]any{"Budgets"},
		[]any{"Month", "Limit"},
	)
	for _, b := range report.Budgets {
		values = append(values, []any{b.Month, b.Limit})
	}

	values = append(values,
		[]any{},
		[]any{"Subscriptions"},
		[]any{"Name", "Amount", "Next Date"},
	)
	for _, sub := range report.Subscriptions {
		values = append(values, []any{sub.Name, sub.Amount, sub.NextDate})
	}

	values = append(values,
		[]any{},
		[]any{"Expenses"},
		[]any{"ID", "Date", "Title", "Amount", "Category"},
	)
	for _, exp := range report.Expenses {
		values = append(values, []any{
			exp.ID,
			exp.Date,
			exp.Title,
			exp.Amount,
			categoryLabel(exp, categoryNames),
		})
	}

	return values
}

// categoryLabel names the expense's category, falling back to the raw id
// when the category no longer exists.
func categoryLabel(exp model.Expense, names map[int64]string) string {
	if exp.CategoryID == nil {
		return ""
	}
	if name, ok := names[*exp.CategoryID]; ok {
		return name
	}
	return "#" + strconv.FormatInt(*exp.CategoryID, 10)
}

// writeData writes the data to the spreadsheet in batches.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		rangeStr := fmt.Sprintf("A%d", i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()

		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// applyFormatting bolds the title and sizes the columns to fit.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string) error {
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   2,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold:     true,
							FontSize: 16,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    0,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   5,
				},
			},
		},
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}
