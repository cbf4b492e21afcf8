package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/export"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Publisher publishes an exported slice and returns a link to the tab it
// was written to.
type Publisher interface {
	Publish(ctx context.Context, s export.Slice) (string, error)
}

// Writer publishes slices to a Google spreadsheet, one tab per slice.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	logger.Debug("sheets writer ready", "auth", config.Auth(), "spreadsheet", config.SpreadsheetID)

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Publish writes s to a tab named after its title, replacing what was
// there.
func (w *Writer) Publish(ctx context.Context, s export.Slice) (string, error) {
	w.logger.Info("publishing slice", "title", s.Title, "rows", len(s.Rows))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	tab := TabName(s)
	sheetID, err := w.ensureTab(ctx, spreadsheetID, tab)
	if err != nil {
		return "", fmt.Errorf("failed to prepare tab %q: %w", tab, err)
	}

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	values := Values(s)
	err = common.WithRetry(ctx, func() error {
		if clearErr := w.clearTab(ctx, spreadsheetID, tab); clearErr != nil {
			return classifyAPIError(clearErr)
		}
		return classifyAPIError(w.writeData(ctx, spreadsheetID, tab, values))
	}, retryOpts)
	if err != nil {
		return "", fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return classifyAPIError(w.applyFormatting(ctx, spreadsheetID, sheetID, len(s.Headers)))
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("publish completed",
		"spreadsheet_id", spreadsheetID,
		"tab", tab,
		"rows_written", len(values))

	return TabURL(spreadsheetID, sheetID), nil
}

// TabURL links to one tab of a spreadsheet.
func TabURL(spreadsheetID string, sheetID int64) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit#gid=%d", spreadsheetID, sheetID)
}

// TabName returns the sheet tab used for s.
func TabName(s export.Slice) string {
	name := s.Title
	if name == "" {
		name = s.FileName
	}
	runes := []rune(name)
	if len(runes) > 100 {
		name = string(runes[:100])
	}
	return name
}

// Values converts a slice into sheet rows: headers first, then cells.
// Numeric cells are sent as numbers so the sheet can sort and chart them.
func Values(s export.Slice) [][]any {
	values := make([][]any, 0, len(s.Rows)+1)

	header := make([]any, len(s.Headers))
	for i, h := range s.Headers {
		header[i] = h
	}
	values = append(values, header)

	for _, row := range s.Rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
			if !s.IsNumeric(i) {
				continue
			}
			if v, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
				cells[i] = v
			}
		}
		values = append(values, cells)
	}
	return values
}

// classifyAPIError marks Google API errors for the retry loop: 429 is a
// rate limit, other 4xx responses are permanent, everything else may be
// retried.
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
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return common.Permanent(err)
	default:
		return common.Transient(err)
	}
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	switch config.Auth() {
	case AuthServiceAccount:
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)

	case AuthRefreshToken:
		client := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}
		tokenSource = client.TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})

	default:
		return nil, fmt.Errorf("%w: no Google credentials", common.ErrMissingConfig)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
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
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	// Later publishes in this process reuse it.
	w.config.SpreadsheetID = created.SpreadsheetId
	return created.SpreadsheetId, nil
}

// ensureTab returns the sheet id of the named tab, adding the tab if needed.
func (w *Writer) ensureTab(ctx context.Context, spreadsheetID, tab string) (int64, error) {
	doc, err := w.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	for _, sheet := range doc.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == tab {
			return sheet.Properties.SheetId, nil
		}
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: tab},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return 0, fmt.Errorf("add sheet returned no properties")
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

func (w *Writer) clearTab(ctx context.Context, spreadsheetID, tab string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, quoteTab(tab), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// writeData writes the data to the tab in batches.
func (w *Writer) writeData(ctx context.Context, spreadsheetID, tab string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		rangeStr := fmt.Sprintf("%s!A%d", quoteTab(tab), i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
			ValueInputOption("RAW").
			Context(ctx).
			Do()

		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// applyFormatting bolds and freezes the header row and sizes the columns.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, sheetID int64, columns int) error {
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(columns),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold: true,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   int64(columns),
				},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 1,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

// quoteTab quotes a tab name for A1 notation.
func quoteTab(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}
