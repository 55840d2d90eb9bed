package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/2beens/gymsheets/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/googleapi"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	DefaultStartColumn = "A"

	valueInputOption = "USER_ENTERED"
	insertDataOption = "INSERT_ROWS"

	titlesCacheSize       = 1024 * 1024 // freecache minimum is 512KB
	DefaultTitlesCacheTTL = 5 * time.Minute
)

// Result of a single append. Failures are reported here instead of as errors,
// so callers decide how to surface them.
type Result struct {
	OK      bool     `json:"ok"`
	Error   string   `json:"error,omitempty"`
	Updates *Updates `json:"updates,omitempty"`
}

type Updates struct {
	UpdatedRange   string `json:"updatedRange"`
	UpdatedRows    int64  `json:"updatedRows"`
	UpdatedColumns int64  `json:"updatedColumns"`
	UpdatedCells   int64  `json:"updatedCells"`
}

func failed(msg string) Result {
	return Result{OK: false, Error: msg}
}

type serviceProvider interface {
	Get() (*sheetsapi.Service, error)
}

type AppenderParams struct {
	SpreadsheetID string
	// VerifySheetTitles makes the appender check that the target sheet exists
	// before appending to it
	VerifySheetTitles bool
	TitlesCacheTTL    time.Duration
}

// Appender appends rows to the sheets of a single spreadsheet.
// Every call results in at most one append request, never retried.
type Appender struct {
	services       serviceProvider
	spreadsheetID  string
	verifyTitles   bool
	titlesCache    *freecache.Cache
	titlesCacheTTL time.Duration
}

func NewAppender(services serviceProvider, params AppenderParams) *Appender {
	ttl := params.TitlesCacheTTL
	if ttl <= 0 {
		ttl = DefaultTitlesCacheTTL
	}

	return &Appender{
		services:       services,
		spreadsheetID:  params.SpreadsheetID,
		verifyTitles:   params.VerifySheetTitles,
		titlesCache:    freecache.NewCache(titlesCacheSize),
		titlesCacheTTL: ttl,
	}
}

func (a *Appender) AppendRows(ctx context.Context, sheetName string, rows [][]any) Result {
	return a.AppendRowsAt(ctx, sheetName, DefaultStartColumn, rows)
}

// AppendRowsAt appends rows after the last populated row of the given column
func (a *Appender) AppendRowsAt(ctx context.Context, sheetName, startColumn string, rows [][]any) Result {
	if len(rows) == 0 {
		return failed("appendRows called with empty rows.")
	}
	return a.AppendToSheet(ctx, sheetName, fmt.Sprintf("%s:%s", startColumn, startColumn), rows)
}

func (a *Appender) AppendToSheet(ctx context.Context, sheetName, rng string, values [][]any) (result Result) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sheets.append")
	span.SetAttributes(
		attribute.String("sheet", sheetName),
		attribute.Int("rows", len(values)),
	)
	defer func() {
		if !result.OK {
			span.SetStatus(codes.Error, result.Error)
		}
		span.End()
	}()

	service, err := a.services.Get()
	if err != nil {
		return failed(err.Error())
	}

	if a.verifyTitles {
		exists, err := a.sheetExists(ctx, service, sheetName)
		if err != nil {
			log.Errorf("google sheets get titles error: %s", err)
			return failed(apiErrorMessage(err))
		}
		if !exists {
			return failed(fmt.Sprintf("sheet [%s] not found in spreadsheet", sheetName))
		}
	}

	resp, err := service.Spreadsheets.Values.
		Append(a.spreadsheetID, fmt.Sprintf("%s!%s", sheetName, rng), &sheetsapi.ValueRange{
			Values: values,
		}).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	if err != nil {
		log.Errorf("google sheets append error: %s", err)
		return failed(apiErrorMessage(err))
	}

	result = Result{OK: true}
	if resp.Updates != nil {
		result.Updates = &Updates{
			UpdatedRange:   resp.Updates.UpdatedRange,
			UpdatedRows:    resp.Updates.UpdatedRows,
			UpdatedColumns: resp.Updates.UpdatedColumns,
			UpdatedCells:   resp.Updates.UpdatedCells,
		}
	}
	log.Tracef("appended %d rows to sheet [%s]", len(values), sheetName)

	return result
}

func (a *Appender) sheetExists(ctx context.Context, service *sheetsapi.Service, sheetName string) (bool, error) {
	cacheKey := []byte("titles::" + a.spreadsheetID)
	if cachedBytes, err := a.titlesCache.Get(cacheKey); err == nil {
		var titles []string
		if err := json.Unmarshal(cachedBytes, &titles); err == nil && slices.Contains(titles, sheetName) {
			return true, nil
		}
		// sheet might have been added since, fall through and refresh
	}

	spreadsheet, err := service.Spreadsheets.
		Get(a.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return false, err
	}

	titles := make([]string, 0, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}

	if titlesJson, err := json.Marshal(titles); err == nil {
		if err := a.titlesCache.Set(cacheKey, titlesJson, int(a.titlesCacheTTL.Seconds())); err != nil {
			log.Warnf("cache sheet titles: %s", err)
		}
	}

	return slices.Contains(titles, sheetName), nil
}

// apiErrorMessage prefers the message returned by the API over the full error text
func apiErrorMessage(err error) string {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
