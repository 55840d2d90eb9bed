package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2beens/gymsheets/internal/config"
	"github.com/2beens/gymsheets/internal/gymlog"
	"github.com/2beens/gymsheets/internal/sheets"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDryRunServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(NewServerParams{
		Config: &config.Config{
			SheetsDryRun: true,
		},
		VersionInfo: "test-version",
	})
	require.NoError(t, err)
	return s
}

func TestNewServer(t *testing.T) {
	s := newDryRunServer(t)
	_, isMemory := s.appender.(*sheets.MemoryAppender)
	assert.True(t, isMemory)

	s, err := NewServer(NewServerParams{
		Config:        &config.Config{SheetsVerifyTitles: true},
		SpreadsheetID: "sheet-id",
	})
	require.NoError(t, err)
	_, isSheets := s.appender.(*sheets.Appender)
	assert.True(t, isSheets)

	s, err = NewServer(NewServerParams{
		Config: &config.Config{},
	})
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrMissingSpreadsheetID)
}

func TestServer_Routes(t *testing.T) {
	s := newDryRunServer(t)
	r := s.routerSetup()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gymsheets alive", rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "test-version", rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_LogWorkout(t *testing.T) {
	s := newDryRunServer(t)
	r := s.routerSetup()

	body := `{"command":"bench 135 10/2x2; squat 225 5/0x1","sessionNumber":3,"sessionId":"2024-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/logWorkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rr.Header().Get("Access-Control-Allow-Headers"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	var resp struct {
		OK         bool    `json:"ok"`
		SessionID  string  `json:"sessionId"`
		LoggedSets int     `json:"loggedSets"`
		Rows       [][]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "2024-01-01", resp.SessionID)
	assert.Equal(t, 3, resp.LoggedSets)
	assert.Len(t, resp.Rows, 3)

	memAppender := s.appender.(*sheets.MemoryAppender)
	assert.Len(t, memAppender.Rows(gymlog.SheetLog), 3)
	assert.Equal(t, float64(3), testutil.ToFloat64(s.metricsManager.CounterLoggedRows.WithLabelValues(gymlog.SheetLog)))
	assert.Equal(t, float64(1), testutil.ToFloat64(s.metricsManager.CounterRequests.WithLabelValues("POST", "200")))
}

func TestServer_PreflightAndMethodGuard(t *testing.T) {
	s := newDryRunServer(t)
	r := s.routerSetup()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/logWeight", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/logEffort", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Method not allowed"}`, rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_LogWeightErrors(t *testing.T) {
	s := newDryRunServer(t)
	r := s.routerSetup()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/logWeight", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Missing weight"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/logWeight", strings.NewReader(`{"weight":`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"ok":false,"error":"invalid request body"}`, rr.Body.String())
}

func TestServer_connStateMetrics(t *testing.T) {
	s := newDryRunServer(t)

	s.connStateMetrics(nil, http.StateNew)
	s.connStateMetrics(nil, http.StateNew)
	s.connStateMetrics(nil, http.StateActive)
	assert.Equal(t, float64(2), testutil.ToFloat64(s.metricsManager.GaugeOpenConnections))

	s.connStateMetrics(nil, http.StateClosed)
	assert.Equal(t, float64(1), testutil.ToFloat64(s.metricsManager.GaugeOpenConnections))
}
