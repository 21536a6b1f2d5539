package ui

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"payrecon/app"
	"payrecon/internal"
	"payrecon/internal/config"
	"payrecon/internal/testkit"
)

func newTestServer(t *testing.T, opts ...func(*config.ServerConfig)) *Server {
	t.Helper()
	logger := internal.NewLoggerWithWriter(internal.LogLevelError, "json", io.Discard)
	cfg := config.ServerConfig{
		GinMode:           gin.TestMode,
		MaxUploadBytes:    5 << 20,
		MaxConcurrentRuns: 2,
		ResultTTL:         time.Minute,
		ExportFilename:    "diferencas.xlsx",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	s, err := NewServer(cfg, app.NewReconciliationService(app.DefaultSettings(), logger), logger, Assets)
	require.NoError(t, err)
	return s
}

func uploadRequest(t *testing.T, path string, field string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "input.xlsx")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

type apiRun struct {
	Data *struct {
		ID          string `json:"id"`
		DownloadURL string `json:"download_url"`
		Differences []struct {
			Key        string `json:"key"`
			Difference string `json:"difference"`
		} `json:"differences"`
		Summary struct {
			Keys int `json:"keys"`
		} `json:"summary"`
	} `json:"data"`
	Error *Error `json:"error"`
}

func TestIndexAndHealth(t *testing.T) {
	s := newTestServer(t)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="workbook"`)
	assert.Contains(t, w.Body.String(), "<h3")

	w = serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","results":0}`, w.Body.String())

	w = serve(s, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIReconcileAndDownload(t *testing.T) {
	s := newTestServer(t)

	w := serve(s, uploadRequest(t, "/api/reconcile", uploadField, testkit.ScenarioWorkbook().MustBytes()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp apiRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	require.Len(t, resp.Data.Differences, 2)
	assert.Equal(t, "12345678900", resp.Data.Differences[0].Key)
	assert.Equal(t, "5", resp.Data.Differences[0].Difference)
	assert.Equal(t, "-30", resp.Data.Differences[1].Difference)
	assert.Equal(t, 3, resp.Data.Summary.Keys)

	w = serve(s, httptest.NewRequest(http.MethodGet, resp.Data.DownloadURL, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "diferencas.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("differences")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestDownloadDefaultFilename(t *testing.T) {
	s := newTestServer(t, func(cfg *config.ServerConfig) { cfg.ExportFilename = "" })

	w := serve(s, uploadRequest(t, "/api/reconcile", uploadField, testkit.ScenarioWorkbook().MustBytes()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp apiRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)

	w = serve(s, httptest.NewRequest(http.MethodGet, resp.Data.DownloadURL, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="DENTAL_ANALISADO.xlsx"`, w.Header().Get("Content-Disposition"))
}

func TestAPIReconcileErrors(t *testing.T) {
	missingAmount := testkit.NewWorkbook().
		Sheet("FATURA", testkit.InvoiceHeader(), testkit.Row("1", "Ana", "Ana", 10)).
		Sheet("FOLHA", testkit.Row("CPF", "Nome"), testkit.Row("1", "Ana"))

	tests := []struct {
		name     string
		field    string
		content  []byte
		wantCode string
		status   int
	}{
		{"not a workbook", uploadField, []byte("hello"), "UNREADABLE_SOURCE", http.StatusUnprocessableEntity},
		{"missing sheet", uploadField, testkit.NewWorkbook().Sheet("FATURA", testkit.InvoiceHeader()).MustBytes(), "UNREADABLE_SOURCE", http.StatusUnprocessableEntity},
		{"missing column", uploadField, missingAmount.MustBytes(), "UNRESOLVED_COLUMNS", http.StatusUnprocessableEntity},
		{"wrong field", "file", testkit.ScenarioWorkbook().MustBytes(), "INVALID_INPUT", http.StatusBadRequest},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(s, uploadRequest(t, "/api/reconcile", tt.field, tt.content))
			assert.Equal(t, tt.status, w.Code)

			var resp apiRun
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Nil(t, resp.Data)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestReconcilePage(t *testing.T) {
	s := newTestServer(t)

	w := serve(s, uploadRequest(t, "/reconcile", uploadField, testkit.ScenarioWorkbook().MustBytes()))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "12345678900")
	assert.Contains(t, body, "-30.00")
	assert.Contains(t, body, "/download/")
	assert.Equal(t, 1, s.cache.Len())

	missing := testkit.NewWorkbook().Sheet("FOLHA", testkit.PayrollHeader()).MustBytes()
	w = serve(s, uploadRequest(t, "/reconcile", uploadField, missing))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "FATURA")
	assert.Contains(t, w.Body.String(), "UNREADABLE_SOURCE")
}

func TestDownloadErrors(t *testing.T) {
	s := newTestServer(t)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/download/not-an-id", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(s, httptest.NewRequest(http.MethodGet, "/download/0192a3b4-0000-7000-8000-000000000000", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReconcileUploadTooLarge(t *testing.T) {
	s := newTestServer(t, func(cfg *config.ServerConfig) { cfg.MaxUploadBytes = 1024 })

	w := serve(s, uploadRequest(t, "/api/reconcile", uploadField, testkit.ScenarioWorkbook().MustBytes()))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var resp apiRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UPLOAD_TOO_LARGE", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "1024")
	assert.Equal(t, 0, s.cache.Len())
}

func TestReconcileBusy(t *testing.T) {
	s := newTestServer(t)
	require.True(t, s.runs.TryAcquire(2))
	defer s.runs.Release(2)

	w := serve(s, uploadRequest(t, "/api/reconcile", uploadField, testkit.ScenarioWorkbook().MustBytes()))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
