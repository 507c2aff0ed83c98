package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/Zakaria-Tajer/fx/internal/handler"
	"github.com/Zakaria-Tajer/fx/internal/middleware"
	"github.com/Zakaria-Tajer/fx/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "router-test-key"

type stubImportService struct{}

func (stubImportService) Import(ctx context.Context, upload model.Upload) (*model.ImportResult, error) {
	result := model.NewImportResult()
	result.AddSaved()
	return result, nil
}

type stubDealService struct{}

func (stubDealService) GetByDealID(ctx context.Context, dealID string) (*model.Deal, error) {
	if dealID == "D1" {
		return &model.Deal{DealID: "D1"}, nil
	}
	return nil, model.ErrDealNotFound
}

func newTestRouter() http.Handler {
	h := handler.NewDealHandler(stubImportService{}, stubDealService{}, 1<<20, zerolog.Nop())
	return New(h, testAPIKey, zerolog.Nop())
}

func importRequest(t *testing.T, path string) *http.Request {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="deals.csv"`)
	header.Set("Content-Type", "text/csv")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, _ = part.Write([]byte("dealId,fromCurrency,toCurrency,timestamp,amount\n"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-API-Key", testAPIKey)
	return req
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name           string
		request        func(t *testing.T) *http.Request
		expectedStatus int
	}{
		{
			name: "Health without API key",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodGet, "/health", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Metrics without API key",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodGet, "/metrics", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Import",
			request: func(t *testing.T) *http.Request {
				return importRequest(t, "/api/deals/import")
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Import on legacy route",
			request: func(t *testing.T) *http.Request {
				return importRequest(t, "/csv/import")
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Import without API key",
			request: func(t *testing.T) *http.Request {
				req := importRequest(t, "/api/deals/import")
				req.Header.Del("X-API-Key")
				return req
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Get stored deal",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/api/deals/D1", nil)
				req.Header.Set("X-API-Key", testAPIKey)
				return req
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Get unknown deal",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/api/deals/D9", nil)
				req.Header.Set("X-API-Key", testAPIKey)
				return req
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "GET on the import path is a deal lookup",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/api/deals/import", nil)
				req.Header.Set("X-API-Key", testAPIKey)
				return req
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Preflight",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodOptions, "/api/deals/import", nil)
			},
			expectedStatus: http.StatusNoContent,
		},
	}

	r := newTestRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, tt.request(t))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_ImportResponseBody(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, importRequest(t, "/api/deals/import"))

	require.Equal(t, http.StatusOK, w.Code)
	var result model.ImportResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, 1, result.Saved)
	assert.Equal(t, []string{}, result.Errors)
}
