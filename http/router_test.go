package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgage-agent/logger"
	"mortgage-agent/metrics"
	"mortgage-agent/repository"
	"mortgage-agent/service"
)

const batchBody = "Customer,Total loan,Interest,Years\n" +
	"Juha,1000,5,2\n" +
	"Karvinen,abc,1.27,6\n" +
	"Broken,1000\n" +
	`"Clarencé,Andersson",2000,6,4` + "\n"

const testMaxTermYears = 100

func newTestRouter(t *testing.T, limiter *RateLimiter, maxBody int64) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	src := repository.NewMemorySource()
	src.Put("march.txt", batchBody)
	src.Put("forever.txt", "h\nJuha,1000,5,2147483647\nKarvinen,1000,5,2\n")
	batch := service.NewBatchService(src, logger.Nop(), metrics.NewPrometheus(reg),
		service.WithMaxTermYears(testMaxTermYears))
	return NewRouter(RouterDeps{
		Batch:        batch,
		Limiter:      limiter,
		Gatherer:     reg,
		MaxBodyBytes: maxBody,
		MaxTermYears: testMaxTermYears,
		Log:          logger.Nop(),
	}), reg
}

func TestCalculatePayment_OK(t *testing.T) {
	router, _ := newTestRouter(t, nil, 1<<20)

	body := []byte(`{"principal": 1000, "annualRatePercent": 5, "termYears": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/mortgage/payment", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp paymentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.InDelta(t, 43.87, resp.MonthlyPayment, 0.01)
}

func TestCalculatePayment_InvalidArgument(t *testing.T) {
	router, _ := newTestRouter(t, nil, 1<<20)

	body := []byte(`{"principal": 1000, "annualRatePercent": 0, "termYears": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/mortgage/payment", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "invalid_argument", resp.Code)
	assert.Equal(t, service.InvalidTermsMessage, resp.Message)
}

func TestCalculatePayment_TermAboveLimit(t *testing.T) {
	router, _ := newTestRouter(t, nil, 1<<20)

	body := []byte(`{"principal": 1000, "annualRatePercent": 5, "termYears": 2147483647}`)
	req := httptest.NewRequest(http.MethodPost, "/mortgage/payment", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "invalid_argument", resp.Code)
	assert.Equal(t, "Loan term must not exceed 100 years.", resp.Message)
}

func TestCalculatePayment_TermAtLimit(t *testing.T) {
	router, _ := newTestRouter(t, nil, 1<<20)

	body := []byte(`{"principal": 100000, "annualRatePercent": 5, "termYears": 100}`)
	req := httptest.NewRequest(http.MethodPost, "/mortgage/payment", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCalculatePayment_BadRequest(t *testing.T) {
	router, _ := newTestRouter(t, nil, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/mortgage/payment", bytes.NewBuffer([]byte(`{invalid-json}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculatePayment_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t, nil, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/mortgage/payment", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestProcessBatch_OK(t *testing.T) {
	router, reg := newTestRouter(t, nil, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/mortgage/batch", strings.NewReader(batchBody))
	req.Header.Set("Content-Type", "text/csv; charset=utf-8")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp batchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, summaryDTO{Lines: 4, Prospects: 2, Skipped: 2}, resp.Summary)
	require.Len(t, resp.Prospects, 2)
	assert.Equal(t, "Clarencé Andersson", resp.Prospects[1].CustomerName)
	assert.Equal(t, 2, resp.Prospects[1].Number)
	assert.Equal(t, 5, resp.Prospects[1].Line)
	assert.Equal(t,
		"Prospect 1: Juha wants to borrow 1000.00 € for a period of 2 years and pay 43.87 € each month",
		resp.Output[0])

	require.Len(t, resp.Diagnostics, 2)
	assert.Equal(t, diagnosticDTO{
		Line:    3,
		Code:    "invalid_field_value",
		Message: "Error processing line: Karvinen,abc,1.27,6 - Expected a numeric value for loan amount on line 3, but found: 'abc'",
	}, resp.Diagnostics[0])
	assert.Equal(t, "malformed_structure", resp.Diagnostics[1].Code)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestProcessNamed(t *testing.T) {
	router, _ := newTestRouter(t, nil, 1<<20)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mortgage/batch/march.txt", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp batchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, summaryDTO{Lines: 4, Prospects: 2, Skipped: 2}, resp.Summary)
}

func TestBatchRoutes_TermAboveLimit(t *testing.T) {
	router, _ := newTestRouter(t, nil, 1<<20)
	body := "h\nJuha,1000,5,2147483647\nKarvinen,1000,5,2\n"

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/mortgage/batch", strings.NewReader(body)),
		httptest.NewRequest(http.MethodPost, "/mortgage/batch/forever.txt", nil),
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, req.URL.Path)
		var resp batchResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, summaryDTO{Lines: 2, Prospects: 1, Skipped: 1}, resp.Summary)
		assert.Equal(t, diagnosticDTO{
			Line:    2,
			Code:    "invalid_argument",
			Message: "Error processing line: Juha,1000,5,2147483647 - Loan term must not exceed 100 years.",
		}, resp.Diagnostics[0])
	}
}

func TestProcessNamed_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, nil, 1<<20)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mortgage/batch/april.txt", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "not_found", resp.Code)
	assert.Equal(t, "Resource file not found: april.txt", resp.Message)
}

func TestProcessBatch_UnsupportedMediaType(t *testing.T) {
	router, _ := newTestRouter(t, nil, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/mortgage/batch", strings.NewReader(batchBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestProcessBatch_TooLarge(t *testing.T) {
	router, _ := newTestRouter(t, nil, 16)

	req := httptest.NewRequest(http.MethodPost, "/mortgage/batch", strings.NewReader(batchBody))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/mortgage/batch", strings.NewReader(batchBody))
	router.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `mortgage_lines_total{outcome="prospect"} 2`)
	assert.Contains(t, w.Body.String(), `mortgage_batch_runs_total{status="ok"} 1`)
}

func TestRateLimitedRoutes(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()
	router, _ := newTestRouter(t, limiter, 1<<20)

	send := func() *httptest.ResponseRecorder {
		body := []byte(`{"principal": 1000, "annualRatePercent": 5, "termYears": 2}`)
		req := httptest.NewRequest(http.MethodPost, "/mortgage/payment", bytes.NewBuffer(body))
		req.RemoteAddr = "10.0.0.1:5000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)
	assert.Equal(t, http.StatusOK, send().Code)

	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// metrics are not rate limited
	m := httptest.NewRecorder()
	mreq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mreq.RemoteAddr = "10.0.0.1:5000"
	router.ServeHTTP(m, mreq)
	assert.Equal(t, http.StatusOK, m.Code)
}
