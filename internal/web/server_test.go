package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexdesk/legal-assistant/internal/assistant"
	"github.com/lexdesk/legal-assistant/internal/deadline"
	"github.com/lexdesk/legal-assistant/internal/domain"
)

var today = time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	*Server
	router *gin.Engine
}

func newTestServer(t *testing.T, gen assistant.Generator) *testServer {
	t.Helper()
	store := deadline.NewJSONStore(filepath.Join(t.TempDir(), "legal_deadlines.json"))
	tracker, err := deadline.NewTracker(store, deadline.WithClock(func() time.Time { return today }))
	require.NoError(t, err)

	deps := Deps{Tracker: tracker, AssessmentYear: "2024-2025"}
	if gen != nil {
		deps.Assistant = assistant.New(gen)
	}
	s, err := NewServer(deps)
	require.NoError(t, err)
	return &testServer{Server: s, router: s.Router()}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestNewServerRequiresTracker(t *testing.T) {
	_, err := NewServer(Deps{})
	require.Error(t, err)
}

func TestIndexAndStatic(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>LexDesk")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = ts.do(t, http.MethodGet, "/static/app.js", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/assistant/chat")

	w = ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Len(t, w.Header().Get(requestIDHeader), 36, "generated ids are UUIDs")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestRecoveryReturnsJSON(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.router.GET("/boom", func(*gin.Context) { panic("boom") })

	w := ts.do(t, http.MethodGet, "/boom", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode(t, w)["error"])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.Invalid("op", "bad"), http.StatusBadRequest},
		{domain.NotFound("op", "missing"), http.StatusNotFound},
		{domain.Unavailable("op", errors.New("down")), http.StatusServiceUnavailable},
		{domain.Persistence("op", "/tmp/x", errors.New("disk full")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestCalculateTax(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/api/tax/calculate", `{"regime":"new","income":{"salary":1000000}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "new", body["regime"])
	assert.Equal(t, "2024-2025", body["assessment_year"])
	assert.Equal(t, "1000000", body["taxable_income"])
	assert.Equal(t, "62400", body["tax"])
	assert.NotContains(t, body, "deductions", "new regime lists no deduction items")
}

func TestCalculateTaxRejectsBadInput(t *testing.T) {
	ts := newTestServer(t, nil)
	tests := map[string]string{
		"unknown regime":  `{"regime":"middle","income":{"salary":100}}`,
		"fractional":      `{"regime":"old","income":{"salary":"100.50"}}`,
		"negative salary": `{"regime":"old","income":{"salary":-1}}`,
		"malformed body":  `{"regime":`,
		"missing regime":  `{"income":{"salary":1000000}}`,
		"empty regime":    `{"regime":"","income":{"salary":1000000}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/tax/calculate", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode(t, w)["error"])
		})
	}
}

func TestCompareRegimes(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/api/tax/compare",
		`{"income":{"salary":1000000},"deductions":{"section_80c":150000}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)

	cmp := body["comparison"].(map[string]any)
	assert.Equal(t, "850000", cmp["old_taxable_income"])
	assert.Equal(t, "85800", cmp["old_tax"])
	assert.Equal(t, "62400", cmp["new_tax"])
	assert.Equal(t, "new", cmp["recommended_regime"])

	rec := body["recommendation"].(map[string]any)
	assert.Equal(t, "The New Regime saves you ₹23,400.00.", rec["headline"])
}

func TestAnalyzeDeductions(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/api/tax/analyze", `{"base_income":1000000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Maximum", body["best"])
	assert.Len(t, body["scenarios"], 4)

	w = ts.do(t, http.MethodPost, "/api/tax/analyze", `{"base_income":-5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSlabs(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodGet, "/api/tax/slabs/old", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	brackets := body["brackets"].([]any)
	require.Len(t, brackets, 4)
	assert.Equal(t, "5% on ₹2.5L to ₹5L", brackets[1].(map[string]any)["label"])
	assert.Equal(t, "250000", body["zero_rate_threshold"])

	w = ts.do(t, http.MethodGet, "/api/tax/slabs/New%20Regime", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["brackets"], 6)

	w = ts.do(t, http.MethodGet, "/api/tax/slabs/flat", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaxReport(t *testing.T) {
	ts := newTestServer(t, nil)
	input := `{"regime":"old","income":{"salary":1000000},"deductions":{"section_80c":150000}}`

	w := ts.do(t, http.MethodPost, "/api/tax/report", input)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Regime Comparison")
	assert.Contains(t, w.Body.String(), "₹85,800.00")

	w = ts.do(t, http.MethodPost, "/api/tax/report?format=csv", input)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Kind,Name,"))

	w = ts.do(t, http.MethodPost, "/api/tax/report?format=pdf", input)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "Try one of:")

	w = ts.do(t, http.MethodPost, "/api/tax/report", `{"income":{"salary":1000000}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "tax regime is required")
}

func TestCitations(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodGet, "/api/citations/options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	opts := decode(t, w)
	assert.Len(t, opts["types"], 5)
	assert.Contains(t, opts["styles"], "Bluebook (India)")

	w = ts.do(t, http.MethodPost, "/api/citations", map[string]any{
		"type":  "case",
		"style": "bluebook",
		"fields": map[string]string{
			"case_name": "Kesavananda Bharati v. State of Kerala",
			"citation":  "(1973) 4 SCC 225",
			"court":     "SC",
			"year":      "1973",
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Kesavananda Bharati v. State of Kerala, (1973) 4 SCC 225 (SC, 1973)", body["citation"])
	assert.Equal(t, "Bluebook (India)", body["style"])

	w = ts.do(t, http.MethodPost, "/api/citations", map[string]any{
		"type": "book", "style": "apa", "fields": map[string]string{"title": "Constitutional Law"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "missing required fields")

	w = ts.do(t, http.MethodPost, "/api/citations", map[string]any{"type": "tweet", "style": "apa"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchCases(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodGet, "/api/search?q=constitution&sort=relevance", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	results := body["results"].([]any)
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].(map[string]any)["title"], "Kesavananda")
	analytics := body["analytics"].(map[string]any)
	assert.EqualValues(t, len(results), analytics["total"])

	w = ts.do(t, http.MethodGet, "/api/search?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["results"], 1)

	for _, bad := range []string{"from=10-06-2024", "sort=random", "limit=-1"} {
		w = ts.do(t, http.MethodGet, "/api/search?"+bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}

	w = ts.do(t, http.MethodGet, "/api/search/options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["jurisdictions"], "Supreme Court")
}
