package web

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineCRUD(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/api/deadlines", map[string]any{
		"title":       "  File rejoinder ",
		"description": "Reply to counter affidavit",
		"date":        "2024-06-15",
		"priority":    "High",
		"category":    "Court Filing",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.EqualValues(t, 1, created["id"])
	assert.Equal(t, "File rejoinder", created["title"])
	assert.EqualValues(t, 5, created["days_remaining"])

	w = ts.do(t, http.MethodGet, "/api/deadlines/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Court Filing", decode(t, w)["category"])

	w = ts.do(t, http.MethodPut, "/api/deadlines/1", map[string]any{
		"title":    "File rejoinder",
		"date":     "2024-06-09",
		"priority": "Low",
		"category": "Hearing",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)
	assert.Equal(t, "Low", updated["priority"])
	assert.EqualValues(t, -1, updated["days_remaining"])

	w = ts.do(t, http.MethodDelete, "/api/deadlines/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodGet, "/api/deadlines/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(t, http.MethodDelete, "/api/deadlines/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(t, http.MethodGet, "/api/deadlines/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDeadlineValidation(t *testing.T) {
	ts := newTestServer(t, nil)
	tests := map[string]map[string]any{
		"missing title":    {"date": "2024-06-15", "priority": "High"},
		"bad date":         {"title": "x", "date": "15/06/2024", "priority": "High"},
		"unknown priority": {"title": "x", "date": "2024-06-15", "priority": "Urgent"},
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/deadlines", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func seedDeadlines(t *testing.T, ts *testServer) {
	t.Helper()
	for _, d := range []map[string]any{
		{"title": "Hearing prep", "date": "2024-06-20", "priority": "Medium", "category": "Hearing"},
		{"title": "GST return", "date": "2024-06-12", "priority": "High", "category": "Compliance"},
		{"title": "Client call", "date": "2024-07-30", "priority": "Low", "category": "Client Meeting"},
	} {
		w := ts.do(t, http.MethodPost, "/api/deadlines", d)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func titles(t *testing.T, body map[string]any) []string {
	t.Helper()
	var out []string
	for _, d := range body["deadlines"].([]any) {
		out = append(out, d.(map[string]any)["title"].(string))
	}
	return out
}

func TestListDeadlines(t *testing.T) {
	ts := newTestServer(t, nil)
	seedDeadlines(t, ts)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"GST return", "Hearing prep", "Client call"}},
		{"?sort=date-desc", []string{"Client call", "Hearing prep", "GST return"}},
		{"?sort=Priority%20(High%20to%20Low)", []string{"GST return", "Hearing prep", "Client call"}},
		{"?priority=High&priority=Low", []string{"GST return", "Client call"}},
		{"?category=Hearing", []string{"Hearing prep"}},
	}
	for _, tt := range tests {
		w := ts.do(t, http.MethodGet, "/api/deadlines"+tt.query, nil)
		require.Equal(t, http.StatusOK, w.Code, tt.query)
		assert.Equal(t, tt.want, titles(t, decode(t, w)), tt.query)
	}

	for _, bad := range []string{"?sort=alphabetical", "?priority=Urgent", "?category=Party"} {
		w := ts.do(t, http.MethodGet, "/api/deadlines"+bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}

func TestUpcomingDeadlines(t *testing.T) {
	ts := newTestServer(t, nil)
	seedDeadlines(t, ts)

	w := ts.do(t, http.MethodGet, "/api/deadlines/upcoming", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 7, body["days"])
	assert.Equal(t, []string{"GST return"}, titles(t, body))

	w = ts.do(t, http.MethodGet, "/api/deadlines/upcoming?days=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"GST return", "Hearing prep"}, titles(t, decode(t, w)))

	w = ts.do(t, http.MethodGet, "/api/deadlines/upcoming?days=soon", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportDeadlines(t *testing.T) {
	ts := newTestServer(t, nil)
	seedDeadlines(t, ts)

	w := ts.do(t, http.MethodGet, "/api/deadlines/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=legal_deadlines.csv", w.Header().Get("Content-Disposition"))
	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Title", "Description", "Date", "Days Remaining", "Priority", "Category"}, records[0])
	assert.Equal(t, "GST return", records[1][0])
	assert.Equal(t, "2", records[1][3])

	w = ts.do(t, http.MethodGet, "/api/deadlines/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=legal_deadlines.xlsx", w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"), "xlsx is a zip archive")

	w = ts.do(t, http.MethodGet, "/api/deadlines/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
