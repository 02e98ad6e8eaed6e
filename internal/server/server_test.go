package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typeflow/internal/model"
	"github.com/verte-zerg/typeflow/internal/server"
	"github.com/verte-zerg/typeflow/internal/store"
)

func newTestServer(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st, err := store.Open(filepath.Join(t.TempDir(), "typeflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	srv := server.New(model.ServerConfig{Addr: "127.0.0.1:0"}, st)
	return srv.Handler(), st
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["detail"]
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"ok": true}, decode[map[string]bool](t, rec))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "no-store")
}

func TestGetTextReturnsSeededText(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/texts?duration=60", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	text := decode[model.Text](t, rec)
	assert.NotZero(t, text.ID)
	assert.Equal(t, 60, text.Duration)
	assert.Equal(t, "Short 60s paragraph. Warm up and find rhythm.", text.Content)
}

func TestGetTextRejectsInvalidDuration(t *testing.T) {
	h, _ := newTestServer(t)
	for _, q := range []string{"duration=45", "duration=abc", ""} {
		rec := do(t, h, http.MethodGet, "/api/texts?"+q, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Equal(t, "Invalid duration. Use 60, 90, or 120.", detail(t, rec))
	}
}

func TestGetTextNotFoundWhenPoolEmpty(t *testing.T) {
	h, st := newTestServer(t)
	texts, err := st.ListTexts(context.Background())
	require.NoError(t, err)
	for _, text := range texts {
		if text.Duration == 90 {
			require.NoError(t, st.DeleteText(context.Background(), text.ID))
		}
	}

	rec := do(t, h, http.MethodGet, "/api/texts?duration=90", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No texts for this duration", detail(t, rec))
}

func TestTextAdminLifecycle(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/texts", map[string]any{"duration": 120, "content": "fresh text"})
	require.Equal(t, http.StatusOK, rec.Code)
	id := decode[map[string]int64](t, rec)["id"]
	require.NotZero(t, id)

	rec = do(t, h, http.MethodGet, "/api/texts/all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]model.Text](t, rec)
	require.Len(t, all, 4)
	assert.Equal(t, "fresh text", all[3].Content)
	assert.True(t, all[3].Active)

	rec = do(t, h, http.MethodDelete, "/api/texts/"+jsonInt(id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	deleted := decode[map[string]any](t, rec)
	assert.Equal(t, true, deleted["ok"])
	assert.EqualValues(t, id, deleted["deleted_id"])

	rec = do(t, h, http.MethodDelete, "/api/texts/"+jsonInt(id), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Text not found", detail(t, rec))
}

func TestAddTextRejectsInvalidDuration(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/api/texts", map[string]any{"duration": 30, "content": "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func validResult(textID int64) map[string]any {
	return map[string]any{
		"user_id":        "ada",
		"duration":       60,
		"wpm":            72,
		"accuracy":       96,
		"correct_chars":  360,
		"raw_keystrokes": 375,
		"text_id":        textID,
	}
}

func TestPostResultValidation(t *testing.T) {
	h, _ := newTestServer(t)

	cases := []struct {
		name   string
		field  string
		value  any
		status int
		detail string
	}{
		{"duration", "duration", 45, http.StatusBadRequest, "Invalid duration"},
		{"accuracy above", "accuracy", 101, http.StatusBadRequest, "Invalid accuracy"},
		{"accuracy below", "accuracy", -1, http.StatusBadRequest, "Invalid accuracy"},
		{"wpm", "wpm", 301, http.StatusBadRequest, "Unrealistic WPM"},
		{"text", "text_id", 9999, http.StatusNotFound, "Text not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := validResult(1)
			body[tc.field] = tc.value
			rec := do(t, h, http.MethodPost, "/api/results", body)
			require.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.detail, detail(t, rec))
		})
	}
}

func TestPostResultMissingFields(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/api/results", map[string]any{"wpm": 10})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLeaderboardRanksResults(t *testing.T) {
	h, _ := newTestServer(t)

	fast := validResult(1)
	fast["wpm"] = 88
	slow := validResult(1)
	slow["wpm"] = 35
	delete(slow, "user_id")
	other := validResult(2)
	other["duration"] = 90

	for _, body := range []map[string]any{slow, fast, other} {
		rec := do(t, h, http.MethodPost, "/api/results", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, true, decode[map[string]any](t, rec)["ok"])
	}

	rec := do(t, h, http.MethodGet, "/api/leaderboard?duration=60", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]model.LeaderboardEntry](t, rec)
	require.Len(t, entries, 2)

	assert.Equal(t, "ada", entries[0].UserID)
	assert.Equal(t, 88, entries[0].WPM)
	assert.Equal(t, "Advanced", entries[0].Achievement)
	assert.False(t, entries[0].CreatedAt.IsZero())

	assert.Equal(t, "anon", entries[1].UserID)
	assert.Equal(t, 35, entries[1].WPM)
	assert.Equal(t, "Beginner", entries[1].Achievement)

	rec = do(t, h, http.MethodGet, "/api/leaderboard?duration=60&limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.LeaderboardEntry](t, rec), 1)
}

func TestLeaderboardEmpty(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/leaderboard?duration=120", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestAddTextNormalizesContent(t *testing.T) {
	h, st := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/api/texts", map[string]any{"duration": 60, "content": "  two\nlines ", "active": false})
	require.Equal(t, http.StatusOK, rec.Code)
	id := decode[map[string]int64](t, rec)["id"]

	text, err := st.GetText(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "two lines", text.Content)
	assert.False(t, text.Active)

	rec = do(t, h, http.MethodPost, "/api/texts", map[string]any{"duration": 60, "content": " \n\t"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Content must not be empty", detail(t, rec))
}
