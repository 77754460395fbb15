package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackflow/internal/api/controllers"
	"feedbackflow/internal/models/db_models"
	"feedbackflow/internal/repositories"
	"feedbackflow/internal/services"
	"feedbackflow/pkg/middleware"
	"feedbackflow/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(svc services.FeedbackServiceInterface, staticDir string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())

	fc := controllers.NewFeedbackController(svc)
	r.POST("/submit", fc.SubmitFeedback)
	r.GET("/feedbacks", fc.ListFeedbacks)
	r.GET("/health", controllers.NewHealthController().Health)
	r.NoRoute(controllers.NewStaticController(staticDir).Serve)
	return r
}

func newFileBackedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	repo := repositories.NewFeedbackFileRepository(filepath.Join(t.TempDir(), "feedbacks.json"))
	return newRouter(services.NewFeedbackService(repo), t.TempDir())
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func listFeedbacks(t *testing.T, r http.Handler) []map[string]interface{} {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/feedbacks", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return list
}

func TestSubmitThenList(t *testing.T) {
	r := newFileBackedRouter(t)

	w := doJSON(t, r, http.MethodPost, "/submit", `{"name":"Ann","email":"ann@x.com","message":"Great!"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Feedback submitted successfully!", resp.Message)
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, resp.TraceID, w.Header().Get(middleware.TraceIDHeader))

	list := listFeedbacks(t, r)
	require.Len(t, list, 1)
	fb := list[0]
	assert.Equal(t, float64(1), fb["id"])
	assert.Equal(t, "Ann", fb["name"])
	assert.Equal(t, "ann@x.com", fb["email"])
	assert.Equal(t, "Great!", fb["message"])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, fb["timestamp"])
	assert.Len(t, fb, 5, "no storage-internal fields")
}

func TestListEmptyStoreReturnsEmptyArray(t *testing.T) {
	r := newFileBackedRouter(t)

	w := doJSON(t, r, http.MethodGet, "/feedbacks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSubmitValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		kind string
	}{
		{"empty name", `{"name":"","email":"b@x.com","message":"hi"}`, "missing_field"},
		{"absent message", `{"name":"Bo","email":"b@x.com"}`, "missing_field"},
		{"no at sign", `{"name":"Bo","email":"no-at-sign","message":"hi"}`, "invalid_email"},
		{"whitespace name", `{"name":"  ","email":"b@x.com","message":"hi"}`, "blank_field"},
		{"empty object", `{}`, "missing_field"},
		{"malformed json", `{"name":`, utils.ErrKindInvalidPayload},
		{"wrong type", `{"name":1,"email":"b@x.com","message":"hi"}`, utils.ErrKindInvalidPayload},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newFileBackedRouter(t)

			w := doJSON(t, r, http.MethodPost, "/submit", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			resp := decodeEnvelope(t, w)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tc.kind, resp.Error)
			assert.NotEmpty(t, resp.Message)

			assert.Empty(t, listFeedbacks(t, r), "nothing persisted")
		})
	}
}

func TestSubmitWithoutJSONFieldsIsMissingField(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		body        string
	}{
		{"empty json body", "application/json", ""},
		{"json with charset and empty body", "application/json; charset=utf-8", ""},
		{"form post", "application/x-www-form-urlencoded", "name=Ann&email=ann%40x.com&message=hi"},
		{"no content type", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newFileBackedRouter(t)

			req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewBufferString(tc.body))
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeEnvelope(t, w)
			assert.Equal(t, "missing_field", resp.Error)
			assert.Equal(t, "All fields (name, email, message) are required.", resp.Message)
			assert.Empty(t, listFeedbacks(t, r))
		})
	}
}

func TestSubmitAssignsIncreasingIDs(t *testing.T) {
	r := newFileBackedRouter(t)

	for _, name := range []string{"One", "Two", "Three"} {
		w := doJSON(t, r, http.MethodPost, "/submit", `{"name":"`+name+`","email":"a@b.c","message":"m"}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	list := listFeedbacks(t, r)
	require.Len(t, list, 3)
	for i, fb := range list {
		assert.Equal(t, float64(i+1), fb["id"])
	}
	assert.Equal(t, "Three", list[2]["name"])
}

type failingService struct {
	err error
}

func (f failingService) SubmitFeedback(ctx context.Context, name, email, message string) error {
	return f.err
}

func (f failingService) ListFeedbacks(ctx context.Context) ([]db_models.Feedback, error) {
	return nil, f.err
}

func TestStorageFailureIsGenericServerError(t *testing.T) {
	secret := errors.New("open /srv/data/feedbacks.json: permission denied")
	r := newRouter(failingService{err: utils.NewStorageError("append", secret)}, t.TempDir())

	w := doJSON(t, r, http.MethodPost, "/submit", `{"name":"Ann","email":"ann@x.com","message":"Great!"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, utils.ErrKindStorage, resp.Error)
	assert.Equal(t, "Failed to save feedback. Please try again later.", resp.Message)
	assert.NotContains(t, w.Body.String(), "permission denied")

	w = doJSON(t, r, http.MethodGet, "/feedbacks", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp = decodeEnvelope(t, w)
	assert.Equal(t, "Failed to retrieve feedbacks. Please try again later.", resp.Message)
}

func TestConfigurationFailureIsServerError(t *testing.T) {
	r := newRouter(failingService{err: &utils.ConfigurationError{Key: "MONGODB_URI"}}, t.TempDir())

	w := doJSON(t, r, http.MethodGet, "/feedbacks", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "MONGODB_URI")
}

func TestHealth(t *testing.T) {
	r := newFileBackedRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStaticFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Feedback</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script.js"), []byte("console.log(1)"), 0o644))
	r := newRouter(failingService{}, dir)

	w := doJSON(t, r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Feedback</h1>")

	w = doJSON(t, r, http.MethodGet, "/script.js", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/missing.css", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/../../etc/passwd", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
