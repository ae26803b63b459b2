package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pvpulse/internal/shared/testutil"
)

func newTestHandler(t *testing.T) *ErrorHandler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return NewErrorHandler(logger, false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleError_DataUnavailable(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/data/series", nil)

	h.HandleError(rec, req, NewDataUnavailableError("prices.csv", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeDataUnavailable, body["type"])
	assert.Equal(t, "/api/data/series", body["instance"])
}

func TestHandleError_NoData(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/data/stats", nil)

	h.HandleError(rec, req, fmt.Errorf("%w: Dầu KO", ErrNoData))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeNoData, body["type"])
}

func TestHandleError_ContextDeadline(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/data/records", nil)

	h.HandleError(rec, req, context.DeadlineExceeded)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeTimeout, body["type"])
}

func TestHandleError_AppError(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/data/stats", nil)

	h.HandleError(rec, req, NewNotFoundError(`product "bogus"`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeNotFound, body["type"])
}

func TestHandleError_UnknownError(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/data/series", nil)

	h.HandleError(rec, req, fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeInternal, body["type"])
	// Raw internal errors never leak their message.
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestHandleError_NilIsNoop(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(rec, req, nil)
	assert.Empty(t, rec.Body.String())
}

func TestAppError(t *testing.T) {
	cause := fmt.Errorf("disk gone")
	err := NewStorageError("failed to open history file", cause)

	assert.Equal(t, "[STORAGE] failed to open history file: disk gone", err.Error())
	assert.ErrorIs(t, err, cause)

	err.WithContext("path", "prices.csv")
	assert.Equal(t, "prices.csv", err.Context["path"])
}

func TestNewDataUnavailableError_Unwraps(t *testing.T) {
	withCause := NewDataUnavailableError("http://example.com", fmt.Errorf("status 503"))
	assert.ErrorIs(t, withCause, ErrDataUnavailable)

	withoutCause := NewDataUnavailableError("prices.csv", nil)
	assert.ErrorIs(t, withoutCause, ErrDataUnavailable)
}

func TestHandlePanic(t *testing.T) {
	logger, captured := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/data/series", nil)

	h.HandlePanic(rec, req, "index out of range")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeInternal, body["type"])
	assert.NotContains(t, rec.Body.String(), "index out of range")
	assert.True(t, captured.ContainsMessage("panic recovered"))
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/data/products", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
