package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/code-studio/internal/apperror"
	"github.com/sakif/code-studio/internal/executor"
)

type mockExecutor struct {
	result  *executor.ExecutionResult
	err     error
	lastReq executor.ExecutionRequest
}

func (m *mockExecutor) Execute(_ context.Context, req executor.ExecutionRequest) (*executor.ExecutionResult, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleExecute(t *testing.T) {
	mock := &mockExecutor{
		result: &executor.ExecutionResult{
			Stdout:   "hello\n",
			Compiled: true,
			Duration: 42 * time.Millisecond,
		},
	}
	h := NewExecuteHandler(mock, testLogger())

	body := bytes.NewBufferString(`{"language": "py", "code": "print('hello')"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/execute", body)
	rec := httptest.NewRecorder()

	h.HandleExecute(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp executeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "hello\n", resp.Stdout)
	assert.True(t, resp.Compiled)
	assert.Equal(t, int64(42), resp.DurationMS)

	// aliases normalize before reaching the executor
	assert.Equal(t, executor.LangPython, mock.lastReq.Language)
}

func TestHandleExecute_InvalidBody(t *testing.T) {
	h := NewExecuteHandler(&mockExecutor{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/execute", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	h.HandleExecute(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExecute_UnknownLanguage(t *testing.T) {
	h := NewExecuteHandler(&mockExecutor{}, testLogger())

	body := bytes.NewBufferString(`{"language": "cobol", "code": "x"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/execute", body)
	rec := httptest.NewRecorder()

	h.HandleExecute(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "language", resp.Field)
}

func TestHandleExecute_BlankCode(t *testing.T) {
	mock := &mockExecutor{err: apperror.ValidationFailed("code", "code is empty")}
	h := NewExecuteHandler(mock, testLogger())

	body := bytes.NewBufferString(`{"language": "python", "code": "   "}`)
	req := httptest.NewRequest(http.MethodPost, "/api/execute", body)
	rec := httptest.NewRecorder()

	h.HandleExecute(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExecute_NoExecutor(t *testing.T) {
	h := NewExecuteHandler(nil, testLogger())

	body := bytes.NewBufferString(`{"language": "python", "code": "print(1)"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/execute", body)
	rec := httptest.NewRecorder()

	h.HandleExecute(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleLanguages(t *testing.T) {
	h := NewExecuteHandler(&mockExecutor{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	rec := httptest.NewRecorder()

	h.HandleLanguages(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string][]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"python", "javascript", "java", "cpp"}, resp["languages"])
}
