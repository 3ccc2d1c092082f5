package models

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Column-org/Column-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleInTestContext(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test-path", nil)

	HandleError(c, err, logger.GetLogger())
	return w
}

func TestErrorCodeStatusMapping(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeMissingField, http.StatusBadRequest},
		{ErrorCodeInvalidKey, http.StatusBadRequest},
		{ErrorCodeMalformedJSON, http.StatusBadRequest},
		{ErrorCodeNoFaucet, http.StatusBadRequest},
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeRateLimitExceeded, http.StatusTooManyRequests},
		{ErrorCodeRPCUnavailable, http.StatusInternalServerError},
		{ErrorCodeFaucetFailure, http.StatusInternalServerError},
		{ErrorCodeEmailFailure, http.StatusInternalServerError},
		{ErrorCodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatusCode())
		})
	}
}

func TestHandleError_DetailsInDevelopment(t *testing.T) {
	SetProductionMode(false)

	w := handleInTestContext(t, NewUpstreamError(ErrorCodeRPCUnavailable, "Failed to fetch balance", errors.New("connection refused")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch balance", body["error"])
	assert.Equal(t, "connection refused", body["details"])
}

func TestHandleError_DetailsSuppressedInProduction(t *testing.T) {
	SetProductionMode(true)
	defer SetProductionMode(false)

	w := handleInTestContext(t, NewUpstreamError(ErrorCodeRPCUnavailable, "Failed to fetch balance", errors.New("connection refused")))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch balance", body["error"])
	_, hasDetails := body["details"]
	assert.False(t, hasDetails)
}

func TestHandleError_UnknownErrorIsInternal(t *testing.T) {
	SetProductionMode(false)

	w := handleInTestContext(t, errors.New("something unexpected"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewAppErrorWithCause(ErrorCodeRPCUnavailable, "wrapper", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "RPC_UNAVAILABLE")
	assert.Contains(t, err.Error(), "root cause")
}
