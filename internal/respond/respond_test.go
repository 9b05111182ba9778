package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestOK(t *testing.T) {
	t.Parallel()

	c, rec := newContext(t)
	require.NoError(t, OK(c, echo.Map{"token": "abc"}))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Errors)
}

func TestFail(t *testing.T) {
	t.Parallel()

	c, rec := newContext(t)
	require.NoError(t, Fail(c, http.StatusBadRequest, "invalid input", "name is required"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	assert.Equal(t, "invalid input", env.Message)
	assert.Equal(t, []string{"name is required"}, env.Errors)
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		code     int
		message  string
	}{
		{name: "route not found", err: echo.ErrNotFound, code: http.StatusNotFound, message: "route not found"},
		{name: "http error with message", err: echo.NewHTTPError(http.StatusBadRequest, "bad body"), code: http.StatusBadRequest, message: "bad body"},
		{name: "unexpected error is generic", err: errors.New("pq: connection refused"), code: http.StatusInternalServerError, message: "internal server error"},
		{name: "500 http error never leaks detail", err: echo.NewHTTPError(http.StatusInternalServerError, "stack trace here"), code: http.StatusInternalServerError, message: "internal server error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, rec := newContext(t)
			ErrorHandler(tt.err, c)

			require.Equal(t, tt.code, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			assert.Nil(t, env.Data)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestErrorHandler_CommittedResponse(t *testing.T) {
	t.Parallel()

	c, rec := newContext(t)
	require.NoError(t, OK(c, "already sent"))
	ErrorHandler(errors.New("late failure"), c)
	assert.Equal(t, http.StatusOK, rec.Code)
}
