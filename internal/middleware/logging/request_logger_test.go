package loggingmw

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/logging"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var line map[string]interface{}
		require.NoError(t, dec.Decode(&line))
		lines = append(lines, line)
	}
	return lines
}

func TestRequestLoggerInjectsContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestLogger(base)(func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("handled")
		return c.JSON(http.StatusOK, "ok")
	})
	require.NoError(t, h(c))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	// the handler's line went through the injected logger, so it
	// carries the request fields
	require.Equal(t, "handled", lines[0]["msg"])
	require.Equal(t, http.MethodGet, lines[0]["method"])
	require.Equal(t, "/api/cart", lines[0]["url"])

	require.Equal(t, "request completed", lines[1]["msg"])
	require.Equal(t, float64(http.StatusOK), lines[1]["status"])
	require.Equal(t, "INFO", lines[1]["level"])
}

func TestRequestLoggerWarnsOnClientError(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestLogger(base)(func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, "Invalid username or password.")
	})
	require.NoError(t, h(c))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "WARN", lines[0]["level"])
	require.Equal(t, float64(http.StatusBadRequest), lines[0]["status"])
}

func TestRequestLoggerPropagatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestLogger(base)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	require.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "req-123", lines[0]["request_id"])
}
