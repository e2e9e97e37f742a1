package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		out = append(out, m)
	}
	return out
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn", "json")
	require.NoError(t, err)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "shown", got[0]["message"])
	assert.Contains(t, got[0], "time")

	_, err = New(&buf, "loud", "json")
	assert.Error(t, err)
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "info", "console")
	require.NoError(t, err)
	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	r := gin.New()
	r.Use(Middleware(base))
	r.GET("/ping", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside")
		c.String(http.StatusOK, "pong")
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)

	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "inside", got[0]["message"])
	assert.Equal(t, id, got[0]["request_id"])
	assert.Equal(t, "request", got[1]["message"])
	assert.Equal(t, id, got[1]["request_id"])
	assert.Equal(t, "GET", got[1]["method"])
	assert.Equal(t, "/ping", got[1]["path"])
	assert.Equal(t, float64(200), got[1]["status"])
	assert.Equal(t, "info", got[1]["level"])

	buf.Reset()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	got = lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "warn", got[0]["level"])
	assert.Equal(t, "abc-123", got[0]["request_id"])
}
