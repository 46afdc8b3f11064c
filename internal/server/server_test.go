package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alkime/slideswitch/internal/config"
	"github.com/alkime/slideswitch/internal/owner"
	"github.com/alkime/slideswitch/internal/server"
	"github.com/alkime/slideswitch/pkg/slideswitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type switchBody struct {
	Open      bool   `json:"open"`
	Phase     string `json:"phase"`
	Shape     string `json:"shape"`
	Slideable bool   `json:"slideable"`
	ThumbLeft int    `json:"thumbLeft"`
	Alpha     int    `json:"alpha"`
	Range     struct {
		Min int `json:"min"`
		Max int `json:"max"`
	} `json:"range"`
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := &config.Config{
		Env:        "test",
		Port:       "8080",
		HSTSMaxAge: 31536000,
		CSPMode:    "relaxed",
		LogLevel:   "info",
	}

	// Only show errors during tests
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:       slog.LevelError,
		AddSource:   false,
		ReplaceAttr: nil,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	loop := owner.New(slideswitch.DefaultConfig(), logger, slideswitch.WithTickPeriod(100*time.Microsecond))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return server.New(cfg, logger, loop)
}

func do(t *testing.T, srv *server.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	return w
}

func decodeSwitch(t *testing.T, w *httptest.ResponseRecorder) switchBody {
	t.Helper()

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body switchBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code, "Health endpoint should return 200 OK")
	assert.Contains(t, w.Body.String(), "healthy")
	assert.Contains(t, w.Body.String(), "slideswitch")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"), "security middleware applied")
}

func TestSwitchAPI_DragToOpen(t *testing.T) {
	srv := newTestServer(t)

	body := decodeSwitch(t, do(t, srv, http.MethodPut, "/api/v1/switch/layout",
		map[string]int{"width": 280, "height": 140}))
	assert.Equal(t, 6, body.Range.Min)
	assert.Equal(t, 140, body.Range.Max)
	assert.Equal(t, "closed", body.Phase)

	for _, ev := range []map[string]any{
		{"action": "down", "x": 10},
		{"action": "move", "x": 150},
		{"action": "up", "x": 150},
	} {
		w := do(t, srv, http.MethodPost, "/api/v1/switch/pointer", ev)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"handled":true`)
	}

	require.Eventually(t, func() bool {
		return decodeSwitch(t, do(t, srv, http.MethodGet, "/api/v1/switch", nil)).Phase == "open"
	}, 5*time.Second, 5*time.Millisecond)

	body = decodeSwitch(t, do(t, srv, http.MethodGet, "/api/v1/switch", nil))
	assert.True(t, body.Open)
	assert.Equal(t, 140, body.ThumbLeft)
	assert.Equal(t, 255, body.Alpha)
}

func TestSwitchAPI_SetStateAndShape(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, http.MethodPut, "/api/v1/switch/layout", map[string]int{"width": 280, "height": 140})

	body := decodeSwitch(t, do(t, srv, http.MethodPut, "/api/v1/switch/state", map[string]bool{"open": true}))
	assert.True(t, body.Open)
	assert.Equal(t, 255, body.Alpha)

	body = decodeSwitch(t, do(t, srv, http.MethodPut, "/api/v1/switch/shape", map[string]string{"shape": "circle"}))
	assert.Equal(t, "circle", body.Shape)
	assert.Equal(t, 146, body.ThumbLeft)

	w := do(t, srv, http.MethodGet, "/api/v1/switch/frame", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"roundrect"`)
	assert.Contains(t, w.Body.String(), `"color":"#00ee00"`)
}

func TestSwitchAPI_Locked(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, http.MethodPut, "/api/v1/switch/layout", map[string]int{"width": 280, "height": 140})
	body := decodeSwitch(t, do(t, srv, http.MethodPut, "/api/v1/switch/slideable", map[string]bool{"slideable": false}))
	assert.False(t, body.Slideable)

	w := do(t, srv, http.MethodPost, "/api/v1/switch/pointer", map[string]any{"action": "down", "x": 10})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"handled":false`)
}

func TestSwitchAPI_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "unknown action", method: http.MethodPost, path: "/api/v1/switch/pointer", body: map[string]any{"action": "hover"}},
		{name: "missing open", method: http.MethodPut, path: "/api/v1/switch/state", body: map[string]any{}},
		{name: "zero size", method: http.MethodPut, path: "/api/v1/switch/layout", body: map[string]int{"width": 0, "height": 10}},
		{name: "unknown shape", method: http.MethodPut, path: "/api/v1/switch/shape", body: map[string]string{"shape": "star"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
