package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JonMunkholm/ContentExplorer/internal/config"
	"github.com/JonMunkholm/ContentExplorer/internal/core"
	"github.com/JonMunkholm/ContentExplorer/internal/logging"
	"github.com/JonMunkholm/ContentExplorer/internal/web/templates"
	"github.com/a-h/templ"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	h := core.NewHeader([]string{"brm_code", "ship_name", "has_contentful_content"})
	ships := core.NewDataset(
		core.Definition{Key: core.KeyShips, Section: "ships", Label: "Ships"},
		h,
		[]core.Record{core.NewRecord(h, []string{"S1", "Alpha", "True"})},
	)

	snap, err := core.NewSnapshot(core.NewCollection(ships))
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}

	cfg := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 0}}
	return NewServer(snap, cfg)
}

func TestHandleDashboard(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	body := rec.Body.String()
	for _, s := range []string{
		"<!doctype html>",
		`<td>Alpha</td>`,
		`<script type="application/json" id="data-ships">[{"brm_code":"S1","ship_name":"Alpha","has_contentful_content":"True"}]</script>`,
	} {
		if !strings.Contains(body, s) {
			t.Errorf("body missing %q", s)
		}
	}
}

func TestHandleDashboard_Stable(t *testing.T) {
	srv := testServer(t)

	get := func() string {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		return rec.Body.String()
	}

	if get() != get() {
		t.Error("repeated requests should render identical pages")
	}
}

func TestRoutes(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"dashboard", http.MethodGet, "/", http.StatusOK},
		{"post not allowed", http.MethodPost, "/", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/data/ships.csv", http.StatusNotFound},
		{"no api surface", http.MethodGet, "/api/ships", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandleDashboard_Compressed(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", got)
	}
}

func TestHandleDashboard_RenderFailureIsolated(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var logs bytes.Buffer
	logging.Setup(&logs, "debug", "json")

	srv := testServer(t)
	failures := 1
	srv.render = func(snap *core.Snapshot) templ.Component {
		if failures > 0 {
			failures--
			return templ.ComponentFunc(func(context.Context, io.Writer) error {
				return errors.New("template exploded")
			})
		}
		return templates.Dashboard(snap)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "(Code: REN001)") {
		t.Errorf("body = %q, want REN001 user message", body)
	}
	if strings.Contains(rec.Body.String(), "template exploded") {
		t.Error("technical error must not reach the client")
	}
	if !strings.Contains(logs.String(), `"code":"REN001"`) || !strings.Contains(logs.String(), "template exploded") {
		t.Errorf("error log missing code or technical error:\n%s", logs.String())
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("next request status = %d, want 200", rec.Code)
	}
}

// brokenConn is a ResponseWriter whose client went away mid-response.
type brokenConn struct {
	header http.Header
	status int
}

func (b *brokenConn) Header() http.Header { return b.header }
func (b *brokenConn) WriteHeader(statusCode int) { b.status = statusCode }
func (b *brokenConn) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestHandleDashboard_WriteFailureLogged(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var logs bytes.Buffer
	logging.Setup(&logs, "debug", "json")

	w := &brokenConn{header: make(http.Header)}
	testServer(t).handleDashboard(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.status != http.StatusOK {
		t.Errorf("status = %d, want 200", w.status)
	}
	if !strings.Contains(logs.String(), `"msg":"write dashboard"`) || !strings.Contains(logs.String(), "connection reset") {
		t.Errorf("write failure not logged:\n%s", logs.String())
	}
}

func TestShutdownBeforeStart(t *testing.T) {
	srv := testServer(t)
	if err := srv.Shutdown(t.Context()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := srv.Start(); !errors.Is(err, http.ErrServerClosed) {
		t.Errorf("Start() after Shutdown = %v, want http.ErrServerClosed", err)
	}
}
