package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/ContentExplorer/internal/logging"
)

// handleDashboard renders the full page. The page is buffered so a render
// failure can still produce a clean error response.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.render(s.snapshot).Render(r.Context(), &buf); err != nil {
		s.respondError(w, r, fmt.Errorf("render dashboard: %w", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Debug("write dashboard", "error", err)
	}
}
