package web

import (
	"net/http"

	"github.com/JonMunkholm/ContentExplorer/internal/core"
	"github.com/JonMunkholm/ContentExplorer/internal/logging"
)

// respondError logs the technical error with the request's ID and writes
// the mapped user message. Only the failing request is affected.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	ue := core.NewUserError(err)

	logging.WithFields(r.Context(), "code", ue.User.Code).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", ue.Technical.Error(),
	)

	http.Error(w, core.FormatUserError(err), statusCode)
}
