// Package health serves the liveness endpoint. It never touches the history
// store: a reachable process is healthy even when the database is not.
package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"validarfc/pkg/platform/httputil"
	"validarfc/pkg/requestcontext"
)

// Response is the body of GET /health.
type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Register mounts GET /health.
func Register(r chi.Router) {
	r.Get("/health", Handle)
}

// Handle reports the process as up.
func Handle(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, Response{
		Status:    "ok",
		Timestamp: requestcontext.Now(r.Context()).UTC(),
	})
}
