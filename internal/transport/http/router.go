package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"validarfc/internal/health"
	validationhandler "validarfc/internal/validation/handler"
	dErrors "validarfc/pkg/domain-errors"
	"validarfc/pkg/platform/httputil"
	"validarfc/pkg/platform/middleware/metadata"
	"validarfc/pkg/platform/middleware/requestid"
	"validarfc/pkg/platform/middleware/requesttime"
)

// Dependencies are the handlers the router mounts. Metrics may be nil.
type Dependencies struct {
	Validation *validationhandler.Handler
	Metrics    http.Handler
	Logger     *slog.Logger
}

// NewRouter wires all public endpoints. Domain routes are served both at the
// root and under /api.
func NewRouter(d Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(accessLog(d.Logger))
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{
			"error": "method_not_allowed",
		})
	})

	health.Register(r)
	d.Validation.Register(r)
	r.Route("/api", d.Validation.Register)

	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}
	return r
}
