package httpserver

import (
	"net/http"

	"validarfc/internal/platform/config"
)

// New builds the HTTP server from the server section of the config. Zero
// timeouts are left unset, which net/http treats as no limit.
func New(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
