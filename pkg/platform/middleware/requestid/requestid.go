// Package requestid assigns every request an identifier used to correlate logs.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"validarfc/pkg/requestcontext"
)

// Header is read from inbound requests and echoed on responses.
const Header = "X-Request-ID"

const maxInboundLength = 128

// Middleware reuses a caller-supplied X-Request-ID when present and sane,
// otherwise generates a random UUID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > maxInboundLength {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
