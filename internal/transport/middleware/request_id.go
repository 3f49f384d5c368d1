package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ycsite/siteops/pkg/ctxutil"
)

// RequestIDHeader is read from requests and echoed on responses.
const RequestIDHeader = "X-Request-Id"

// maxRequestIDLen bounds client-supplied ids.
const maxRequestIDLen = 64

// RequestID reuses the caller's request id when it is sane, otherwise
// generates a UUID, and stores it in the request context.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
		})
	}
}
