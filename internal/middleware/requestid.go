package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/porygon/mealplanner/internal/ctxkeys"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags each request with an ID, reusing one supplied by a proxy.
// The ID is echoed in the response and attached to request logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxkeys.WithRequestID(r.Context(), id)))
	})
}
