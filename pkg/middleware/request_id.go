package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jobkeeper/application-tracker/pkg/requestid"
)

// RequestID gets the request ID from the x-request-id header or generates
// a unique request ID for each HTTP request and injects it into the
// request's context.Context so handlers and the request logger agree on it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("x-request-id")

		if requestID == "" {
			requestID = middleware.GetReqID(r.Context())
		}

		if requestID == "" {
			requestID = requestid.Generate()
		}

		ctx := requestid.ToContext(r.Context(), requestID)
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)
	})
}
