package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jobkeeper/application-tracker/pkg/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger returns a middleware that logs HTTP requests using the global zap
// logger, one line per completed request, leveled by status code.
func Logger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path
			query := r.URL.RawQuery
			requestID := requestid.FromRequest(r)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			latency := time.Since(start)

			fields := []zapcore.Field{
				zap.String("request_id", requestID),
				zap.Int("status", ww.Status()),
				zap.String("method", r.Method),
				zap.String("path", path),
				zap.String("query", query),
				zap.String("ip", clientIP(r)),
				zap.String("user-agent", r.UserAgent()),
				zap.Duration("latency", latency),
				zap.Int("response_bytes", ww.BytesWritten()),
			}

			msg := "Request completed"
			switch {
			case ww.Status() >= 500:
				zap.S().Named("http").Desugar().Error(msg, fields...)
			case ww.Status() >= 400:
				zap.S().Named("http").Desugar().Warn(msg, fields...)
			default:
				zap.S().Named("http").Desugar().Info(msg, fields...)
			}
		})
	}
}

// clientIP extracts the real client IP from proxy headers with a
// RemoteAddr fallback.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		if idx := strings.IndexByte(xff, ','); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}
