package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Telemetry wraps the handler with otelhttp, which records request duration,
// active requests and body sizes and creates a server span per request.
func Telemetry(serviceName string) Middleware {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewMiddleware(serviceName)(next)
	}
}
