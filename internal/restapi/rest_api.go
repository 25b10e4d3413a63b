package restapi

import (
	"net/http"
	"time"

	"econdash/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// WithMiddleware wraps handler with request logging, security headers,
// compression and per-client rate limiting, outermost first.
func (api *RestAPI) WithMiddleware(handler http.Handler) http.Handler {
	limited := handler
	if api.rateLimiter != nil {
		limited = api.rateLimiter(handler)
	}
	return NewRequestLoggingMiddleware(api.Logger)(
		securityHeaders(
			NewCompressionMiddleware(DefaultCompressionConfig(), api.Logger)(limited)))
}
