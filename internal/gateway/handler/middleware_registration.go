package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// MiddlewareConfig holds middleware configuration
type MiddlewareConfig struct {
	EnableLogging bool
	EnableTracing bool
}

// DefaultMiddlewareConfig returns default middleware configuration
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		EnableLogging: true,
		EnableTracing: true,
	}
}

// RegisterMiddlewares registers all middlewares to the router
func RegisterMiddlewares(router *mux.Router, config MiddlewareConfig) {
	if config.EnableLogging {
		router.Use(LoggingMiddleware)
	}

	if config.EnableTracing {
		router.Use(func(next http.Handler) http.Handler {
			return TracingMiddleware("http-request", next)
		})
	}
}
