package handler

import (
	"net/http"

	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/metrics"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// RouteRegistrar is implemented by every handler
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// NewRouter builds the HTTP router with the middleware chain
// request id -> logging -> metrics applied to every matched route
func NewRouter(log logger.Logger, m *metrics.Metrics, handlers ...RouteRegistrar) *mux.Router {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware, middleware.LoggingMiddleware(log))

	if m != nil {
		router.Use(middleware.MetricsMiddleware(m))
		router.Handle("/metrics", m.Handler()).Methods("GET")
	}

	for _, h := range handlers {
		h.RegisterRoutes(router)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendErrorResponse(w, log, codeNotFound, "Not found", http.StatusNotFound, middleware.GetRequestID(r.Context()))
	})

	return router
}
