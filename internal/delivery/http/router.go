package http

import (
	"net/http"

	"clinic-appointment-bot/internal/delivery/http/handler"
	"clinic-appointment-bot/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	eventHandler     *handler.EventHandler
	tokenMiddleware  *middleware.TokenMiddleware
	loggerMiddleware *middleware.RequestLoggerMiddleware
}

func NewRouter(
	eventHandler *handler.EventHandler,
	tokenMiddleware *middleware.TokenMiddleware,
	loggerMiddleware *middleware.RequestLoggerMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		eventHandler:     eventHandler,
		tokenMiddleware:  tokenMiddleware,
		loggerMiddleware: loggerMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Event intake (transport-authenticated)
	events := api.PathPrefix("/events").Subrouter()
	events.Use(r.tokenMiddleware.Authenticate)
	events.HandleFunc("", r.eventHandler.HandleEvent).Methods(http.MethodPost)

	r.router.Use(r.loggerMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
