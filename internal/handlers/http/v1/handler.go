// Package v1 serves the initiative tracker over JSON/HTTP and streams
// session notifications over websockets.
package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/notify"
	"github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative"
)

// NotificationSource opens per-session notification streams
type NotificationSource interface {
	Subscribe(sessionID string) *notify.Subscription
}

// HandlerConfig holds dependencies for the HTTP handler
type HandlerConfig struct {
	Service       initiative.Service
	Notifications NotificationSource

	// JWTSecret enables HS256 bearer-token checks when non-empty
	JWTSecret string
	// PingInterval defaults to 30s
	PingInterval time.Duration
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Service == nil {
		vb.RequiredField("Service")
	}
	if c.Notifications == nil {
		vb.RequiredField("Notifications")
	}
	return vb.Build()
}

// Handler implements the /v1 HTTP API
type Handler struct {
	service       initiative.Service
	notifications NotificationSource
	auth          *authenticator
	upgrader      websocket.Upgrader
	pingInterval  time.Duration
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ping := cfg.PingInterval
	if ping == 0 {
		ping = 30 * time.Second
	}

	return &Handler{
		service:       cfg.Service,
		notifications: cfg.Notifications,
		auth:          newAuthenticator(cfg.JWTSecret),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		pingInterval: ping,
	}, nil
}

// Routes builds the router. Everything under /v1 passes the auth check.
func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(h.auth.middleware)

	v1.HandleFunc("/sessions", h.openSession).Methods(http.MethodPost)

	s := v1.PathPrefix("/sessions/{sid}").Subrouter()
	s.HandleFunc("", h.getSession).Methods(http.MethodGet)
	s.HandleFunc("", h.closeSession).Methods(http.MethodDelete)
	s.HandleFunc("/campaign", h.selectCampaign).Methods(http.MethodPut)
	s.HandleFunc("/load", h.load).Methods(http.MethodPost)

	s.HandleFunc("/combatants", h.addCombatants).Methods(http.MethodPost)
	s.HandleFunc("/combatants/{cid}", h.removeCombatant).Methods(http.MethodDelete)
	s.HandleFunc("/combatants/{cid}/hp", h.updateHP).Methods(http.MethodPut)
	s.HandleFunc("/combatants/{cid}/initiative", h.updateInitiative).Methods(http.MethodPut)
	s.HandleFunc("/combatants/{cid}/statuses", h.attachStatus).Methods(http.MethodPost)
	s.HandleFunc("/statuses/{aid}", h.detachStatus).Methods(http.MethodDelete)

	s.HandleFunc("/combat/{action:start|advance|reset}", h.combat).Methods(http.MethodPost)
	s.HandleFunc("/drag", h.beginDrag).Methods(http.MethodPost)
	s.HandleFunc("/drop", h.dropOn).Methods(http.MethodPost)

	s.HandleFunc("/catalog/load", h.loadCatalog).Methods(http.MethodPost)
	s.HandleFunc("/catalog", h.searchStatuses).Methods(http.MethodGet)
	s.HandleFunc("/catalog/inspect", h.inspectStatus).Methods(http.MethodPost)

	s.HandleFunc("/roster/{kind:player|npc}", h.listAvailable).Methods(http.MethodGet)
	s.HandleFunc("/roster/{kind:player|npc}/{eid}/instantiate", h.instantiate).Methods(http.MethodPost)

	s.HandleFunc("/events", h.streamEvents).Methods(http.MethodGet)

	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		slog.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
