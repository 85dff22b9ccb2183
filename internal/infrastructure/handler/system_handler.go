package handler

import (
	"net/http"
	"time"

	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/logger"
	"github.com/gorilla/mux"
)

// SnapshotDater reports the publication date of the cached rates without fetching
type SnapshotDater interface {
	SnapshotDate() *time.Time
}

// SystemHandler serves the root greeting and the health check
type SystemHandler struct {
	snapshots SnapshotDater
	logger    logger.Logger
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(snapshots SnapshotDater, log logger.Logger) *SystemHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &SystemHandler{
		snapshots: snapshots,
		logger:    log,
	}
}

func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, h.logger, http.StatusOK, RootResponse{Message: "Hello World"})
}

// Health never triggers an upstream fetch
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if h.snapshots != nil {
		resp.SnapshotDate = formatDate(h.snapshots.SnapshotDate())
	}

	sendJSON(w, h.logger, http.StatusOK, resp)
}

// RegisterRoutes registers the system handler routes
func (h *SystemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.Root).Methods("GET")
	router.HandleFunc("/health", h.Health).Methods("GET")
}
