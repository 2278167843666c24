package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	MsgRoot    = "Vida Ativa 50+ API funcionando!"
	MsgHealthy = "API e banco de dados funcionando normalmente"
)

// Pinger is satisfied by both lead stores.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BrokerStatus reports whether the event broker connection is still open.
type BrokerStatus interface {
	IsClosed() bool
}

type HealthHandler struct {
	Store       Pinger
	Broker      BrokerStatus
	PingTimeout time.Duration
	Logger      *zap.Logger
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	RabbitMQ string `json:"rabbitmq,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewHealthHandler accepts a nil broker when events are disabled.
func NewHealthHandler(store Pinger, broker BrokerStatus, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		Store:       store,
		Broker:      broker,
		PingTimeout: 2 * time.Second,
		Logger:      logger,
	}
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": MsgRoot,
		"status":  "healthy",
	})
}

// Handle always answers 200; a dead store shows up in the body so monitors can
// tell "process up, database down" from "process down".
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.PingTimeout)
	defer cancel()

	resp := HealthResponse{Status: "healthy", Database: "connected", Message: MsgHealthy}

	if err := h.Store.Ping(ctx); err != nil {
		h.Logger.Warn("health check: store ping failed", zap.Error(err))
		resp = HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    "Banco de dados indisponível",
		}
	}

	if h.Broker != nil {
		if h.Broker.IsClosed() {
			// events are best effort, so a closed broker does not make the API unhealthy
			resp.RabbitMQ = "disconnected"
		} else {
			resp.RabbitMQ = "connected"
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
