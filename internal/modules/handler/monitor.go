package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hostforge/hostforge/internal/infra/stream"
	"github.com/hostforge/hostforge/internal/modules/model"
	"github.com/hostforge/hostforge/internal/modules/serializer"
	"github.com/hostforge/hostforge/internal/modules/service"
)

type MonitorHandler struct {
	svc service.MonitorService
	hub *stream.Hub
	log *zap.Logger

	upgrader websocket.Upgrader
}

func NewMonitorHandler(svc service.MonitorService, hub *stream.Hub, log *zap.Logger) *MonitorHandler {
	return &MonitorHandler{
		svc: svc,
		hub: hub,
		log: log,
		upgrader: websocket.Upgrader{
			// the dashboard is served from a separate dev origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type metricsResponse struct {
	model.MetricSnapshot
	HealthTier service.Tier `json:"health_tier"`
	GaugeSweep float64      `json:"gauge_sweep"`
}

// GetMetrics returns the current simulation windows plus the derived
// health presentation.
func (h *MonitorHandler) GetMetrics(c *gin.Context) {
	snapshot := h.svc.Snapshot(c.Request.Context())
	c.JSON(http.StatusOK, serializer.Response{Data: metricsResponse{
		MetricSnapshot: snapshot,
		HealthTier:     service.TierFor(snapshot.HealthScore),
		GaugeSweep:     service.GaugeSweep(snapshot.HealthScore),
	}})
}

// StreamMetrics upgrades to a websocket and feeds the client one snapshot
// per simulation tick until the peer disconnects.
func (h *MonitorHandler) StreamMetrics(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := stream.NewWSClient(conn, h.log)
	h.hub.Register(service.StreamTopic, client)
	defer func() {
		h.hub.Unregister(service.StreamTopic, client)
		client.Close()
	}()

	// block until the peer goes away; inbound frames are ignored
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ResolveAlert acknowledges the predictive alert and restores the health
// baseline.
func (h *MonitorHandler) ResolveAlert(c *gin.Context) {
	h.svc.ResolveAlert(c.Request.Context())
	c.JSON(http.StatusOK, serializer.Response{Msg: "alert resolved"})
}
