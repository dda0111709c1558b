package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostforge/hostforge/internal/modules/serializer"
	"github.com/hostforge/hostforge/internal/modules/service"
)

type SecurityHandler struct {
	svc service.SecurityService
}

func NewSecurityHandler(s service.SecurityService) *SecurityHandler {
	return &SecurityHandler{svc: s}
}

// GetOverview returns the simulated security/compliance panel payload.
func (h *SecurityHandler) GetOverview(c *gin.Context) {
	c.JSON(http.StatusOK, serializer.Response{Data: h.svc.Overview(c.Request.Context())})
}
