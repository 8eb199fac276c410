package handlers

import (
	"net/http"

	"fundihub/services/admin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes moderation endpoints.
type AdminHandler struct {
	Service admin.AdminService
	Logger  *zap.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(service admin.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Service: service, Logger: logger}
}

// SuspendProviderHandler handles POST /api/admin/providers/:id/suspend.
func (h *AdminHandler) SuspendProviderHandler(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	providerID := c.Param("id")
	if err := h.Service.SuspendProvider(c.Request.Context(), providerID, req.Reason); err != nil {
		h.Logger.Error("provider suspension failed", zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "provider suspended"})
}

// ReinstateProviderHandler handles POST /api/admin/providers/:id/reinstate.
func (h *AdminHandler) ReinstateProviderHandler(c *gin.Context) {
	providerID := c.Param("id")
	if err := h.Service.ReinstateProvider(c.Request.Context(), providerID); err != nil {
		h.Logger.Error("provider reinstatement failed", zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "provider reinstated"})
}
