package handlers

import (
	"net/http"

	"fundihub/services/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler exposes provider account endpoints.
type ProviderHandler struct {
	Service provider.ProviderService
	Logger  *zap.Logger
}

// NewProviderHandler constructs a ProviderHandler.
func NewProviderHandler(service provider.ProviderService, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{Service: service, Logger: logger}
}

// RegisterHandler handles POST /api/providers/register.
func (h *ProviderHandler) RegisterHandler(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Phone       string `json:"phone"`
		ServiceType string `json:"serviceType" binding:"required"`
		Password    string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, token, err := h.Service.Register(c.Request.Context(), req.Name, req.Email, req.Phone, req.ServiceType, req.Password)
	if err != nil {
		h.Logger.Warn("provider registration failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"provider": p, "token": token})
}

// LoginHandler handles POST /api/providers/login.
func (h *ProviderHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, token, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": p, "token": token})
}

// GetProviderHandler handles GET /api/providers/:id, the public profile view.
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	p, err := h.Service.GetProviderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}
