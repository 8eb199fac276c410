package handlers

import (
	"net/http"

	"fundihub/models"
	"fundihub/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking intake and status workflow endpoints.
type BookingHandler struct {
	Workflow booking.WorkflowService
	Logger   *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(workflow booking.WorkflowService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Workflow: workflow, Logger: logger}
}

// requesterIdentity pulls the authenticated identity the JWT middleware set.
func requesterIdentity(c *gin.Context) (string, models.Role, bool) {
	id := c.GetString("requesterID")
	role := c.GetString("requesterRole")
	if id == "" || role == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", "", false
	}
	return id, models.Role(role), true
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	requesterID, _, ok := requesterIdentity(c)
	if !ok {
		return
	}

	var input struct {
		ProviderID    string  `json:"providerId" binding:"required"`
		ServiceType   string  `json:"serviceType" binding:"required"`
		Schedule      int64   `json:"schedule" binding:"required"`
		EstimatedCost float64 `json:"estimatedCost"`
		Address       string  `json:"address" binding:"required"`
		Description   string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Workflow.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		ClientID:      requesterID,
		ProviderID:    input.ProviderID,
		ServiceType:   input.ServiceType,
		Schedule:      input.Schedule,
		EstimatedCost: input.EstimatedCost,
		Address:       input.Address,
		Description:   input.Description,
	})
	if err != nil {
		h.Logger.Error("failed to create booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBookingHandler handles GET /api/bookings/:id. Only the booking's own
// parties may read it.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	requesterID, _, ok := requesterIdentity(c)
	if !ok {
		return
	}

	b, err := h.Workflow.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if booking.ErrCode(err) == booking.CodeNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if requesterID != b.ClientID && requesterID != b.ProviderID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a party to this booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// TransitionHandler handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) TransitionHandler(c *gin.Context) {
	requesterID, requesterRole, ok := requesterIdentity(c)
	if !ok {
		return
	}

	var input struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Workflow.Transition(c.Request.Context(), c.Param("id"), requesterID, requesterRole, input.Status)
	if err != nil {
		h.Logger.Warn("booking transition failed",
			zap.String("bookingID", c.Param("id")),
			zap.String("target", string(input.Status)),
			zap.Error(err))
		c.JSON(workflowErrorStatus(err), gin.H{
			"error":  err.Error(),
			"code":   booking.ErrCode(err),
			"result": result,
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// workflowErrorStatus maps workflow error codes to HTTP statuses.
func workflowErrorStatus(err error) int {
	switch booking.ErrCode(err) {
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeForbidden:
		return http.StatusForbidden
	case booking.CodeInvalidStatus, booking.CodeInvalidTransition:
		return http.StatusBadRequest
	case booking.CodeConflict:
		return http.StatusConflict
	case booking.CodeDownstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
