package handlers

import (
	"net/http"

	"fundihub/models"
	"fundihub/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes payment lookup, initiation and gateway webhooks.
type PaymentHandler struct {
	Service payment.PaymentService
	Logger  *zap.Logger
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(service payment.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Service: service, Logger: logger}
}

// GetPaymentHandler handles GET /api/payments/:id. Only the paying client or
// the receiving provider may read a payment.
func (h *PaymentHandler) GetPaymentHandler(c *gin.Context) {
	requesterID, _, ok := requesterIdentity(c)
	if !ok {
		return
	}

	p, err := h.Service.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	if p.ClientID != requesterID && p.ProviderID != requesterID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a party to this payment"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// InitiatePaymentHandler handles POST /api/payments/:id/initiate. The paying
// client kicks off the gateway charge for a pending payment.
func (h *PaymentHandler) InitiatePaymentHandler(c *gin.Context) {
	requesterID, requesterRole, ok := requesterIdentity(c)
	if !ok {
		return
	}
	if requesterRole != models.RoleClient {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the client can initiate payment"})
		return
	}

	id := c.Param("id")
	p, err := h.Service.GetPayment(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	if p.ClientID != requesterID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your payment"})
		return
	}

	updated, result, err := h.Service.InitiatePayment(c.Request.Context(), id)
	if err != nil {
		h.Logger.Error("payment initiation failed", zap.String("paymentID", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": updated, "gateway": result})
}

// MpesaWebhookHandler handles POST /webhook/mpesa. The callback body carries
// the STK push result for a checkout we initiated.
func (h *PaymentHandler) MpesaWebhookHandler(c *gin.Context) {
	var cb struct {
		Body struct {
			StkCallback struct {
				CheckoutRequestID string `json:"CheckoutRequestID"`
				ResultCode        int    `json:"ResultCode"`
				ResultDesc        string `json:"ResultDesc"`
			} `json:"stkCallback"`
		} `json:"Body"`
		PaymentID string `json:"paymentId"`
	}
	if err := c.ShouldBindJSON(&cb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid callback payload"})
		return
	}

	result := payment.GatewayResult{
		PaymentID:      cb.PaymentID,
		TransactionRef: cb.Body.StkCallback.CheckoutRequestID,
		ResultCode:     cb.Body.StkCallback.ResultCode,
		ResultDesc:     cb.Body.StkCallback.ResultDesc,
	}
	if err := h.Service.HandleGatewayResult(c.Request.Context(), result); err != nil {
		h.Logger.Error("mpesa callback processing failed", zap.String("paymentID", result.PaymentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
}

// PaypalWebhookHandler handles POST /webhook/paypal for order approval events.
func (h *PaymentHandler) PaypalWebhookHandler(c *gin.Context) {
	var event struct {
		EventType string `json:"event_type"`
		Resource  struct {
			ID string `json:"id"`
		} `json:"resource"`
		PaymentID string `json:"paymentId"`
	}
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}

	code := 1
	if event.EventType == "CHECKOUT.ORDER.APPROVED" || event.EventType == "PAYMENT.CAPTURE.COMPLETED" {
		code = 0
	}
	result := payment.GatewayResult{
		PaymentID:      event.PaymentID,
		TransactionRef: event.Resource.ID,
		ResultCode:     code,
		ResultDesc:     event.EventType,
	}
	if err := h.Service.HandleGatewayResult(c.Request.Context(), result); err != nil {
		h.Logger.Error("paypal event processing failed", zap.String("paymentID", result.PaymentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}
