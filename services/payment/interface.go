package payment

import (
	"context"

	paymentRepo "fundihub/database/repository/payment"
	"fundihub/models"
	"fundihub/services/notification"

	"go.uber.org/zap"
)

// InitiateResult is what a gateway returns when a charge is started.
type InitiateResult struct {
	TransactionRef string `json:"transactionRef"`
	ApprovalURL    string `json:"approvalUrl,omitempty"`
}

// GatewayClient is the narrow contract the core needs from any payment
// gateway. Wire-format details stay inside each client.
type GatewayClient interface {
	Initiate(ctx context.Context, amount float64, bookingID, clientID, providerID string) (*InitiateResult, error)
}

// GatewayResult is the normalized outcome reported by a gateway callback.
type GatewayResult struct {
	PaymentID      string `json:"paymentId"`
	TransactionRef string `json:"transactionRef"`
	ResultCode     int    `json:"resultCode"`
	ResultDesc     string `json:"resultDesc"`
}

// PaymentService drives payments through their gateway lifecycle.
type PaymentService interface {
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)
	// InitiatePayment runs the gateway client for the payment's method and
	// moves the payment from pending to processing.
	InitiatePayment(ctx context.Context, paymentID string) (*models.Payment, *InitiateResult, error)
	// HandleGatewayResult maps a gateway result code to a terminal payment
	// status and notifies the client.
	HandleGatewayResult(ctx context.Context, result GatewayResult) error
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Repo            paymentRepo.PaymentRepository
	Gateways        map[models.PaymentMethod]GatewayClient
	NotificationSvc notification.NotificationService
	Logger          *zap.Logger
}
