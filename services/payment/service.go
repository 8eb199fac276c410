package payment

import (
	"context"
	"fmt"

	"fundihub/models"

	"go.uber.org/zap"
)

// GetPayment loads a payment by id.
func (s *DefaultPaymentService) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	p, err := s.Repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("payment %s not found", paymentID)
	}
	return p, nil
}

// InitiatePayment starts the gateway charge for a pending payment.
func (s *DefaultPaymentService) InitiatePayment(ctx context.Context, paymentID string) (*models.Payment, *InitiateResult, error) {
	p, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	if p.Status != models.PaymentStatusPending {
		return nil, nil, fmt.Errorf("payment %s is %s, only pending payments can be initiated", p.ID, p.Status)
	}

	gateway, ok := s.Gateways[p.Method]
	if !ok {
		return nil, nil, fmt.Errorf("no gateway configured for method %s", p.Method)
	}

	res, err := gateway.Initiate(ctx, p.Amount, p.BookingID, p.ClientID, p.ProviderID)
	if err != nil {
		return nil, nil, fmt.Errorf("gateway initiation failed for payment %s: %w", p.ID, err)
	}

	if err := s.Repo.UpdateStatus(ctx, p.ID, models.PaymentStatusProcessing, res.TransactionRef); err != nil {
		return nil, nil, fmt.Errorf("failed to mark payment %s processing: %w", p.ID, err)
	}
	p.Status = models.PaymentStatusProcessing
	p.TransactionRef = res.TransactionRef
	return p, res, nil
}

// HandleGatewayResult records the gateway outcome. Result code 0 means
// success; anything else fails the payment. The client is notified either
// way, best-effort.
func (s *DefaultPaymentService) HandleGatewayResult(ctx context.Context, result GatewayResult) error {
	p, err := s.GetPayment(ctx, result.PaymentID)
	if err != nil {
		return err
	}

	status := models.PaymentStatusCompleted
	ntype := models.NotificationPaymentRequest
	title := "Payment Received"
	message := fmt.Sprintf("Your payment of KES %.2f was received. Thank you!", p.Amount)
	if result.ResultCode != 0 {
		status = models.PaymentStatusFailed
		ntype = models.NotificationPaymentError
		title = "Payment Failed"
		message = fmt.Sprintf("Your payment of KES %.2f could not be processed: %s", p.Amount, result.ResultDesc)
	}

	if err := s.Repo.UpdateStatus(ctx, p.ID, status, result.TransactionRef); err != nil {
		return fmt.Errorf("failed to record gateway result for payment %s: %w", p.ID, err)
	}

	if _, err := s.NotificationSvc.Notify(ctx, p.ClientID, models.RoleClient, ntype, title, message,
		map[string]any{"paymentId": p.ID, "bookingId": p.BookingID, "status": status}); err != nil {
		s.Logger.Warn("payment: failed to notify client of gateway result",
			zap.String("paymentID", p.ID), zap.Error(err))
	}
	return nil
}
