package booking

import (
	"context"
	"fmt"
	"math"
	"time"

	"medibook/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentProcessor charges a patient for a consultation.
type PaymentProcessor interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
}

// StripePaymentProcessor charges cards through Stripe PaymentIntents. Cash
// payments are recorded as pending and settled at the practice.
type StripePaymentProcessor struct {
	logger *zap.Logger
}

// NewStripePaymentProcessor creates the production payment processor.
func NewStripePaymentProcessor(logger *zap.Logger) *StripePaymentProcessor {
	return &StripePaymentProcessor{logger: logger}
}

// ProcessPayment validates the request and dispatches on the payment method.
func (p *StripePaymentProcessor) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid payment request: amount must be positive")
	}
	if req.Currency == "" {
		return nil, fmt.Errorf("invalid payment request: currency is required")
	}

	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    "pending",
		CreatedAt: time.Now(),
	}

	switch req.Method {
	case "card":
		return p.processCardPayment(ctx, req, inv)
	case "cash":
		p.logger.Info("Cash payment recorded", zap.String("invoice", inv.InvoiceID))
		return inv, nil
	default:
		return nil, fmt.Errorf("unsupported payment method: %s", req.Method)
	}
}

// minorUnits converts a decimal amount to the smallest currency unit.
// Rounded, not truncated: 19.99 must become 1999, not 1998.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (p *StripePaymentProcessor) processCardPayment(ctx context.Context, req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits(req.Amount)),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("patientId", req.PatientID)
	params.AddMetadata("invoiceId", inv.InvoiceID)

	pi, err := paymentintent.New(params)
	if err != nil {
		p.logger.Error("Stripe payment intent failed", zap.Error(err))
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	// The intent still has to be confirmed client-side with the client
	// secret; the invoice stays pending until then.
	inv.PaymentIntentID = pi.ID
	inv.ClientSecret = pi.ClientSecret
	p.logger.Info("Card payment intent created",
		zap.String("invoice", inv.InvoiceID), zap.String("paymentIntent", pi.ID))
	return inv, nil
}
