package booking

import (
	"context"
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{40, 4000},
		{19.99, 1999},
		{0.29, 29},
		{0.01, 1},
		{123.45, 12345},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, minorUnits(tt.amount), "amount %v", tt.amount)
	}
}

func TestProcessPayment_CashStaysPending(t *testing.T) {
	p := NewStripePaymentProcessor(zap.NewNop())

	inv, err := p.ProcessPayment(context.Background(), models.PaymentRequest{
		PatientID: "pat-1",
		Amount:    60,
		Currency:  "usd",
		Method:    "cash",
	})
	require.NoError(t, err)
	require.NotNil(t, inv)

	assert.Equal(t, "pending", inv.Status)
	assert.Equal(t, "cash", inv.Method)
	assert.Equal(t, float64(60), inv.Amount)
	assert.NotEmpty(t, inv.InvoiceID)
}

func TestProcessPayment_RejectsBadRequests(t *testing.T) {
	p := NewStripePaymentProcessor(zap.NewNop())
	ctx := context.Background()

	_, err := p.ProcessPayment(ctx, models.PaymentRequest{Amount: 0, Currency: "usd", Method: "cash"})
	assert.Error(t, err)

	_, err = p.ProcessPayment(ctx, models.PaymentRequest{Amount: -5, Currency: "usd", Method: "cash"})
	assert.Error(t, err)

	_, err = p.ProcessPayment(ctx, models.PaymentRequest{Amount: 40, Method: "cash"})
	assert.Error(t, err)

	_, err = p.ProcessPayment(ctx, models.PaymentRequest{Amount: 40, Currency: "usd", Method: "barter"})
	assert.Error(t, err)
}
