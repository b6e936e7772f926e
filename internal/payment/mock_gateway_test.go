package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chargeRequest() *ChargeRequest {
	return &ChargeRequest{
		Amount:        20,
		Currency:      "USD",
		CardNumber:    "4242424242424242",
		CardName:      "PLOY S",
		ExpiryMonth:   "12",
		ExpiryYear:    "2030",
		CVV:           "123",
		CustomerEmail: "ploy@example.com",
	}
}

func TestCharge_AlwaysSucceeds(t *testing.T) {
	g := NewMockGateway(MockGatewayConfig{SuccessRate: 1.0})

	for i := 0; i < 10; i++ {
		result, err := g.Charge(context.Background(), chargeRequest())
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.TransactionID)
		assert.Empty(t, result.FailureReason)
	}
}

func TestCharge_AlwaysDeclines(t *testing.T) {
	g := NewMockGateway(MockGatewayConfig{SuccessRate: 0})

	result, err := g.Charge(context.Background(), chargeRequest())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "card_declined", result.FailureReason)
}

func TestCharge_NilRequest(t *testing.T) {
	g := NewMockGateway(DefaultMockGatewayConfig())

	_, err := g.Charge(context.Background(), nil)

	assert.Error(t, err)
}

func TestCharge_ClampsSuccessRate(t *testing.T) {
	g := NewMockGateway(MockGatewayConfig{SuccessRate: 7})

	result, err := g.Charge(context.Background(), chargeRequest())

	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestRefund(t *testing.T) {
	g := NewMockGateway(MockGatewayConfig{SuccessRate: 1.0})

	result, err := g.Charge(context.Background(), chargeRequest())
	require.NoError(t, err)

	require.NoError(t, g.Refund(context.Background(), result.TransactionID))
	assert.True(t, g.Refunded(result.TransactionID))

	// Double refund is rejected.
	assert.Error(t, g.Refund(context.Background(), result.TransactionID))
}

func TestRefund_UnknownTransaction(t *testing.T) {
	g := NewMockGateway(MockGatewayConfig{SuccessRate: 1.0})

	assert.Error(t, g.Refund(context.Background(), "txn_missing"))
}
