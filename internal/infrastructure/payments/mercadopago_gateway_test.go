package payments

import (
	"context"
	"encoding/json"
	"testing"

	appconfig "marketplace_escrow/internal/config"
	"marketplace_escrow/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMercadoPagoGateway(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "")
		t.Setenv("MERCADOPAGO_MOCK", "")

		gw, err := NewMercadoPagoGateway(appconfig.PaymentsConfig{}, zap.NewNop())
		assert.Nil(t, gw)
		assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
	})

	t.Run("mock via env", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "yes")

		gw, err := NewMercadoPagoGateway(appconfig.PaymentsConfig{}, zap.NewNop())
		require.NoError(t, err)
		assert.True(t, gw.mockMode)
	})

	t.Run("real client", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "")
		t.Setenv("MERCADOPAGO_MOCK", "")

		gw, err := NewMercadoPagoGateway(appconfig.PaymentsConfig{AccessToken: "TEST-token", PaymentMethodID: "account_money"}, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, gw.mockMode)
		assert.NotNil(t, gw.payments)
		assert.NotNil(t, gw.refunds)
	})
}

func TestMercadoPagoGateway_MockCapture(t *testing.T) {
	gw, err := NewMercadoPagoGateway(appconfig.PaymentsConfig{MockMode: true}, zap.NewNop())
	require.NoError(t, err)

	res, err := gw.Capture(context.Background(), interfaces.CaptureRequest{
		Reference:   "ord-1:entry-1",
		Amount:      3050,
		Currency:    "EUR",
		Description: "additional hours",
		PayerID:     "cust-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.ProviderPaymentID)
	assert.Equal(t, "approved", res.ProviderStatus)
	assert.True(t, res.Settled())

	var body map[string]any
	require.NoError(t, json.Unmarshal(res.ProviderResponse, &body))
	assert.Equal(t, 30.5, body["transaction_amount"])
	assert.Equal(t, "ord-1:entry-1", body["external_reference"])
	assert.Equal(t, res.ProviderPaymentID, body["id"])
}

func TestMercadoPagoGateway_MockRefund(t *testing.T) {
	gw, err := NewMercadoPagoGateway(appconfig.PaymentsConfig{MockMode: true}, zap.NewNop())
	require.NoError(t, err)

	res, err := gw.Refund(context.Background(), interfaces.RefundRequest{
		Reference:          "storno-1",
		ProcessorReference: "123456",
		Amount:             5000,
		FullAmount:         10500,
	})
	require.NoError(t, err)
	assert.True(t, res.Settled())

	var body map[string]any
	require.NoError(t, json.Unmarshal(res.ProviderResponse, &body))
	assert.Equal(t, float64(50), body["amount"])
	assert.Equal(t, "123456", body["payment_id"])
}

func TestMercadoPagoGateway_RefundRejectsBadReference(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")
	gw, err := NewMercadoPagoGateway(appconfig.PaymentsConfig{AccessToken: "TEST-token"}, zap.NewNop())
	require.NoError(t, err)

	_, err = gw.Refund(context.Background(), interfaces.RefundRequest{ProcessorReference: "not-a-number", Amount: 1, FullAmount: 1})
	assert.ErrorIs(t, err, ErrInvalidProcessorReference)
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var gw *MercadoPagoGateway

	_, err := gw.Capture(context.Background(), interfaces.CaptureRequest{Amount: 100})
	assert.ErrorIs(t, err, ErrMercadoPagoGatewayNotConfigured)

	_, err = gw.Refund(context.Background(), interfaces.RefundRequest{ProcessorReference: "1"})
	assert.ErrorIs(t, err, ErrMercadoPagoGatewayNotConfigured)
}

func TestToMajorUnits(t *testing.T) {
	assert.Equal(t, 100.0, toMajorUnits(10000))
	assert.Equal(t, 0.01, toMajorUnits(1))
	assert.Equal(t, 130.45, toMajorUnits(13045))
}
