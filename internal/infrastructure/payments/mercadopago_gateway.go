package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	appconfig "marketplace_escrow/internal/config"
	"marketplace_escrow/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrInvalidProcessorReference = errors.New("invalid processor reference")

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

type MercadoPagoGateway struct {
	payments        payment.Client
	refunds         refund.Client
	paymentMethodID string
	timeout         time.Duration
	mockMode        bool
	logger          *zap.Logger
}

func NewMercadoPagoGateway(cfg appconfig.PaymentsConfig, logger *zap.Logger) (*MercadoPagoGateway, error) {
	logger = logger.Named("gateway")
	if cfg.MockMode || isPaymentGatewayMockEnabled() {
		logger.Info("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, logger: logger}, nil
	}

	if cfg.AccessToken == "" {
		logger.Error("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := config.New(cfg.AccessToken)
	if err != nil {
		logger.Error("[payment][gateway] failed creating sdk config", zap.Error(err))
		return nil, err
	}
	logger.Info("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		payments:        payment.NewClient(sdkCfg),
		refunds:         refund.NewClient(sdkCfg),
		paymentMethodID: cfg.PaymentMethodID,
		timeout:         cfg.Timeout,
		logger:          logger,
	}, nil
}

// Capture charges the payer for approved additional hours.
func (g *MercadoPagoGateway) Capture(ctx context.Context, req interfaces.CaptureRequest) (interfaces.ProviderResult, error) {
	if g == nil {
		return interfaces.ProviderResult{}, ErrMercadoPagoGatewayNotConfigured
	}
	payload := map[string]any{
		"transaction_amount": toMajorUnits(req.Amount),
		"description":        req.Description,
		"external_reference": req.Reference,
		"payment_method_id":  g.paymentMethodID,
		"payer":              map[string]any{"id": req.PayerID},
	}
	requestPayload, err := json.Marshal(payload)
	if err != nil {
		return interfaces.ProviderResult{}, err
	}

	if g.mockMode {
		return g.mockResult("capture", requestPayload)
	}
	if g.payments == nil {
		return interfaces.ProviderResult{}, ErrMercadoPagoGatewayNotConfigured
	}
	g.logger.Info("[payment][gateway] capture start",
		zap.String("reference", req.Reference),
		zap.Int64("amount", req.Amount),
		zap.String("currency", req.Currency))

	var sdkReq payment.Request
	if err := json.Unmarshal(requestPayload, &sdkReq); err != nil {
		g.logger.Error("[payment][gateway] payload unmarshal failed", zap.Error(err))
		return interfaces.ProviderResult{}, err
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()
	resp, err := g.payments.Create(ctx, sdkReq)
	if err != nil {
		g.logger.Error("[payment][gateway] sdk create failed", zap.String("reference", req.Reference), zap.Error(err))
		return interfaces.ProviderResult{}, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		g.logger.Error("[payment][gateway] response marshal failed", zap.Error(err))
		return interfaces.ProviderResult{}, err
	}
	g.logger.Info("[payment][gateway] capture success",
		zap.Int("provider_payment_id", resp.ID),
		zap.String("provider_status", resp.Status))

	return interfaces.ProviderResult{
		ProviderPaymentID: strconv.Itoa(resp.ID),
		ProviderStatus:    resp.Status,
		ProviderResponse:  b,
	}, nil
}

// Refund returns money of a funded escrow. Anything less than the full amount
// becomes a partial refund.
func (g *MercadoPagoGateway) Refund(ctx context.Context, req interfaces.RefundRequest) (interfaces.ProviderResult, error) {
	if g != nil && g.mockMode {
		payload, err := json.Marshal(map[string]any{
			"payment_id": req.ProcessorReference,
			"amount":     toMajorUnits(req.Amount),
			"reference":  req.Reference,
		})
		if err != nil {
			return interfaces.ProviderResult{}, err
		}
		return g.mockResult("refund", payload)
	}
	if g == nil || g.refunds == nil {
		return interfaces.ProviderResult{}, ErrMercadoPagoGatewayNotConfigured
	}

	paymentID, err := strconv.Atoi(strings.TrimSpace(req.ProcessorReference))
	if err != nil {
		return interfaces.ProviderResult{}, fmt.Errorf("%w: %q", ErrInvalidProcessorReference, req.ProcessorReference)
	}
	g.logger.Info("[payment][gateway] refund start",
		zap.String("reference", req.Reference),
		zap.Int("payment_id", paymentID),
		zap.Int64("amount", req.Amount),
		zap.Int64("full_amount", req.FullAmount))

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	var resp *refund.Response
	if req.Amount < req.FullAmount {
		resp, err = g.refunds.CreatePartialRefund(ctx, paymentID, toMajorUnits(req.Amount))
	} else {
		resp, err = g.refunds.Create(ctx, paymentID)
	}
	if err != nil {
		g.logger.Error("[payment][gateway] sdk refund failed", zap.Int("payment_id", paymentID), zap.Error(err))
		return interfaces.ProviderResult{}, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return interfaces.ProviderResult{}, err
	}
	g.logger.Info("[payment][gateway] refund success",
		zap.Int("refund_id", resp.ID),
		zap.String("provider_status", resp.Status))

	return interfaces.ProviderResult{
		ProviderPaymentID: strconv.Itoa(resp.ID),
		ProviderStatus:    resp.Status,
		ProviderResponse:  b,
	}, nil
}

func (g *MercadoPagoGateway) mockResult(op string, requestPayload json.RawMessage) (interfaces.ProviderResult, error) {
	g.logger.Info("[payment][gateway] mock start", zap.String("op", op), zap.Int("payload_len", len(requestPayload)))

	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = now
	resp["date_approved"] = now

	b, err := json.Marshal(resp)
	if err != nil {
		g.logger.Error("[payment][gateway] mock response marshal failed", zap.Error(err))
		return interfaces.ProviderResult{}, err
	}

	g.logger.Info("[payment][gateway] mock success", zap.String("op", op), zap.String("provider_payment_id", id))
	return interfaces.ProviderResult{ProviderPaymentID: id, ProviderStatus: "approved", ProviderResponse: b}, nil
}

func (g *MercadoPagoGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// toMajorUnits converts minor units (cents) to the processor's decimal amount.
func toMajorUnits(amount int64) float64 {
	return decimal.NewFromInt(amount).Shift(-2).InexactFloat64()
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
