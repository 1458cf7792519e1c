package handlers

import (
	"net/http"
	"strings"

	"marketplace_escrow/internal/adapter/http/dto/request"
	"marketplace_escrow/internal/adapter/http/dto/response"
	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler receives payment processor notifications.
type WebhookHandler struct {
	escrow   usecase.IEscrowUseCase
	finalize usecase.IFinalizeUseCase
	hours    usecase.IHoursUseCase
	logger   *zap.Logger
}

func NewWebhookHandler(escrow usecase.IEscrowUseCase, finalize usecase.IFinalizeUseCase, hours usecase.IHoursUseCase, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{escrow: escrow, finalize: finalize, hours: hours, logger: logger}
}

// PaymentNotification godoc
// @Summary      Payment processor notification
// @Description  escrow.held / escrow.funded advance the escrow ledger; checkout.succeeded funds the escrow (when given) and finalizes the draft; hours.captured completes an additional-hours transfer.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Secret  header    string                         true  "Shared secret"
// @Param        body              body      request.PaymentWebhookRequest  true  "Notification"
// @Success      200               {object}  map[string]interface{}
// @Failure      400               {object}  pkg.HTTPError
// @Router       /webhooks/payments [post]
func (h *WebhookHandler) PaymentNotification(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req request.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidRequest(c, "Invalid request")
		return
	}
	if err := req.Validate(); err != nil {
		writeInvalidRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()
	eventType := strings.TrimSpace(req.Type)
	h.logger.Info("[webhook][handler] notification received",
		zap.String("type", eventType),
		zap.String("draft_id", req.DraftID),
		zap.String("escrow_id", req.EscrowID),
		zap.String("entry_id", req.EntryID))

	switch eventType {
	case request.WebhookEscrowHeld, request.WebhookEscrowFunded:
		status := entities.EscrowStatusFunded
		if eventType == request.WebhookEscrowHeld {
			status = entities.EscrowStatusHeld
		}
		e, err := h.escrow.MarkFunded(ctx, req.EscrowID, status, req.ProcessorPaymentID)
		if err != nil {
			h.fail(c, eventType, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"type": eventType, "escrow": response.FromEscrow(e)})

	case request.WebhookCheckoutSucceeded:
		if req.EscrowID != "" && req.ProcessorPaymentID != "" {
			if _, err := h.escrow.MarkFunded(ctx, req.EscrowID, entities.EscrowStatusFunded, req.ProcessorPaymentID); err != nil {
				h.fail(c, eventType, err)
				return
			}
		}
		res, err := h.finalize.Finalize(ctx, actor, req.DraftID, req.EscrowID)
		if err != nil {
			h.fail(c, eventType, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"type": eventType, "order": response.FinalizeResponse{OrderID: res.OrderID, Created: res.Created}})

	case request.WebhookHoursCaptured:
		e, err := h.hours.ConfirmTransfer(ctx, req.OrderID, req.EntryID, req.ProcessorPaymentID)
		if err != nil {
			h.fail(c, eventType, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"type": eventType, "entry": response.FromTimeEntry(e)})
	}
}

func (h *WebhookHandler) fail(c *gin.Context, eventType string, err error) {
	h.logger.Warn("[webhook][handler] notification failed", zap.String("type", eventType), zap.Error(err))
	writeError(c, err)
}
