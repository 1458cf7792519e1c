package handlers

import (
	"errors"
	"io"
	"net/http"

	"marketplace_escrow/internal/adapter/http/dto/request"
	"marketplace_escrow/internal/adapter/http/dto/response"
	"marketplace_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler serves the checkout success page.
type CheckoutHandler struct {
	usecase usecase.IFinalizeUseCase
	logger  *zap.Logger
}

func NewCheckoutHandler(uc usecase.IFinalizeUseCase, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc, logger: logger}
}

// Finalize godoc
// @Summary      Finalize a paid draft
// @Description  Converts the draft into exactly one order. Repeated calls return the same order with created=false.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        draft_id  path      string                   true   "Draft ID"
// @Param        body      body      request.FinalizeRequest  false  "Escrow to link"
// @Success      200       {object}  response.FinalizeResponse
// @Success      201       {object}  response.FinalizeResponse
// @Failure      404       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Failure      503       {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /checkout/{draft_id}/finalize [post]
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	draftID := c.Param("draft_id")
	var req request.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeInvalidRequest(c, "Invalid request")
		return
	}

	res, err := h.usecase.Finalize(c.Request.Context(), actor, draftID, req.EscrowID)
	if err != nil {
		h.logger.Warn("[checkout][handler] finalize failed", zap.String("draft_id", draftID), zap.Error(err))
		writeError(c, err)
		return
	}
	h.logger.Info("[checkout][handler] finalize done",
		zap.String("draft_id", draftID),
		zap.String("order_id", res.OrderID),
		zap.Bool("created", res.Created))

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, response.FinalizeResponse{OrderID: res.OrderID, Created: res.Created})
}
