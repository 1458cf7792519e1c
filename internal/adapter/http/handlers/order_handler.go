package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"marketplace_escrow/internal/adapter/http/dto/request"
	"marketplace_escrow/internal/adapter/http/dto/response"
	"marketplace_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler handles order reads and settlement.
type OrderHandler struct {
	usecase usecase.ISettlementUseCase
	logger  *zap.Logger
}

func NewOrderHandler(uc usecase.ISettlementUseCase, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{usecase: uc, logger: logger}
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        order_id  path      string  true  "Order ID"
// @Success      200       {object}  response.OrderResponse
// @Failure      403       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{order_id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	o, err := h.usecase.GetOrder(c.Request.Context(), actor, c.Param("order_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// ReleaseOrder godoc
// @Summary      Release an order to the provider
// @Description  Buyer approval or admin release before the clearing period ends.
// @Tags         orders
// @Produce      json
// @Param        order_id  path      string  true  "Order ID"
// @Success      200       {object}  response.OrderResponse
// @Failure      409       {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{order_id}/release [post]
func (h *OrderHandler) ReleaseOrder(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	orderID := c.Param("order_id")
	o, err := h.usecase.Release(c.Request.Context(), actor, orderID)
	if err != nil {
		h.logger.Warn("[settlement][handler] release failed", zap.String("order_id", orderID), zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// SweepClearing godoc
// @Summary      Release orders whose clearing period ended
// @Tags         internal
// @Accept       json
// @Produce      json
// @Param        body  body      request.SweepRequest  false  "Sweep options"
// @Success      200   {object}  response.SweepResponse
// @Router       /internal/clearing/sweep [post]
func (h *OrderHandler) SweepClearing(c *gin.Context) {
	var req request.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeInvalidRequest(c, "Invalid request")
		return
	}
	var now time.Time
	if req.Now != nil {
		now = req.Now.UTC()
	}
	res, err := h.usecase.SweepClearing(c.Request.Context(), now, req.Limit)
	if err != nil {
		h.logger.Error("[settlement][handler] sweep failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSweepResult(res))
}
