package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"marketplace_escrow/internal/adapter/http/dto/request"
	"marketplace_escrow/internal/adapter/http/dto/response"
	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StornoHandler handles cancellation requests and the admin review queue.
type StornoHandler struct {
	usecase usecase.IStornoUseCase
	logger  *zap.Logger
}

func NewStornoHandler(uc usecase.IStornoUseCase, logger *zap.Logger) *StornoHandler {
	return &StornoHandler{usecase: uc, logger: logger}
}

// RequestCancellation godoc
// @Summary      Dispute an order
// @Tags         storno
// @Accept       json
// @Produce      json
// @Param        order_id  path      string                       true  "Order ID"
// @Param        body      body      request.CancellationRequest  true  "Cancellation"
// @Success      201       {object}  response.StornoRequestResponse
// @Failure      409       {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{order_id}/storno [post]
func (h *StornoHandler) RequestCancellation(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req request.CancellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidRequest(c, "Invalid request")
		return
	}
	orderID := c.Param("order_id")
	r, err := h.usecase.RequestCancellation(c.Request.Context(), actor, orderID, req.ToInput())
	if err != nil {
		h.logger.Warn("[storno][handler] request failed", zap.String("order_id", orderID), zap.Error(err))
		writeError(c, err)
		return
	}
	h.logger.Info("[storno][handler] request opened", zap.String("order_id", orderID), zap.String("request_id", r.ID))
	c.JSON(http.StatusCreated, response.FromStornoRequest(r))
}

// ListRequests godoc
// @Summary      List storno requests
// @Description  Without status, lists every request that still awaits a decision.
// @Tags         admin
// @Produce      json
// @Param        status  query     string  false  "pending, under_review, completed"
// @Param        limit   query     int     false  "Max results"
// @Success      200     {object}  response.ListResponse[response.StornoRequestResponse]
// @Security     Bearer
// @Router       /admin/storno-requests [get]
func (h *StornoHandler) ListRequests(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeInvalidRequest(c, "Invalid limit")
			return
		}
		limit = n
	}
	list, err := h.usecase.ListRequests(c.Request.Context(), actor, entities.StornoStatus(c.Query("status")), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(list, response.FromStornoRequest))
}

// MarkUnderReview godoc
// @Summary      Start reviewing a storno request
// @Tags         admin
// @Produce      json
// @Param        request_id  path      string  true  "Storno request ID"
// @Success      200         {object}  response.StornoRequestResponse
// @Failure      404         {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /admin/storno-requests/{request_id}/review [patch]
func (h *StornoHandler) MarkUnderReview(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	r, err := h.usecase.MarkUnderReview(c.Request.Context(), actor, c.Param("request_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromStornoRequest(r))
}

// Decide godoc
// @Summary      Decide a storno request
// @Description  approve refunds the customer; reject returns the order to clearing (or releases it when release=true).
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request_id  path      string                   true  "Storno request ID"
// @Param        body        body      request.DecisionRequest  true  "Decision"
// @Success      200         {object}  response.StornoRequestResponse
// @Failure      404         {object}  pkg.HTTPError
// @Failure      502         {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /admin/storno-requests/{request_id}/decision [post]
func (h *StornoHandler) Decide(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req request.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidRequest(c, "Invalid request")
		return
	}
	requestID := c.Param("request_id")
	r, err := h.usecase.Decide(c.Request.Context(), actor, requestID, req.ToInput())
	if err != nil {
		h.logger.Warn("[storno][handler] decision failed", zap.String("request_id", requestID), zap.Error(err))
		writeError(c, err)
		return
	}
	h.logger.Info("[storno][handler] decision recorded",
		zap.String("request_id", requestID),
		zap.String("outcome", string(r.Outcome)),
		zap.Int64("refund_amount", r.RefundAmount))
	c.JSON(http.StatusOK, response.FromStornoRequest(r))
}

// GetProviderStats godoc
// @Summary      Get provider cancellation statistics
// @Tags         admin
// @Produce      json
// @Param        provider_id  path      string  true  "Provider ID"
// @Success      200          {object}  response.ProviderStatsResponse
// @Failure      404          {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /admin/providers/{provider_id}/stats [get]
func (h *StornoHandler) GetProviderStats(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	s, err := h.usecase.GetProviderStats(c.Request.Context(), actor, c.Param("provider_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromProviderStats(s))
}

// UnblockProvider godoc
// @Summary      Unblock a provider
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        provider_id  path      string                  true   "Provider ID"
// @Param        body         body      request.UnblockRequest  false  "Note"
// @Success      200          {object}  response.ProviderStatsResponse
// @Security     Bearer
// @Router       /admin/providers/{provider_id}/unblock [post]
func (h *StornoHandler) UnblockProvider(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req request.UnblockRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeInvalidRequest(c, "Invalid request")
		return
	}
	s, err := h.usecase.UnblockProvider(c.Request.Context(), actor, c.Param("provider_id"), req.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromProviderStats(s))
}
