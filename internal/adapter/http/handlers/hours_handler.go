package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"marketplace_escrow/internal/adapter/http/dto/request"
	"marketplace_escrow/internal/adapter/http/dto/response"
	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HoursHandler handles the additional-hours approval flow.
type HoursHandler struct {
	usecase usecase.IHoursUseCase
	logger  *zap.Logger
}

func NewHoursHandler(uc usecase.IHoursUseCase, logger *zap.Logger) *HoursHandler {
	return &HoursHandler{usecase: uc, logger: logger}
}

type entryCreator func(ctx context.Context, actor entities.Actor, orderID string, in usecase.HoursInput) (entities.TimeEntry, error)

type entryTransition func(ctx context.Context, actor entities.Actor, orderID, entryID string) (entities.TimeEntry, error)

// SubmitHours godoc
// @Summary      Submit additional hours for customer approval
// @Tags         hours
// @Accept       json
// @Produce      json
// @Param        order_id  path      string                true  "Order ID"
// @Param        hours     body      request.HoursRequest  true  "Hours"
// @Success      201       {object}  response.TimeEntryResponse
// @Failure      403       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{order_id}/hours [post]
func (h *HoursHandler) SubmitHours(c *gin.Context) {
	h.create(c, "submit", h.usecase.SubmitHours)
}

// RecordHours godoc
// @Summary      Record additional hours without submitting them
// @Tags         hours
// @Accept       json
// @Produce      json
// @Param        order_id  path      string                true  "Order ID"
// @Param        hours     body      request.HoursRequest  true  "Hours"
// @Success      201       {object}  response.TimeEntryResponse
// @Security     Bearer
// @Router       /orders/{order_id}/hours/draft [post]
func (h *HoursHandler) RecordHours(c *gin.Context) {
	h.create(c, "record", h.usecase.RecordHours)
}

func (h *HoursHandler) create(c *gin.Context, op string, fn entryCreator) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req request.HoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidRequest(c, "Invalid request")
		return
	}
	orderID := c.Param("order_id")
	e, err := fn(c.Request.Context(), actor, orderID, req.ToInput())
	if err != nil {
		h.logger.Warn("[hours][handler] "+op+" failed", zap.String("order_id", orderID), zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromTimeEntry(e))
}

// SubmitForApproval godoc
// @Summary      Submit recorded hours for customer approval
// @Tags         hours
// @Produce      json
// @Param        order_id  path      string  true  "Order ID"
// @Param        entry_id  path      string  true  "Time entry ID"
// @Success      200       {object}  response.TimeEntryResponse
// @Security     Bearer
// @Router       /orders/{order_id}/hours/{entry_id}/submit [post]
func (h *HoursHandler) SubmitForApproval(c *gin.Context) {
	h.transition(c, "submit-for-approval", h.usecase.SubmitForApproval)
}

// ApproveHours godoc
// @Summary      Approve additional hours and capture the payment
// @Tags         hours
// @Produce      json
// @Param        order_id  path      string  true  "Order ID"
// @Param        entry_id  path      string  true  "Time entry ID"
// @Success      200       {object}  response.TimeEntryResponse
// @Failure      409       {object}  pkg.HTTPError
// @Failure      502       {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{order_id}/hours/{entry_id}/approve [post]
func (h *HoursHandler) ApproveHours(c *gin.Context) {
	h.transition(c, "approve", h.usecase.ApproveHours)
}

// RetryCapture godoc
// @Summary      Retry a failed additional-hours capture
// @Tags         hours
// @Produce      json
// @Param        order_id  path      string  true  "Order ID"
// @Param        entry_id  path      string  true  "Time entry ID"
// @Success      200       {object}  response.TimeEntryResponse
// @Failure      409       {object}  pkg.HTTPError
// @Failure      502       {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{order_id}/hours/{entry_id}/retry-capture [post]
func (h *HoursHandler) RetryCapture(c *gin.Context) {
	h.transition(c, "retry-capture", h.usecase.RetryCapture)
}

func (h *HoursHandler) transition(c *gin.Context, op string, fn entryTransition) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	orderID, entryID := c.Param("order_id"), c.Param("entry_id")
	e, err := fn(c.Request.Context(), actor, orderID, entryID)
	if err != nil {
		h.logger.Warn("[hours][handler] "+op+" failed",
			zap.String("order_id", orderID),
			zap.String("entry_id", entryID),
			zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTimeEntry(e))
}

// RejectHours godoc
// @Summary      Reject additional hours
// @Tags         hours
// @Accept       json
// @Produce      json
// @Param        order_id  path      string                      true   "Order ID"
// @Param        entry_id  path      string                      true   "Time entry ID"
// @Param        body      body      request.RejectHoursRequest  false  "Reason"
// @Success      200       {object}  response.TimeEntryResponse
// @Security     Bearer
// @Router       /orders/{order_id}/hours/{entry_id}/reject [post]
func (h *HoursHandler) RejectHours(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req request.RejectHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeInvalidRequest(c, "Invalid request")
		return
	}
	e, err := h.usecase.RejectHours(c.Request.Context(), actor, c.Param("order_id"), c.Param("entry_id"), req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTimeEntry(e))
}

// ListHours godoc
// @Summary      List the additional-hours entries of an order
// @Tags         hours
// @Produce      json
// @Param        order_id  path      string  true  "Order ID"
// @Success      200       {object}  response.ListResponse[response.TimeEntryResponse]
// @Security     Bearer
// @Router       /orders/{order_id}/hours [get]
func (h *HoursHandler) ListHours(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	entries, err := h.usecase.ListHours(c.Request.Context(), actor, c.Param("order_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(entries, response.FromTimeEntry))
}
