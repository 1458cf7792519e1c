package handlers

import (
	"net/http"

	"marketplace_escrow/internal/adapter/http/dto/request"
	"marketplace_escrow/internal/adapter/http/dto/response"
	"marketplace_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EscrowHandler exposes the escrow ledger to the payment integration.
type EscrowHandler struct {
	usecase usecase.IEscrowUseCase
	logger  *zap.Logger
}

func NewEscrowHandler(uc usecase.IEscrowUseCase, logger *zap.Logger) *EscrowHandler {
	return &EscrowHandler{usecase: uc, logger: logger}
}

// CreateEscrow godoc
// @Summary      Open an escrow record
// @Tags         internal
// @Accept       json
// @Produce      json
// @Param        escrow  body      request.CreateEscrowRequest  true  "Escrow"
// @Success      201     {object}  response.EscrowResponse
// @Failure      409     {object}  pkg.HTTPError
// @Router       /internal/escrows [post]
func (h *EscrowHandler) CreateEscrow(c *gin.Context) {
	var req request.CreateEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidRequest(c, "Invalid request")
		return
	}
	e, err := h.usecase.CreateEscrow(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.logger.Warn("[escrow][handler] create failed", zap.String("escrow_id", req.ID), zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromEscrow(e))
}

// GetEscrow godoc
// @Summary      Get an escrow record
// @Tags         internal
// @Produce      json
// @Param        escrow_id  path      string  true  "Escrow ID"
// @Success      200        {object}  response.EscrowResponse
// @Failure      404        {object}  pkg.HTTPError
// @Router       /internal/escrows/{escrow_id} [get]
func (h *EscrowHandler) GetEscrow(c *gin.Context) {
	e, err := h.usecase.GetEscrow(c.Request.Context(), c.Param("escrow_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEscrow(e))
}
