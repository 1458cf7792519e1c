package handlers

import (
	"net/http"

	"marketplace_escrow/internal/adapter/http/dto/request"
	"marketplace_escrow/internal/adapter/http/dto/response"
	"marketplace_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DraftHandler handles HTTP requests for checkout drafts.
type DraftHandler struct {
	usecase usecase.IDraftUseCase
	logger  *zap.Logger
}

func NewDraftHandler(uc usecase.IDraftUseCase, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{usecase: uc, logger: logger}
}

// CreateDraft godoc
// @Summary      Create a checkout draft
// @Description  Stores an open draft. Resubmitting an identical draft returns the stored one.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draft  body      request.CreateDraftRequest  true  "Draft"
// @Success      201    {object}  response.DraftResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      409    {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req request.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("[draft][handler] invalid payload", zap.Error(err))
		writeInvalidRequest(c, "Invalid request")
		return
	}

	d, err := h.usecase.CreateDraft(c.Request.Context(), actor, req.ToEntity())
	if err != nil {
		h.logger.Warn("[draft][handler] create failed", zap.String("draft_id", req.ID), zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromDraft(d))
}

// GetDraft godoc
// @Summary      Get a checkout draft
// @Tags         drafts
// @Produce      json
// @Param        draft_id  path      string  true  "Draft ID"
// @Success      200       {object}  response.DraftResponse
// @Failure      404       {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /drafts/{draft_id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	d, err := h.usecase.GetDraft(c.Request.Context(), actor, c.Param("draft_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromDraft(d))
}
