package handlers

import (
	"errors"
	"net/http"

	"marketplace_escrow/internal/adapter/http/middleware"
	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase"
	"marketplace_escrow/pkg"

	"github.com/gin-gonic/gin"
)

// mapError converts a use-case error into the HTTP error envelope. The message of a
// specific *usecase.Error is safe to show to callers; anything else is hidden.
func mapError(err error) *pkg.AppError {
	msg := ""
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		msg = ucErr.Msg
	}
	pick := func(fallback string) string {
		if msg != "" {
			return msg
		}
		return fallback
	}

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", pick("Resource not found"), err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidState):
		return pkg.NewDomainError("INVALID_STATE", pick("Operation not allowed in the current state"), err, http.StatusConflict)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainError("CONFLICT", pick("Conflicting request"), err, http.StatusConflict)
	case errors.Is(err, usecase.ErrTransientStoreConflict):
		return pkg.NewDomainError("TRANSIENT_CONFLICT", "Concurrent update detected, please retry", err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrUpstreamPaymentFailure):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", pick("Payment provider failure"), err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainError("FORBIDDEN", pick("Operation not allowed for this user"), err, http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvalidInput):
		return pkg.NewDomainError("INVALID_REQUEST", pick("Invalid request"), err, http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, err error) {
	appErr := mapError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func writeInvalidRequest(c *gin.Context, message string) {
	appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", message, http.StatusBadRequest)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// actorOrAbort reads the authenticated caller; it writes a 401 when there is none.
func actorOrAbort(c *gin.Context) (entities.Actor, bool) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		appErr := pkg.NewDomainError("UNAUTHENTICATED", "Authentication required", err, http.StatusUnauthorized)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return entities.Actor{}, false
	}
	return actor, true
}
