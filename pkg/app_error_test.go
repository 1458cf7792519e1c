package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	cause := errors.New("db down")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	assert.ErrorIs(t, appErr, cause)
	assert.Equal(t, "INTERNAL_ERROR: An internal error occurred: db down", appErr.Error())

	body, err := json.Marshal(appErr.ToHTTPError())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"INTERNAL_ERROR","message":"An internal error occurred"}}`, string(body))

	simple := NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, simple.HTTPStatus)
	assert.Nil(t, simple.Unwrap())
	assert.Equal(t, "ORDER_NOT_FOUND: Order not found", simple.Error())
}
