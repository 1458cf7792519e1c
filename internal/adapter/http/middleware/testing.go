package middleware

import (
	"marketplace_escrow/internal/domain/entities"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
)

// MockValidatedClaims builds validated claims for tests.
func MockValidatedClaims(subject string, role entities.Role, companyID string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: subject},
		CustomClaims:     &CustomClaims{Role: string(role), CompanyID: companyID},
	}
}

// SetMockActor authenticates c as the given caller, as EnsureValidToken would.
func SetMockActor(c *gin.Context, userID string, role entities.Role, companyID string) {
	claims := MockValidatedClaims(userID, role, companyID)
	c.Set(ContextValidatedClaims, claims)
	c.Set(ContextActor, ActorFromClaims(claims))
}
