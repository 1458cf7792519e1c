package middleware

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marketplace_escrow/internal/config"
	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/pkg"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextActor           = "actor"
	ContextValidatedClaims = "validated_claims"

	HeaderUserID        = "X-User-ID"
	HeaderUserRole      = "X-User-Role"
	HeaderCompanyID     = "X-Company-ID"
	HeaderWebhookSecret = "X-Webhook-Secret"
)

// CustomClaims carries the marketplace role and company of the caller.
type CustomClaims struct {
	Role      string `json:"role"`
	CompanyID string `json:"company_id"`
	Scope     string `json:"scope"`
}

func (c CustomClaims) Validate(ctx context.Context) error {
	switch entities.Role(c.Role) {
	case "", entities.RoleCustomer, entities.RoleProvider, entities.RoleAdmin:
		return nil
	}
	return fmt.Errorf("unknown role %q", c.Role)
}

// EnsureValidToken validates the bearer JWT against the Auth0 tenant and puts the
// caller's Actor into the gin context.
func EnsureValidToken(cfg config.AuthConfig, logger *zap.Logger) (gin.HandlerFunc, error) {
	issuerURL, err := url.Parse("https://" + cfg.Domain + "/")
	if err != nil {
		return nil, fmt.Errorf("parse issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.Audience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("set up jwt validator: %w", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("[auth][middleware] jwt validation failed", zap.String("path", r.URL.Path), zap.Error(err))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, writeErr := w.Write([]byte(`{"success":false,"error":{"code":"INVALID_TOKEN","message":"Failed to validate JWT."}}`)); writeErr != nil {
			logger.Error("[auth][middleware] failed to write error response", zap.Error(writeErr))
		}
	}

	mw := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		passed := false
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			passed = true
			token := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			c.Request = r
			c.Set(ContextValidatedClaims, token)
			c.Set(ContextActor, ActorFromClaims(token))
			c.Next()
		}

		mw.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}, nil
}

// ActorFromClaims maps a validated token to an Actor. Tokens without a role claim
// act as customers.
func ActorFromClaims(claims *validator.ValidatedClaims) entities.Actor {
	actor := entities.Actor{UserID: claims.RegisteredClaims.Subject, Role: entities.RoleCustomer}
	if custom, ok := claims.CustomClaims.(*CustomClaims); ok && custom != nil {
		if custom.Role != "" {
			actor.Role = entities.Role(custom.Role)
		}
		actor.CompanyID = custom.CompanyID
	}
	return actor
}

// HeaderActor trusts identity headers. It is only installed when auth is disabled
// for local development.
func HeaderActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			abortWith(c, pkg.NewDomainErrorSimple("MISSING_USER_ID", "X-User-ID header is required", http.StatusUnauthorized))
			return
		}
		role := entities.Role(strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderUserRole))))
		if role == "" {
			role = entities.RoleCustomer
		}
		if role == entities.RoleSystem {
			abortWith(c, pkg.NewDomainErrorSimple("INVALID_ROLE", "Role not allowed", http.StatusForbidden))
			return
		}
		c.Set(ContextActor, entities.Actor{UserID: userID, Role: role, CompanyID: c.GetHeader(HeaderCompanyID)})
		c.Next()
	}
}

// RequireRole rejects callers whose role is not listed.
func RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := GetActor(c)
		if err != nil {
			abortWith(c, pkg.NewDomainError("UNAUTHENTICATED", err.Error(), err, http.StatusUnauthorized))
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		abortWith(c, pkg.NewDomainErrorSimple("INSUFFICIENT_ROLE", "Insufficient permissions to access this resource", http.StatusForbidden))
	}
}

// RequireWebhookSecret authenticates payment processor and internal callbacks,
// which act as the system actor named name.
func RequireWebhookSecret(secret, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(HeaderWebhookSecret)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			abortWith(c, pkg.NewDomainErrorSimple("INVALID_WEBHOOK_SECRET", "Invalid webhook secret", http.StatusUnauthorized))
			return
		}
		c.Set(ContextActor, entities.SystemActor(name))
		c.Next()
	}
}

// GetActor extracts the authenticated Actor from the gin context.
func GetActor(c *gin.Context) (entities.Actor, error) {
	v, exists := c.Get(ContextActor)
	if !exists {
		return entities.Actor{}, &AuthError{Code: "MISSING_ACTOR", Message: "Actor not found in context"}
	}
	actor, ok := v.(entities.Actor)
	if !ok || actor.UserID == "" {
		return entities.Actor{}, &AuthError{Code: "INVALID_ACTOR", Message: "Actor is not in the expected format"}
	}
	return actor, nil
}

// GetClaims extracts the validated JWT claims from the gin context.
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get(ContextValidatedClaims)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}
	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}
	return validatedClaims, nil
}

// AuthError represents an authentication error.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func abortWith(c *gin.Context, appErr *pkg.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
