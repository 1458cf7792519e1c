package routes

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	_ "marketplace_escrow/docs" // swagger docs
	"marketplace_escrow/internal/adapter/http/handlers"
	"marketplace_escrow/internal/adapter/http/middleware"
	"marketplace_escrow/internal/config"
	"marketplace_escrow/internal/domain/entities"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	webhookActorName   = "payments-webhook"
	schedulerActorName = "internal-scheduler"
	shutdownTimeout    = 15 * time.Second
)

// Run starts the HTTP server and the clearing sweeper and blocks until ctx is
// cancelled, then shuts both down.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	app, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("[server] failed to close store", zap.Error(err))
		}
	}()

	router, err := NewRouter(app)
	if err != nil {
		return err
	}

	if app.Sweeper != nil {
		if err := app.Sweeper.Start(ctx); err != nil {
			return err
		}
		defer app.Sweeper.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[server] listening", zap.String("addr", srv.Addr), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the gin engine with every route of the service.
func NewRouter(app *App) (*gin.Engine, error) {
	cfg := app.Config
	logger := app.Logger

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authenticate := middleware.HeaderActor()
	if cfg.Auth.Disabled {
		logger.Warn("[server] JWT validation disabled, actors are read from headers")
	} else {
		jwt, err := middleware.EnsureValidToken(cfg.Auth, logger)
		if err != nil {
			return nil, err
		}
		authenticate = jwt
	}

	h := settlementHandlers{
		drafts:   handlers.NewDraftHandler(app.Drafts, logger),
		checkout: handlers.NewCheckoutHandler(app.Finalize, logger),
		escrows:  handlers.NewEscrowHandler(app.Escrows, logger),
		orders:   handlers.NewOrderHandler(app.Settlement, logger),
		hours:    handlers.NewHoursHandler(app.Hours, logger),
		storno:   handlers.NewStornoHandler(app.Storno, logger),
		webhooks: handlers.NewWebhookHandler(app.Escrows, app.Finalize, app.Hours, logger),
	}

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	// Rotas autenticadas
	authed := v1.Group("", authenticate)
	addSettlementRoutes(authed, h)

	admin := authed.Group(PathAdmin, middleware.RequireRole(entities.RoleAdmin))
	addAdminRoutes(admin, h)

	webhooks := v1.Group(PathWebhooks, middleware.RequireWebhookSecret(cfg.Auth.WebhookSecret, webhookActorName))
	addWebhookRoutes(webhooks, h)

	internal := v1.Group(PathInternal, middleware.RequireWebhookSecret(cfg.Auth.WebhookSecret, schedulerActorName))
	addInternalRoutes(internal, h)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.HeaderUserID, middleware.HeaderUserRole, middleware.HeaderCompanyID)
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}
