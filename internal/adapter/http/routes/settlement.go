package routes

import (
	"marketplace_escrow/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathDrafts   = "/drafts"
	PathCheckout = "/checkout"
	PathOrders   = "/orders"
	PathAdmin    = "/admin"
	PathWebhooks = "/webhooks"
	PathInternal = "/internal"
)

type settlementHandlers struct {
	drafts   *handlers.DraftHandler
	checkout *handlers.CheckoutHandler
	escrows  *handlers.EscrowHandler
	orders   *handlers.OrderHandler
	hours    *handlers.HoursHandler
	storno   *handlers.StornoHandler
	webhooks *handlers.WebhookHandler
}

func addSettlementRoutes(rg *gin.RouterGroup, h settlementHandlers) {
	drafts := rg.Group(PathDrafts)
	{
		drafts.POST("", h.drafts.CreateDraft)
		drafts.GET("/:draft_id", h.drafts.GetDraft)
	}

	rg.POST(PathCheckout+"/:draft_id/finalize", h.checkout.Finalize)

	orders := rg.Group(PathOrders + "/:order_id")
	{
		orders.GET("", h.orders.GetOrder)
		orders.POST("/release", h.orders.ReleaseOrder)
		orders.POST("/storno", h.storno.RequestCancellation)

		orders.GET("/hours", h.hours.ListHours)
		orders.POST("/hours", h.hours.SubmitHours)
		orders.POST("/hours/draft", h.hours.RecordHours)
		orders.POST("/hours/:entry_id/submit", h.hours.SubmitForApproval)
		orders.POST("/hours/:entry_id/approve", h.hours.ApproveHours)
		orders.POST("/hours/:entry_id/retry-capture", h.hours.RetryCapture)
		orders.POST("/hours/:entry_id/reject", h.hours.RejectHours)
	}

	// Providers may read their own stats; the use case enforces ownership.
	rg.GET("/providers/:provider_id/stats", h.storno.GetProviderStats)
}

func addAdminRoutes(rg *gin.RouterGroup, h settlementHandlers) {
	storno := rg.Group("/storno-requests")
	{
		storno.GET("", h.storno.ListRequests)
		storno.PATCH("/:request_id/review", h.storno.MarkUnderReview)
		storno.POST("/:request_id/decision", h.storno.Decide)
	}

	providers := rg.Group("/providers/:provider_id")
	{
		providers.GET("/stats", h.storno.GetProviderStats)
		providers.POST("/unblock", h.storno.UnblockProvider)
	}
}

func addWebhookRoutes(rg *gin.RouterGroup, h settlementHandlers) {
	rg.POST("/payments", h.webhooks.PaymentNotification)
}

func addInternalRoutes(rg *gin.RouterGroup, h settlementHandlers) {
	escrows := rg.Group("/escrows")
	{
		escrows.POST("", h.escrows.CreateEscrow)
		escrows.GET("/:escrow_id", h.escrows.GetEscrow)
	}
	rg.POST("/clearing/sweep", h.orders.SweepClearing)
}
