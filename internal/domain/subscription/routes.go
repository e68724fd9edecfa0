package subscription

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/subscriptions/plans", h.Plans)
}

// RegisterProviderRoutes mounts subscription management; callers guard these
// with the provider role middleware.
func (h *Handler) RegisterProviderRoutes(rg *gin.RouterGroup) {
	rg.GET("/subscriptions/me", h.Mine)
	rg.POST("/subscriptions", h.Subscribe)
	rg.PATCH("/subscriptions/plan", h.ChangePlan)
	rg.PATCH("/subscriptions/billing-cycle", h.ChangeBillingCycle)
	rg.PATCH("/subscriptions/start-date", h.ChangeStartDate)
	rg.POST("/subscriptions/cancel", h.Cancel)
	rg.POST("/subscriptions/payment", h.RecordPayment)
}
