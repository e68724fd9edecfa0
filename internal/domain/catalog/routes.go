package catalog

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.List)
	rg.GET("/services/:id", h.Get)
	rg.GET("/services/slug/:slug", h.GetBySlug)
}

// RegisterProviderRoutes mounts listing management; callers guard these with
// the provider role middleware.
func (h *Handler) RegisterProviderRoutes(rg *gin.RouterGroup) {
	rg.POST("/services", h.Create)
	rg.PATCH("/services/:id", h.Update)
	rg.GET("/providers/me/services", h.MyListings)
}
