package booking

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings/:id", h.Get)
	rg.GET("/bookings/reference/:ref", h.GetByReference)
	rg.PATCH("/bookings/:id", h.Update)
	rg.POST("/bookings/:id/cancel", h.Cancel)
	rg.GET("/bookings/:id/eligibility", h.Eligibility)
	rg.GET("/users/me/bookings", h.MyBookings)
}
