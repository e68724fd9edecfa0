package subscription

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ugandaserve/internal/pkg/clock"
	"ugandaserve/internal/pkg/response"
	"ugandaserve/internal/pkg/schedule"
)

type Handler struct {
	service *Service
	clock   clock.Clock
}

func NewHandler(service *Service, clk clock.Clock) *Handler {
	return &Handler{service: service, clock: clk}
}

// Plans is public: the pricing page reads it without auth.
func (h *Handler) Plans(c *gin.Context) {
	out := make([]PlanResponse, 0, len(Plans()))
	for _, p := range Plans() {
		f, _ := FeaturesFor(p)
		out = append(out, PlanResponse{Plan: string(p), Features: f})
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Mine(c *gin.Context) {
	sub, err := h.service.GetByUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	now := h.clock.Now()
	response.Success(c, http.StatusOK, gin.H{
		"subscription":      sub,
		"is_active":         sub.IsActive(now),
		"is_expired":        sub.IsExpired(now),
		"days_until_expiry": sub.DaysUntilExpiry(now),
		"can_upgrade":       sub.CanUpgrade(),
		"can_downgrade":     sub.CanDowngrade(),
	})
}

func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sub, err := h.service.Create(c.Request.Context(), c.GetString("user_id"), Plan(req.Plan), BillingCycle(req.BillingCycle))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sub)
}

func (h *Handler) ChangePlan(c *gin.Context) {
	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sub, err := h.service.GetByUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	sub, err = h.service.ChangePlan(c.Request.Context(), sub, Plan(req.Plan))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

func (h *Handler) ChangeBillingCycle(c *gin.Context) {
	var req ChangeBillingCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sub, err := h.service.GetByUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	sub, err = h.service.ChangeBillingCycle(c.Request.Context(), sub, BillingCycle(req.BillingCycle))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

func (h *Handler) ChangeStartDate(c *gin.Context) {
	var req ChangeStartDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	start, err := time.Parse(schedule.DateLayout, req.StartDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date must be YYYY-MM-DD")
		return
	}

	sub, err := h.service.GetByUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	sub, err = h.service.ChangeStartDate(c.Request.Context(), sub, start)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

func (h *Handler) Cancel(c *gin.Context) {
	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	sub, err := h.service.GetByUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	sub, err = h.service.Cancel(c.Request.Context(), sub, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	var req PaymentRequest
	_ = c.ShouldBindJSON(&req)

	sub, err := h.service.GetByUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	sub, err = h.service.RecordPayment(c.Request.Context(), sub, req.PaymentMethod)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
