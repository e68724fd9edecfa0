package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ugandaserve/internal/pkg/response"
	"ugandaserve/internal/pkg/schedule"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	req.ClientID = c.GetString("user_id")

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) Get(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) GetByReference(c *gin.Context) {
	b, err := h.service.GetByReference(c.Request.Context(), c.Param("ref"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ch, err := toChanges(req)
	if err != nil {
		writeError(c, err)
		return
	}

	b, err := h.service.Update(c.Request.Context(), c.Param("id"), ch)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), c.Param("id"), Actor(req.CancelledBy), req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Eligibility reports whether the booking can still be cancelled or
// rescheduled, so clients can render the right controls.
func (h *Handler) Eligibility(c *gin.Context) {
	canCancel, err := h.service.CanCancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	canReschedule, err := h.service.CanReschedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"can_cancel":     canCancel,
		"can_reschedule": canReschedule,
	})
}

func (h *Handler) MyBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	out, err := h.service.ListByClient(c.Request.Context(), c.GetString("user_id"), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func toChanges(req UpdateRequest) (Changes, error) {
	var ch Changes

	if req.Status != nil {
		s := Status(*req.Status)
		ch.Status = &s
	}
	if req.ScheduledDate != nil {
		d, err := time.Parse(schedule.DateLayout, *req.ScheduledDate)
		if err != nil {
			return ch, &ValidationError{Field: "scheduled_date", Message: "must be YYYY-MM-DD"}
		}
		ch.ScheduledDate = &d
	}
	ch.ScheduledTime = req.ScheduledTime
	ch.Duration = req.Duration
	if req.RescheduledBy != nil {
		a := Actor(*req.RescheduledBy)
		if !a.IsValid() {
			return ch, &ValidationError{Field: "rescheduled_by", Message: "unknown actor"}
		}
		ch.RescheduledBy = &a
	}
	if req.ServiceLocation != nil {
		l := ServiceLocation(*req.ServiceLocation)
		ch.ServiceLocation = &l
	}
	ch.Address = req.Address
	ch.Latitude = req.Latitude
	ch.Longitude = req.Longitude
	ch.BasePrice = req.BasePrice
	ch.AdditionalCharges = req.AdditionalCharges
	ch.Discount = req.Discount
	ch.ClientNotes = req.ClientNotes
	ch.ProviderNotes = req.ProviderNotes
	if req.PaymentStatus != nil {
		p := PaymentStatus(*req.PaymentStatus)
		ch.PaymentStatus = &p
	}
	ch.PaymentMethod = req.PaymentMethod
	ch.AdvancePayment = req.AdvancePayment

	return ch, nil
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrPolicyViolation):
		response.Error(c, http.StatusUnprocessableEntity, "POLICY_VIOLATION", err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
