package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ugandaserve/internal/pkg/clock"
	"ugandaserve/internal/pkg/pricing"
	"ugandaserve/internal/pkg/schedule"
	"ugandaserve/internal/pkg/validator"
)

// referenceAttempts bounds how often a colliding booking reference is
// regenerated before the create is escalated to the caller.
const referenceAttempts = 3

type ReferenceGenerator interface {
	Generate() string
}

// Service owns the booking lifecycle: creation with derived fields, guarded
// mutation, and the cancellation/reschedule policy windows.
type Service struct {
	bookings Repository
	services ServiceCatalog
	refs     ReferenceGenerator
	clock    clock.Clock
}

func NewService(bookings Repository, services ServiceCatalog, refs ReferenceGenerator, clk clock.Clock) *Service {
	return &Service{bookings: bookings, services: services, refs: refs, clock: clk}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	now := s.clock.Now()

	if fields := validator.Validate(req); fields != nil {
		for f, msg := range fields {
			return nil, &ValidationError{Field: f, Message: msg}
		}
	}
	if req.Duration <= 0 {
		return nil, &ValidationError{Field: "duration", Message: "must be positive"}
	}
	if strings.TrimSpace(req.ClientPhone) == "" {
		return nil, &ValidationError{Field: "client_phone", Message: "is required"}
	}
	if strings.TrimSpace(req.ClientEmail) == "" {
		return nil, &ValidationError{Field: "client_email", Message: "is required"}
	}
	loc := ServiceLocation(req.ServiceLocation)
	if !loc.IsValid() {
		return nil, &ValidationError{Field: "service_location", Message: "unknown location mode"}
	}
	currency := CurrencyUGX
	if req.Currency != "" {
		currency = Currency(req.Currency)
		if !currency.IsValid() {
			return nil, &ValidationError{Field: "currency", Message: "unknown currency"}
		}
	}

	date, err := time.Parse(schedule.DateLayout, req.ScheduledDate)
	if err != nil {
		return nil, &ValidationError{Field: "scheduled_date", Message: "must be YYYY-MM-DD"}
	}
	if _, err := time.Parse(schedule.TimeLayout, req.ScheduledTime); err != nil {
		return nil, &ValidationError{Field: "scheduled_time", Message: "must be HH:MM"}
	}
	hours, err := schedule.HoursUntil(date, req.ScheduledTime, now)
	if err != nil {
		return nil, &ValidationError{Field: "scheduled_time", Message: "must be HH:MM"}
	}
	if hours <= 0 {
		return nil, &ValidationError{Field: "scheduled_date", Message: "must be in the future"}
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	base := req.BasePrice
	if base.IsZero() {
		base = svc.BasePrice
	}
	if base.IsNegative() || req.AdditionalCharges.IsNegative() || req.Discount.IsNegative() {
		return nil, &ValidationError{Field: "base_price", Message: "amounts must not be negative"}
	}

	end, err := schedule.EndTime(req.ScheduledTime, req.Duration)
	if err != nil {
		return nil, &ValidationError{Field: "scheduled_time", Message: "must be HH:MM"}
	}

	b := &Booking{
		ID:                uuid.New().String(),
		Status:            StatusPending,
		ScheduledDate:     date,
		ScheduledTime:     req.ScheduledTime,
		Duration:          req.Duration,
		EndTime:           end,
		ServiceLocation:   loc,
		Address:           req.Address,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		BasePrice:         base,
		AdditionalCharges: req.AdditionalCharges,
		Discount:          req.Discount,
		TotalAmount:       pricing.ComputeTotal(base, req.AdditionalCharges, req.Discount),
		Currency:          currency,
		ClientNotes:       req.ClientNotes,
		ClientPhone:       req.ClientPhone,
		ClientEmail:       req.ClientEmail,
		PaymentStatus:     PaymentPending,
		AdvancePayment:    decimal.Zero,
		ClientID:          req.ClientID,
		ServiceID:         req.ServiceID,
	}

	// The generator only yields a low-collision candidate; the unique index
	// on booking_reference is authoritative. Regenerate on conflict, bounded.
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		b.Reference = s.refs.Generate()
		err = s.bookings.Create(ctx, b)
		if err == nil {
			return b, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
	}
	return nil, ErrReferenceExhausted
}

// Update applies a change set to a stored booking. Reschedules are policy
// checked against the stored state before anything is applied; a failed
// apply leaves the stored row untouched.
func (s *Service) Update(ctx context.Context, id string, ch Changes) (*Booking, error) {
	old, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if ch.isReschedule(old) {
		if err := s.rescheduleAllowed(old, now); err != nil {
			return nil, err
		}
	}

	updated, err := apply(*old, ch, now)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Cancel moves a booking to cancelled with the actor and reason recorded.
func (s *Service) Cancel(ctx context.Context, id string, actor Actor, reason string) (*Booking, error) {
	if !actor.IsValid() {
		return nil, &ValidationError{Field: "cancelled_by", Message: "unknown actor"}
	}

	old, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if old.Status != StatusPending && old.Status != StatusConfirmed {
		return nil, &PolicyError{Rule: RuleCancelStatus, Message: "only pending or confirmed bookings can be cancelled"}
	}
	if !old.CanCancel(now) {
		return nil, &PolicyError{Rule: RuleCancelWindow, Message: "cancellation closes 24 hours before the appointment"}
	}

	status := StatusCancelled
	updated, err := apply(*old, Changes{Status: &status}, now)
	if err != nil {
		return nil, err
	}
	updated.CancelledBy = &actor
	if reason != "" {
		updated.CancellationReason = &reason
	}

	if err := s.bookings.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) rescheduleAllowed(b *Booking, now time.Time) error {
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return &PolicyError{Rule: RuleRescheduleStatus, Message: "only pending or confirmed bookings can be rescheduled"}
	}
	if b.hoursUntil(now) <= cancelWindowHours {
		return &PolicyError{Rule: RuleRescheduleWindow, Message: "rescheduling closes 24 hours before the appointment"}
	}
	if b.RescheduleCount >= maxReschedules {
		return &PolicyError{Rule: RuleRescheduleLimit, Message: "a booking can be rescheduled at most 3 times"}
	}
	return nil
}

// CanCancel and CanReschedule expose the policy checks so the API layer can
// render eligibility without attempting the mutation.
func (s *Service) CanCancel(ctx context.Context, id string) (bool, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return b.CanCancel(s.clock.Now()), nil
}

func (s *Service) CanReschedule(ctx context.Context, id string) (bool, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return b.CanReschedule(s.clock.Now()), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) GetByReference(ctx context.Context, ref string) (*Booking, error) {
	return s.bookings.GetByReference(ctx, ref)
}

func (s *Service) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]Booking, error) {
	return s.bookings.ListByClient(ctx, clientID, limit, offset)
}

func (s *Service) ListByService(ctx context.Context, serviceID string) ([]Booking, error) {
	return s.bookings.ListByService(ctx, serviceID)
}
