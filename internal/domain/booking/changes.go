package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"ugandaserve/internal/pkg/pricing"
	"ugandaserve/internal/pkg/schedule"
)

// Changes is an explicit field-change set for a booking update. Nil fields
// are left untouched. Keeping the (old, changes) pair explicit makes the
// derived-field rules below independently testable instead of hiding them in
// persistence hooks.
type Changes struct {
	Status        *Status
	ScheduledDate *time.Time
	ScheduledTime *string
	Duration      *int
	RescheduledBy *Actor

	ServiceLocation *ServiceLocation
	Address         *string
	Latitude        *float64
	Longitude       *float64

	BasePrice         *decimal.Decimal
	AdditionalCharges *decimal.Decimal
	Discount          *decimal.Decimal

	ClientNotes   *string
	ProviderNotes *string

	PaymentStatus  *PaymentStatus
	PaymentMethod  *string
	AdvancePayment *decimal.Decimal

	ReviewSubmitted *bool
}

// isReschedule reports whether the change set moves the booking's schedule.
func (ch Changes) isReschedule(b *Booking) bool {
	if ch.ScheduledDate != nil && !ch.ScheduledDate.Equal(b.ScheduledDate) {
		return true
	}
	if ch.ScheduledTime != nil && *ch.ScheduledTime != b.ScheduledTime {
		return true
	}
	return false
}

// apply copies old, applies the change set and re-derives every dependent
// field: total amount from the price components, end time from the schedule,
// status timestamps on the transition into a status, and reschedule
// bookkeeping (original date/time captured on the first reschedule only).
func apply(old Booking, ch Changes, now time.Time) (Booking, error) {
	b := old

	if ch.Status != nil && *ch.Status != b.Status {
		if !ch.Status.IsValid() {
			return old, &ValidationError{Field: "status", Message: "unknown status"}
		}
		if b.Status.IsTerminal() {
			return old, &TransitionError{From: b.Status, To: *ch.Status}
		}
		b.Status = *ch.Status
		stampStatus(&b, now)
	}

	reschedule := ch.isReschedule(&old)
	if reschedule {
		if b.OriginalDate == nil {
			origDate := old.ScheduledDate
			origTime := old.ScheduledTime
			b.OriginalDate = &origDate
			b.OriginalTime = &origTime
		}
		at := now
		b.RescheduledAt = &at
		b.RescheduleCount++
		if ch.RescheduledBy != nil {
			b.RescheduledBy = ch.RescheduledBy
		}
	}

	if ch.ScheduledDate != nil {
		b.ScheduledDate = *ch.ScheduledDate
	}
	if ch.ScheduledTime != nil {
		if _, err := time.Parse(schedule.TimeLayout, *ch.ScheduledTime); err != nil {
			return old, &ValidationError{Field: "scheduled_time", Message: "must be HH:MM"}
		}
		b.ScheduledTime = *ch.ScheduledTime
	}
	if ch.Duration != nil {
		if *ch.Duration <= 0 {
			return old, &ValidationError{Field: "duration", Message: "must be positive"}
		}
		b.Duration = *ch.Duration
	}

	if ch.ServiceLocation != nil {
		if !ch.ServiceLocation.IsValid() {
			return old, &ValidationError{Field: "service_location", Message: "unknown location mode"}
		}
		b.ServiceLocation = *ch.ServiceLocation
	}
	if ch.Address != nil {
		b.Address = ch.Address
	}
	if ch.Latitude != nil {
		b.Latitude = ch.Latitude
	}
	if ch.Longitude != nil {
		b.Longitude = ch.Longitude
	}

	if ch.BasePrice != nil {
		if ch.BasePrice.IsNegative() {
			return old, &ValidationError{Field: "base_price", Message: "must not be negative"}
		}
		b.BasePrice = *ch.BasePrice
	}
	if ch.AdditionalCharges != nil {
		if ch.AdditionalCharges.IsNegative() {
			return old, &ValidationError{Field: "additional_charges", Message: "must not be negative"}
		}
		b.AdditionalCharges = *ch.AdditionalCharges
	}
	if ch.Discount != nil {
		if ch.Discount.IsNegative() {
			return old, &ValidationError{Field: "discount", Message: "must not be negative"}
		}
		b.Discount = *ch.Discount
	}

	if ch.ClientNotes != nil {
		b.ClientNotes = ch.ClientNotes
	}
	if ch.ProviderNotes != nil {
		b.ProviderNotes = ch.ProviderNotes
	}

	if ch.PaymentStatus != nil {
		b.PaymentStatus = *ch.PaymentStatus
	}
	if ch.PaymentMethod != nil {
		b.PaymentMethod = ch.PaymentMethod
	}
	if ch.AdvancePayment != nil {
		b.AdvancePayment = *ch.AdvancePayment
	}
	if ch.ReviewSubmitted != nil {
		b.ReviewSubmitted = *ch.ReviewSubmitted
	}

	// Derived fields are never trusted from input.
	b.TotalAmount = pricing.ComputeTotal(b.BasePrice, b.AdditionalCharges, b.Discount)
	end, err := schedule.EndTime(b.ScheduledTime, b.Duration)
	if err != nil {
		return old, &ValidationError{Field: "scheduled_time", Message: "must be HH:MM"}
	}
	b.EndTime = end

	return b, nil
}

// stampStatus records the timestamp for the status just entered, once:
// a re-save in the same status never restamps.
func stampStatus(b *Booking, now time.Time) {
	switch b.Status {
	case StatusConfirmed:
		if b.ConfirmedAt == nil {
			b.ConfirmedAt = &now
		}
	case StatusInProgress:
		if b.StartedAt == nil {
			b.StartedAt = &now
		}
	case StatusCompleted:
		if b.CompletedAt == nil {
			b.CompletedAt = &now
		}
		b.CanReview = true
	case StatusCancelled:
		if b.CancelledAt == nil {
			b.CancelledAt = &now
		}
	}
}
