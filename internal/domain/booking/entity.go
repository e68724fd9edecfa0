package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"ugandaserve/internal/pkg/schedule"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRejected    Status = "rejected"
	StatusRescheduled Status = "rescheduled"
)

// Terminal statuses permit no further status transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelled, StatusRejected, StatusRescheduled:
		return true
	}
	return false
}

type ServiceLocation string

const (
	LocationClient   ServiceLocation = "client_location"
	LocationProvider ServiceLocation = "provider_location"
	LocationOnline   ServiceLocation = "online"
)

func (l ServiceLocation) IsValid() bool {
	return l == LocationClient || l == LocationProvider || l == LocationOnline
}

type Currency string

const (
	CurrencyUGX Currency = "UGX"
	CurrencyUSD Currency = "USD"
)

func (c Currency) IsValid() bool { return c == CurrencyUGX || c == CurrencyUSD }

// Actor identifies who performed a cancellation or reschedule.
type Actor string

const (
	ActorClient   Actor = "client"
	ActorProvider Actor = "provider"
	ActorAdmin    Actor = "admin"
)

func (a Actor) IsValid() bool {
	return a == ActorClient || a == ActorProvider || a == ActorAdmin
}

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentPaid          PaymentStatus = "paid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentRefunded      PaymentStatus = "refunded"
	PaymentFailed        PaymentStatus = "failed"
)

// Booking is one scheduled engagement between a client and a provider's
// service. Dates and times of day are stored separately (the schedule is
// wall-clock, not a timestamp interval); EndTime and TotalAmount are derived
// fields and are recomputed on every mutation that touches their inputs.
type Booking struct {
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	Reference string `gorm:"column:booking_reference;uniqueIndex" json:"booking_reference"`
	Status    Status `gorm:"column:status" json:"status"`

	// Schedule
	ScheduledDate time.Time `gorm:"column:scheduled_date;type:date" json:"scheduled_date"`
	ScheduledTime string    `gorm:"column:scheduled_time" json:"scheduled_time"`
	Duration      int       `gorm:"column:duration" json:"duration"`
	EndTime       string    `gorm:"column:end_time" json:"end_time"`

	// Location
	ServiceLocation ServiceLocation `gorm:"column:service_location" json:"service_location"`
	Address         *string         `gorm:"column:address" json:"address,omitempty"`
	Latitude        *float64        `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude       *float64        `gorm:"column:longitude" json:"longitude,omitempty"`

	// Pricing
	BasePrice         decimal.Decimal `gorm:"column:base_price;type:numeric(12,2)" json:"base_price"`
	AdditionalCharges decimal.Decimal `gorm:"column:additional_charges;type:numeric(12,2)" json:"additional_charges"`
	Discount          decimal.Decimal `gorm:"column:discount;type:numeric(12,2)" json:"discount"`
	TotalAmount       decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2)" json:"total_amount"`
	Currency          Currency        `gorm:"column:currency" json:"currency"`

	// Notes and contact
	ClientNotes   *string `gorm:"column:client_notes" json:"client_notes,omitempty"`
	ProviderNotes *string `gorm:"column:provider_notes" json:"provider_notes,omitempty"`
	ClientPhone   string  `gorm:"column:client_phone" json:"client_phone"`
	ClientEmail   string  `gorm:"column:client_email" json:"client_email"`

	// Status timestamps, each stamped once on first entry into the status.
	ConfirmedAt *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	StartedAt   *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	CancellationReason *string `gorm:"column:cancellation_reason" json:"cancellation_reason,omitempty"`
	CancelledBy        *Actor  `gorm:"column:cancelled_by" json:"cancelled_by,omitempty"`

	// Reschedule tracking. OriginalDate/OriginalTime hold the schedule as it
	// was before the first reschedule and are never overwritten afterwards.
	OriginalDate    *time.Time `gorm:"column:original_date;type:date" json:"original_date,omitempty"`
	OriginalTime    *string    `gorm:"column:original_time" json:"original_time,omitempty"`
	RescheduledAt   *time.Time `gorm:"column:rescheduled_at" json:"rescheduled_at,omitempty"`
	RescheduledBy   *Actor     `gorm:"column:rescheduled_by" json:"rescheduled_by,omitempty"`
	RescheduleCount int        `gorm:"column:reschedule_count" json:"reschedule_count"`

	// Payment tracking
	PaymentStatus  PaymentStatus   `gorm:"column:payment_status" json:"payment_status"`
	PaymentMethod  *string         `gorm:"column:payment_method" json:"payment_method,omitempty"`
	AdvancePayment decimal.Decimal `gorm:"column:advance_payment;type:numeric(12,2)" json:"advance_payment"`

	// Reminders
	ReminderSent   bool       `gorm:"column:reminder_sent" json:"reminder_sent"`
	ReminderSentAt *time.Time `gorm:"column:reminder_sent_at" json:"reminder_sent_at,omitempty"`

	// Reviews
	CanReview       bool `gorm:"column:can_review" json:"can_review"`
	ReviewSubmitted bool `gorm:"column:review_submitted" json:"review_submitted"`

	// Relationships, immutable after creation
	ClientID  string `gorm:"column:client_id;index" json:"client_id"`
	ServiceID string `gorm:"column:service_id;index" json:"service_id"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// cancelWindow is the cutoff before the scheduled start inside which
// cancellation and rescheduling are refused.
const cancelWindowHours = 24

// maxReschedules caps how many times a booking may be moved.
const maxReschedules = 3

func (b *Booking) hoursUntil(now time.Time) float64 {
	h, err := schedule.HoursUntil(b.ScheduledDate, b.ScheduledTime, now)
	if err != nil {
		return 0
	}
	return h
}

// IsUpcoming reports whether the booking is still ahead of now and in a
// live pre-service status.
func (b *Booking) IsUpcoming(now time.Time) bool {
	return b.hoursUntil(now) > 0 && (b.Status == StatusPending || b.Status == StatusConfirmed)
}

// IsPast reports whether the scheduled start has already passed.
func (b *Booking) IsPast(now time.Time) bool {
	return b.hoursUntil(now) < 0
}

// CanCancel reports whether the client may still cancel: the booking must be
// pending or confirmed and more than 24 hours away.
func (b *Booking) CanCancel(now time.Time) bool {
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return false
	}
	return b.hoursUntil(now) > cancelWindowHours
}

// CanReschedule reports whether the booking may still be moved: same window
// as cancellation, plus the reschedule cap.
func (b *Booking) CanReschedule(now time.Time) bool {
	return b.CanCancel(now) && b.RescheduleCount < maxReschedules
}
