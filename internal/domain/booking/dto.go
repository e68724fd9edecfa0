package booking

import "github.com/shopspring/decimal"

type CreateRequest struct {
	ClientID  string `json:"client_id" validate:"required"`
	ServiceID string `json:"service_id" binding:"required" validate:"required"`

	ScheduledDate string `json:"scheduled_date" binding:"required" validate:"required"`
	ScheduledTime string `json:"scheduled_time" binding:"required" validate:"required"`
	Duration      int    `json:"duration" binding:"required" validate:"gt=0"`

	ServiceLocation string   `json:"service_location" binding:"required" validate:"required"`
	Address         *string  `json:"address"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`

	BasePrice         decimal.Decimal `json:"base_price"`
	AdditionalCharges decimal.Decimal `json:"additional_charges"`
	Discount          decimal.Decimal `json:"discount"`
	Currency          string          `json:"currency"`

	ClientNotes *string `json:"client_notes"`
	ClientPhone string  `json:"client_phone" binding:"required" validate:"required"`
	ClientEmail string  `json:"client_email" binding:"required,email" validate:"required,email"`
}

// UpdateRequest is the wire form of a change set; pointer fields absent from
// the JSON body are left untouched.
type UpdateRequest struct {
	Status        *string `json:"status"`
	ScheduledDate *string `json:"scheduled_date"`
	ScheduledTime *string `json:"scheduled_time"`
	Duration      *int    `json:"duration"`
	RescheduledBy *string `json:"rescheduled_by"`

	ServiceLocation *string  `json:"service_location"`
	Address         *string  `json:"address"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`

	BasePrice         *decimal.Decimal `json:"base_price"`
	AdditionalCharges *decimal.Decimal `json:"additional_charges"`
	Discount          *decimal.Decimal `json:"discount"`

	ClientNotes   *string `json:"client_notes"`
	ProviderNotes *string `json:"provider_notes"`

	PaymentStatus  *string          `json:"payment_status"`
	PaymentMethod  *string          `json:"payment_method"`
	AdvancePayment *decimal.Decimal `json:"advance_payment"`
}

type CancelRequest struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelled_by" binding:"required"`
}
