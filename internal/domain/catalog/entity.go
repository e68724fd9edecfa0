package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type PricingType string

const (
	PricingFixed  PricingType = "fixed"
	PricingHourly PricingType = "hourly"
	PricingDaily  PricingType = "daily"
	PricingCustom PricingType = "custom"
)

// Listing is a provider's published service offer. Bookings reference a
// listing for its base price and location mode; everything else here is
// presentation data.
type Listing struct {
	ID         string `gorm:"column:id;primaryKey" json:"id"`
	ProviderID string `gorm:"column:provider_id;index" json:"provider_id"`

	Title            string `gorm:"column:title" json:"title"`
	Slug             string `gorm:"column:slug;uniqueIndex" json:"slug"`
	Description      string `gorm:"column:description" json:"description"`
	ShortDescription string `gorm:"column:short_description" json:"short_description,omitempty"`
	CategoryID       string `gorm:"column:category_id;index" json:"category_id,omitempty"`

	BasePrice   decimal.Decimal `gorm:"column:base_price;type:numeric(12,2)" json:"base_price"`
	Currency    string          `gorm:"column:currency" json:"currency"`
	PricingType PricingType     `gorm:"column:pricing_type" json:"pricing_type"`
	Duration    *int            `gorm:"column:duration" json:"duration,omitempty"`

	ServiceLocation string `gorm:"column:service_location" json:"service_location"`
	ServiceRadius   int    `gorm:"column:service_radius" json:"service_radius"`

	IsActive   bool `gorm:"column:is_active" json:"is_active"`
	IsFeatured bool `gorm:"column:is_featured" json:"is_featured"`
	IsPromoted bool `gorm:"column:is_promoted" json:"is_promoted"`

	TotalBookings     int `gorm:"column:total_bookings" json:"total_bookings"`
	CompletedBookings int `gorm:"column:completed_bookings" json:"completed_bookings"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Listing) TableName() string { return "services" }
