package catalog

import "github.com/shopspring/decimal"

type CreateListingRequest struct {
	Title            string          `json:"title" binding:"required"`
	Description      string          `json:"description" binding:"required"`
	ShortDescription string          `json:"short_description"`
	CategoryID       string          `json:"category_id"`
	BasePrice        decimal.Decimal `json:"base_price" binding:"required"`
	Currency         string          `json:"currency"`
	PricingType      string          `json:"pricing_type"`
	Duration         *int            `json:"duration"`
	ServiceLocation  string          `json:"service_location"`
	ServiceRadius    int             `json:"service_radius"`
}

type UpdateListingRequest struct {
	Title            *string          `json:"title"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"short_description"`
	BasePrice        *decimal.Decimal `json:"base_price"`
	Duration         *int             `json:"duration"`
	ServiceLocation  *string          `json:"service_location"`
	IsActive         *bool            `json:"is_active"`
}
