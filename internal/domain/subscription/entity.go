package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan identifies a subscription tier.
type Plan string

const (
	PlanBasic   Plan = "basic"
	PlanPro     Plan = "pro"
	PlanPremium Plan = "premium"
)

func (p Plan) IsValid() bool {
	return p == PlanBasic || p == PlanPro || p == PlanPremium
}

// rank orders plans for upgrade/downgrade checks: basic < pro < premium.
func (p Plan) rank() int {
	switch p {
	case PlanPro:
		return 1
	case PlanPremium:
		return 2
	default:
		return 0
	}
}

type BillingCycle string

const (
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleAnnually  BillingCycle = "annually"
)

func (c BillingCycle) IsValid() bool {
	return c == CycleMonthly || c == CycleQuarterly || c == CycleAnnually
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// Features is the quota/flag bundle attached to a plan. A subscription always
// carries exactly the canonical bundle for its current plan; ChangePlan
// replaces the bundle in full, never merges.
type Features struct {
	PlanName string          `gorm:"column:plan_name" json:"plan_name"`
	Price    decimal.Decimal `gorm:"column:price;type:numeric(12,2)" json:"price"`

	MaxServices   int `gorm:"column:max_services" json:"max_services"`
	MaxCategories int `gorm:"column:max_categories" json:"max_categories"`
	MaxImages     int `gorm:"column:max_images" json:"max_images"`
	MaxVideos     int `gorm:"column:max_videos" json:"max_videos"`

	FeaturedListing        bool `gorm:"column:featured_listing" json:"featured_listing"`
	PromotedListing        bool `gorm:"column:promoted_listing" json:"promoted_listing"`
	PrioritySupport        bool `gorm:"column:priority_support" json:"priority_support"`
	AnalyticsAccess        bool `gorm:"column:analytics_access" json:"analytics_access"`
	SocialMediaIntegration bool `gorm:"column:social_media_integration" json:"social_media_integration"`
	VideoPortfolio         bool `gorm:"column:video_portfolio" json:"video_portfolio"`
}

// Subscription is a provider's current paid plan, 1:1 with the user.
// EndDate is derived from StartDate plus the billing cycle and recomputed on
// every cycle or start-date change.
type Subscription struct {
	ID     string `gorm:"column:id;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;uniqueIndex" json:"user_id"`

	Plan     Plan   `gorm:"column:plan" json:"plan"`
	Features `json:"features"`

	Currency     string       `gorm:"column:currency" json:"currency"`
	BillingCycle BillingCycle `gorm:"column:billing_cycle" json:"billing_cycle"`
	Status       Status       `gorm:"column:status" json:"status"`

	StartDate time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date" json:"end_date"`

	AutoRenewal bool `gorm:"column:auto_renewal" json:"auto_renewal"`

	IsTrial      bool       `gorm:"column:is_trial" json:"is_trial"`
	TrialEndDate *time.Time `gorm:"column:trial_end_date" json:"trial_end_date,omitempty"`

	LastPaymentDate *time.Time `gorm:"column:last_payment_date" json:"last_payment_date,omitempty"`
	NextPaymentDate *time.Time `gorm:"column:next_payment_date" json:"next_payment_date,omitempty"`
	PaymentMethod   *string    `gorm:"column:payment_method" json:"payment_method,omitempty"`

	CancelledAt        *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	CancellationReason *string    `gorm:"column:cancellation_reason" json:"cancellation_reason,omitempty"`

	PreviousPlan *Plan      `gorm:"column:previous_plan" json:"previous_plan,omitempty"`
	UpgradeDate  *time.Time `gorm:"column:upgrade_date" json:"upgrade_date,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

// IsActive reports whether the subscription is usable right now.
func (s *Subscription) IsActive(now time.Time) bool {
	return s.Status == StatusActive && now.Before(s.EndDate)
}

// IsExpired reports whether the billing period has lapsed, regardless of the
// stored status; callers reconcile the two.
func (s *Subscription) IsExpired(now time.Time) bool {
	return now.After(s.EndDate)
}

// DaysUntilExpiry rounds up, matching how remaining time is shown to users.
func (s *Subscription) DaysUntilExpiry(now time.Time) int {
	d := s.EndDate.Sub(now)
	days := int(d.Hours() / 24)
	if d > 0 && d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// CanUpgrade reports whether a higher tier exists.
func (s *Subscription) CanUpgrade() bool { return s.Plan.rank() < PlanPremium.rank() }

// CanDowngrade reports whether a lower tier exists.
func (s *Subscription) CanDowngrade() bool { return s.Plan.rank() > PlanBasic.rank() }
