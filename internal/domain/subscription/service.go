package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ugandaserve/internal/pkg/clock"
	"ugandaserve/internal/pkg/schedule"
)

type Repository interface {
	Create(ctx context.Context, s *Subscription) error
	Update(ctx context.Context, s *Subscription) error
	GetByID(ctx context.Context, id string) (*Subscription, error)
	GetByUserID(ctx context.Context, userID string) (*Subscription, error)
	ListExpiring(ctx context.Context, before time.Time) ([]Subscription, error)
}

// Service owns the subscription plan/billing lifecycle: canonical feature
// bundles, derived billing end dates, and upgrade/downgrade bookkeeping.
type Service struct {
	subs  Repository
	clock clock.Clock
}

func NewService(subs Repository, clk clock.Clock) *Service {
	return &Service{subs: subs, clock: clk}
}

// Create starts a provider's subscription in pending with the canonical
// bundle for the plan. EndDate is derived from the billing cycle; basic is
// free, so it carries no next payment date.
func (s *Service) Create(ctx context.Context, userID string, plan Plan, cycle BillingCycle) (*Subscription, error) {
	features, ok := FeaturesFor(plan)
	if !ok {
		return nil, &ValidationError{Field: "plan", Message: "unknown plan"}
	}
	if !cycle.IsValid() {
		return nil, &ValidationError{Field: "billing_cycle", Message: "unknown billing cycle"}
	}

	now := s.clock.Now()
	endDate, err := schedule.BillingEndDate(now, string(cycle))
	if err != nil {
		return nil, &ValidationError{Field: "billing_cycle", Message: "unknown billing cycle"}
	}

	sub := &Subscription{
		ID:           uuid.New().String(),
		UserID:       userID,
		Plan:         plan,
		Features:     features,
		Currency:     "UGX",
		BillingCycle: cycle,
		Status:       StatusPending,
		StartDate:    now,
		EndDate:      endDate,
		AutoRenewal:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if plan != PlanBasic {
		next := endDate
		sub.NextPaymentDate = &next
	}

	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ChangePlan moves a subscription to a new tier. The previous plan and the
// change time are recorded, and the feature bundle is replaced in full so no
// quota or flag from the old plan survives.
func (s *Service) ChangePlan(ctx context.Context, sub *Subscription, newPlan Plan) (*Subscription, error) {
	features, ok := FeaturesFor(newPlan)
	if !ok {
		return nil, &ValidationError{Field: "plan", Message: "unknown plan"}
	}
	if newPlan == sub.Plan {
		return sub, nil
	}

	now := s.clock.Now()
	prev := sub.Plan
	sub.PreviousPlan = &prev
	sub.UpgradeDate = &now
	sub.Plan = newPlan
	sub.Features = features
	sub.UpdatedAt = now

	s.recomputeBilling(sub)

	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ChangeBillingCycle recomputes the billing end date for the new interval.
func (s *Service) ChangeBillingCycle(ctx context.Context, sub *Subscription, cycle BillingCycle) (*Subscription, error) {
	if !cycle.IsValid() {
		return nil, &ValidationError{Field: "billing_cycle", Message: "unknown billing cycle"}
	}
	sub.BillingCycle = cycle
	sub.UpdatedAt = s.clock.Now()
	s.recomputeBilling(sub)

	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ChangeStartDate shifts the billing anchor and recomputes the end date.
func (s *Service) ChangeStartDate(ctx context.Context, sub *Subscription, start time.Time) (*Subscription, error) {
	sub.StartDate = start
	sub.UpdatedAt = s.clock.Now()
	s.recomputeBilling(sub)

	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Cancel records the cancellation without deleting history. There is no
// transition guard around cancelled: an admin may reinstate by a later plan
// or cycle change.
func (s *Service) Cancel(ctx context.Context, sub *Subscription, reason string) (*Subscription, error) {
	now := s.clock.Now()
	sub.Status = StatusCancelled
	sub.CancelledAt = &now
	if reason != "" {
		sub.CancellationReason = &reason
	}
	sub.UpdatedAt = now

	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// RecordPayment marks a successful charge: the subscription becomes active,
// the payment dates roll forward one billing interval.
func (s *Service) RecordPayment(ctx context.Context, sub *Subscription, method string) (*Subscription, error) {
	now := s.clock.Now()
	sub.Status = StatusActive
	sub.LastPaymentDate = &now
	if method != "" {
		sub.PaymentMethod = &method
	}
	if sub.Plan != PlanBasic {
		next, err := schedule.BillingEndDate(now, string(sub.BillingCycle))
		if err == nil {
			sub.NextPaymentDate = &next
		}
	}
	sub.UpdatedAt = now

	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) GetByUser(ctx context.Context, userID string) (*Subscription, error) {
	return s.subs.GetByUserID(ctx, userID)
}

// MaxServices implements the catalog's SubscriptionLimits: providers with no
// subscription row are on the basic tier.
func (s *Service) MaxServices(ctx context.Context, providerID string) (int, error) {
	sub, err := s.subs.GetByUserID(ctx, providerID)
	if err != nil {
		if err == ErrNotFound {
			basic, _ := FeaturesFor(PlanBasic)
			return basic.MaxServices, nil
		}
		return 0, err
	}
	return sub.MaxServices, nil
}

// recomputeBilling re-derives EndDate from StartDate and the billing cycle,
// and keeps NextPaymentDate aligned: set to the end date for paid plans,
// cleared for basic.
func (s *Service) recomputeBilling(sub *Subscription) {
	end, err := schedule.BillingEndDate(sub.StartDate, string(sub.BillingCycle))
	if err != nil {
		return
	}
	sub.EndDate = end
	if sub.Plan == PlanBasic {
		sub.NextPaymentDate = nil
	} else {
		next := end
		sub.NextPaymentDate = &next
	}
}
