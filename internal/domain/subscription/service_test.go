package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ugandaserve/internal/pkg/clock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, s *Subscription) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, s *Subscription) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID string) (*Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *MockRepository) ListExpiring(ctx context.Context, before time.Time) ([]Subscription, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]Subscription), args.Error(1)
}

func TestService_Create_ProMonthly_EndOfMonthClamped(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	// January 31st has no counterpart in February; the end date clamps to
	// the last day of the month, Feb 29 in a leap year.
	start := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	service := NewService(repo, clock.Fixed(start))

	sub, err := service.Create(context.Background(), "user-1", PlanPro, CycleMonthly)

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, sub.Status)
	assert.Equal(t, PlanPro, sub.Plan)
	assert.Equal(t, time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), sub.EndDate)
	assert.NotNil(t, sub.NextPaymentDate)
	assert.Equal(t, sub.EndDate, *sub.NextPaymentDate)
	assert.Equal(t, 5, sub.MaxServices)
	assert.True(t, sub.FeaturedListing)
	assert.True(t, sub.AutoRenewal)
}

func TestService_Create_BasicHasNoPaymentSchedule(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	service := NewService(repo, clock.Fixed(start))

	sub, err := service.Create(context.Background(), "user-1", PlanBasic, CycleMonthly)

	assert.NoError(t, err)
	assert.Nil(t, sub.NextPaymentDate)
	assert.True(t, sub.Price.IsZero())
	assert.Equal(t, 1, sub.MaxServices)
}

func TestService_Create_RejectsUnknownPlanAndCycle(t *testing.T) {
	service := NewService(new(MockRepository), clock.Fixed(time.Now()))

	_, err := service.Create(context.Background(), "user-1", Plan("platinum"), CycleMonthly)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Create(context.Background(), "user-1", PlanPro, BillingCycle("weekly"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_ChangePlan_ReplacesBundleInFull(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	service := NewService(repo, clock.Fixed(now))

	basicFeatures, _ := FeaturesFor(PlanBasic)
	sub := &Subscription{
		ID:           "sub-1",
		UserID:       "user-1",
		Plan:         PlanBasic,
		Features:     basicFeatures,
		BillingCycle: CycleMonthly,
		Status:       StatusActive,
		StartDate:    now.AddDate(0, 0, -5),
	}

	got, err := service.ChangePlan(context.Background(), sub, PlanPremium)

	assert.NoError(t, err)
	assert.Equal(t, PlanPremium, got.Plan)
	assert.Equal(t, PlanBasic, *got.PreviousPlan)
	assert.Equal(t, now, *got.UpgradeDate)
	// the bundle is the premium one wholesale
	assert.Equal(t, 999, got.MaxServices)
	assert.Equal(t, 50, got.MaxImages)
	assert.True(t, got.VideoPortfolio)
	assert.NotNil(t, got.NextPaymentDate)
}

func TestService_ChangePlan_DowngradeDropsPaidFlags(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	service := NewService(repo, clock.Fixed(now))

	premiumFeatures, _ := FeaturesFor(PlanPremium)
	sub := &Subscription{
		ID:           "sub-1",
		Plan:         PlanPremium,
		Features:     premiumFeatures,
		BillingCycle: CycleMonthly,
		StartDate:    now,
	}

	got, err := service.ChangePlan(context.Background(), sub, PlanBasic)

	assert.NoError(t, err)
	assert.Equal(t, 1, got.MaxServices)
	assert.False(t, got.FeaturedListing)
	assert.False(t, got.VideoPortfolio)
	assert.Nil(t, got.NextPaymentDate)
	assert.Equal(t, PlanPremium, *got.PreviousPlan)
}

func TestService_ChangePlan_SamePlanIsANoop(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, clock.Fixed(time.Now()))

	features, _ := FeaturesFor(PlanPro)
	sub := &Subscription{Plan: PlanPro, Features: features}

	got, err := service.ChangePlan(context.Background(), sub, PlanPro)

	assert.NoError(t, err)
	assert.Nil(t, got.PreviousPlan)
	repo.AssertNotCalled(t, "Update")
}

func TestService_ChangeBillingCycle_RecomputesEndDate(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	start := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	service := NewService(repo, clock.Fixed(start))

	features, _ := FeaturesFor(PlanPro)
	sub := &Subscription{Plan: PlanPro, Features: features, BillingCycle: CycleMonthly, StartDate: start}

	got, err := service.ChangeBillingCycle(context.Background(), sub, CycleAnnually)

	assert.NoError(t, err)
	// Feb 29 has no counterpart next year
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), got.EndDate)
	assert.Equal(t, got.EndDate, *got.NextPaymentDate)
}

func TestService_Cancel_KeepsHistory(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	service := NewService(repo, clock.Fixed(now))

	features, _ := FeaturesFor(PlanPro)
	sub := &Subscription{Plan: PlanPro, Features: features, Status: StatusActive}

	got, err := service.Cancel(context.Background(), sub, "too expensive")

	assert.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, now, *got.CancelledAt)
	assert.Equal(t, "too expensive", *got.CancellationReason)
	assert.Equal(t, PlanPro, got.Plan)
}

func TestService_RecordPayment_ActivatesAndRollsDates(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	service := NewService(repo, clock.Fixed(now))

	features, _ := FeaturesFor(PlanPro)
	sub := &Subscription{Plan: PlanPro, Features: features, BillingCycle: CycleMonthly, Status: StatusPending}

	got, err := service.RecordPayment(context.Background(), sub, "mobile_money")

	assert.NoError(t, err)
	assert.Equal(t, StatusActive, got.Status)
	assert.Equal(t, now, *got.LastPaymentDate)
	assert.Equal(t, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), *got.NextPaymentDate)
	assert.Equal(t, "mobile_money", *got.PaymentMethod)
}

func TestService_MaxServices(t *testing.T) {
	now := time.Now()

	t.Run("no subscription row means basic", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByUserID", mock.Anything, "user-1").Return(nil, ErrNotFound)

		service := NewService(repo, clock.Fixed(now))
		max, err := service.MaxServices(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Equal(t, 1, max)
	})

	t.Run("premium quota", func(t *testing.T) {
		repo := new(MockRepository)
		features, _ := FeaturesFor(PlanPremium)
		repo.On("GetByUserID", mock.Anything, "user-1").
			Return(&Subscription{Plan: PlanPremium, Features: features}, nil)

		service := NewService(repo, clock.Fixed(now))
		max, err := service.MaxServices(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Equal(t, 999, max)
	})
}
