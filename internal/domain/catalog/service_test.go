package catalog

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, l *Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, l *Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Listing), args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*Listing, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Listing), args.Error(1)
}

func (m *MockRepository) ListByProvider(ctx context.Context, providerID string) ([]Listing, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).([]Listing), args.Error(1)
}

func (m *MockRepository) ListActive(ctx context.Context, limit, offset int) ([]Listing, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]Listing), args.Error(1)
}

func (m *MockRepository) CountByProvider(ctx context.Context, providerID string) (int64, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(int64), args.Error(1)
}

type MockLimits struct {
	mock.Mock
}

func (m *MockLimits) MaxServices(ctx context.Context, providerID string) (int, error) {
	args := m.Called(ctx, providerID)
	return args.Int(0), args.Error(1)
}

func validListingRequest() CreateListingRequest {
	return CreateListingRequest{
		Title:       "Deep Home Cleaning",
		Description: "Full-house deep clean covering kitchens, bathrooms and living areas.",
		BasePrice:   decimal.NewFromInt(100000),
	}
}

func TestService_Create_Success(t *testing.T) {
	repo := new(MockRepository)
	limits := new(MockLimits)

	limits.On("MaxServices", mock.Anything, "provider-1").Return(5, nil)
	repo.On("CountByProvider", mock.Anything, "provider-1").Return(int64(2), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, limits, rand.NewSource(1))

	l, err := service.Create(context.Background(), "provider-1", validListingRequest())

	assert.NoError(t, err)
	assert.Equal(t, "provider-1", l.ProviderID)
	assert.Regexp(t, `^deep-home-cleaning-[a-z0-9]{6}$`, l.Slug)
	assert.Equal(t, "UGX", l.Currency)
	assert.Equal(t, PricingFixed, l.PricingType)
	assert.True(t, l.IsActive)
}

func TestService_Create_PlanQuotaReached(t *testing.T) {
	repo := new(MockRepository)
	limits := new(MockLimits)

	limits.On("MaxServices", mock.Anything, "provider-1").Return(1, nil)
	repo.On("CountByProvider", mock.Anything, "provider-1").Return(int64(1), nil)

	service := NewService(repo, limits, rand.NewSource(1))

	_, err := service.Create(context.Background(), "provider-1", validListingRequest())

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Create")
}

func TestService_Create_Validation(t *testing.T) {
	service := NewService(new(MockRepository), new(MockLimits), rand.NewSource(1))

	tests := []struct {
		name   string
		mutate func(*CreateListingRequest)
	}{
		{"short title", func(r *CreateListingRequest) { r.Title = "Mop" }},
		{"short description", func(r *CreateListingRequest) { r.Description = "cleaning" }},
		{"negative price", func(r *CreateListingRequest) { r.BasePrice = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validListingRequest()
			tt.mutate(&req)
			_, err := service.Create(context.Background(), "provider-1", req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestService_Update_OwnershipEnforced(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "svc-1").
		Return(&Listing{ID: "svc-1", ProviderID: "provider-1"}, nil)

	service := NewService(repo, new(MockLimits), rand.NewSource(1))

	title := "New Title Here"
	_, err := service.Update(context.Background(), "someone-else", "svc-1", UpdateListingRequest{Title: &title})

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Update")
}

func TestService_Update_AppliesFields(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "svc-1").
		Return(&Listing{ID: "svc-1", ProviderID: "provider-1", Slug: "old-slug-abc123", CreatedAt: time.Now()}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, new(MockLimits), rand.NewSource(1))

	price := decimal.NewFromInt(120000)
	inactive := false
	l, err := service.Update(context.Background(), "provider-1", "svc-1", UpdateListingRequest{
		BasePrice: &price,
		IsActive:  &inactive,
	})

	assert.NoError(t, err)
	assert.True(t, l.BasePrice.Equal(price))
	assert.False(t, l.IsActive)
	// the slug is assigned at creation and never regenerated
	assert.Equal(t, "old-slug-abc123", l.Slug)
}

func TestService_Create_ConcurrentCreates(t *testing.T) {
	repo := new(MockRepository)
	limits := new(MockLimits)

	limits.On("MaxServices", mock.Anything, mock.Anything).Return(999, nil)
	repo.On("CountByProvider", mock.Anything, mock.Anything).Return(int64(0), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, limits, rand.NewSource(7))

	const workers = 8
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Create(context.Background(), "provider-1", validListingRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
