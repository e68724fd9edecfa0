package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SubscriptionLimits reports how many listings the provider's current plan
// allows. Implemented by the subscription service.
type SubscriptionLimits interface {
	MaxServices(ctx context.Context, providerID string) (int, error)
}

type Service struct {
	listings Repository
	limits   SubscriptionLimits

	// rand.Rand is not safe for concurrent use; creates from parallel
	// requests share this service.
	mu   sync.Mutex
	rand *rand.Rand
}

func NewService(listings Repository, limits SubscriptionLimits, src rand.Source) *Service {
	return &Service{listings: listings, limits: limits, rand: rand.New(src)}
}

func (s *Service) newSlug(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SlugWithSuffix(title, s.rand)
}

func (s *Service) Create(ctx context.Context, providerID string, req CreateListingRequest) (*Listing, error) {
	title := strings.TrimSpace(req.Title)
	if len(title) < 5 || len(title) > 100 {
		return nil, fmt.Errorf("%w: title must be 5-100 characters", ErrValidation)
	}
	if len(strings.TrimSpace(req.Description)) < 20 {
		return nil, fmt.Errorf("%w: description must be at least 20 characters", ErrValidation)
	}
	if req.BasePrice.IsNegative() {
		return nil, fmt.Errorf("%w: base price must not be negative", ErrValidation)
	}

	// Plan quota: providers on lower tiers publish fewer listings.
	if s.limits != nil {
		max, err := s.limits.MaxServices(ctx, providerID)
		if err != nil {
			return nil, err
		}
		count, err := s.listings.CountByProvider(ctx, providerID)
		if err != nil {
			return nil, err
		}
		if count >= int64(max) {
			return nil, fmt.Errorf("%w: service limit reached for your current plan", ErrForbidden)
		}
	}

	pricingType := PricingFixed
	if req.PricingType != "" {
		pricingType = PricingType(req.PricingType)
	}

	l := &Listing{
		ID:               uuid.New().String(),
		ProviderID:       providerID,
		Title:            title,
		Slug:             s.newSlug(title),
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		CategoryID:       req.CategoryID,
		BasePrice:        req.BasePrice,
		Currency:         req.Currency,
		PricingType:      pricingType,
		Duration:         req.Duration,
		ServiceLocation:  req.ServiceLocation,
		ServiceRadius:    req.ServiceRadius,
		IsActive:         true,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if l.Currency == "" {
		l.Currency = "UGX"
	}

	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Update(ctx context.Context, providerID, id string, req UpdateListingRequest) (*Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.ProviderID != providerID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		l.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.ShortDescription != nil {
		l.ShortDescription = *req.ShortDescription
	}
	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, fmt.Errorf("%w: base price must not be negative", ErrValidation)
		}
		l.BasePrice = *req.BasePrice
	}
	if req.Duration != nil {
		l.Duration = req.Duration
	}
	if req.ServiceLocation != nil {
		l.ServiceLocation = *req.ServiceLocation
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}
	l.UpdatedAt = time.Now()

	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Listing, error) {
	return s.listings.GetByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*Listing, error) {
	return s.listings.GetBySlug(ctx, slug)
}

func (s *Service) ListByProvider(ctx context.Context, providerID string) ([]Listing, error) {
	return s.listings.ListByProvider(ctx, providerID)
}

func (s *Service) ListActive(ctx context.Context, limit, offset int) ([]Listing, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.listings.ListActive(ctx, limit, offset)
}
