package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, l *Listing) error
	Update(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	GetBySlug(ctx context.Context, slug string) (*Listing, error)
	ListByProvider(ctx context.Context, providerID string) ([]Listing, error)
	ListActive(ctx context.Context, limit, offset int) ([]Listing, error)
	CountByProvider(ctx context.Context, providerID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) Update(ctx context.Context, l *Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Listing, error) {
	var l Listing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Listing, error) {
	var l Listing
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *repository) ListByProvider(ctx context.Context, providerID string) ([]Listing, error) {
	var out []Listing
	err := r.db.WithContext(ctx).Where("provider_id = ?", providerID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) ListActive(ctx context.Context, limit, offset int) ([]Listing, error) {
	var out []Listing
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("is_featured DESC, created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *repository) CountByProvider(ctx context.Context, providerID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&Listing{}).Where("provider_id = ?", providerID).Count(&cnt).Error
	return cnt, err
}
